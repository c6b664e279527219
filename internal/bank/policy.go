// Package bank implements the in-memory bank: account entities, the
// per-account-type policy table, and the directory that owns the accounts
// and the single active session.
package bank

// AccountType identifies the kind of bank account and selects its policy.
type AccountType string

const (
	// Student represents a student account with no overdraft and no commission.
	Student AccountType = "student"
	// Gold represents a gold account with a £1000 overdraft allowance.
	Gold AccountType = "gold"
	// Platinum represents a platinum account with the largest limits.
	Platinum AccountType = "platinum"
)

// Policy holds the fixed transaction rules for one account type.
type Policy struct {
	// WithdrawalLimit is the maximum amount a single withdrawal may request.
	WithdrawalLimit int
	// DepositLimit is the maximum amount a single deposit may request.
	DepositLimit int
	// OverdraftFloor is the most negative balance a withdrawal may produce.
	OverdraftFloor float64
	// Commission is the fee charged on every successful withdrawal and
	// subtracted from every successful deposit.
	Commission float64
}

// basePolicy applies to any account type without an explicit entry.
var basePolicy = Policy{
	WithdrawalLimit: 200,
	DepositLimit:    200,
	OverdraftFloor:  -100,
	Commission:      0.5,
}

var policies = map[AccountType]Policy{
	Student:  {WithdrawalLimit: 150, DepositLimit: 250, OverdraftFloor: 0, Commission: 0},
	Gold:     {WithdrawalLimit: 2000, DepositLimit: 2000, OverdraftFloor: -1000, Commission: 0.5},
	Platinum: {WithdrawalLimit: 3000, DepositLimit: 2000, OverdraftFloor: -1500, Commission: 0.7},
}

// PolicyFor returns the policy for the given account type.
// Unknown types fall back to the base policy.
func PolicyFor(t AccountType) Policy {
	if p, ok := policies[t]; ok {
		return p
	}
	return basePolicy
}
