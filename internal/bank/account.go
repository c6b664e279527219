package bank

import (
	"fmt"
	"strconv"
)

// Account is a single ledger entity: identity, password, balance and type.
// The account number and password are digit strings compared by exact
// equality so that leading zeros are significant; they must never be
// parsed to integers for matching.
type Account struct {
	number      string
	password    string
	balance     float64
	accountType AccountType
	lastMessage string
}

// NewAccount constructs an account of the given type. The number is
// expected to be a 5-digit string; uniqueness is the directory's concern.
func NewAccount(number, password string, t AccountType, balance float64) *Account {
	return &Account{
		number:      number,
		password:    password,
		balance:     balance,
		accountType: t,
	}
}

// Withdraw attempts to withdraw amount from the account. The amount must
// be positive and within the type's withdrawal limit, and the resulting
// balance may not drop below the overdraft floor. The commission fee is
// charged on every successful withdrawal, including zero-fee types where
// the formula still applies with no net effect.
//
// The outcome, success or failure, is recorded in the last message.
func (a *Account) Withdraw(amount int) bool {
	p := PolicyFor(a.accountType)
	if amount <= 0 || amount > p.WithdrawalLimit {
		a.lastMessage = fmt.Sprintf("Invalid withdrawal amount. Must be positive and no more than £%d.", p.WithdrawalLimit)
		return false
	}
	if a.balance-float64(amount) < p.OverdraftFloor {
		a.lastMessage = fmt.Sprintf("Withdrawal would exceed overdraft limit. Current balance: £%s", money(a.balance))
		return false
	}
	a.balance -= float64(amount) + p.Commission
	a.lastMessage = fmt.Sprintf("Withdrawn £%d. New balance: £%s", amount, money(a.balance))
	return true
}

// Deposit attempts to deposit amount into the account. The amount must be
// positive and within the type's deposit limit, and must exceed the
// commission fee so the net deposit stays positive.
func (a *Account) Deposit(amount int) bool {
	p := PolicyFor(a.accountType)
	if amount <= 0 || amount > p.DepositLimit {
		a.lastMessage = fmt.Sprintf("Invalid deposit amount. Must be positive and no more than £%d.", p.DepositLimit)
		return false
	}
	net := float64(amount) - p.Commission
	if net <= 0 {
		a.lastMessage = "Deposit amount too low after commission deduction."
		return false
	}
	a.balance += net
	a.lastMessage = fmt.Sprintf("Deposited £%d (Commission: £%s). New balance: £%s", amount, money(p.Commission), money(a.balance))
	return true
}

// SetPassword overwrites the account password. Validation of the new
// password is the caller's responsibility.
func (a *Account) SetPassword(newPassword string) {
	a.password = newPassword
}

// Number returns the account number.
func (a *Account) Number() string { return a.number }

// Type returns the account type.
func (a *Account) Type() AccountType { return a.accountType }

// Balance returns the current balance.
func (a *Account) Balance() float64 { return a.balance }

// LastMessage returns the outcome message of the most recent deposit or
// withdrawal attempt.
func (a *Account) LastMessage() string { return a.lastMessage }

// matches reports whether both the number and the password equal the
// given values exactly.
func (a *Account) matches(number, password string) bool {
	return a.number == number && a.password == password
}

// money formats a currency value with two decimal places.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
