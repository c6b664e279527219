package bank

import "errors"

// Domain errors surfaced by the directory. Transaction-level failures
// (bad amount, limit or overdraft violations) are reported through the
// account's last message instead, since the keypad front end renders
// them verbatim.
var (
	// ErrDuplicateAccount means an account with the same number already exists.
	ErrDuplicateAccount = errors.New("account number already exists")

	// ErrBankFull means the directory reached its fixed capacity.
	ErrBankFull = errors.New("bank is at capacity")

	// ErrNumberExhausted means no unused account number could be generated.
	ErrNumberExhausted = errors.New("could not generate an unused account number")
)
