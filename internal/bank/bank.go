package bank

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// numberAttempts bounds the random draws when generating a fresh account
// number. The number space (90000) dwarfs the directory capacity, so the
// bound is only a guard against a misconfigured full directory.
const numberAttempts = 1000

// AccountRecord is the credential record emitted to the account sink when
// a new account is created.
type AccountRecord struct {
	Number   string
	Password string
	Type     AccountType
	Balance  float64
}

// TransactionRecord is the audit line emitted to the transaction sink
// after every successful deposit or withdrawal.
type TransactionRecord struct {
	Account string
	Type    string
	Amount  float64
	Balance float64
}

// AccountSink receives credential records for durable storage. The bank
// never reads them back; login consults only the in-memory directory.
type AccountSink interface {
	RecordAccount(ctx context.Context, rec AccountRecord) error
}

// TransactionSink receives audit lines. Write-only and fire-and-forget:
// sink failures are logged and otherwise ignored.
type TransactionSink interface {
	RecordTransaction(ctx context.Context, rec TransactionRecord) error
}

// Bank is the account directory: it owns a bounded collection of accounts
// and tracks the single logged-in account. The active account is kept as
// an index into the collection so the directory remains the sole owner of
// account lifetime.
//
// The bank is not safe for concurrent use; the session machine drives it
// from a single event-processing path.
type Bank struct {
	log      *zap.Logger
	capacity int
	accounts []*Account
	current  int // index of the logged-in account, -1 when none

	accountSink AccountSink
	txSink      TransactionSink
}

// New creates an empty bank with the given capacity.
func New(capacity int, log *zap.Logger) *Bank {
	return &Bank{
		log:      log,
		capacity: capacity,
		current:  -1,
	}
}

// AttachSinks wires the optional persistence and audit sinks. Either may
// be nil, in which case the corresponding records are not emitted.
func (b *Bank) AttachSinks(accounts AccountSink, transactions TransactionSink) {
	b.accountSink = accounts
	b.txSink = transactions
}

// Count returns the number of accounts in the directory.
func (b *Bank) Count() int {
	return len(b.accounts)
}

// AccountExists reports whether an account with the given number is in
// the directory.
func (b *Bank) AccountExists(number string) bool {
	for _, a := range b.accounts {
		if a.number == number {
			return true
		}
	}
	return false
}

// Add inserts an account into the directory. It fails if the account
// number is already present or the directory is at capacity.
func (b *Bank) Add(a *Account) error {
	if b.AccountExists(a.number) {
		return ErrDuplicateAccount
	}
	if len(b.accounts) >= b.capacity {
		b.log.Warn("cannot add account, bank is full", zap.Int("capacity", b.capacity))
		return ErrBankFull
	}
	b.accounts = append(b.accounts, a)
	b.log.Debug("added account", zap.String("number", a.number), zap.String("type", string(a.accountType)))
	return nil
}

// Login logs out any current session, then scans for an account whose
// number and password both match the given strings exactly. Matching is
// zero- and case-sensitive: "00123" is a different identity from "123".
func (b *Bank) Login(number, password string) bool {
	b.Logout()
	for i, a := range b.accounts {
		if a.matches(number, password) {
			b.current = i
			b.log.Info("login successful", zap.String("number", number))
			return true
		}
	}
	b.log.Info("login failed", zap.String("number", number))
	return false
}

// Logout clears the active session. Calling it with no session is a no-op.
func (b *Bank) Logout() {
	if b.current >= 0 {
		b.log.Debug("logout", zap.String("number", b.accounts[b.current].number))
		b.current = -1
	}
}

// LoggedIn reports whether a session is active.
func (b *Bank) LoggedIn() bool {
	return b.current >= 0
}

// Deposit delegates to the logged-in account; it fails without side
// effect when no session is active.
func (b *Bank) Deposit(amount int) bool {
	if !b.LoggedIn() {
		return false
	}
	a := b.accounts[b.current]
	if !a.Deposit(amount) {
		return false
	}
	b.emitTransaction(a, "Deposit", float64(amount))
	return true
}

// Withdraw delegates to the logged-in account; it fails without side
// effect when no session is active.
func (b *Bank) Withdraw(amount int) bool {
	if !b.LoggedIn() {
		return false
	}
	a := b.accounts[b.current]
	if !a.Withdraw(amount) {
		return false
	}
	b.emitTransaction(a, "Withdraw", float64(amount))
	return true
}

// Balance returns the logged-in account's balance. The second return
// value is false when no session is active.
func (b *Bank) Balance() (float64, bool) {
	if !b.LoggedIn() {
		return 0, false
	}
	return b.accounts[b.current].balance, true
}

// LastMessage returns the logged-in account's most recent outcome
// message, or the empty string when no session is active.
func (b *Bank) LastMessage() string {
	if !b.LoggedIn() {
		return ""
	}
	return b.accounts[b.current].lastMessage
}

// ChangePassword sets a new password on the logged-in account. It
// succeeds only when a session is active and number matches the active
// account's number.
func (b *Bank) ChangePassword(number, newPassword string) bool {
	if !b.LoggedIn() || b.accounts[b.current].number != number {
		b.log.Warn("password change refused", zap.String("number", number))
		return false
	}
	b.accounts[b.current].SetPassword(newPassword)
	b.log.Info("password changed", zap.String("number", number))
	return true
}

// CreateAccount generates an unused 5-digit account number, constructs a
// zero-balance account of the given type and adds it to the directory.
// On success it returns the new account number and emits a credential
// record to the account sink.
func (b *Bank) CreateAccount(t AccountType, password string) (string, error) {
	number, err := b.generateNumber()
	if err != nil {
		return "", err
	}
	a := NewAccount(number, password, t, 0)
	if err := b.Add(a); err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	b.log.Info("created account", zap.String("number", number), zap.String("type", string(t)))
	if b.accountSink != nil {
		rec := AccountRecord{Number: number, Password: password, Type: t, Balance: a.balance}
		if err := b.accountSink.RecordAccount(context.Background(), rec); err != nil {
			b.log.Error("failed to record account", zap.Error(err))
		}
	}
	return number, nil
}

// generateNumber draws uniform random 5-digit numbers until one is unused.
func (b *Bank) generateNumber() (string, error) {
	for i := 0; i < numberAttempts; i++ {
		number := fmt.Sprintf("%d", 10000+rand.IntN(90000))
		if !b.AccountExists(number) {
			return number, nil
		}
	}
	return "", ErrNumberExhausted
}

// emitTransaction sends an audit line to the transaction sink, if one is
// attached. Failures are logged and swallowed.
func (b *Bank) emitTransaction(a *Account, kind string, amount float64) {
	if b.txSink == nil {
		return
	}
	rec := TransactionRecord{Account: a.number, Type: kind, Amount: amount, Balance: a.balance}
	if err := b.txSink.RecordTransaction(context.Background(), rec); err != nil {
		b.log.Error("failed to record transaction", zap.Error(err))
	}
}
