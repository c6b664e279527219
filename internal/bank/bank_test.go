package bank

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

type mockAccountSink struct {
	RecordAccountFunc func(ctx context.Context, rec AccountRecord) error
}

func (m *mockAccountSink) RecordAccount(ctx context.Context, rec AccountRecord) error {
	return m.RecordAccountFunc(ctx, rec)
}

type mockTransactionSink struct {
	RecordTransactionFunc func(ctx context.Context, rec TransactionRecord) error
}

func (m *mockTransactionSink) RecordTransaction(ctx context.Context, rec TransactionRecord) error {
	return m.RecordTransactionFunc(ctx, rec)
}

func newTestBank(t *testing.T) *Bank {
	t.Helper()
	return New(10, zap.NewNop())
}

func TestLogin_ExactStringMatch(t *testing.T) {
	b := newTestBank(t)
	if err := b.Add(NewAccount("00123", "0042", Student, 0)); err != nil {
		t.Fatal(err)
	}

	if b.Login("123", "0042") {
		t.Error("login with \"123\" should fail for account \"00123\"")
	}
	if b.Login("000123", "0042") {
		t.Error("login with \"000123\" should fail for account \"00123\"")
	}
	if b.Login("00123", "42") {
		t.Error("login with password \"42\" should fail for password \"0042\"")
	}
	if !b.Login("00123", "0042") {
		t.Error("exact match should log in")
	}
	if !b.LoggedIn() {
		t.Error("expected an active session")
	}
}

func TestLogin_ReplacesCurrentSession(t *testing.T) {
	b := newTestBank(t)
	_ = b.Add(NewAccount("11111", "1111", Gold, 50))
	_ = b.Add(NewAccount("22222", "2222", Gold, 0))

	if !b.Login("11111", "1111") {
		t.Fatal("first login failed")
	}
	// A failed login logs out the previous session.
	if b.Login("22222", "wrong") {
		t.Fatal("login should have failed")
	}
	if b.LoggedIn() {
		t.Error("failed login should clear the active session")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	b := newTestBank(t)
	_ = b.Add(NewAccount("11111", "1111", Gold, 0))
	if !b.Login("11111", "1111") {
		t.Fatal("login failed")
	}

	b.Logout()
	if b.LoggedIn() {
		t.Fatal("logout should clear the session")
	}
	b.Logout() // second call is a no-op
	if b.LoggedIn() {
		t.Fatal("second logout changed state")
	}
}

func TestAdd_DuplicateAndCapacity(t *testing.T) {
	b := newTestBank(t)
	if err := b.Add(NewAccount("10000", "1234", Student, 0)); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(NewAccount("10000", "5678", Gold, 0)); !errors.Is(err, ErrDuplicateAccount) {
		t.Errorf("duplicate add: err = %v; want ErrDuplicateAccount", err)
	}

	for i := 1; i < 10; i++ {
		if err := b.Add(NewAccount(fmt.Sprintf("%05d", 10000+i), "1234", Student, 0)); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if got := b.Count(); got != 10 {
		t.Fatalf("count = %d; want 10", got)
	}
	if err := b.Add(NewAccount("99999", "1234", Student, 0)); !errors.Is(err, ErrBankFull) {
		t.Errorf("over-capacity add: err = %v; want ErrBankFull", err)
	}
	if got := b.Count(); got != 10 {
		t.Errorf("failed add changed count: %d", got)
	}
}

func TestDepositWithdraw_RequireSession(t *testing.T) {
	b := newTestBank(t)
	_ = b.Add(NewAccount("11111", "1111", Gold, 100))

	if b.Deposit(10) {
		t.Error("deposit without a session should fail")
	}
	if b.Withdraw(10) {
		t.Error("withdraw without a session should fail")
	}
	if _, ok := b.Balance(); ok {
		t.Error("balance without a session should report no session")
	}
	if msg := b.LastMessage(); msg != "" {
		t.Errorf("last message without a session = %q; want empty", msg)
	}
}

func TestChangePassword_GatedOnActiveAccount(t *testing.T) {
	b := newTestBank(t)
	_ = b.Add(NewAccount("11111", "1111", Gold, 0))

	if b.ChangePassword("11111", "9999") {
		t.Error("password change without a session should fail")
	}

	if !b.Login("11111", "1111") {
		t.Fatal("login failed")
	}
	if b.ChangePassword("22222", "9999") {
		t.Error("password change for a different number should fail")
	}
	if !b.ChangePassword("11111", "9999") {
		t.Fatal("password change for the active account should succeed")
	}

	b.Logout()
	if b.Login("11111", "1111") {
		t.Error("old password should no longer work")
	}
	if !b.Login("11111", "9999") {
		t.Error("new password should work")
	}
}

func TestCreateAccount(t *testing.T) {
	b := newTestBank(t)

	var recorded []AccountRecord
	b.AttachSinks(&mockAccountSink{
		RecordAccountFunc: func(ctx context.Context, rec AccountRecord) error {
			recorded = append(recorded, rec)
			return nil
		},
	}, nil)

	number, err := b.CreateAccount(Gold, "1234")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if len(number) != 5 {
		t.Errorf("account number %q should have 5 digits", number)
	}
	if !b.AccountExists(number) {
		t.Error("created account should exist in the directory")
	}
	if !b.Login(number, "1234") {
		t.Error("login to the new account should succeed")
	}
	if bal, ok := b.Balance(); !ok || bal != 0 {
		t.Errorf("new account balance = %v, %v; want 0, true", bal, ok)
	}

	if len(recorded) != 1 {
		t.Fatalf("recorded %d credential records; want 1", len(recorded))
	}
	if recorded[0].Number != number || recorded[0].Password != "1234" || recorded[0].Type != Gold {
		t.Errorf("unexpected credential record: %+v", recorded[0])
	}
}

func TestCreateAccount_SinkFailureIsIgnored(t *testing.T) {
	b := newTestBank(t)
	b.AttachSinks(&mockAccountSink{
		RecordAccountFunc: func(ctx context.Context, rec AccountRecord) error {
			return errors.New("store down")
		},
	}, nil)

	number, err := b.CreateAccount(Student, "4321")
	if err != nil {
		t.Fatalf("sink failure must not fail account creation: %v", err)
	}
	if !b.AccountExists(number) {
		t.Error("account should exist despite the sink failure")
	}
}

func TestCreateAccount_FullBank(t *testing.T) {
	b := New(1, zap.NewNop())
	if _, err := b.CreateAccount(Student, "1234"); err != nil {
		t.Fatalf("first creation: %v", err)
	}
	if _, err := b.CreateAccount(Student, "1234"); !errors.Is(err, ErrBankFull) {
		t.Errorf("creation in a full bank: err = %v; want ErrBankFull", err)
	}
}

func TestTransactions_EmittedToSink(t *testing.T) {
	b := newTestBank(t)
	_ = b.Add(NewAccount("11111", "1111", Student, 100))

	var recorded []TransactionRecord
	b.AttachSinks(nil, &mockTransactionSink{
		RecordTransactionFunc: func(ctx context.Context, rec TransactionRecord) error {
			recorded = append(recorded, rec)
			return nil
		},
	})

	if !b.Login("11111", "1111") {
		t.Fatal("login failed")
	}
	if !b.Deposit(50) {
		t.Fatal("deposit failed")
	}
	if !b.Withdraw(30) {
		t.Fatal("withdraw failed")
	}
	// Failed operations emit nothing.
	if b.Withdraw(100000) {
		t.Fatal("oversized withdrawal should fail")
	}

	if len(recorded) != 2 {
		t.Fatalf("recorded %d audit lines; want 2", len(recorded))
	}
	if recorded[0].Type != "Deposit" || recorded[0].Amount != 50 || recorded[0].Balance != 150 {
		t.Errorf("unexpected deposit record: %+v", recorded[0])
	}
	if recorded[1].Type != "Withdraw" || recorded[1].Amount != 30 || recorded[1].Balance != 120 {
		t.Errorf("unexpected withdraw record: %+v", recorded[1])
	}
}

func TestValidPasswordLength(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"123", false},
		{"1234", true},
		{"12345", true},
		{"123456", false},
		{"", false},
		{"0", false},
	}
	for _, tt := range tests {
		if got := ValidPasswordLength(tt.password); got != tt.want {
			t.Errorf("ValidPasswordLength(%q) = %v; want %v", tt.password, got, tt.want)
		}
	}
}
