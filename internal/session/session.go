// Package session implements the keypad-driven session state machine. It
// interprets one key event at a time against the current state, aggregates
// digit input into a bounded buffer, drives the bank directory, and
// recomputes the two display lines after every transition.
package session

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/atmlab/teller/internal/bank"
)

// Key labels accepted by Press, besides the digits "0".."9".
const (
	KeyClear          = "CLR"
	KeyEnter          = "Ent"
	KeyWithdraw       = "withdraw"
	KeyDeposit        = "deposit"
	KeyBalance        = "balance"
	KeyFinish         = "finish"
	KeyChangePassword = "changePassword"
	KeyNewAccount     = "newAccount"
)

// maxBufferLen caps the digit buffer; further digit presses are ignored.
const maxBufferLen = 5

const (
	promptAccountNumber = "Enter your account number\nFollowed by \"Ent\""
	promptPassword      = "Now enter your password\nFollowed by \"Ent\""
	promptLoggedIn      = "Accepted\nNow enter the transaction you require"
	promptNewPassword   = "Enter your new password\nFollowed by \"Ent\""
	promptConfirm       = "Confirm your new password\nFollowed by \"Ent\""
	promptAccountType   = "Select account type:\n1. Student 2. Gold 3. Platinum"
	promptFinish        = "Welcome: Enter your account number"
)

// Directory is the bank surface the session machine drives.
type Directory interface {
	Login(number, password string) bool
	Logout()
	Deposit(amount int) bool
	Withdraw(amount int) bool
	Balance() (float64, bool)
	LastMessage() string
	ChangePassword(number, newPassword string) bool
	CreateAccount(t bank.AccountType, password string) (string, error)
}

// Session holds all mutable state of one keypad session. A new machine
// starts waiting for an account number; there is no terminal state, a
// finished session simply returns to the start.
//
// Session is not safe for concurrent use: callers must deliver one key
// event at a time.
type Session struct {
	bank Directory
	log  *zap.Logger

	state  State
	buffer string // up to 5 digit characters, leading zeros preserved

	accountNumber   string // candidate number during login, active number after
	pendingPassword string // new password awaiting confirmation
	pendingType     bank.AccountType

	hasViewedBalance bool

	display1 string
	display2 string

	// refresh, when set, is invoked after every transition so an
	// external view can re-render the display lines.
	refresh func()
}

// New constructs a session machine over the given directory, initialised
// with a welcome message.
func New(d Directory, log *zap.Logger) *Session {
	s := &Session{bank: d, log: log}
	s.initialise("Welcome to the ATM")
	return s
}

// SetRefresh registers a callback signalled after every transition.
func (s *Session) SetRefresh(fn func()) { s.refresh = fn }

// State returns the current workflow state.
func (s *Session) State() State { return s.state }

// Display1 returns the title line, typically the echoed digit buffer.
func (s *Session) Display1() string { return s.display1 }

// Display2 returns the detail line with prompts and outcomes.
func (s *Session) Display2() string { return s.display2 }

// Press feeds one key event into the machine. Digit labels accumulate in
// the buffer, "CLR" and "Ent" edit and submit it, and the named command
// labels request transactions. Anything else resets the machine with an
// invalid-command message.
func (s *Session) Press(label string) {
	s.log.Debug("key pressed", zap.String("key", label), zap.Stringer("state", s.state))
	switch label {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		s.pressDigit(label)
	case KeyClear:
		s.pressClear()
	case KeyEnter:
		s.pressEnter()
	case KeyWithdraw:
		s.pressWithdraw()
	case KeyDeposit:
		s.pressDeposit()
	case KeyBalance:
		s.pressBalance()
	case KeyFinish:
		s.pressFinish()
	case KeyChangePassword:
		s.pressChangePassword()
	case KeyNewAccount:
		s.pressNewAccount()
	default:
		s.log.Debug("unknown key", zap.String("key", label))
		s.initialise("Invalid command")
	}
	if s.refresh != nil {
		s.refresh()
	}
}

// initialise resets the machine to the start state with the given title
// message, clearing the buffer and every pending field.
func (s *Session) initialise(message string) {
	s.setState(StateAccountNumber)
	s.buffer = ""
	s.accountNumber = ""
	s.pendingPassword = ""
	s.pendingType = ""
	s.hasViewedBalance = false
	s.display1 = message
	s.display2 = promptAccountNumber
}

func (s *Session) setState(next State) {
	if s.state != next {
		s.log.Debug("state change", zap.Stringer("from", s.state), zap.Stringer("to", next))
		s.state = next
	}
}

// entry returns the buffer contents, or "0" when the buffer is empty.
// An empty submission is deliberately treated as the digit zero rather
// than rejected.
func (s *Session) entry() string {
	if s.buffer == "" {
		return "0"
	}
	return s.buffer
}

// amount derives the numeric value of the buffer; any parse failure
// counts as zero.
func (s *Session) amount() int {
	n, err := strconv.Atoi(s.buffer)
	if err != nil {
		return 0
	}
	return n
}

// clearEntry empties the buffer and the echo line.
func (s *Session) clearEntry() {
	s.buffer = ""
	s.display1 = ""
}

func (s *Session) pressDigit(label string) {
	if len(s.buffer) < maxBufferLen {
		s.buffer += label
	}
	s.display1 = s.buffer
}

// pressClear empties the buffer, except during the password-change flow
// where it cancels the whole flow and returns to the logged-in state.
func (s *Session) pressClear() {
	switch s.state {
	case StateChangePassword, StateConfirmPassword:
		s.pendingPassword = ""
		s.clearEntry()
		s.setState(StateLoggedIn)
		s.display2 = "Password change cancelled"
	default:
		s.clearEntry()
	}
}

func (s *Session) pressEnter() {
	switch s.state {
	case StateAccountNumber:
		s.accountNumber = s.entry()
		s.clearEntry()
		s.setState(StatePassword)
		s.display2 = promptPassword

	case StatePassword:
		password := s.entry()
		s.clearEntry()
		if s.bank.Login(s.accountNumber, password) {
			s.setState(StateLoggedIn)
			s.display2 = promptLoggedIn
		} else {
			s.initialise("Unknown account/password")
		}

	case StateChangePassword:
		candidate := s.entry()
		s.clearEntry()
		if !bank.ValidPasswordLength(candidate) {
			s.display2 = bank.PasswordLengthMessage()
			return
		}
		s.pendingPassword = candidate
		s.setState(StateConfirmPassword)
		s.display2 = promptConfirm

	case StateConfirmPassword:
		candidate := s.entry()
		s.clearEntry()
		if candidate != s.pendingPassword {
			s.pendingPassword = ""
			s.setState(StateChangePassword)
			s.display2 = "Passwords do not match\n" + promptNewPassword
			return
		}
		changed := s.bank.ChangePassword(s.accountNumber, candidate)
		s.pendingPassword = ""
		s.setState(StateLoggedIn)
		if changed {
			s.display2 = "Password changed successfully"
		} else {
			s.display2 = "Password change failed"
		}

	case StateSelectAccountType:
		choice := s.entry()
		s.clearEntry()
		t, ok := accountTypeForChoice(choice)
		if !ok {
			s.display2 = "Invalid choice\n" + promptAccountType
			return
		}
		s.pendingType = t
		s.setState(StateNewAccountPassword)
		s.display2 = "Enter a password for the new account\nFollowed by \"Ent\""

	case StateNewAccountPassword:
		candidate := s.entry()
		s.clearEntry()
		if !bank.ValidPasswordLength(candidate) {
			s.display2 = bank.PasswordLengthMessage()
			return
		}
		s.pendingPassword = candidate
		s.setState(StateConfirmNewPassword)
		s.display2 = promptConfirm

	case StateConfirmNewPassword:
		candidate := s.entry()
		s.clearEntry()
		if candidate != s.pendingPassword {
			s.pendingPassword = ""
			s.setState(StateNewAccountPassword)
			s.display2 = "Passwords do not match\n" + promptNewPassword
			return
		}
		number, err := s.bank.CreateAccount(s.pendingType, candidate)
		if err != nil {
			s.log.Warn("account creation failed", zap.Error(err))
			s.initialise("Account creation failed")
			return
		}
		s.initialise(fmt.Sprintf("Account created: your account number is %s", number))

	case StateLoggedIn:
		// Extra Enter presses while logged in do nothing.
	}
}

// accountTypeForChoice maps the 1/2/3 menu selection to an account type.
func accountTypeForChoice(choice string) (bank.AccountType, bool) {
	switch choice {
	case "1":
		return bank.Student, true
	case "2":
		return bank.Gold, true
	case "3":
		return bank.Platinum, true
	default:
		return "", false
	}
}

// guardCommand handles a transaction command arriving outside the
// logged-in state. It returns true when the command must not proceed.
func (s *Session) guardCommand() bool {
	switch s.state {
	case StateLoggedIn:
		return false
	case StateChangePassword, StateConfirmPassword:
		s.display2 = "Complete password change or press CLR to cancel"
		return true
	default:
		s.initialise("You are not logged in")
		return true
	}
}

func (s *Session) pressWithdraw() {
	if s.guardCommand() {
		return
	}
	if !s.hasViewedBalance {
		s.clearEntry()
		s.display2 = "Please check your balance first"
		return
	}
	s.bank.Withdraw(s.amount())
	s.display2 = s.bank.LastMessage()
	s.clearEntry()
}

func (s *Session) pressDeposit() {
	if s.guardCommand() {
		return
	}
	s.bank.Deposit(s.amount())
	s.display2 = s.bank.LastMessage()
	s.clearEntry()
}

func (s *Session) pressBalance() {
	if s.guardCommand() {
		return
	}
	s.clearEntry()
	balance, ok := s.bank.Balance()
	if !ok {
		s.initialise("You are not logged in")
		return
	}
	s.hasViewedBalance = true
	s.display2 = fmt.Sprintf("Your balance is: £%.2f", balance)
}

func (s *Session) pressFinish() {
	if s.guardCommand() {
		return
	}
	s.bank.Logout()
	s.setState(StateAccountNumber)
	s.buffer = ""
	s.accountNumber = ""
	s.hasViewedBalance = false
	s.display1 = ""
	s.display2 = promptFinish
}

func (s *Session) pressChangePassword() {
	if s.guardCommand() {
		return
	}
	s.clearEntry()
	s.setState(StateChangePassword)
	s.display2 = promptNewPassword
}

func (s *Session) pressNewAccount() {
	if s.guardCommand() {
		return
	}
	s.clearEntry()
	s.setState(StateSelectAccountType)
	s.display2 = promptAccountType
}
