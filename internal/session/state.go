package session

// State is the workflow state of the keypad session machine.
type State int

const (
	// StateAccountNumber waits for the user to enter an account number.
	StateAccountNumber State = iota
	// StatePassword waits for the password of the entered account number.
	StatePassword
	// StateLoggedIn accepts transaction commands.
	StateLoggedIn
	// StateChangePassword waits for a new password for the active account.
	StateChangePassword
	// StateConfirmPassword waits for the new password to be re-entered.
	StateConfirmPassword
	// StateSelectAccountType waits for a 1/2/3 account type selection.
	StateSelectAccountType
	// StateNewAccountPassword waits for the new account's password.
	StateNewAccountPassword
	// StateConfirmNewPassword waits for the new account's password again.
	StateConfirmNewPassword
)

func (s State) String() string {
	switch s {
	case StateAccountNumber:
		return "account_number"
	case StatePassword:
		return "password"
	case StateLoggedIn:
		return "logged_in"
	case StateChangePassword:
		return "change_password"
	case StateConfirmPassword:
		return "confirm_password"
	case StateSelectAccountType:
		return "select_account_type"
	case StateNewAccountPassword:
		return "new_account_password"
	case StateConfirmNewPassword:
		return "confirm_new_password"
	default:
		return "unknown"
	}
}
