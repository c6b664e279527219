package bank

import "fmt"

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 4
	// MaxPasswordLength is the maximum accepted password length.
	MaxPasswordLength = 5
)

// ValidPasswordLength reports whether the password satisfies the shared
// length policy. The same rule applies to password changes and to
// passwords chosen for newly created accounts.
func ValidPasswordLength(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordLength
}

// PasswordLengthMessage is the user-visible explanation of the length policy.
func PasswordLengthMessage() string {
	return fmt.Sprintf("Password must be %d to %d digits", MinPasswordLength, MaxPasswordLength)
}
