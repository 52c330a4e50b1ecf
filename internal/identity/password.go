package identity

import "unicode"

// ValidatePassword enforces the account password policy: at least 8
// characters with an upper-case letter, a lower-case letter, a digit, and a
// symbol. Returns the list of violated requirements.
func ValidatePassword(password string) []string {
	var messages []string

	if len(password) < 8 {
		messages = append(messages, "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		messages = append(messages, "password must contain an upper-case letter")
	}
	if !hasLower {
		messages = append(messages, "password must contain a lower-case letter")
	}
	if !hasDigit {
		messages = append(messages, "password must contain a digit")
	}
	if !hasSymbol {
		messages = append(messages, "password must contain a symbol")
	}

	return messages
}
