// Package validation implements the rule chains run by command handlers
// before any mutation. Rules are plain functions evaluated in sequence;
// failures are collected into a single ValidationError so a response can
// carry every message at once.
package validation

import (
	apperrors "investapp/internal/errors"
)

// Rule checks one condition and returns a human-readable message when it
// fails, or "" when it passes. Rules that need the database perform normal
// repository calls.
type Rule func() (string, error)

// Run evaluates rules in order, collecting failures. It returns a
// *ValidationError when any rule failed, or the first infrastructure error
// encountered.
func Run(rules ...Rule) error {
	var messages []string
	for _, rule := range rules {
		msg, err := rule()
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	if len(messages) > 0 {
		return &apperrors.ValidationError{Messages: messages}
	}
	return nil
}

// Required fails when value is empty.
func Required(field, value string) Rule {
	return func() (string, error) {
		if value == "" {
			return field + " is required", nil
		}
		return "", nil
	}
}

// MaxLen fails when value exceeds max characters.
func MaxLen(field, value string, max int) Rule {
	return func() (string, error) {
		if len(value) > max {
			return field + " is too long", nil
		}
		return "", nil
	}
}

// Exists fails when the existence check reports the referenced row is absent.
func Exists(message string, check func() (bool, error)) Rule {
	return func() (string, error) {
		ok, err := check()
		if err != nil {
			return "", err
		}
		if !ok {
			return message, nil
		}
		return "", nil
	}
}
