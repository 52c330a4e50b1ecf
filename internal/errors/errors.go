// Package errors provides custom error types for the InvestApp API.
// Service- and command-layer errors use AppError to ensure consistent
// responses that never leak internal details to clients.
package errors

import (
	"net/http"
	"strings"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// ValidationError aggregates rule failures for a single request.
// It always translates to a 400 response carrying the full message list.
type ValidationError struct {
	Messages []string `json:"messages"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
	ErrAccountNotActive   = &AppError{Code: "ACCOUNT_NOT_ACTIVE", Message: "Account is not active, check your email for the confirmation message", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrInvalidToken = &AppError{Code: "INVALID_TOKEN", Message: "Token is invalid or has expired", StatusCode: http.StatusBadRequest}
)

// Asset type errors.
var (
	ErrAssetTypeNotFound = &AppError{Code: "ASSET_TYPE_NOT_FOUND", Message: "Asset type not found", StatusCode: http.StatusNotFound}
)

// Asset errors.
var (
	ErrAssetNotFound = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
)

// Asset history errors.
var (
	ErrAssetHistoryNotFound = &AppError{Code: "ASSET_HISTORY_NOT_FOUND", Message: "Asset history not found", StatusCode: http.StatusNotFound}
)

// Portfolio errors.
var (
	ErrPortfolioNotFound = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Investment portfolio not found", StatusCode: http.StatusNotFound}
	ErrNotPortfolioOwner = &AppError{Code: "NOT_PORTFOLIO_OWNER", Message: "Investment portfolio does not belong to the current user", StatusCode: http.StatusBadRequest}
)

// Investment asset errors.
var (
	ErrInvestmentAssetNotFound = &AppError{Code: "INVESTMENT_ASSET_NOT_FOUND", Message: "Investment asset not found", StatusCode: http.StatusNotFound}
)
