package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodePasswordMismatch ErrorCode = "PASSWORD_MISMATCH"
	ErrCodePasswordTooShort ErrorCode = "PASSWORD_TOO_SHORT"
	ErrCodeTokenExpired     ErrorCode = "TOKEN_EXPIRED"
	ErrCodeAlreadyActive    ErrorCode = "ACCOUNT_ALREADY_ACTIVE"
	ErrCodeAccountNotActive ErrorCode = "ACCOUNT_NOT_ACTIVE"

	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeRoleNotFound         ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeCompanyNotFound      ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeContractNotFound     ErrorCode = "CONTRACT_NOT_FOUND"
	ErrCodeApplicationNotFound  ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeGatewayNotFound      ErrorCode = "GATEWAY_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrCodeAPIKeyNotFound       ErrorCode = "API_KEY_NOT_FOUND"
	ErrCodeSettingNotFound      ErrorCode = "SETTING_NOT_FOUND"
	ErrCodeTokenNotFound        ErrorCode = "TOKEN_NOT_FOUND"

	ErrCodeEmailTaken       ErrorCode = "EMAIL_TAKEN"
	ErrCodeUsernameTaken    ErrorCode = "USERNAME_TAKEN"
	ErrCodeCompanyNameTaken ErrorCode = "COMPANY_NAME_TAKEN"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInsufficientRole   ErrorCode = "INSUFFICIENT_ROLE"
)

// AppError is the structured error surfaced at the API boundary. Clients
// branch on Code, never on message text.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy carrying the underlying error, so the shared
// sentinel values stay immutable.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrAccountNotActive   = NewUnauthorizedError("Your account is not active. Please activate it or contact an administrator.", ErrCodeAccountNotActive)
	ErrInvalidAuthToken   = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrInsufficientRole   = NewForbiddenError("Insufficient role for this operation", ErrCodeInsufficientRole)

	ErrEmailTaken        = NewConflictError("A user with this email already exists", ErrCodeEmailTaken)
	ErrUserIdentityTaken = NewConflictError("A user with this username or email already exists", ErrCodeUsernameTaken)
	ErrCompanyNameTaken  = NewConflictError("A company with this name already exists", ErrCodeCompanyNameTaken)

	ErrPasswordMismatch  = NewValidationError("Passwords do not match", ErrCodePasswordMismatch)
	ErrActivationExpired = NewValidationError("The activation token has expired", ErrCodeTokenExpired)
	ErrResetTokenExpired = NewValidationError("The reset token has expired", ErrCodeTokenExpired)
	ErrAlreadyActivated  = NewValidationError("The account is already activated", ErrCodeAlreadyActive)
	ErrResetNotActive    = NewValidationError("The account is not active", ErrCodeAccountNotActive)

	ErrUserNotFound            = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrDefaultRoleMissing      = NewNotFoundError("The default USER role does not exist", ErrCodeRoleNotFound)
	ErrActivationTokenNotFound = NewNotFoundError("Invalid activation token", ErrCodeTokenNotFound)
	ErrResetTokenNotFound      = NewNotFoundError("Invalid reset token", ErrCodeTokenNotFound)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
