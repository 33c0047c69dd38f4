package mapping

import "fmt"

// Error is a mapping store failure.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeRead             = "READ_ERROR"
	ErrCodeParse            = "PARSE_ERROR"
	ErrCodeWrite            = "WRITE_ERROR"
	ErrCodeInvalidZone      = "INVALID_ZONE"
	ErrCodeDuplicateContact = "DUPLICATE_CONTACT"
	ErrCodeZoneNotFound     = "ZONE_NOT_FOUND"
)

// NewError creates a new mapping error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
