package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	CodeDataNotFound  ErrorCode = "DATA_NOT_FOUND"
	CodeNotFound      ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation      ErrorCode = "VALIDATION_ERROR"
	CodeMissingField    ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat   ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange      ErrorCode = "OUT_OF_RANGE"
	CodeInvalidCategory ErrorCode = "INVALID_CATEGORY"

	// Pipeline errors
	CodeGenerationFailure ErrorCode = "GENERATION_FAILURE"
	CodeOffDomainInput    ErrorCode = "OFF_DOMAIN_INPUT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field validation failures for a request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

// Helper constructors

func NewConfigurationError(message string) *DomainError {
	return NewError(CodeConfiguration, message, nil)
}

func NewDataNotFoundError(path string, cause error) *DomainError {
	return NewError(CodeDataNotFound, fmt.Sprintf("Veri dosyası bulunamadı: %s", path), cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidCategoryError(category string) *DomainError {
	return NewError(CodeInvalidCategory, fmt.Sprintf("Geçersiz kategori: %s", category), nil)
}

func NewGenerationFailureError(cause error) *DomainError {
	return NewError(CodeGenerationFailure, "Soru üretim servisi yanıt üretemedi", cause)
}

func NewOffDomainError() *DomainError {
	return NewError(CodeOffDomainInput, "Bu soru Türkçe dersiyle ilgili görünmüyor", nil)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "alan zorunludur"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Value: value, Message: "geçersiz biçim"}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Value:   fmt.Sprintf("%d", value),
		Message: fmt.Sprintf("%d ile %d arasında olmalıdır", min, max),
	}
}
