package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDatabase         = errors.New("database error")
	ErrValidation       = errors.New("validation failed")
	ErrEmptyDocument    = errors.New("empty document: no text items")
	ErrExtractorFailure = errors.New("extractor failed")
)

// NewAppError builds an AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ExtractorError records one failed extraction pass. It matches ErrExtractorFailure with errors.Is.
type ExtractorError struct {
	Extractor string
	Cause     error
}

func (e *ExtractorError) Error() string {
	return fmt.Sprintf("%s extractor failed: %v", e.Extractor, e.Cause)
}

func (e *ExtractorError) Unwrap() error { return e.Cause }

func (e *ExtractorError) Is(target error) bool { return target == ErrExtractorFailure }

// NewExtractorError wraps cause for the named extractor.
func NewExtractorError(extractor string, cause error) *ExtractorError {
	return &ExtractorError{Extractor: extractor, Cause: cause}
}
