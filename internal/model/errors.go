package model

import (
	"context"
	"errors"
	"os"
)

var (
	// ErrInvalidInput is returned for input that is not contract text
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is returned when the static rule tables are inconsistent
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupportedFormat is returned by the text loader for formats it cannot read
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// ErrorCode is a short error class used in logs and batch output
type ErrorCode string

const (
	CodeUnknown       ErrorCode = "unknown"
	CodeInvalidInput  ErrorCode = "invalid_input"
	CodeConfiguration ErrorCode = "configuration"
	CodeFormat        ErrorCode = "unsupported_format"
	CodeCancel        ErrorCode = "cancel"
	CodeIO            ErrorCode = "io"
)

// ClassifyError maps an error to its code using sentinel errors only
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	if errors.Is(err, ErrConfiguration) {
		return CodeConfiguration
	}
	if errors.Is(err, ErrInvalidInput) {
		return CodeInvalidInput
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		return CodeFormat
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
