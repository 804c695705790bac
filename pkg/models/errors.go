package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies user-visible failures. Every kind is recoverable by
// changing input; none is fatal to the process.
type ErrorKind string

const (
	// ErrDataFetch: provider unreachable or ticker unknown, after the
	// one-shot market-suffix retry.
	ErrDataFetch ErrorKind = "DATA_FETCH"
	// ErrMissingField: a required statement figure is absent or NaN.
	ErrMissingField ErrorKind = "MISSING_FIELD"
	// ErrInvalidAssumption: discount rate does not exceed the perpetual
	// growth rate, making the terminal value undefined.
	ErrInvalidAssumption ErrorKind = "INVALID_ASSUMPTION"
	// ErrDivisionHazard: shares outstanding or current price make a
	// denominator non-positive.
	ErrDivisionHazard ErrorKind = "DIVISION_HAZARD"
)

// DomainError carries a classification alongside the message so the API
// layer can map failures to statuses without string matching.
type DomainError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError constructs a classified error.
func NewDomainError(kind ErrorKind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapDomainError attaches a cause to a classified error.
func WrapDomainError(kind ErrorKind, err error, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified
// errors report as ErrDataFetch since that is the only external failure.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrDataFetch
}
