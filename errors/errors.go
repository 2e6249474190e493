// Package errors provides error handling for the chart engine.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrLookupMiss) {
//	    // handle missing table entry
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Sentinel errors for the three failure classes of chart computation.
// Every error a pipeline stage returns is or wraps one of these; all three
// abort the computation. Use errors.Is() for type-safe checking and
// errors.Wrap() to add context while preserving the class.
var (
	// ErrInvalidInput indicates a birth input field outside its documented
	// domain (date range, hour, gender).
	ErrInvalidInput = New("invalid input")

	// ErrLookupMiss indicates a reference-table access that found no entry
	// for a key the pipeline derived.
	ErrLookupMiss = New("lookup miss")

	// ErrInvariant indicates a computed value that violates a structural
	// rule of the chart; it means a defect, not bad input.
	ErrInvariant = New("invariant violation")
)

// IsInvalidInput checks if an error is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// IsLookupMiss checks if an error is or wraps ErrLookupMiss.
func IsLookupMiss(err error) bool {
	return err != nil && Is(err, ErrLookupMiss)
}

// IsInvariant checks if an error is or wraps ErrInvariant.
func IsInvariant(err error) bool {
	return err != nil && Is(err, ErrInvariant)
}

// NewInvalidInputf creates an invalid-input error with a formatted message.
func NewInvalidInputf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

// NewLookupMissf creates a lookup-miss error with a formatted message.
func NewLookupMissf(format string, args ...interface{}) error {
	return Wrap(ErrLookupMiss, Newf(format, args...).Error())
}

// NewInvariantf creates an invariant-violation error with a formatted message.
func NewInvariantf(format string, args ...interface{}) error {
	return Wrap(ErrInvariant, Newf(format, args...).Error())
}
