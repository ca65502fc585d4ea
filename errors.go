package ics

import (
	"fmt"
)

// ValidationError reports a structural violation found while building a
// component: a required property was omitted, a forbidden one was supplied,
// or one half of a co-dependent pair is missing.  It is only ever returned
// from New* constructors; serialization operates on already-validated values
// and cannot fail this way.
type ValidationError struct {
	Component ComponentType
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Component, e.Reason)
}

func validationErrorf(component ComponentType, format string, args ...any) error {
	return &ValidationError{Component: component, Reason: fmt.Sprintf(format, args...)}
}

// RangeError reports a numeric or enumerated value outside the domain
// RFC 5545 assigns to it, such as a PRIORITY of 10 or a negative recurrence
// COUNT.
type RangeError struct {
	Field  string
	Value  any
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v out of range: %s", e.Field, e.Value, e.Reason)
}

func rangeError(field string, value any, reason string) error {
	return &RangeError{Field: field, Value: value, Reason: reason}
}

// FormatError reports a raw input string that could not be parsed into the
// structured value a typed wrapper requires, such as a malformed URI or
// language tag.
type FormatError struct {
	Field string
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q: %v", e.Field, e.Input, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
