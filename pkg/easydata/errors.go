// Package easydata provides custom error types for better error handling and reporting.
package easydata

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMaxDepth is reported when macros nest deeper than Config.MaxRenderDepth.
	ErrMaxDepth = errors.New("maximum macro nesting depth exceeded")
	// ErrDerefLimit is reported when ${...} substitution does not settle within
	// Config.MaxDerefIterations rounds.
	ErrDerefLimit = errors.New("inner dereference did not settle")
)

// TokenizationError reports input which cannot be split into tokens at all.
type TokenizationError struct {
	Message string
}

func (e *TokenizationError) Error() string {
	return fmt.Sprintf("tokenization error: %s", e.Message)
}

// NewTokenizationError creates a new tokenization error
func NewTokenizationError(format string, args ...interface{}) error {
	return &TokenizationError{Message: fmt.Sprintf(format, args...)}
}

// UnrecognizedTagError reports a tag whose content matches no registered syntax.
type UnrecognizedTagError struct {
	Token Token
	// Suggestion names the closest known tag keyword, if any.
	Suggestion string
}

func (e *UnrecognizedTagError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unrecognized token %s (did you mean %s?)", e.Token, e.Suggestion)
	}
	return fmt.Sprintf("unrecognized token %s", e.Token)
}

// UnterminatedTagError reports input ending while a complex tag is still open.
type UnterminatedTagError struct {
	Start       Token
	Terminators []string
}

func (e *UnterminatedTagError) Error() string {
	return fmt.Sprintf("unexpected end of input, pending %s, missing [%s]",
		e.Start, strings.Join(e.Terminators, ", "))
}

// ResolutionMiss reports a path segment which could not be resolved.
type ResolutionMiss struct {
	// Remaining is the part of the path not resolved.
	Remaining string
	// Resolved is the part of the path resolved successfully.
	Resolved string
	// Reason describes the value found at Resolved.
	Reason string
}

func (e *ResolutionMiss) Error() string {
	resolved := e.Resolved
	if resolved == "" {
		resolved = "(root)"
	}
	return fmt.Sprintf("cannot resolve '%s' because value of '%s' is %s", e.Remaining, resolved, e.Reason)
}

// TypeMismatchError reports a scalar where a container was required or vice versa.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s but %s is of type %s", e.Expected, e.Path, e.Actual)
}

// NewTypeMismatchError creates a new type mismatch error
func NewTypeMismatchError(path, expected string, value interface{}) error {
	return &TypeMismatchError{
		Path:     path,
		Expected: expected,
		Actual:   fmt.Sprintf("%T", value),
	}
}

// LocatedError carries the tags an error passed through while unwinding,
// innermost first.
type LocatedError struct {
	Err       error
	Locations []Token
}

func (e *LocatedError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if len(e.Locations) > 0 {
		b.WriteString("\n   when resolving tag")
		for _, t := range e.Locations {
			b.WriteString("\n   ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

func (e *LocatedError) Unwrap() error {
	return e.Err
}

// AddLocation appends an enclosing tag to the trail.
func (e *LocatedError) AddLocation(t Token) {
	e.Locations = append(e.Locations, t)
}

// withLocation returns err with start appended to its location trail, creating
// the trail if err does not carry one yet.
func withLocation(err error, start Token) error {
	if err == nil {
		return nil
	}
	var located *LocatedError
	if errors.As(err, &located) {
		located.AddLocation(start)
		return err
	}
	return &LocatedError{Err: err, Locations: []Token{start}}
}

// Locations returns the location trail attached to err, innermost first.
func Locations(err error) []Token {
	var located *LocatedError
	if errors.As(err, &located) {
		return located.Locations
	}
	return nil
}

// IsTokenizationError checks if an error is a tokenization error
func IsTokenizationError(err error) bool {
	var target *TokenizationError
	return errors.As(err, &target)
}

// IsUnrecognizedTagError checks if an error is an unrecognized tag error
func IsUnrecognizedTagError(err error) bool {
	var target *UnrecognizedTagError
	return errors.As(err, &target)
}

// IsUnterminatedTagError checks if an error is an unterminated tag error
func IsUnterminatedTagError(err error) bool {
	var target *UnterminatedTagError
	return errors.As(err, &target)
}

// IsResolutionMiss checks if an error is a resolution miss
func IsResolutionMiss(err error) bool {
	var target *ResolutionMiss
	return errors.As(err, &target)
}

// IsTypeMismatchError checks if an error is a type mismatch error
func IsTypeMismatchError(err error) bool {
	var target *TypeMismatchError
	return errors.As(err, &target)
}
