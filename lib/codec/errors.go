package codec

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/token"
	"strings"
)

var (
	// ErrMalformedInput matches every *MalformedInputError
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnknownField matches every *UnknownFieldError
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingField matches every *MissingFieldError
	ErrMissingField = errors.New("missing required field")
	// ErrRecursionDepth matches every *RecursionDepthError
	ErrRecursionDepth = errors.New("pod chain too deep")
)

// MalformedInputError reports a token that does not fit the schema: a wrong token kind,
// a value that cannot be converted, a duplicate field or a failure of the token stream itself.
type MalformedInputError struct {
	// Expected is the token kind the codec waited for, Invalid if not applicable
	Expected token.Kind
	// Actual is the kind of the current token
	Actual token.Kind
	// Field is the current field name
	Field string
	// Reason describes the problem when it is not a plain token mismatch
	Reason   string
	Location token.Location
	// Err is the underlying error, e.g. a syntax error of the token stream
	Err error
}

func (e *MalformedInputError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed input: ")
	if e.Expected != token.Invalid {
		fmt.Fprintf(&sb, "expected token %s, got %s", e.Expected, e.Actual)
	} else {
		sb.WriteString(e.Reason)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, " (current field name '%s')", e.Field)
	}
	fmt.Fprintf(&sb, " at %s", e.Location)
	if e.Expected != token.Invalid && e.Reason != "" {
		fmt.Fprintf(&sb, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

// UnknownFieldError reports a field name that is not registered or not a member of the enclosing entity
type UnknownFieldError struct {
	Field    string
	Entity   Entity
	Location token.Location
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field '%s' in %s at %s", e.Field, e.Entity, e.Location)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// MissingFieldError reports a required field absent from a completed object
type MissingFieldError struct {
	Field    string
	Entity   Entity
	Location token.Location
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field '%s' in %s at %s", e.Field, e.Entity, e.Location)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// RecursionDepthError reports a pod chain nested deeper than the configured limit
type RecursionDepthError struct {
	Limit    int
	Location token.Location
}

func (e *RecursionDepthError) Error() string {
	return fmt.Sprintf("pod chain exceeds depth limit %d at %s", e.Limit, e.Location)
}

func (e *RecursionDepthError) Is(target error) bool { return target == ErrRecursionDepth }

// ItemError attaches the batch index to the error of a single item
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }
