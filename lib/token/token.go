package token

import (
	"errors"
	"fmt"
	"io"
)

// Kind is the type of a token
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	StartObject
	EndObject
	StartArray
	EndArray
	FieldName
	String
	Number
	Bool
	Null
)

var kindNames = [...]string{
	Invalid:     "INVALID",
	EOF:         "EOF",
	StartObject: "START_OBJECT",
	EndObject:   "END_OBJECT",
	StartArray:  "START_ARRAY",
	EndArray:    "END_ARRAY",
	FieldName:   "FIELD_NAME",
	String:      "VALUE_STRING",
	Number:      "VALUE_NUMBER_INT",
	Bool:        "VALUE_BOOLEAN",
	Null:        "VALUE_NULL",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsScalar reports whether k carries a value (string, number, bool or null)
func (k Kind) IsScalar() bool {
	return k >= String
}

// Location identifies a position in the input
type Location struct {
	// Offset is the byte offset of the current token or -1 if the format does not track it
	Offset int64
	// Token is the number of tokens read so far
	Token int64
	// Depth is the current nesting depth (0 at top level)
	Depth int
}

func (l Location) String() string {
	if l.Offset < 0 {
		return fmt.Sprintf("token %d, depth %d", l.Token, l.Depth)
	}
	return fmt.Sprintf("byte %d, token %d, depth %d", l.Offset, l.Token, l.Depth)
}

// ErrSyntax is wrapped by readers when the input is not a well formed token stream
var ErrSyntax = errors.New("syntax error")

// ErrGrammar is recorded by writers when tokens are written in an order that
// does not form a valid document (e.g. a value without a field name)
var ErrGrammar = errors.New("invalid token order")

// ErrClosed is returned when a closed Reader or Writer is used
var ErrClosed = errors.New("token stream closed")

// --------------------------------------------------------------------------
// Interfaces
// --------------------------------------------------------------------------

// Reader is a pull parser over a token stream.
type Reader interface {
	// NextToken advances to the next token and returns its kind.
	// It returns EOF at the end of the input and Invalid after an error.
	NextToken() Kind
	// Current returns the kind of the current token without advancing
	Current() Kind
	// CurrentName returns the field name if the current token is a FieldName,
	// otherwise the name of the field whose value is current (or "")
	CurrentName() string
	// Text returns the current scalar as text (strings, numbers and booleans)
	Text() string
	// Int32 returns the current Number token as int32
	Int32() (int32, error)
	// Int64 returns the current Number token as int64
	Int64() (int64, error)
	// Location returns the position of the current token
	Location() Location
	// Format returns the short name of the format (e.g. "json")
	Format() string
	// Err returns the first error the reader ran into, or nil
	Err() error
	// Close releases the resources of the reader. It does not close the underlying source.
	Close() error
}

// Writer is a generator for a token stream.
// All methods record the first error; check Err or the result of Flush.
type Writer interface {
	WriteStartObject()
	WriteEndObject()
	WriteStartArray()
	WriteEndArray()
	WriteFieldName(name string)
	WriteString(s string)
	WriteInt32(v int32)
	WriteInt64(v int64)
	WriteNull()
	WriteBool(v bool)
	// WriteEnum writes an enumeration value. Text formats use the name,
	// compact formats may use the code.
	WriteEnum(code int32, name string)
	// Flush writes buffered data to the underlying sink
	Flush() error
	// Format returns the short name of the format
	Format() string
	// Err returns the first error the writer ran into, or nil
	Err() error
	// Close flushes and releases the resources of the writer.
	// It does not close the underlying sink.
	Close() error
}

// Dictionary maps field names to one byte tags and back
type Dictionary interface {
	Tag(name string) (uint8, bool)
	Name(tag uint8) (string, bool)
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// SyntaxError builds an error wrapping ErrSyntax
func SyntaxError(loc Location, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrSyntax, loc, fmt.Sprintf(format, args...))
}

// UnexpectedEOF is the error readers report when the input ends inside a value
func UnexpectedEOF(loc Location) error {
	return fmt.Errorf("%w at %s: %w", ErrSyntax, loc, io.ErrUnexpectedEOF)
}

// Copy reads the next top level value from r and writes it to w. It returns io.EOF
// when r is exhausted. Numbers are copied as int64.
func Copy(w Writer, r Reader) error {
	depth := 0
	for {
		switch r.NextToken() {
		case EOF:
			if depth > 0 {
				return UnexpectedEOF(r.Location())
			}
			return io.EOF
		case Invalid:
			return r.Err()
		case StartObject:
			depth++
			w.WriteStartObject()
		case EndObject:
			depth--
			w.WriteEndObject()
		case StartArray:
			depth++
			w.WriteStartArray()
		case EndArray:
			depth--
			w.WriteEndArray()
		case FieldName:
			w.WriteFieldName(r.CurrentName())
		case String:
			w.WriteString(r.Text())
		case Number:
			v, err := r.Int64()
			if err != nil {
				return err
			}
			w.WriteInt64(v)
		case Bool:
			w.WriteBool(r.Text() == "true")
		case Null:
			w.WriteNull()
		}
		if err := w.Err(); err != nil {
			return err
		}
		if depth == 0 {
			return nil
		}
	}
}

// Skip consumes the current value including all nested tokens. If the current token
// is a FieldName, its value is skipped. The reader is left on the last token of the value.
func Skip(r Reader) error {
	if r.Current() == FieldName {
		r.NextToken()
	}
	depth := 0
	for {
		switch r.Current() {
		case StartObject, StartArray:
			depth++
		case EndObject, EndArray:
			depth--
		case EOF, Invalid:
			if err := r.Err(); err != nil {
				return err
			}
			return UnexpectedEOF(r.Location())
		}
		if depth <= 0 {
			return nil
		}
		r.NextToken()
	}
}
