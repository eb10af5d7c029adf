package jsontok

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/token"
	jsoniter "github.com/json-iterator/go"
	"io"
	"strconv"
)

// FormatName is the short name of the JSON token format
const FormatName = "json"

// readBufferSize is the chunk size used when parsing from an io.Reader
const readBufferSize = 4096

// api is the jsoniter configuration shared by readers and writers.
// Its iterator and stream pools are reused across all instances.
var api = jsoniter.ConfigFastest

type frame struct {
	array       bool
	open        bool // opening brace consumed
	expectValue bool
	name        string
}

// Reader implements token.Reader on top of a jsoniter Iterator.
//
// jsoniter's ReadObject returns "" for the end of an object and for an empty field
// name alike. The first field of an object is therefore read with ReadMapCB, which
// tells them apart. For later fields inside a nested object the next token decides:
// a value means an empty field name was consumed. A later empty field name in a top
// level object closes that object and fails on the input that follows it.
type Reader struct {
	iter    *jsoniter.Iterator
	pooled  bool
	onField func(*jsoniter.Iterator, string) bool
	first   string
	hasName bool

	stack  []frame
	cur    token.Kind
	name   string
	text   string
	tokens int64
	err    error
}

// NewReader creates a reader that streams from r
func NewReader(r io.Reader) *Reader {
	reader := &Reader{
		iter:  jsoniter.Parse(api, r, readBufferSize),
		stack: make([]frame, 0, 16),
	}
	reader.onField = reader.firstField
	return reader
}

// NewBytesReader creates a reader over an in-memory document.
// The iterator is borrowed from a pool and returned on Close.
func NewBytesReader(data []byte) *Reader {
	reader := &Reader{
		iter:   api.BorrowIterator(data),
		pooled: true,
		stack:  make([]frame, 0, 16),
	}
	reader.onField = reader.firstField
	return reader
}

// --------------------------------------------------------------------------
// Interface Methods (docu see token.Reader)
// --------------------------------------------------------------------------

func (r *Reader) NextToken() token.Kind {
	if r.err != nil {
		r.cur = token.Invalid
		return r.cur
	}
	r.tokens++

	var kind token.Kind
	if len(r.stack) == 0 {
		kind = r.readValue(true)
	} else if top := &r.stack[len(r.stack)-1]; top.array {
		if r.iter.ReadArray() {
			kind = r.readValue(false)
		} else {
			kind = r.pop(token.EndArray)
		}
	} else if top.expectValue {
		top.expectValue = false
		kind = r.readValue(false)
	} else if name, ok := r.readFieldName(top); ok {
		top.expectValue = true
		top.name = name
		r.name = name
		kind = token.FieldName
	} else {
		kind = r.pop(token.EndObject)
	}

	if err := r.iter.Error; err != nil {
		switch {
		case err != io.EOF:
			r.fail(token.SyntaxError(r.Location(), "%s", err.Error()))
			return r.cur
		case len(r.stack) > 0 || kind == token.Invalid:
			r.fail(token.UnexpectedEOF(r.Location()))
			return r.cur
		}
	}
	r.cur = kind
	return kind
}

func (r *Reader) Current() token.Kind {
	return r.cur
}

func (r *Reader) CurrentName() string {
	return r.name
}

func (r *Reader) Text() string {
	return r.text
}

func (r *Reader) Int32() (int32, error) {
	if r.cur != token.Number {
		return 0, fmt.Errorf("current token is %s, not a number", r.cur)
	}
	v, err := strconv.ParseInt(r.text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid int32 %q: %w", r.text, err)
	}
	return int32(v), nil
}

func (r *Reader) Int64() (int64, error) {
	if r.cur != token.Number {
		return 0, fmt.Errorf("current token is %s, not a number", r.cur)
	}
	v, err := strconv.ParseInt(r.text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 %q: %w", r.text, err)
	}
	return v, nil
}

func (r *Reader) Location() token.Location {
	return token.Location{Offset: -1, Token: r.tokens, Depth: len(r.stack)}
}

func (r *Reader) Format() string {
	return FormatName
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	if r.iter == nil {
		return nil
	}
	if r.pooled {
		api.ReturnIterator(r.iter)
	}
	r.iter = nil
	if r.err == nil {
		r.err = token.ErrClosed
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// readValue peeks at the next value. Containers are only announced here, their
// opening bracket is consumed by the following ReadObject / ReadArray call.
func (r *Reader) readValue(root bool) token.Kind {
	r.text = ""
	switch r.iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		r.stack = append(r.stack, frame{})
		return token.StartObject
	case jsoniter.ArrayValue:
		r.stack = append(r.stack, frame{array: true})
		return token.StartArray
	case jsoniter.StringValue:
		r.text = r.iter.ReadString()
		return token.String
	case jsoniter.NumberValue:
		r.text = string(r.iter.ReadNumber())
		return token.Number
	case jsoniter.NilValue:
		r.iter.ReadNil()
		return token.Null
	case jsoniter.BoolValue:
		r.text = strconv.FormatBool(r.iter.ReadBool())
		return token.Bool
	}

	if root && r.iter.Error == io.EOF {
		// clean end of input between top level values
		r.iter.Error = nil
		r.tokens--
		return token.EOF
	}
	if r.iter.Error == nil {
		r.iter.ReportError("NextToken", "expected a value")
	}
	return token.Invalid
}

// readFieldName consumes the next field name of the object on top of the stack.
// ok is false at the end of the object.
func (r *Reader) readFieldName(top *frame) (string, bool) {
	if !top.open {
		top.open = true
		r.hasName = false
		r.iter.ReadMapCB(r.onField)
		return r.first, r.hasName
	}
	if name := r.iter.ReadObject(); name != "" {
		return name, true
	}
	if len(r.stack) < 2 || r.iter.Error != nil {
		return "", false
	}
	// after a closing brace of a nested object only ',', '}' or ']' may follow
	return "", r.iter.WhatIsNext() != jsoniter.InvalidValue
}

// firstField stops ReadMapCB right after the first field name
func (r *Reader) firstField(_ *jsoniter.Iterator, name string) bool {
	r.first = name
	r.hasName = true
	return false
}

// pop closes the current container and restores the field name of the parent
func (r *Reader) pop(kind token.Kind) token.Kind {
	r.stack = r.stack[:len(r.stack)-1]
	r.name = ""
	if n := len(r.stack); n > 0 && !r.stack[n-1].array {
		r.name = r.stack[n-1].name
	}
	return kind
}

func (r *Reader) fail(err error) {
	r.err = err
	r.cur = token.Invalid
}

var _ token.Reader = (*Reader)(nil)
