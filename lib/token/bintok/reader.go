package bintok

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/token"
	"io"
	"math"
	"strconv"
	"sync"
)

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

// source counts the bytes consumed from the underlying reader
type source struct {
	br  io.ByteReader
	r   io.Reader
	off int64
}

func (s *source) ReadByte() (byte, error) {
	b, err := s.br.ReadByte()
	if err == nil {
		s.off++
	}
	return b, err
}

func (s *source) readFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.off += int64(n)
	return err
}

type frame struct {
	array       bool
	expectValue bool
	name        string
}

// Reader implements token.Reader for the binary token format
type Reader struct {
	src      source
	buffered *bufio.Reader
	dict     token.Dictionary

	stack   []frame
	cur     token.Kind
	name    string
	text    string
	num     int64
	scratch []byte
	start   int64
	tokens  int64
	err     error
}

// NewReader creates a reader that streams from r. dict resolves field tags and
// may be nil if the input only contains inline names.
func NewReader(r io.Reader, dict token.Dictionary) *Reader {
	br := readerPool.Get().(*bufio.Reader)
	br.Reset(r)
	return &Reader{
		src:      source{br: br, r: br},
		buffered: br,
		dict:     dict,
		stack:    make([]frame, 0, 16),
	}
}

// NewBytesReader creates a reader over an in-memory document
func NewBytesReader(data []byte, dict token.Dictionary) *Reader {
	br := bytes.NewReader(data)
	return &Reader{
		src:   source{br: br, r: br},
		dict:  dict,
		stack: make([]frame, 0, 16),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see token.Reader)
// --------------------------------------------------------------------------

func (r *Reader) NextToken() token.Kind {
	if r.err != nil {
		r.cur = token.Invalid
		return r.cur
	}
	r.start = r.src.off

	mark, err := r.src.ReadByte()
	if err != nil {
		if err == io.EOF && len(r.stack) == 0 {
			r.cur = token.EOF
			return r.cur
		}
		r.fail(r.readErr(err))
		return r.cur
	}
	r.tokens++

	var top *frame
	if n := len(r.stack); n > 0 {
		top = &r.stack[n-1]
	}
	inObject := top != nil && !top.array
	wantName := inObject && !top.expectValue

	switch {
	case mark == markEndObject:
		if !wantName {
			return r.unexpected(mark)
		}
		return r.pop(token.EndObject)
	case mark == markEndArray:
		if top == nil || !top.array {
			return r.unexpected(mark)
		}
		return r.pop(token.EndArray)
	case mark == markFieldTag || mark == markFieldName:
		if !wantName {
			return r.unexpected(mark)
		}
		name, err := r.readName(mark)
		if err != nil {
			r.fail(err)
			return r.cur
		}
		top.expectValue = true
		top.name = name
		r.name = name
		r.cur = token.FieldName
		return r.cur
	case wantName:
		return r.unexpected(mark)
	}

	// a value follows
	if inObject {
		top.expectValue = false
	}
	r.text = ""
	switch mark {
	case markStartObject:
		r.stack = append(r.stack, frame{})
		r.cur = token.StartObject
	case markStartArray:
		r.stack = append(r.stack, frame{array: true})
		r.cur = token.StartArray
	case markString:
		s, err := r.readString()
		if err != nil {
			r.fail(err)
			return r.cur
		}
		r.text = s
		r.cur = token.String
	case markNumber:
		v, err := binary.ReadVarint(&r.src)
		if err != nil {
			r.fail(r.readErr(err))
			return r.cur
		}
		r.num = v
		r.cur = token.Number
	case markNull:
		r.cur = token.Null
	case markTrue, markFalse:
		r.text = strconv.FormatBool(mark == markTrue)
		r.cur = token.Bool
	default:
		return r.unexpected(mark)
	}
	return r.cur
}

func (r *Reader) Current() token.Kind {
	return r.cur
}

func (r *Reader) CurrentName() string {
	return r.name
}

func (r *Reader) Text() string {
	if r.cur == token.Number {
		return strconv.FormatInt(r.num, 10)
	}
	return r.text
}

func (r *Reader) Int32() (int32, error) {
	if r.cur != token.Number {
		return 0, fmt.Errorf("current token is %s, not a number", r.cur)
	}
	if r.num < math.MinInt32 || r.num > math.MaxInt32 {
		return 0, fmt.Errorf("invalid int32 %d: value out of range", r.num)
	}
	return int32(r.num), nil
}

func (r *Reader) Int64() (int64, error) {
	if r.cur != token.Number {
		return 0, fmt.Errorf("current token is %s, not a number", r.cur)
	}
	return r.num, nil
}

func (r *Reader) Location() token.Location {
	return token.Location{Offset: r.start, Token: r.tokens, Depth: len(r.stack)}
}

func (r *Reader) Format() string {
	return FormatName
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	if r.buffered != nil {
		r.buffered.Reset(nil)
		readerPool.Put(r.buffered)
		r.buffered = nil
	}
	r.src = source{}
	if r.err == nil {
		r.err = token.ErrClosed
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (r *Reader) readName(mark byte) (string, error) {
	if mark == markFieldName {
		return r.readString()
	}
	tag, err := r.src.ReadByte()
	if err != nil {
		return "", r.readErr(err)
	}
	if r.dict != nil {
		if name, ok := r.dict.Name(tag); ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w at %s: %w %d", token.ErrSyntax, r.Location(), ErrUnknownTag, tag)
}

func (r *Reader) readString() (string, error) {
	n, err := binary.ReadUvarint(&r.src)
	if err != nil {
		return "", r.readErr(err)
	}
	if n > MaxStringLen {
		return "", token.SyntaxError(r.Location(), "string of %d bytes exceeds limit of %d", n, MaxStringLen)
	}
	if n == 0 {
		return "", nil
	}
	if cap(r.scratch) < int(n) {
		r.scratch = make([]byte, n)
	}
	buf := r.scratch[:n]
	if err := r.src.readFull(buf); err != nil {
		return "", r.readErr(err)
	}
	return string(buf), nil
}

func (r *Reader) pop(kind token.Kind) token.Kind {
	r.stack = r.stack[:len(r.stack)-1]
	r.name = ""
	if n := len(r.stack); n > 0 && !r.stack[n-1].array {
		r.name = r.stack[n-1].name
	}
	r.cur = kind
	return kind
}

func (r *Reader) unexpected(mark byte) token.Kind {
	r.fail(token.SyntaxError(r.Location(), "unexpected %s", markName(mark)))
	return r.cur
}

func (r *Reader) readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return token.UnexpectedEOF(r.Location())
	}
	if errors.Is(err, token.ErrSyntax) {
		return err
	}
	return token.SyntaxError(r.Location(), "%s", err.Error())
}

func (r *Reader) fail(err error) {
	r.err = err
	r.cur = token.Invalid
}

var _ token.Reader = (*Reader)(nil)
