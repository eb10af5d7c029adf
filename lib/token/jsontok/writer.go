package jsontok

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/token"
	jsoniter "github.com/json-iterator/go"
	"io"
)

type container struct {
	array bool
	empty bool
}

// Writer implements token.Writer on top of a pooled jsoniter Stream.
// Consecutive top level values are separated by a newline.
type Writer struct {
	stream    *jsoniter.Stream
	stack     []container
	afterName bool
	roots     int
	err       error
}

// NewWriter creates a writer that writes to w. Call Close to return the stream to the pool.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		stream: api.BorrowStream(w),
		stack:  make([]container, 0, 16),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see token.Writer)
// --------------------------------------------------------------------------

func (w *Writer) WriteStartObject() {
	if w.beforeValue() {
		w.stream.WriteObjectStart()
		w.stack = append(w.stack, container{empty: true})
	}
}

func (w *Writer) WriteEndObject() {
	if w.end(false) {
		w.stream.WriteObjectEnd()
	}
}

func (w *Writer) WriteStartArray() {
	if w.beforeValue() {
		w.stream.WriteArrayStart()
		w.stack = append(w.stack, container{array: true, empty: true})
	}
}

func (w *Writer) WriteEndArray() {
	if w.end(true) {
		w.stream.WriteArrayEnd()
	}
}

func (w *Writer) WriteFieldName(name string) {
	if w.err != nil {
		return
	}
	n := len(w.stack)
	if n == 0 || w.stack[n-1].array || w.afterName {
		w.fail("field name %q outside of an object", name)
		return
	}
	if !w.stack[n-1].empty {
		w.stream.WriteMore()
	}
	w.stack[n-1].empty = false
	w.stream.WriteObjectField(name)
	w.afterName = true
}

func (w *Writer) WriteString(s string) {
	if w.beforeValue() {
		w.stream.WriteString(s)
	}
}

func (w *Writer) WriteInt32(v int32) {
	if w.beforeValue() {
		w.stream.WriteInt32(v)
	}
}

func (w *Writer) WriteInt64(v int64) {
	if w.beforeValue() {
		w.stream.WriteInt64(v)
	}
}

func (w *Writer) WriteNull() {
	if w.beforeValue() {
		w.stream.WriteNil()
	}
}

func (w *Writer) WriteBool(v bool) {
	if w.beforeValue() {
		w.stream.WriteBool(v)
	}
}

func (w *Writer) WriteEnum(_ int32, name string) {
	w.WriteString(name)
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.stream.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) Format() string {
	return FormatName
}

func (w *Writer) Err() error {
	if w.err == nil && w.stream != nil && w.stream.Error != nil {
		w.err = w.stream.Error
	}
	return w.err
}

func (w *Writer) Close() error {
	if w.stream == nil {
		return nil
	}
	err := w.Flush()
	api.ReturnStream(w.stream)
	w.stream = nil
	if w.err == nil {
		w.err = token.ErrClosed
	}
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// beforeValue writes the separator that precedes a value and reports whether
// the value may be written
func (w *Writer) beforeValue() bool {
	if w.err != nil {
		return false
	}
	if w.afterName {
		w.afterName = false
		return true
	}
	n := len(w.stack)
	if n == 0 {
		if w.roots > 0 {
			w.stream.WriteRaw("\n")
		}
		w.roots++
		return true
	}
	top := &w.stack[n-1]
	if !top.array {
		w.fail("value without field name")
		return false
	}
	if !top.empty {
		w.stream.WriteMore()
	}
	top.empty = false
	return true
}

func (w *Writer) end(array bool) bool {
	if w.err != nil {
		return false
	}
	n := len(w.stack)
	if n == 0 || w.stack[n-1].array != array || w.afterName {
		w.fail("unbalanced end of container")
		return false
	}
	w.stack = w.stack[:n-1]
	return true
}

func (w *Writer) fail(format string, args ...any) {
	w.err = fmt.Errorf("%w at depth %d: %s", token.ErrGrammar, len(w.stack), fmt.Sprintf(format, args...))
}

var _ token.Writer = (*Writer)(nil)
