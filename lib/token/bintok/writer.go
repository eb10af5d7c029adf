package bintok

import (
	"encoding/binary"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/token"
	"io"
	"sync"
)

// flushThreshold is the buffered size at which writes are pushed to the sink
const flushThreshold = 32 << 10

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 4096)
		return &b
	},
}

// Writer implements token.Writer for the binary token format
type Writer struct {
	out  io.Writer
	dict token.Dictionary
	buf  *[]byte

	stack     []bool // true for arrays
	afterName bool
	err       error
}

// NewWriter creates a writer that writes to w. dict may be nil, then all field
// names are written inline.
func NewWriter(w io.Writer, dict token.Dictionary) *Writer {
	buf := bufferPool.Get().(*[]byte)
	*buf = (*buf)[:0]
	return &Writer{
		out:   w,
		dict:  dict,
		buf:   buf,
		stack: make([]bool, 0, 16),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see token.Writer)
// --------------------------------------------------------------------------

func (w *Writer) WriteStartObject() {
	if w.beforeValue() {
		w.put(markStartObject)
		w.stack = append(w.stack, false)
	}
}

func (w *Writer) WriteEndObject() {
	if w.end(false) {
		w.put(markEndObject)
	}
}

func (w *Writer) WriteStartArray() {
	if w.beforeValue() {
		w.put(markStartArray)
		w.stack = append(w.stack, true)
	}
}

func (w *Writer) WriteEndArray() {
	if w.end(true) {
		w.put(markEndArray)
	}
}

func (w *Writer) WriteFieldName(name string) {
	if w.err != nil {
		return
	}
	n := len(w.stack)
	if n == 0 || w.stack[n-1] || w.afterName {
		w.fail("field name %q outside of an object", name)
		return
	}
	w.afterName = true
	if w.dict != nil {
		if tag, ok := w.dict.Tag(name); ok {
			*w.buf = append(*w.buf, markFieldTag, tag)
			return
		}
	}
	w.put(markFieldName)
	w.putString(name)
}

func (w *Writer) WriteString(s string) {
	if w.beforeValue() {
		w.put(markString)
		w.putString(s)
	}
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteInt64(int64(v))
}

func (w *Writer) WriteInt64(v int64) {
	if w.beforeValue() {
		w.put(markNumber)
		*w.buf = binary.AppendVarint(*w.buf, v)
	}
}

func (w *Writer) WriteNull() {
	if w.beforeValue() {
		w.put(markNull)
	}
}

func (w *Writer) WriteBool(v bool) {
	if w.beforeValue() {
		if v {
			w.put(markTrue)
		} else {
			w.put(markFalse)
		}
	}
}

func (w *Writer) WriteEnum(code int32, _ string) {
	w.WriteInt64(int64(code))
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(*w.buf) == 0 {
		return nil
	}
	if _, err := w.out.Write(*w.buf); err != nil {
		w.err = err
		return err
	}
	*w.buf = (*w.buf)[:0]
	return nil
}

func (w *Writer) Format() string {
	return FormatName
}

func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) Close() error {
	if w.buf == nil {
		return nil
	}
	err := w.Flush()
	bufferPool.Put(w.buf)
	w.buf = nil
	if w.err == nil {
		w.err = token.ErrClosed
	}
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (w *Writer) put(b byte) {
	*w.buf = append(*w.buf, b)
	if len(*w.buf) >= flushThreshold && len(w.stack) == 0 {
		_ = w.Flush()
	}
}

func (w *Writer) putString(s string) {
	*w.buf = binary.AppendUvarint(*w.buf, uint64(len(s)))
	*w.buf = append(*w.buf, s...)
}

func (w *Writer) beforeValue() bool {
	if w.err != nil {
		return false
	}
	if w.afterName {
		w.afterName = false
		return true
	}
	if n := len(w.stack); n > 0 && !w.stack[n-1] {
		w.fail("value without field name")
		return false
	}
	return true
}

func (w *Writer) end(array bool) bool {
	if w.err != nil {
		return false
	}
	n := len(w.stack)
	if n == 0 || w.stack[n-1] != array || w.afterName {
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
