package serializer

import (
	"bytes"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/token"
	"github.com/ValentinKolb/mediaser/lib/token/bintok"
	"github.com/ValentinKolb/mediaser/lib/token/jsontok"
	"io"
)

// NewJSONManualSerializer creates a serializer that runs the hand written codec on JSON tokens
func NewJSONManualSerializer(opts ...codec.Option) ISerializer {
	return &manualSerializerImpl{
		name:           NameJSONManual,
		opts:           opts,
		newWriter:      func(w io.Writer) token.Writer { return jsontok.NewWriter(w) },
		newReader:      func(r io.Reader) token.Reader { return jsontok.NewReader(r) },
		newBytesReader: func(b []byte) token.Reader { return jsontok.NewBytesReader(b) },
	}
}

// NewBinaryManualSerializer creates a serializer that runs the hand written codec on binary
// tokens. Field names are written as registry tags, enumerations as integer codes.
func NewBinaryManualSerializer(opts ...codec.Option) ISerializer {
	dict := codec.Registry()
	return &manualSerializerImpl{
		name:           NameBinaryManual,
		opts:           opts,
		newWriter:      func(w io.Writer) token.Writer { return bintok.NewWriter(w, dict) },
		newReader:      func(r io.Reader) token.Reader { return bintok.NewReader(r, dict) },
		newBytesReader: func(b []byte) token.Reader { return bintok.NewBytesReader(b, dict) },
	}
}

// manualSerializerImpl implements ISerializer with codec.Encoder and codec.Decoder.
// It only holds factories, every call opens its own token stream.
type manualSerializerImpl struct {
	name           string
	opts           []codec.Option
	newWriter      func(w io.Writer) token.Writer
	newReader      func(r io.Reader) token.Reader
	newBytesReader func(b []byte) token.Reader
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (m *manualSerializerImpl) Name() string {
	return m.name
}

func (m *manualSerializerImpl) Serialize(c *media.MediaContent) ([]byte, error) {
	var buf bytes.Buffer
	w := m.newWriter(&buf)
	err := codec.NewEncoder(w, m.opts...).Encode(c)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *manualSerializerImpl) Deserialize(b []byte) (*media.MediaContent, error) {
	r := m.newBytesReader(b)
	defer r.Close()

	c, err := codec.NewDecoder(r, m.opts...).Decode()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty input: %w", m.name, io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}
	if kind := r.NextToken(); kind != token.EOF {
		if kind == token.Invalid {
			return nil, fmt.Errorf("%s: after item: %w", m.name, r.Err())
		}
		return nil, fmt.Errorf("%w: trailing %s after item at %s", codec.ErrMalformedInput, kind, r.Location())
	}
	return c, nil
}

func (m *manualSerializerImpl) SerializeItems(items []*media.MediaContent, out io.Writer) error {
	w := m.newWriter(out)
	err := codec.NewEncoder(w, m.opts...).EncodeItems(items)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

func (m *manualSerializerImpl) DeserializeItems(in io.Reader, n int) ([]*media.MediaContent, error) {
	r := m.newReader(in)
	defer r.Close()
	return codec.NewDecoder(r, m.opts...).DecodeItems(n)
}
