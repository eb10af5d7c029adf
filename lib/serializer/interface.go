package serializer

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media"
	"io"
	"strings"
)

// ISerializer is the interface for all MediaContent serializers
type ISerializer interface {
	// Name returns the registered name of the serializer, e.g. "json/manual"
	Name() string
	// Serialize serializes a single item into a byte array
	Serialize(c *media.MediaContent) ([]byte, error)
	// Deserialize deserializes exactly one item from a byte array.
	// Trailing data after the item is an error.
	Deserialize(b []byte) (*media.MediaContent, error)
	// SerializeItems writes all items to w back to back, without a count or an end marker
	SerializeItems(items []*media.MediaContent, w io.Writer) error
	// DeserializeItems reads exactly n items from r. The count is not part of the
	// stream, the caller has to know it. A failed item is reported as a *codec.ItemError.
	DeserializeItems(r io.Reader, n int) ([]*media.MediaContent, error)
}

// Registered serializer names
const (
	NameJSONManual   = "json/manual"
	NameBinaryManual = "bin/manual"
	NameJSONDatabind = "json/databind"
	NameGOB          = "gob"
)

// Names returns the names accepted by New, hand written serializers first
func Names() []string {
	return []string{NameJSONManual, NameBinaryManual, NameJSONDatabind, NameGOB}
}

// New creates the serializer registered under name
func New(name string, opts ...codec.Option) (ISerializer, error) {
	switch name {
	case NameJSONManual:
		return NewJSONManualSerializer(opts...), nil
	case NameBinaryManual:
		return NewBinaryManualSerializer(opts...), nil
	case NameJSONDatabind:
		return NewJSONDatabindSerializer(opts...), nil
	case NameGOB:
		return NewGOBSerializer(opts...), nil
	default:
		return nil, fmt.Errorf("unknown serializer: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
}
