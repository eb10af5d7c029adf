package serializer

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media"
	jsoniter "github.com/json-iterator/go"
	"io"
)

// databindAPI is frozen once, the config caches the reflected codecs of the DTOs
var databindAPI = jsoniter.Config{
	EscapeHTML:                    false,
	ObjectFieldMustBeSimpleString: true,
	DisallowUnknownFields:         true,
}.Froze()

// NewJSONDatabindSerializer creates a serializer that maps the item to DTOs and
// lets jsoniter encode them by reflection. Of the codec options only the pod depth limit applies.
func NewJSONDatabindSerializer(opts ...codec.Option) ISerializer {
	return &databindSerializerImpl{maxDepth: codec.MaxPodDepth(opts...)}
}

// databindSerializerImpl implements ISerializer with jsoniter data binding
type databindSerializerImpl struct {
	maxDepth int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (j *databindSerializerImpl) Name() string {
	return NameJSONDatabind
}

func (j *databindSerializerImpl) Serialize(c *media.MediaContent) ([]byte, error) {
	dto, err := toDTO(c, j.maxDepth)
	if err != nil {
		return nil, err
	}
	return databindAPI.Marshal(dto)
}

func (j *databindSerializerImpl) Deserialize(b []byte) (*media.MediaContent, error) {
	var dto contentDTO
	if err := databindAPI.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrMalformedInput, err)
	}
	return fromDTO(&dto, j.maxDepth)
}

func (j *databindSerializerImpl) SerializeItems(items []*media.MediaContent, w io.Writer) error {
	enc := databindAPI.NewEncoder(w)
	for i, c := range items {
		dto, err := toDTO(c, j.maxDepth)
		if err == nil {
			err = enc.Encode(dto)
		}
		if err != nil {
			return &codec.ItemError{Index: i, Err: err}
		}
	}
	return nil
}

func (j *databindSerializerImpl) DeserializeItems(r io.Reader, n int) ([]*media.MediaContent, error) {
	dec := databindAPI.NewDecoder(r)
	items := make([]*media.MediaContent, 0, n)
	for i := 0; i < n; i++ {
		var dto contentDTO
		if err := dec.Decode(&dto); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			} else {
				err = fmt.Errorf("%w: %w", codec.ErrMalformedInput, err)
			}
			return nil, &codec.ItemError{Index: i, Err: err}
		}
		c, err := fromDTO(&dto, j.maxDepth)
		if err != nil {
			return nil, &codec.ItemError{Index: i, Err: err}
		}
		items = append(items, c)
	}
	return items, nil
}
