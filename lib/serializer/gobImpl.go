package serializer

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media"
	"io"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format.
// Of the codec options only the pod depth limit applies.
func NewGOBSerializer(opts ...codec.Option) ISerializer {
	return &gobSerializerImpl{maxDepth: codec.MaxPodDepth(opts...)}
}

// gobSerializerImpl implements the ISerializer interface using gob encoding
type gobSerializerImpl struct {
	maxDepth int
}

// gob does not transmit zero values, so Some("") and Some(0) would come back
// as absent. Presence travels in a flag byte instead.
const (
	hasTitle     byte = 1 << 0
	hasBitrate   byte = 1 << 1
	hasCopyright byte = 1 << 2
)

type gobContent struct {
	Media  gobMedia
	Images []gobImage
}

type gobMedia struct {
	Flags     byte
	URI       string
	Title     string
	Width     int32
	Height    int32
	Format    string
	Duration  int64
	Size      int64
	Bitrate   int32
	Persons   []string
	Player    int32
	Copyright string
	Pods      [][]string // one message list per chain, outermost first
}

type gobImage struct {
	Flags  byte
	URI    string
	Title  string
	Width  int32
	Height int32
	Size   int32
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (g *gobSerializerImpl) Name() string {
	return NameGOB
}

func (g *gobSerializerImpl) Serialize(c *media.MediaContent) ([]byte, error) {
	v, err := g.toGob(c)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *gobSerializerImpl) Deserialize(b []byte) (*media.MediaContent, error) {
	var v gobContent
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrMalformedInput, err)
	}
	if buf.Len() > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after item", codec.ErrMalformedInput, buf.Len())
	}
	return g.fromGob(&v)
}

func (g *gobSerializerImpl) SerializeItems(items []*media.MediaContent, w io.Writer) error {
	// one encoder for the whole batch, type information is sent once
	enc := gob.NewEncoder(w)
	for i, c := range items {
		v, err := g.toGob(c)
		if err == nil {
			err = enc.Encode(v)
		}
		if err != nil {
			return &codec.ItemError{Index: i, Err: err}
		}
	}
	return nil
}

func (g *gobSerializerImpl) DeserializeItems(r io.Reader, n int) ([]*media.MediaContent, error) {
	dec := gob.NewDecoder(r)
	items := make([]*media.MediaContent, 0, n)
	for i := 0; i < n; i++ {
		var v gobContent
		if err := dec.Decode(&v); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			} else {
				err = fmt.Errorf("%w: %w", codec.ErrMalformedInput, err)
			}
			return nil, &codec.ItemError{Index: i, Err: err}
		}
		c, err := g.fromGob(&v)
		if err != nil {
			return nil, &codec.ItemError{Index: i, Err: err}
		}
		items = append(items, c)
	}
	return items, nil
}

// --------------------------------------------------------------------------
// Transformers
// --------------------------------------------------------------------------

func (g *gobSerializerImpl) toGob(c *media.MediaContent) (*gobContent, error) {
	if c == nil {
		return nil, errors.New("cannot convert nil item")
	}
	m := &c.Media
	if !m.Player.Valid() {
		return nil, fmt.Errorf("%w: unknown player %s", media.ErrInvalidModel, m.Player)
	}
	v := &gobContent{
		Media: gobMedia{
			URI:      m.URI,
			Width:    m.Width,
			Height:   m.Height,
			Format:   m.Format,
			Duration: m.Duration,
			Size:     m.Size,
			Persons:  m.Persons,
			Player:   m.Player.Code(),
			Pods:     make([][]string, 0, len(m.Pods.Heads)),
		},
		Images: make([]gobImage, 0, len(c.Images)),
	}
	if title, ok := m.Title.Get(); ok {
		v.Media.Flags |= hasTitle
		v.Media.Title = title
	}
	if bitrate, ok := m.Bitrate.Get(); ok {
		v.Media.Flags |= hasBitrate
		v.Media.Bitrate = bitrate
	}
	if copyright, ok := m.Copyright.Get(); ok {
		v.Media.Flags |= hasCopyright
		v.Media.Copyright = copyright
	}
	for i := range m.Pods.Heads {
		chain, err := m.Pods.Chain(i, g.maxDepth)
		if err != nil {
			return nil, depthError(err, g.maxDepth)
		}
		if len(chain) == 0 {
			return nil, fmt.Errorf("%w: pods[%d] has no head", media.ErrInvalidModel, i)
		}
		v.Media.Pods = append(v.Media.Pods, chain)
	}

	for i := range c.Images {
		img := &c.Images[i]
		if !img.Size.Valid() {
			return nil, fmt.Errorf("%w: unknown size %s", media.ErrInvalidModel, img.Size)
		}
		gi := gobImage{
			URI:    img.URI,
			Width:  img.Width,
			Height: img.Height,
			Size:   img.Size.Code(),
		}
		if title, ok := img.Title.Get(); ok {
			gi.Flags |= hasTitle
			gi.Title = title
		}
		v.Images = append(v.Images, gi)
	}
	return v, nil
}

func (g *gobSerializerImpl) fromGob(v *gobContent) (*media.MediaContent, error) {
	gm := &v.Media
	player, ok := media.PlayerFromCode(gm.Player)
	if !ok {
		return nil, fmt.Errorf("%w: unknown player code %d", media.ErrInvalidModel, gm.Player)
	}
	c := &media.MediaContent{
		Media: media.Media{
			URI:      gm.URI,
			Width:    gm.Width,
			Height:   gm.Height,
			Format:   gm.Format,
			Duration: gm.Duration,
			Size:     gm.Size,
			Persons:  gm.Persons,
			Player:   player,
			Pods:     media.PodArena{Heads: make([]media.PodID, 0, len(gm.Pods))},
		},
		Images: make([]media.Image, 0, len(v.Images)),
	}
	if c.Media.Persons == nil {
		c.Media.Persons = []string{}
	}
	if gm.Flags&hasTitle != 0 {
		c.Media.Title = media.Some(gm.Title)
	}
	if gm.Flags&hasBitrate != 0 {
		c.Media.Bitrate = media.Some(gm.Bitrate)
	}
	if gm.Flags&hasCopyright != 0 {
		c.Media.Copyright = media.Some(gm.Copyright)
	}
	for i, chain := range gm.Pods {
		if len(chain) == 0 {
			return nil, fmt.Errorf("%w: pods[%d] is empty", media.ErrInvalidModel, i)
		}
		if len(chain) > g.maxDepth {
			return nil, depthError(media.ErrChainTooDeep, g.maxDepth)
		}
		c.Media.Pods.AddChain(chain...)
	}

	for i := range v.Images {
		gi := &v.Images[i]
		size, ok := media.SizeFromCode(gi.Size)
		if !ok {
			return nil, fmt.Errorf("%w: unknown size code %d", media.ErrInvalidModel, gi.Size)
		}
		img := media.Image{
			URI:    gi.URI,
			Width:  gi.Width,
			Height: gi.Height,
			Size:   size,
		}
		if gi.Flags&hasTitle != 0 {
			img.Title = media.Some(gi.Title)
		}
		c.Images = append(c.Images, img)
	}
	return c, nil
}
