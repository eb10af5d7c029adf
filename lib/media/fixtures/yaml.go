package fixtures

import (
	"bytes"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/media"
	"gopkg.in/yaml.v3"
	"io"
	"os"
)

// --------------------------------------------------------------------------
// YAML documents
// --------------------------------------------------------------------------

// A fixture file holds a list of items. Pod chains are written as lists of
// messages, outermost first, so deep chains stay readable:
//
//	- media:
//	    uri: http://javaone.com/keynote.mpg
//	    pods:
//	      - [first, reply, reply to reply]
//	  images: []

type yamlContent struct {
	Media  yamlMedia   `yaml:"media"`
	Images []yamlImage `yaml:"images"`
}

type yamlMedia struct {
	URI       string     `yaml:"uri"`
	Title     *string    `yaml:"title,omitempty"`
	Width     int32      `yaml:"width"`
	Height    int32      `yaml:"height"`
	Format    string     `yaml:"format"`
	Duration  int64      `yaml:"duration"`
	Size      int64      `yaml:"size"`
	Bitrate   *int32     `yaml:"bitrate,omitempty"`
	Persons   []string   `yaml:"persons,omitempty"`
	Player    string     `yaml:"player"`
	Copyright *string    `yaml:"copyright,omitempty"`
	Pods      [][]string `yaml:"pods,omitempty"`
}

type yamlImage struct {
	URI    string  `yaml:"uri"`
	Title  *string `yaml:"title,omitempty"`
	Width  int32   `yaml:"width"`
	Height int32   `yaml:"height"`
	Size   string  `yaml:"size"`
}

// --------------------------------------------------------------------------
// Loading
// --------------------------------------------------------------------------

// LoadFile reads all items of a YAML fixture file
func LoadFile(path string) ([]*media.MediaContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return items, nil
}

// Load decodes a YAML fixture document and validates every item
func Load(r io.Reader) ([]*media.MediaContent, error) {
	var docs []yamlContent
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&docs); err != nil {
		if err == io.EOF {
			return []*media.MediaContent{}, nil
		}
		return nil, err
	}

	items := make([]*media.MediaContent, len(docs))
	for i := range docs {
		c, err := docs[i].toModel()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items[i] = c
	}
	return items, nil
}

func (y *yamlContent) toModel() (*media.MediaContent, error) {
	player, ok := media.ParsePlayer(y.Media.Player)
	if !ok {
		return nil, fmt.Errorf("%w: unknown player %q", media.ErrInvalidModel, y.Media.Player)
	}

	c := &media.MediaContent{
		Media: media.Media{
			URI:       y.Media.URI,
			Title:     media.FromPtr(y.Media.Title),
			Width:     y.Media.Width,
			Height:    y.Media.Height,
			Format:    y.Media.Format,
			Duration:  y.Media.Duration,
			Size:      y.Media.Size,
			Bitrate:   media.FromPtr(y.Media.Bitrate),
			Persons:   y.Media.Persons,
			Player:    player,
			Copyright: media.FromPtr(y.Media.Copyright),
		},
		Images: make([]media.Image, len(y.Images)),
	}
	if c.Media.Persons == nil {
		c.Media.Persons = []string{}
	}
	for i, chain := range y.Media.Pods {
		if len(chain) == 0 {
			return nil, fmt.Errorf("%w: pods[%d] is empty", media.ErrInvalidModel, i)
		}
		c.Media.Pods.AddChain(chain...)
	}

	for i, img := range y.Images {
		size, ok := media.ParseSize(img.Size)
		if !ok {
			return nil, fmt.Errorf("%w: images[%d]: unknown size %q", media.ErrInvalidModel, i, img.Size)
		}
		c.Images[i] = media.Image{
			URI:    img.URI,
			Title:  media.FromPtr(img.Title),
			Width:  img.Width,
			Height: img.Height,
			Size:   size,
		}
	}
	return c, nil
}

// --------------------------------------------------------------------------
// Dumping
// --------------------------------------------------------------------------

// Dump writes items as a YAML fixture document
func Dump(w io.Writer, items []*media.MediaContent) error {
	docs := make([]yamlContent, len(items))
	for i, c := range items {
		d, err := fromModel(c)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		docs[i] = d
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}

// DumpString is Dump into a string, handy for debugging output
func DumpString(items ...*media.MediaContent) (string, error) {
	var buf bytes.Buffer
	if err := Dump(&buf, items); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fromModel(c *media.MediaContent) (yamlContent, error) {
	m := &c.Media
	d := yamlContent{
		Media: yamlMedia{
			URI:       m.URI,
			Title:     m.Title.Ptr(),
			Width:     m.Width,
			Height:    m.Height,
			Format:    m.Format,
			Duration:  m.Duration,
			Size:      m.Size,
			Bitrate:   m.Bitrate.Ptr(),
			Persons:   m.Persons,
			Player:    m.Player.String(),
			Copyright: m.Copyright.Ptr(),
		},
		Images: make([]yamlImage, len(c.Images)),
	}
	for i := 0; i < m.Pods.Len(); i++ {
		chain, err := m.Pods.Chain(i, 0)
		if err != nil {
			return yamlContent{}, err
		}
		d.Media.Pods = append(d.Media.Pods, chain)
	}
	for i, img := range c.Images {
		d.Images[i] = yamlImage{
			URI:    img.URI,
			Title:  img.Title.Ptr(),
			Width:  img.Width,
			Height: img.Height,
			Size:   img.Size.String(),
		}
	}
	return d, nil
}
