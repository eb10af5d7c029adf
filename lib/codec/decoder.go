package codec

import (
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/token"
	"github.com/lni/dragonboat/v4/logger"
	"io"
)

// Logger is the logger of the codec package
var Logger = logger.GetLogger("codec")

// Decoder reads MediaContent items from a token stream
type Decoder struct {
	r       token.Reader
	opts    options
	metrics *codecMetrics
	stats   Stats

	// per item object counters, pushed to the metrics once the item is complete
	fast     uint64
	fallback uint64

	// reused pod frame stack
	pods []podFrame
}

// NewDecoder creates a decoder on top of r. The decoder does not own r; the caller closes it.
func NewDecoder(r token.Reader, opts ...Option) *Decoder {
	return &Decoder{
		r:       r,
		opts:    applyOptions(opts),
		metrics: metricsFor(r.Format()),
	}
}

// Decode reads the next top level item. At the end of the stream it returns io.EOF.
// On any other error no item is returned.
func (d *Decoder) Decode() (*media.MediaContent, error) {
	d.fast, d.fallback = 0, 0

	switch d.r.NextToken() {
	case token.StartObject:
	case token.EOF:
		return nil, io.EOF
	default:
		d.metrics.decodeErrors.Inc()
		return nil, d.unexpected(token.StartObject)
	}

	c := &media.MediaContent{
		Media: media.Media{
			Persons: []string{},
			Pods:    media.PodArena{Heads: []media.PodID{}},
		},
		Images: []media.Image{},
	}
	err := d.readObject(EntityMediaContent, func(f FieldID) error {
		return d.readContentField(c, f)
	})
	if err != nil {
		d.metrics.decodeErrors.Inc()
		return nil, err
	}

	d.stats.Items++
	d.stats.FastPathObjects += d.fast
	d.stats.FallbackObjects += d.fallback
	d.metrics.decoded.Inc()
	d.metrics.fastObjects.Add(int(d.fast))
	d.metrics.fallbackObjects.Add(int(d.fallback))
	return c, nil
}

// DecodeItems reads exactly n items. A stream that ends early is an error.
// The error of a failed item is an *ItemError.
func (d *Decoder) DecodeItems(n int) ([]*media.MediaContent, error) {
	items := make([]*media.MediaContent, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.Decode()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}
		items = append(items, c)
	}
	return items, nil
}

// Stats returns the counters of this decoder
func (d *Decoder) Stats() Stats {
	return d.stats
}

// --------------------------------------------------------------------------
// Object driver (fast path + fallback)
// --------------------------------------------------------------------------

// readObject reads the fields of an object whose START_OBJECT is the current token.
// Fields are first matched positionally against the canonical order by name only.
// The first field out of place hands over to a loop that resolves every remaining
// field through the registry. readField is called with the reader on the field name
// and must consume the complete value.
func (d *Decoder) readObject(e Entity, readField func(FieldID) error) error {
	info := &entities[e]
	var seen fieldSet

	kind := d.r.NextToken()
	for pos := 0; kind == token.FieldName; {
		i := info.match(pos, d.r.CurrentName())
		if i < 0 {
			break
		}
		f := info.order[i]
		if err := readField(f); err != nil {
			return err
		}
		seen |= 1 << f
		pos = i + 1
		kind = d.r.NextToken()
	}

	fallback := false
	for kind == token.FieldName {
		if !fallback {
			Logger.Debugf("field '%s' out of canonical order in %s, using registry dispatch", d.r.CurrentName(), e)
			fallback = true
		}
		f, err := d.resolve(e, seen)
		if err != nil {
			return err
		}
		if err := readField(f); err != nil {
			return err
		}
		seen |= 1 << f
		kind = d.r.NextToken()
	}

	if kind != token.EndObject {
		return d.unexpected(token.EndObject)
	}
	if fallback {
		d.fallback++
	} else {
		d.fast++
	}
	return d.checkRequired(info, e, seen)
}

// resolve looks up the current field name in the registry and checks that it
// belongs to e and was not seen before
func (d *Decoder) resolve(e Entity, seen fieldSet) (FieldID, error) {
	name := d.r.CurrentName()
	f, ok := Lookup(name)
	if !ok || !e.Has(f) {
		return 0, &UnknownFieldError{Field: name, Entity: e, Location: d.r.Location()}
	}
	if seen.has(f) {
		return 0, d.malformed("duplicate field", nil)
	}
	return f, nil
}

func (d *Decoder) checkRequired(info *entityInfo, e Entity, seen fieldSet) error {
	if f, missing := info.firstMissing(seen); missing {
		return &MissingFieldError{Field: f.Name(), Entity: e, Location: d.r.Location()}
	}
	return nil
}

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

func (d *Decoder) readContentField(c *media.MediaContent, f FieldID) error {
	switch f {
	case FieldMedia:
		if err := d.expect(token.StartObject); err != nil {
			return err
		}
		m := &c.Media
		return d.readObject(EntityMedia, func(f FieldID) error {
			return d.readMediaField(m, f)
		})
	case FieldImages:
		return d.readImages(c)
	}
	return nil
}

func (d *Decoder) readMediaField(m *media.Media, f FieldID) (err error) {
	switch f {
	case FieldURI:
		m.URI, err = d.readString()
	case FieldTitle:
		m.Title, err = d.readOptString()
	case FieldWidth:
		m.Width, err = d.readDimension()
	case FieldHeight:
		m.Height, err = d.readDimension()
	case FieldFormat:
		m.Format, err = d.readString()
	case FieldDuration:
		m.Duration, err = d.readInt64()
	case FieldSize:
		m.Size, err = d.readInt64()
	case FieldBitrate:
		m.Bitrate, err = d.readOptInt32()
	case FieldPersons:
		m.Persons, err = d.readStrings(m.Persons[:0])
	case FieldPlayer:
		m.Player, err = d.readPlayer()
	case FieldCopyright:
		m.Copyright, err = d.readOptString()
	case FieldPods:
		err = d.readPods(&m.Pods)
	}
	return err
}

func (d *Decoder) readImages(c *media.MediaContent) error {
	switch d.r.NextToken() {
	case token.Null:
		return nil
	case token.StartArray:
	default:
		return d.unexpected(token.StartArray)
	}
	for {
		switch d.r.NextToken() {
		case token.EndArray:
			return nil
		case token.StartObject:
		default:
			return d.unexpected(token.StartObject)
		}
		c.Images = append(c.Images, media.Image{})
		img := &c.Images[len(c.Images)-1]
		err := d.readObject(EntityImage, func(f FieldID) error {
			return d.readImageField(img, f)
		})
		if err != nil {
			return err
		}
	}
}

func (d *Decoder) readImageField(img *media.Image, f FieldID) (err error) {
	switch f {
	case FieldURI:
		img.URI, err = d.readString()
	case FieldTitle:
		img.Title, err = d.readOptString()
	case FieldWidth:
		img.Width, err = d.readDimension()
	case FieldHeight:
		img.Height, err = d.readDimension()
	case FieldSize:
		img.Size, err = d.readSize()
	}
	return err
}

// --------------------------------------------------------------------------
// Values
// --------------------------------------------------------------------------

func (d *Decoder) expect(kind token.Kind) error {
	if d.r.NextToken() != kind {
		return d.unexpected(kind)
	}
	return nil
}

func (d *Decoder) readString() (string, error) {
	if err := d.expect(token.String); err != nil {
		return "", err
	}
	return d.r.Text(), nil
}

func (d *Decoder) readOptString() (media.Optional[string], error) {
	switch d.r.NextToken() {
	case token.String:
		return media.Some(d.r.Text()), nil
	case token.Null:
		return media.None[string](), nil
	}
	return media.None[string](), d.unexpected(token.String)
}

func (d *Decoder) readInt32() (int32, error) {
	if err := d.expect(token.Number); err != nil {
		return 0, err
	}
	v, err := d.r.Int32()
	if err != nil {
		return 0, d.malformed("invalid int32", err)
	}
	return v, nil
}

// readDimension reads a width or height, which must not be negative
func (d *Decoder) readDimension() (int32, error) {
	v, err := d.readInt32()
	if err == nil && v < 0 {
		return 0, d.malformed("negative dimension", nil)
	}
	return v, err
}

func (d *Decoder) readOptInt32() (media.Optional[int32], error) {
	switch d.r.NextToken() {
	case token.Number:
		v, err := d.r.Int32()
		if err != nil {
			return media.None[int32](), d.malformed("invalid int32", err)
		}
		return media.Some(v), nil
	case token.Null:
		return media.None[int32](), nil
	}
	return media.None[int32](), d.unexpected(token.Number)
}

func (d *Decoder) readInt64() (int64, error) {
	if err := d.expect(token.Number); err != nil {
		return 0, err
	}
	v, err := d.r.Int64()
	if err != nil {
		return 0, d.malformed("invalid int64", err)
	}
	return v, nil
}

func (d *Decoder) readStrings(dst []string) ([]string, error) {
	switch d.r.NextToken() {
	case token.Null:
		return dst, nil
	case token.StartArray:
	default:
		return dst, d.unexpected(token.StartArray)
	}
	for {
		switch d.r.NextToken() {
		case token.EndArray:
			return dst, nil
		case token.String:
			dst = append(dst, d.r.Text())
		default:
			return dst, d.unexpected(token.String)
		}
	}
}

// readPlayer accepts the canonical name or the integer code
func (d *Decoder) readPlayer() (media.Player, error) {
	switch d.r.NextToken() {
	case token.String:
		if p, ok := media.ParsePlayer(d.r.Text()); ok {
			return p, nil
		}
	case token.Number:
		if code, err := d.r.Int32(); err == nil {
			if p, ok := media.PlayerFromCode(code); ok {
				return p, nil
			}
		}
	default:
		return 0, d.unexpected(token.String)
	}
	return 0, d.malformed("unknown player '"+d.r.Text()+"'", nil)
}

// readSize accepts the canonical name or the integer code
func (d *Decoder) readSize() (media.Size, error) {
	switch d.r.NextToken() {
	case token.String:
		if s, ok := media.ParseSize(d.r.Text()); ok {
			return s, nil
		}
	case token.Number:
		if code, err := d.r.Int32(); err == nil {
			if s, ok := media.SizeFromCode(code); ok {
				return s, nil
			}
		}
	default:
		return 0, d.unexpected(token.String)
	}
	return 0, d.malformed("unknown size '"+d.r.Text()+"'", nil)
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

// unexpected reports that the current token is not of the expected kind.
// A failed token stream is reported with its own error.
func (d *Decoder) unexpected(expected token.Kind) error {
	e := &MalformedInputError{
		Expected: expected,
		Actual:   d.r.Current(),
		Field:    d.r.CurrentName(),
		Location: d.r.Location(),
	}
	switch e.Actual {
	case token.Invalid:
		e.Err = d.r.Err()
	case token.EOF:
		e.Err = io.ErrUnexpectedEOF
	}
	return e
}

func (d *Decoder) malformed(reason string, err error) error {
	return &MalformedInputError{
		Actual:   d.r.Current(),
		Field:    d.r.CurrentName(),
		Reason:   reason,
		Location: d.r.Location(),
		Err:      err,
	}
}
