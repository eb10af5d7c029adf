package codec

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/token"
)

// Encoder writes MediaContent items to a token stream in canonical field order
type Encoder struct {
	w       token.Writer
	opts    options
	metrics *codecMetrics
}

// NewEncoder creates an encoder on top of w. The encoder does not own w;
// the caller flushes and closes it.
func NewEncoder(w token.Writer, opts ...Option) *Encoder {
	return &Encoder{
		w:       w,
		opts:    applyOptions(opts),
		metrics: metricsFor(w.Format()),
	}
}

// Encode writes one item as a top level object.
// Absent optional fields are omitted, sequences are always written.
func (e *Encoder) Encode(c *media.MediaContent) error {
	if c == nil {
		return errors.New("codec: cannot encode nil item")
	}
	if e.opts.validateOnEncode {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	w := e.w
	w.WriteStartObject()
	w.WriteFieldName(nameMedia)
	if err := e.writeMedia(&c.Media); err != nil {
		return err
	}
	w.WriteFieldName(nameImages)
	w.WriteStartArray()
	for i := range c.Images {
		e.writeImage(&c.Images[i])
	}
	w.WriteEndArray()
	w.WriteEndObject()

	if err := w.Err(); err != nil {
		return err
	}
	e.metrics.encoded.Inc()
	return nil
}

// EncodeItems writes all items back to back. The error of a failed item is an *ItemError.
func (e *Encoder) EncodeItems(items []*media.MediaContent) error {
	for i, c := range items {
		if err := e.Encode(c); err != nil {
			return &ItemError{Index: i, Err: err}
		}
	}
	return nil
}

// Flush flushes the underlying token writer
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

func (e *Encoder) writeMedia(m *media.Media) error {
	w := e.w
	w.WriteStartObject()
	w.WriteFieldName(nameURI)
	w.WriteString(m.URI)
	if title, ok := m.Title.Get(); ok {
		w.WriteFieldName(nameTitle)
		w.WriteString(title)
	}
	w.WriteFieldName(nameWidth)
	w.WriteInt32(m.Width)
	w.WriteFieldName(nameHeight)
	w.WriteInt32(m.Height)
	w.WriteFieldName(nameFormat)
	w.WriteString(m.Format)
	w.WriteFieldName(nameDuration)
	w.WriteInt64(m.Duration)
	w.WriteFieldName(nameSize)
	w.WriteInt64(m.Size)
	if bitrate, ok := m.Bitrate.Get(); ok {
		w.WriteFieldName(nameBitrate)
		w.WriteInt32(bitrate)
	}
	w.WriteFieldName(namePersons)
	w.WriteStartArray()
	for _, p := range m.Persons {
		w.WriteString(p)
	}
	w.WriteEndArray()
	w.WriteFieldName(namePlayer)
	w.WriteEnum(m.Player.Code(), m.Player.String())
	if copyright, ok := m.Copyright.Get(); ok {
		w.WriteFieldName(nameCopyright)
		w.WriteString(copyright)
	}
	w.WriteFieldName(namePods)
	if err := e.writePods(&m.Pods); err != nil {
		return err
	}
	w.WriteEndObject()
	return nil
}

func (e *Encoder) writeImage(img *media.Image) {
	w := e.w
	w.WriteStartObject()
	w.WriteFieldName(nameURI)
	w.WriteString(img.URI)
	if title, ok := img.Title.Get(); ok {
		w.WriteFieldName(nameTitle)
		w.WriteString(title)
	}
	w.WriteFieldName(nameWidth)
	w.WriteInt32(img.Width)
	w.WriteFieldName(nameHeight)
	w.WriteInt32(img.Height)
	w.WriteFieldName(nameSize)
	w.WriteEnum(img.Size.Code(), img.Size.String())
	w.WriteEndObject()
}

// writePods writes every chain as nested objects: message, then pod holding the
// next object or null. The chain is walked iteratively and the closing brackets
// are written in one go at the end.
func (e *Encoder) writePods(a *media.PodArena) error {
	w := e.w
	w.WriteStartArray()
	for i, head := range a.Heads {
		if head == media.NoPod {
			return fmt.Errorf("pods[%d]: %w: empty chain", i, media.ErrInvalidModel)
		}
		depth := 0
		for id := head; id != media.NoPod; {
			if !a.Contains(id) {
				return fmt.Errorf("pods[%d]: %w: pod id %d out of range", i, media.ErrInvalidModel, id)
			}
			depth++
			if depth > e.opts.maxPodDepth {
				return &RecursionDepthError{
					Limit:    e.opts.maxPodDepth,
					Location: token.Location{Offset: -1, Depth: depth},
				}
			}
			p := a.Pods[id]
			w.WriteStartObject()
			w.WriteFieldName(nameMessage)
			w.WriteString(p.Message)
			w.WriteFieldName(namePod)
			id = p.Next
		}
		w.WriteNull()
		for ; depth > 0; depth-- {
			w.WriteEndObject()
		}
	}
	w.WriteEndArray()
	return nil
}
