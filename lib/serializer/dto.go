package serializer

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/token"
)

// --------------------------------------------------------------------------
// Library model for the reflective serializers
// --------------------------------------------------------------------------

// The DTOs mirror the canonical field order, so that a reflective JSON encoder
// produces the same document as the manual codec.

type contentDTO struct {
	Media  mediaDTO   `json:"media"`
	Images []imageDTO `json:"images"`
}

type mediaDTO struct {
	URI       string    `json:"uri"`
	Title     *string   `json:"title,omitempty"`
	Width     int32     `json:"width"`
	Height    int32     `json:"height"`
	Format    string    `json:"format"`
	Duration  int64     `json:"duration"`
	Size      int64     `json:"size"`
	Bitrate   *int32    `json:"bitrate,omitempty"`
	Persons   []string  `json:"persons"`
	Player    string    `json:"player"`
	Copyright *string   `json:"copyright,omitempty"`
	Pods      []*podDTO `json:"pods"`
}

type imageDTO struct {
	URI    string  `json:"uri"`
	Title  *string `json:"title,omitempty"`
	Width  int32   `json:"width"`
	Height int32   `json:"height"`
	Size   string  `json:"size"`
}

// podDTO is a pod chain as nested pointers, the shape the reflective libraries expect
type podDTO struct {
	Message string  `json:"message"`
	Pod     *podDTO `json:"pod"`
}

// --------------------------------------------------------------------------
// Transformers
// --------------------------------------------------------------------------

// toDTO converts the canonical model into the library model. Chains longer
// than maxDepth are rejected, which also stops at cyclic arenas.
func toDTO(c *media.MediaContent, maxDepth int) (*contentDTO, error) {
	if c == nil {
		return nil, errors.New("cannot convert nil item")
	}
	m := &c.Media
	dto := &contentDTO{
		Media: mediaDTO{
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
			Pods:      make([]*podDTO, 0, len(m.Pods.Heads)),
		},
		Images: make([]imageDTO, 0, len(c.Images)),
	}
	if dto.Media.Persons == nil {
		dto.Media.Persons = []string{}
	}
	if !m.Player.Valid() {
		return nil, fmt.Errorf("%w: unknown player %s", media.ErrInvalidModel, m.Player)
	}

	for i, head := range m.Pods.Heads {
		if head == media.NoPod {
			return nil, fmt.Errorf("%w: pods[%d] has no head", media.ErrInvalidModel, i)
		}
		var first, last *podDTO
		err := m.Pods.Walk(head, maxDepth, func(_ int, _ media.PodID, p media.Pod) error {
			next := &podDTO{Message: p.Message}
			if last == nil {
				first = next
			} else {
				last.Pod = next
			}
			last = next
			return nil
		})
		if err != nil {
			return nil, depthError(err, maxDepth)
		}
		dto.Media.Pods = append(dto.Media.Pods, first)
	}

	for i := range c.Images {
		img := &c.Images[i]
		if !img.Size.Valid() {
			return nil, fmt.Errorf("%w: unknown size %s", media.ErrInvalidModel, img.Size)
		}
		dto.Images = append(dto.Images, imageDTO{
			URI:    img.URI,
			Title:  img.Title.Ptr(),
			Width:  img.Width,
			Height: img.Height,
			Size:   img.Size.String(),
		})
	}
	return dto, nil
}

// fromDTO converts the library model back. Missing sequences become empty ones,
// nil pointers become absent optional values.
func fromDTO(dto *contentDTO, maxDepth int) (*media.MediaContent, error) {
	d := &dto.Media
	player, ok := media.ParsePlayer(d.Player)
	if !ok {
		return nil, fmt.Errorf("%w: unknown player '%s'", media.ErrInvalidModel, d.Player)
	}
	c := &media.MediaContent{
		Media: media.Media{
			URI:       d.URI,
			Title:     media.FromPtr(d.Title),
			Width:     d.Width,
			Height:    d.Height,
			Format:    d.Format,
			Duration:  d.Duration,
			Size:      d.Size,
			Bitrate:   media.FromPtr(d.Bitrate),
			Persons:   d.Persons,
			Player:    player,
			Copyright: media.FromPtr(d.Copyright),
			Pods:      media.PodArena{Heads: make([]media.PodID, 0, len(d.Pods))},
		},
		Images: make([]media.Image, 0, len(dto.Images)),
	}
	if c.Media.Persons == nil {
		c.Media.Persons = []string{}
	}

	a := &c.Media.Pods
	for i, p := range d.Pods {
		if p == nil {
			return nil, fmt.Errorf("%w: pods[%d] is null", media.ErrInvalidModel, i)
		}
		head := a.New(p.Message)
		prev, depth := head, 1
		for p = p.Pod; p != nil; p = p.Pod {
			if depth++; depth > maxDepth {
				return nil, &codec.RecursionDepthError{Limit: maxDepth, Location: token.Location{Offset: -1}}
			}
			id := a.New(p.Message)
			a.Link(prev, id)
			prev = id
		}
		a.AddHead(head)
	}

	for i := range dto.Images {
		img := &dto.Images[i]
		size, ok := media.ParseSize(img.Size)
		if !ok {
			return nil, fmt.Errorf("%w: unknown size '%s'", media.ErrInvalidModel, img.Size)
		}
		c.Images = append(c.Images, media.Image{
			URI:    img.URI,
			Title:  media.FromPtr(img.Title),
			Width:  img.Width,
			Height: img.Height,
			Size:   size,
		})
	}
	return c, nil
}

// depthError turns a chain walk failure at the depth limit into the codec error
func depthError(err error, maxDepth int) error {
	if errors.Is(err, media.ErrChainTooDeep) {
		return &codec.RecursionDepthError{Limit: maxDepth, Location: token.Location{Offset: -1}}
	}
	return err
}
