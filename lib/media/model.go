package media

import (
	"errors"
	"fmt"
)

// ErrInvalidModel is wrapped by every construction invariant violation
var ErrInvalidModel = errors.New("invalid media model")

// --------------------------------------------------------------------------
// Entities
// --------------------------------------------------------------------------

// MediaContent is the root of the object graph
type MediaContent struct {
	Media  Media
	Images []Image
}

// Media describes the main media item of a MediaContent
type Media struct {
	URI       string
	Title     Optional[string]
	Width     int32
	Height    int32
	Format    string
	Duration  int64
	Size      int64
	Bitrate   Optional[int32]
	Persons   []string
	Player    Player
	Copyright Optional[string]
	Pods      PodArena
}

// Image is an image embedded in a MediaContent
type Image struct {
	URI    string
	Title  Optional[string]
	Width  int32
	Height int32
	Size   Size
}

// --------------------------------------------------------------------------
// Validation
// --------------------------------------------------------------------------

// Validate checks the construction invariants of the whole graph.
// The returned error wraps ErrInvalidModel.
func (c *MediaContent) Validate() error {
	if err := c.Media.Validate(); err != nil {
		return fmt.Errorf("media: %w", err)
	}
	for i := range c.Images {
		if err := c.Images[i].Validate(); err != nil {
			return fmt.Errorf("images[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks the invariants of a Media including its pod chains
func (m *Media) Validate() error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidModel, m.Width, m.Height)
	}
	if !m.Player.Valid() {
		return fmt.Errorf("%w: unknown player %s", ErrInvalidModel, m.Player)
	}

	// every pod must be reachable from exactly one head, exactly once
	owner := make([]bool, len(m.Pods.Pods))
	for i, head := range m.Pods.Heads {
		if head == NoPod {
			return fmt.Errorf("%w: pods[%d] is an empty chain", ErrInvalidModel, i)
		}
		err := m.Pods.Walk(head, 0, func(_ int, id PodID, _ Pod) error {
			if owner[id] {
				return fmt.Errorf("%w: pod %d is shared or part of a cycle", ErrInvalidModel, id)
			}
			owner[id] = true
			return nil
		})
		if err != nil {
			if errors.Is(err, ErrChainTooDeep) {
				return fmt.Errorf("%w: pods[%d] is cyclic", ErrInvalidModel, i)
			}
			return fmt.Errorf("pods[%d]: %w", i, err)
		}
	}
	for id, owned := range owner {
		if !owned {
			return fmt.Errorf("%w: pod %d belongs to no chain", ErrInvalidModel, id)
		}
	}
	return nil
}

// Validate checks the invariants of an Image
func (img *Image) Validate() error {
	if img.Width < 0 || img.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidModel, img.Width, img.Height)
	}
	if !img.Size.Valid() {
		return fmt.Errorf("%w: unknown size %s", ErrInvalidModel, img.Size)
	}
	return nil
}

// --------------------------------------------------------------------------
// Equality
// --------------------------------------------------------------------------

// Equal compares two graphs field by field. Nil and empty sequences are equal,
// pod chains are compared by content, not by their position in the arena.
func (c *MediaContent) Equal(o *MediaContent) bool {
	if c == nil || o == nil {
		return c == o
	}
	if !c.Media.Equal(&o.Media) || len(c.Images) != len(o.Images) {
		return false
	}
	for i := range c.Images {
		if c.Images[i] != o.Images[i] {
			return false
		}
	}
	return true
}

// Equal compares two Media values (see MediaContent.Equal)
func (m *Media) Equal(o *Media) bool {
	if m.URI != o.URI || m.Title != o.Title ||
		m.Width != o.Width || m.Height != o.Height ||
		m.Format != o.Format || m.Duration != o.Duration || m.Size != o.Size ||
		m.Bitrate != o.Bitrate || m.Player != o.Player || m.Copyright != o.Copyright {
		return false
	}
	if len(m.Persons) != len(o.Persons) {
		return false
	}
	for i := range m.Persons {
		if m.Persons[i] != o.Persons[i] {
			return false
		}
	}
	return m.Pods.Equal(&o.Pods)
}

// Equal compares the chains of two arenas message by message
func (a *PodArena) Equal(o *PodArena) bool {
	if len(a.Heads) != len(o.Heads) {
		return false
	}
	for i := range a.Heads {
		x, y := a.Heads[i], o.Heads[i]
		for steps := 0; x != NoPod && y != NoPod; steps++ {
			if !a.Contains(x) || !o.Contains(y) || steps > len(a.Pods) {
				return false
			}
			px, py := a.Pods[x], o.Pods[y]
			if px.Message != py.Message {
				return false
			}
			x, y = px.Next, py.Next
		}
		if x != y {
			return false
		}
	}
	return true
}
