package bench

import (
	"bytes"
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/serializer"
)

// Check verifies that s reproduces every item, alone and as a batch, and returns
// the encoded size of each item. A serializer that fails the check is not benchmarked.
func Check(s serializer.ISerializer, items []*media.MediaContent) ([]int, error) {
	sizes := make([]int, len(items))
	for i, item := range items {
		data, err := s.Serialize(item)
		if err != nil {
			return nil, fmt.Errorf("%s: serialize item %d: %w", s.Name(), i, err)
		}
		sizes[i] = len(data)

		got, err := s.Deserialize(data)
		if err != nil {
			return nil, fmt.Errorf("%s: deserialize item %d: %w", s.Name(), i, err)
		}
		if !item.Equal(got) {
			return nil, fmt.Errorf("%s: item %d changed in round trip", s.Name(), i)
		}
	}

	var buf bytes.Buffer
	if err := s.SerializeItems(items, &buf); err != nil {
		return nil, fmt.Errorf("%s: serialize batch: %w", s.Name(), err)
	}
	got, err := s.DeserializeItems(&buf, len(items))
	if err != nil {
		return nil, fmt.Errorf("%s: deserialize batch: %w", s.Name(), err)
	}
	for i := range items {
		if !items[i].Equal(got[i]) {
			return nil, fmt.Errorf("%s: batch item %d changed in round trip", s.Name(), i)
		}
	}
	return sizes, nil
}
