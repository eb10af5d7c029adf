package serializer

import (
	"bytes"
	"errors"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/media/fixtures"
	"testing"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func(opts ...codec.Option) ISerializer{
	NameJSONManual:   NewJSONManualSerializer,
	NameBinaryManual: NewBinaryManualSerializer,
	NameJSONDatabind: NewJSONDatabindSerializer,
	NameGOB:          NewGOBSerializer,
}

// testItems creates a set of items with different fields filled
func testItems() map[string]*media.MediaContent {
	items := map[string]*media.MediaContent{
		// The reference item
		"standard": fixtures.Standard(),

		// Only required fields, no sequences
		"minimal": {Media: media.Media{URI: "u", Format: "f"}},

		// Present but zero optional values
		"zero optionals": {
			Media: media.Media{
				URI:       "u",
				Title:     media.Some(""),
				Bitrate:   media.Some[int32](0),
				Copyright: media.Some(""),
				Player:    media.PlayerFlash,
			},
			Images: []media.Image{{URI: "i", Title: media.Some(""), Size: media.SizeLarge}},
		},

		// A pod chain far deeper than the usual ones
		"deep pods": fixtures.DeepPodChain(1000),
	}
	for i, c := range fixtures.Generate(7, 5, fixtures.DefaultGenerateOptions()) {
		items["generated "+string(rune('a'+i))] = c
	}
	return items
}

// TestSerializerRoundTrip tests that items can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	items := testItems()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for itemName, item := range items {
				// Serialize
				data, err := serializer.Serialize(item)
				if err != nil {
					t.Errorf("Failed to serialize %s: %v", itemName, err)
					continue
				}

				// Deserialize
				result, err := serializer.Deserialize(data)
				if err != nil {
					t.Errorf("Failed to deserialize %s: %v", itemName, err)
					continue
				}

				// Compare
				if !item.Equal(result) {
					t.Errorf("Item %s doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						itemName, item, result)
				}
			}
		})
	}
}

// TestPresenceSurvives checks that present zero values stay present and absent ones absent
func TestPresenceSurvives(t *testing.T) {
	item := testItems()["zero optionals"]

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			data, err := serializer.Serialize(item)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}
			result, err := serializer.Deserialize(data)
			if err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			if v, ok := result.Media.Bitrate.Get(); !ok || v != 0 {
				t.Errorf("bitrate: expected Some(0), got %v", result.Media.Bitrate)
			}
			if !result.Media.Title.IsPresent() || !result.Media.Copyright.IsPresent() {
				t.Errorf("empty strings must stay present")
			}
			if !result.Images[0].Title.IsPresent() {
				t.Errorf("image title must stay present")
			}
			if result.Media.Persons == nil || result.Images == nil {
				t.Errorf("sequences must not be nil after deserialization")
			}
		})
	}
}

// TestBatchRoundTrip writes items back to back and reads them with an explicit count
func TestBatchRoundTrip(t *testing.T) {
	items := fixtures.Generate(11, 20, fixtures.DefaultGenerateOptions())
	items = append(items, fixtures.Standard())

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			var buf bytes.Buffer
			if err := serializer.SerializeItems(items, &buf); err != nil {
				t.Fatalf("Failed to serialize batch: %v", err)
			}
			data := buf.Bytes()

			result, err := serializer.DeserializeItems(bytes.NewReader(data), len(items))
			if err != nil {
				t.Fatalf("Failed to deserialize batch: %v", err)
			}
			if len(result) != len(items) {
				t.Fatalf("Expected %d items, got %d", len(items), len(result))
			}
			for i := range items {
				if !items[i].Equal(result[i]) {
					t.Errorf("Item %d doesn't match after batch round trip", i)
				}
			}

			// asking for more items than written fails at the first missing one
			_, err = serializer.DeserializeItems(bytes.NewReader(data), len(items)+1)
			var itemErr *codec.ItemError
			if !errors.As(err, &itemErr) || itemErr.Index != len(items) {
				t.Errorf("Expected ItemError at index %d, got %v", len(items), err)
			}
		})
	}
}

// TestEmptyBatch checks that an empty batch writes nothing a reader would need
func TestEmptyBatch(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			var buf bytes.Buffer
			if err := serializer.SerializeItems(nil, &buf); err != nil {
				t.Fatalf("Failed to serialize empty batch: %v", err)
			}
			result, err := serializer.DeserializeItems(&buf, 0)
			if err != nil || len(result) != 0 {
				t.Errorf("Expected no items, got %d, %v", len(result), err)
			}
		})
	}
}

// TestRejectsTrailingData checks that Deserialize consumes exactly one item
func TestRejectsTrailingData(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			data, err := serializer.Serialize(fixtures.Standard())
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}
			twice := append(append([]byte{}, data...), data...)
			if _, err := serializer.Deserialize(twice); err == nil {
				t.Errorf("Expected error for trailing data")
			}
			if _, err := serializer.Deserialize(nil); err == nil {
				t.Errorf("Expected error for empty input")
			}
		})
	}
}

// TestDepthLimit checks that every serializer honors the configured pod depth limit
func TestDepthLimit(t *testing.T) {
	deep := fixtures.DeepPodChain(11)

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			limited := factory(codec.WithMaxPodDepth(10))

			if _, err := limited.Serialize(deep); !errors.Is(err, codec.ErrRecursionDepth) {
				t.Errorf("Serialize: expected ErrRecursionDepth, got %v", err)
			}

			data, err := factory().Serialize(deep)
			if err != nil {
				t.Fatalf("Failed to serialize with default limit: %v", err)
			}
			if _, err := limited.Deserialize(data); !errors.Is(err, codec.ErrRecursionDepth) {
				t.Errorf("Deserialize: expected ErrRecursionDepth, got %v", err)
			}
		})
	}
}

// TestCyclicPodsRejected checks that a cyclic arena never loops forever
func TestCyclicPodsRejected(t *testing.T) {
	item := fixtures.Standard()
	a := &item.Media.Pods
	a.Link(a.Heads[1], a.Heads[1])

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			if _, err := factory(codec.WithMaxPodDepth(64)).Serialize(item); err == nil {
				t.Errorf("Expected error for cyclic pod chain")
			}
		})
	}
}

// TestJSONSerializersAgree checks that the reflective and the hand written JSON
// serializers produce the same document and read each other's output
func TestJSONSerializersAgree(t *testing.T) {
	manual := NewJSONManualSerializer()
	databind := NewJSONDatabindSerializer()

	for name, item := range testItems() {
		t.Run(name, func(t *testing.T) {
			a, err := manual.Serialize(item)
			if err != nil {
				t.Fatalf("manual: %v", err)
			}
			b, err := databind.Serialize(item)
			if err != nil {
				t.Fatalf("databind: %v", err)
			}
			if !bytes.Equal(a, b) {
				t.Errorf("documents differ:\nmanual:   %s\ndatabind: %s", a, b)
			}

			fromDatabind, err := manual.Deserialize(b)
			if err != nil || !item.Equal(fromDatabind) {
				t.Errorf("manual could not read databind output: %v", err)
			}
			fromManual, err := databind.Deserialize(a)
			if err != nil || !item.Equal(fromManual) {
				t.Errorf("databind could not read manual output: %v", err)
			}
		})
	}
}

// TestBinaryIsSmaller checks that the binary format pays off for the reference item
func TestBinaryIsSmaller(t *testing.T) {
	item := fixtures.Standard()
	j, err := NewJSONManualSerializer().Serialize(item)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBinaryManualSerializer().Serialize(item)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) >= len(j) {
		t.Errorf("Expected binary (%d bytes) to be smaller than JSON (%d bytes)", len(b), len(j))
	}
}

// TestNew tests the lookup of serializers by name
func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		if err != nil {
			t.Errorf("New(%s) failed: %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("Expected name %s, got %s", name, s.Name())
		}
	}
	if _, err := New("xml"); err == nil {
		t.Errorf("Expected error for unknown serializer")
	}
	if len(Names()) != len(testSerializers) {
		t.Errorf("Names and testSerializers are out of sync")
	}
}
