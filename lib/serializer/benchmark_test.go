package serializer

import (
	"bytes"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/ValentinKolb/mediaser/lib/media/fixtures"
	"testing"
)

// benchmarkItems returns a set of items for targeted benchmarking
func benchmarkItems() map[string]*media.MediaContent {
	small := fixtures.DefaultGenerateOptions()
	small.Images, small.Persons, small.Pods = 0, 1, 0

	large := fixtures.DefaultGenerateOptions()
	large.Images, large.Persons, large.Pods, large.PodDepth = 32, 16, 16, 8

	return map[string]*media.MediaContent{
		"Standard":  fixtures.Standard(),
		"Small":     fixtures.Generate(1, 1, small)[0],
		"Large":     fixtures.Generate(1, 1, large)[0],
		"DeepPods":  fixtures.DeepPodChain(512),
		"Generated": fixtures.Generate(2, 1, fixtures.DefaultGenerateOptions())[0],
	}
}

// BenchmarkSerialize benchmarks serialization for all implementations with various items
func BenchmarkSerialize(b *testing.B) {
	items := benchmarkItems()

	for name, factory := range testSerializers {
		for itemName, item := range items {
			b.Run(name+"_"+itemName, func(b *testing.B) {
				serializer := factory()
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := serializer.Serialize(item)
					if err != nil {
						b.Fatalf("Failed to serialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkDeserialize benchmarks deserialization for all implementations with various items
func BenchmarkDeserialize(b *testing.B) {
	items := benchmarkItems()
	serializedData := make(map[string]map[string][]byte)

	// Pre-serialize all items with all serializers
	for name, factory := range testSerializers {
		serializer := factory()
		serializedData[name] = make(map[string][]byte)

		for itemName, item := range items {
			data, err := serializer.Serialize(item)
			if err != nil {
				b.Fatalf("Failed to serialize %s with %s: %v", itemName, name, err)
			}
			serializedData[name][itemName] = data
		}
	}

	// Benchmark deserialization
	for name, factory := range testSerializers {
		for itemName := range items {
			b.Run(name+"_"+itemName, func(b *testing.B) {
				serializer := factory()
				data := serializedData[name][itemName]
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := serializer.Deserialize(data); err != nil {
						b.Fatalf("Failed to deserialize: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkBatch benchmarks a round trip of 100 generated items through one stream
func BenchmarkBatch(b *testing.B) {
	items := fixtures.Generate(3, 100, fixtures.DefaultGenerateOptions())

	for name, factory := range testSerializers {
		b.Run(name, func(b *testing.B) {
			serializer := factory()
			var buf bytes.Buffer
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				buf.Reset()
				if err := serializer.SerializeItems(items, &buf); err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}
				if _, err := serializer.DeserializeItems(&buf, len(items)); err != nil {
					b.Fatalf("Failed to deserialize: %v", err)
				}
			}
		})
	}
}

// BenchmarkSize measures and reports the serialized size for each item
func BenchmarkSize(b *testing.B) {
	items := benchmarkItems()

	for name, factory := range testSerializers {
		serializer := factory()

		for itemName, item := range items {
			b.Run(name+"_"+itemName, func(b *testing.B) {
				data, err := serializer.Serialize(item)
				if err != nil {
					b.Fatalf("Failed to serialize: %v", err)
				}

				// Report the size as a custom metric
				b.ReportMetric(float64(len(data)), "bytes")

				// Minimal loop to satisfy benchmark requirements
				for i := 0; i < b.N; i++ {
					_ = data
				}
			})
		}
	}
}
