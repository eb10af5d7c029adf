// Package serializer provides complete MediaContent serializers on top of the codec
// and the token formats. It defines a common interface and multiple implementations
// that the benchmark harness and the CLI pick by name.
//
// The package focuses on:
//   - Providing a consistent interface for single items and batches
//   - Offering the hand written codec in both token formats
//   - Offering reflective serializers as a baseline to compare against
//   - Keeping presence of optional values intact in every format
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must satisfy.
//     Batches are written back to back without a count, readers are told how many
//     items to expect.
//
//   - manualSerializerImpl ("json/manual", "bin/manual"): codec.Encoder and codec.Decoder
//     over jsontok or bintok. Field order is canonical, decoding takes the fast path for
//     canonical input and falls back to registry dispatch otherwise.
//
//   - databindSerializerImpl ("json/databind"): Converts the item to DTOs with pointer
//     optionals and nested pod pointers and encodes them with jsoniter. The DTO field order
//     is the canonical one, so both JSON serializers produce the same document.
//
//   - gobSerializerImpl ("gob"): Go's gob encoding over flat DTOs. Pod chains travel as
//     message lists, presence of optional values as a flag byte.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are typically created once and reused throughout the application:
//
//	  s, err := serializer.New("json/manual")
//	  data, err := s.Serialize(item)
//	  // ... store or send data ...
//	  item, err = s.Deserialize(data)
package serializer
