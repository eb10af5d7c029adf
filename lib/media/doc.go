// Package media defines the canonical in-memory model of the benchmark object graph:
// a MediaContent owning one Media and a list of Images, where the Media carries a list
// of recursive Pod comment chains.
//
// The package focuses on:
//   - Plain data containers that every serializer converts from and to
//   - Explicit presence for optional fields (Optional) instead of sentinel values
//   - Closed enumerations (Player, Size) with name and integer code lookups
//   - An index based arena for the recursive pod chains (PodArena)
//
// Key Components:
//
//   - MediaContent, Media, Image: The entity records. Required fields are plain values,
//     optional fields are wrapped in Optional so that a zero value (e.g. a bitrate of 0)
//     is never confused with absence.
//
//   - PodArena: Stores all pods of a Media in one slice. Each pod links to its nested
//     pod by index, NoPod terminates a chain. Walking a chain is iterative and bounded
//     by a caller supplied depth, so neither encoding nor decoding recurses.
//
//   - Equal / Validate: Semantic comparison (independent of arena layout and of nil vs.
//     empty slices) and construction time invariant checks.
//
// Thread Safety:
//
//	Values are plain data. They are not mutated by the serializers and can be shared
//	read-only between goroutines.
package media
