// Package token defines the streaming token interfaces the media codec is written
// against. A format (JSON, binary) provides a Reader that turns bytes into a flat
// sequence of structural and scalar tokens and a Writer that does the reverse.
//
// The package focuses on:
//   - A small, allocation free pull API (NextToken / Current / CurrentName / Text)
//   - Sticky errors: once a Reader or Writer failed, every later call is a no-op
//     and Err reports the first failure
//   - Locations that point into the input for error messages
//
// Key Components:
//
//   - Reader: Pull parser. NextToken advances and returns the kind of the new current
//     token. For FieldName tokens CurrentName returns the field name, for scalar tokens
//     Text, Int32 and Int64 return the value.
//
//   - Writer: Push generator. Field names and values are written in document order,
//     the writer takes care of separators. Flush pushes buffered output to the sink.
//
//   - Dictionary: Optional mapping between field names and one byte tags, used by
//     compact formats to avoid repeating field names on the wire.
//
// Thread Safety:
//
//	Readers and Writers are stateful and must not be shared between goroutines.
//	Create one per stream.
package token
