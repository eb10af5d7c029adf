// Package jsontok implements the token.Reader and token.Writer interfaces for JSON
// using the json-iterator library.
//
// The Reader wraps a jsoniter Iterator and exposes the document as a flat token
// sequence, the Writer wraps a pooled jsoniter Stream and inserts separators on its
// own. Numbers are kept as text and parsed on demand with Int32 / Int64, so a value
// that does not fit is reported by the caller with the field it belongs to.
//
// Byte offsets are not tracked; Location reports the token count and nesting depth.
package jsontok
