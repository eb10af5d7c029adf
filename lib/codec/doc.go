// Package codec implements the hand written streaming codec for the media content
// object graph on top of the token interfaces.
//
// The package focuses on:
//   - Writing every entity in a fixed canonical field order
//   - Reading canonical input without any per field table lookup (fast path)
//   - Accepting any field order through registry dispatch once the fast path fails (fallback)
//   - Enforcing required fields and defaults for absent optional fields on both paths
//   - Decoding pod chains of arbitrary depth without recursion
//
// Key Components:
//
//   - Field registry: FieldID, Lookup and Entity describe the schema. Every entity has a
//     canonical order, a member set and a required set. The table is built at package
//     initialization and never changes, Registry exposes it as a token.Dictionary.
//
//   - Encoder: Writes items as top level objects. Absent optional values are omitted,
//     enumerations go through token.Writer.WriteEnum so that each format picks name or code.
//
//   - Decoder: For each object the fast path compares the next field name with the name
//     expected at the current canonical position (absent optional fields may be skipped).
//     The first mismatch switches the object to the fallback loop, which resolves the
//     remaining names through the registry, rejects names that do not belong to the entity
//     and rejects duplicates. Both paths share the per field value readers.
//
//   - Pod chains: Pods are stored in a media.PodArena. The decoder keeps one frame per open
//     pod object on an explicit stack and fails with a RecursionDepthError once a chain gets
//     deeper than the configured maximum (DefaultMaxPodDepth unless set with WithMaxPodDepth).
//
// Errors:
//
//	Decoding fails with *MalformedInputError, *UnknownFieldError, *MissingFieldError or
//	*RecursionDepthError. Each one matches its sentinel (ErrMalformedInput, ...) with
//	errors.Is. Batch operations wrap the error of an item in an *ItemError. A failed Decode
//	never returns a partially filled item.
//
// Metrics:
//
//	Encoders and decoders count items, decode errors and objects per path in process wide
//	VictoriaMetrics counters labeled with the token format (see metrics.WritePrometheus).
//
// Thread Safety:
//
//	Encoder and Decoder wrap a single token stream and must not be shared between goroutines.
//	The registry is read only and safe for concurrent use.
//
// Usage:
//
//	w := jsontok.NewWriter(out)
//	defer w.Close()
//	if err := codec.NewEncoder(w).Encode(item); err != nil {
//	    // ...
//	}
//
//	r := jsontok.NewBytesReader(data)
//	defer r.Close()
//	item, err := codec.NewDecoder(r).Decode()
package codec
