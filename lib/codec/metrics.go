package codec

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
)

// Stats counts what a Decoder did since it was created
type Stats struct {
	// Items is the number of successfully decoded items
	Items uint64
	// FastPathObjects is the number of objects decoded entirely in canonical order
	FastPathObjects uint64
	// FallbackObjects is the number of objects where at least one field went through registry dispatch
	FallbackObjects uint64
}

// codecMetrics are the process wide counters of one token format.
// Counters are looked up once per Encoder / Decoder and updated once per item.
type codecMetrics struct {
	encoded         *metrics.Counter
	decoded         *metrics.Counter
	decodeErrors    *metrics.Counter
	fastObjects     *metrics.Counter
	fallbackObjects *metrics.Counter
}

func metricsFor(format string) *codecMetrics {
	return &codecMetrics{
		encoded:         metrics.GetOrCreateCounter(fmt.Sprintf(`mediaser_codec_encoded_items_total{format=%q}`, format)),
		decoded:         metrics.GetOrCreateCounter(fmt.Sprintf(`mediaser_codec_decoded_items_total{format=%q}`, format)),
		decodeErrors:    metrics.GetOrCreateCounter(fmt.Sprintf(`mediaser_codec_decode_errors_total{format=%q}`, format)),
		fastObjects:     metrics.GetOrCreateCounter(fmt.Sprintf(`mediaser_codec_objects_total{format=%q,path="fast"}`, format)),
		fallbackObjects: metrics.GetOrCreateCounter(fmt.Sprintf(`mediaser_codec_objects_total{format=%q,path="fallback"}`, format)),
	}
}
