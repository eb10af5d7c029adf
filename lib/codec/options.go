package codec

// DefaultMaxPodDepth is the pod chain depth limit used when none is configured
const DefaultMaxPodDepth = 4096

type options struct {
	maxPodDepth      int
	validateOnEncode bool
}

func defaultOptions() options {
	return options{maxPodDepth: DefaultMaxPodDepth}
}

// Option configures an Encoder or Decoder
type Option func(*options)

// WithMaxPodDepth sets the maximum length of a pod chain. Values below 1 restore the default.
func WithMaxPodDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxPodDepth
		}
		o.maxPodDepth = n
	}
}

// WithEncodeValidation makes the Encoder check the model invariants of every item before writing it
func WithEncodeValidation() Option {
	return func(o *options) {
		o.validateOnEncode = true
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MaxPodDepth returns the pod chain depth limit configured by opts
func MaxPodDepth(opts ...Option) int {
	return applyOptions(opts).maxPodDepth
}
