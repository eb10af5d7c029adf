package common

import (
	"errors"
	"fmt"
	"github.com/hengadev/errsx"
	"slices"
	"strconv"
	"strings"
)

// Benchmark modes understood by the harness
const (
	ModeSerialize   = "serialize"
	ModeDeserialize = "deserialize"
	ModeRoundTrip   = "roundtrip"
	ModeBatch       = "batch"
	ModeParallel    = "parallel"
)

// BenchModes lists all benchmark modes in the order they are run
var BenchModes = []string{ModeSerialize, ModeDeserialize, ModeRoundTrip, ModeBatch, ModeParallel}

// --------------------------------------------------------------------------
// Codec configuration struct
// --------------------------------------------------------------------------

// CodecConfig holds the parameters of the encode and decode commands
type CodecConfig struct {
	// Serializer is the registered name of the serializer
	Serializer string
	// MaxPodDepth limits the length of a pod chain (0 means the codec default)
	MaxPodDepth int
	// ValidateOnEncode checks the model invariants before writing an item
	ValidateOnEncode bool

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *CodecConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Codec")
	addField("Serializer", c.Serializer)
	addField("Max Pod Depth", depthString(c.MaxPodDepth))
	addField("Validate On Encode", strconv.FormatBool(c.ValidateOnEncode))

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	return sb.String()
}

// Validate checks the configuration, all problems are reported at once as an errsx.Map
func (c *CodecConfig) Validate(serializers []string) error {
	errs := errsx.Map{}
	if !slices.Contains(serializers, c.Serializer) {
		errs.Set("serializer", fmt.Errorf("unknown serializer %q, must be one of %s", c.Serializer, strings.Join(serializers, ", ")))
	}
	if c.MaxPodDepth < 0 {
		errs.Set("max-pod-depth", errors.New("must not be negative"))
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		errs.Set("log-level", err)
	}
	return errs.AsError()
}

// --------------------------------------------------------------------------
// Benchmark configuration struct
// --------------------------------------------------------------------------

// BenchConfig holds all parameters of a benchmark run
type BenchConfig struct {
	// Serializers to benchmark, by registered name
	Serializers []string
	// Modes to run, a subset of BenchModes
	Modes []string
	// MaxPodDepth is passed to the serializers (0 means the codec default)
	MaxPodDepth int

	// Content generation
	Seed         int64
	Items        int
	Images       int
	Persons      int
	Pods         int
	PodDepth     int
	OptionalRate float64

	// Parallel mode
	Parallelism int

	// Output
	CSVPath  string
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *BenchConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Benchmark")
	addField("Serializers", strings.Join(c.Serializers, ", "))
	addField("Modes", strings.Join(c.Modes, ", "))
	addField("Max Pod Depth", depthString(c.MaxPodDepth))
	addField("Parallelism", strconv.Itoa(c.Parallelism))

	addSection("Content")
	addField("Seed", strconv.FormatInt(c.Seed, 10))
	addField("Items per Batch", strconv.Itoa(c.Items))
	addField("Images", strconv.Itoa(c.Images))
	addField("Persons", strconv.Itoa(c.Persons))
	addField("Pod Chains", strconv.Itoa(c.Pods))
	addField("Max Chain Length", strconv.Itoa(c.PodDepth))
	addField("Optional Rate", fmt.Sprintf("%.2f", c.OptionalRate))

	addSection("Output")
	if c.CSVPath == "" {
		addField("CSV File", "-")
	} else {
		addField("CSV File", c.CSVPath)
	}
	addField("Log Level", c.LogLevel)
	return sb.String()
}

// Validate checks the configuration, all problems are reported at once as an errsx.Map
func (c *BenchConfig) Validate(serializers []string) error {
	errs := errsx.Map{}
	if len(c.Serializers) == 0 {
		errs.Set("serializers", errors.New("at least one serializer is required"))
	}
	for _, name := range c.Serializers {
		if !slices.Contains(serializers, name) {
			errs.Set("serializers", fmt.Errorf("unknown serializer %q, must be one of %s", name, strings.Join(serializers, ", ")))
		}
	}
	if len(c.Modes) == 0 {
		errs.Set("modes", errors.New("at least one mode is required"))
	}
	for _, mode := range c.Modes {
		if !slices.Contains(BenchModes, mode) {
			errs.Set("modes", fmt.Errorf("unknown mode %q, must be one of %s", mode, strings.Join(BenchModes, ", ")))
		}
	}
	if c.MaxPodDepth < 0 {
		errs.Set("max-pod-depth", errors.New("must not be negative"))
	}
	if c.Items < 1 {
		errs.Set("items", errors.New("must be at least 1"))
	}
	if c.Images < 0 || c.Persons < 0 || c.Pods < 0 {
		errs.Set("content", errors.New("images, persons and pods must not be negative"))
	}
	if c.PodDepth < 1 {
		errs.Set("pod-depth", errors.New("must be at least 1"))
	}
	if c.OptionalRate < 0 || c.OptionalRate > 1 {
		errs.Set("optional-rate", errors.New("must be within [0, 1]"))
	}
	if c.Parallelism < 1 {
		errs.Set("parallelism", errors.New("must be at least 1"))
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		errs.Set("log-level", err)
	}
	return errs.AsError()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func depthString(depth int) string {
	if depth == 0 {
		return "default"
	}
	return strconv.Itoa(depth)
}
