package common

import (
	"bytes"
	"github.com/hengadev/errsx"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

var testSerializerNames = []string{"json/manual", "bin/manual"}

func validBenchConfig() BenchConfig {
	return BenchConfig{
		Serializers:  []string{"json/manual"},
		Modes:        []string{ModeSerialize, ModeParallel},
		Seed:         1,
		Items:        10,
		Images:       2,
		Persons:      2,
		Pods:         2,
		PodDepth:     3,
		OptionalRate: 0.5,
		Parallelism:  4,
		LogLevel:     "info",
	}
}

func TestBenchConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *BenchConfig)
		errKeys []string
	}{
		{
			name:   "valid",
			modify: func(c *BenchConfig) {},
		},
		{
			name: "unknown serializer and mode",
			modify: func(c *BenchConfig) {
				c.Serializers = []string{"xml"}
				c.Modes = []string{"warmup"}
			},
			errKeys: []string{"serializers", "modes"},
		},
		{
			name: "empty lists",
			modify: func(c *BenchConfig) {
				c.Serializers = nil
				c.Modes = nil
			},
			errKeys: []string{"serializers", "modes"},
		},
		{
			name: "numbers out of range",
			modify: func(c *BenchConfig) {
				c.Items = 0
				c.PodDepth = 0
				c.OptionalRate = 1.5
				c.Parallelism = 0
				c.Pods = -1
				c.MaxPodDepth = -1
			},
			errKeys: []string{"items", "pod-depth", "optional-rate", "parallelism", "content", "max-pod-depth"},
		},
		{
			name:    "log level",
			modify:  func(c *BenchConfig) { c.LogLevel = "verbose" },
			errKeys: []string{"log-level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validBenchConfig()
			tt.modify(&conf)
			err := conf.Validate(testSerializerNames)

			if len(tt.errKeys) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errs, ok := err.(errsx.Map)
			require.True(t, ok, "expected error to be of type errsx.Map")
			assert.Equal(t, len(tt.errKeys), len(errs))
			for _, key := range tt.errKeys {
				_, ok := errs[key]
				assert.True(t, ok, "expected key '%s' in errsx.Map", key)
			}
		})
	}
}

func TestCodecConfigValidate(t *testing.T) {
	conf := CodecConfig{Serializer: "bin/manual", LogLevel: "WARN"}
	assert.NoError(t, conf.Validate(testSerializerNames))

	conf = CodecConfig{Serializer: "gob", MaxPodDepth: -3, LogLevel: "info"}
	err := conf.Validate(testSerializerNames)
	require.Error(t, err)
	errs, ok := err.(errsx.Map)
	require.True(t, ok)
	assert.Len(t, errs, 2)
}

func TestConfigString(t *testing.T) {
	bench := validBenchConfig()
	s := bench.String()
	assert.Contains(t, s, "BENCHMARK")
	assert.Contains(t, s, "json/manual")
	assert.Contains(t, s, "serialize, parallel")
	assert.Contains(t, s, "default")

	codecConf := CodecConfig{Serializer: "gob", MaxPodDepth: 12, LogLevel: "debug"}
	s = codecConf.String()
	assert.Contains(t, s, "CODEC")
	assert.Contains(t, s, "12")
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"error":   logger.ERROR,
	} {
		got, err := parseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseLogLevel("trace")
	assert.Error(t, err)
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerFactory(&buf, false)("codec")

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.SetLevel(logger.WARNING)
	l.Infof("hidden %d", 3)
	l.Warningf("careful %s", "now")
	l.Errorf("broken")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "careful now")
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "pkg=codec")
	assert.Equal(t, 3, strings.Count(out, "\n"))

	l.SetLevel(logger.CRITICAL)
	assert.Panics(t, func() { l.Panicf("fatal %d", 4) })
}
