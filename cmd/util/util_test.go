package util

import (
	"errors"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/common"
	"github.com/ValentinKolb/mediaser/lib/media/fixtures"
	"github.com/ValentinKolb/mediaser/lib/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap)
	}
	assert.Equal(t, "short text", WrapString("  short   text "))
	assert.Equal(t, "", WrapString(""))
}

func TestGetSerializer(t *testing.T) {
	s, err := GetSerializer(&common.CodecConfig{Serializer: serializer.NameBinaryManual, LogLevel: "info"})
	require.NoError(t, err)
	assert.Equal(t, serializer.NameBinaryManual, s.Name())

	_, err = GetSerializer(&common.CodecConfig{Serializer: "xml", LogLevel: "info"})
	assert.Error(t, err)

	// the depth limit reaches the serializer
	s, err = GetSerializer(&common.CodecConfig{Serializer: serializer.NameJSONManual, MaxPodDepth: 2, LogLevel: "info"})
	require.NoError(t, err)
	_, err = s.Serialize(fixtures.DeepPodChain(3))
	assert.True(t, errors.Is(err, codec.ErrRecursionDepth), "expected depth error, got %v", err)
}

func TestInputOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	out, err := CreateOutput(path)
	require.NoError(t, err)
	_, err = out.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	in, err := OpenInput(path)
	require.NoError(t, err)
	buf := make([]byte, 5)
	_, err = in.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
	require.NoError(t, in.Close())

	_, err = OpenInput(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWriteMetrics(t *testing.T) {
	assert.NoError(t, WriteMetrics(""))

	path := filepath.Join(t.TempDir(), "metrics.txt")
	s, err := serializer.New(serializer.NameJSONManual)
	require.NoError(t, err)
	_, err = s.Serialize(fixtures.Standard())
	require.NoError(t, err)

	require.NoError(t, WriteMetrics(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mediaser_")
}
