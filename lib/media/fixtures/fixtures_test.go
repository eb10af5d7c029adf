package fixtures

import (
	"bytes"
	"errors"
	"github.com/ValentinKolb/mediaser/lib/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestStandardIsValid(t *testing.T) {
	c := Standard()
	require.NoError(t, c.Validate())
	assert.Equal(t, 2, c.Media.Pods.Len())
	assert.Len(t, c.Images, 2)
	assert.True(t, c.Equal(Standard()))
}

func TestGenerateIsDeterministic(t *testing.T) {
	opts := DefaultGenerateOptions()
	a := Generate(42, 20, opts)
	b := Generate(42, 20, opts)
	c := Generate(43, 20, opts)

	require.Len(t, a, 20)
	differs := false
	for i := range a {
		require.NoError(t, a[i].Validate())
		assert.True(t, a[i].Equal(b[i]), "item %d", i)
		if !a[i].Equal(c[i]) {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should give different items")
}

func TestGenerateShape(t *testing.T) {
	opts := GenerateOptions{Images: 3, Persons: 1, Pods: 4, PodDepth: 5, OptionalRate: 0}
	for _, c := range Generate(1, 10, opts) {
		assert.Len(t, c.Images, 3)
		assert.Len(t, c.Media.Persons, 1)
		assert.Equal(t, 4, c.Media.Pods.Len())
		assert.False(t, c.Media.Title.IsPresent())
		assert.False(t, c.Media.Bitrate.IsPresent())
		for i := 0; i < c.Media.Pods.Len(); i++ {
			depth, err := c.Media.Pods.Depth(c.Media.Pods.Heads[i])
			require.NoError(t, err)
			assert.True(t, depth >= 1 && depth <= 5, "depth %d", depth)
		}
	}
}

func TestDeepPodChain(t *testing.T) {
	c := DeepPodChain(1000)
	require.NoError(t, c.Validate())
	last := c.Media.Pods.Len() - 1
	depth, err := c.Media.Pods.Depth(c.Media.Pods.Heads[last])
	require.NoError(t, err)
	assert.Equal(t, 1000, depth)
}

func TestLoadSampleFile(t *testing.T) {
	items, err := LoadFile("testdata/sample.yaml")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.True(t, items[0].Equal(Standard()), "first item is the standard item")

	silent := items[1]
	assert.Equal(t, media.PlayerFlash, silent.Media.Player)
	assert.False(t, silent.Media.Title.IsPresent())
	assert.Equal(t, media.Some[int32](0), silent.Media.Bitrate, "zero bitrate is present")
	assert.Equal(t, media.Some(""), silent.Media.Copyright, "empty copyright is present")
	assert.NotNil(t, silent.Media.Persons)
	assert.Empty(t, silent.Images)
}

func TestDumpLoadRoundTrip(t *testing.T) {
	items := append([]*media.MediaContent{Standard()}, Generate(7, 5, DefaultGenerateOptions())...)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, items))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, len(items))
	for i := range items {
		assert.True(t, items[i].Equal(loaded[i]), "item %d", i)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	testCases := map[string]string{
		"unknown player": "- media: {uri: x, player: VLC}\n  images: []\n",
		"unknown size":   "- media: {uri: x, player: JAVA}\n  images: [{uri: y, size: HUGE}]\n",
		"empty chain":    "- media: {uri: x, player: JAVA, pods: [[]]}\n",
		"negative width": "- media: {uri: x, player: JAVA, width: -1}\n",
	}
	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, media.ErrInvalidModel), "got %v", err)
		})
	}

	_, err := Load(strings.NewReader("- media: {uri: x, player: JAVA, colour: red}\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoadEmpty(t *testing.T) {
	items, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}
