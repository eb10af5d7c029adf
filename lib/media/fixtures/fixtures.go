// Package fixtures provides media content samples for tests and benchmarks:
// the classic benchmark item, a seeded random generator and YAML fixture files.
package fixtures

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/media"
	"math/rand"
)

// Standard returns the reference item every serializer is measured with
func Standard() *media.MediaContent {
	c := &media.MediaContent{
		Media: media.Media{
			URI:      "http://javaone.com/keynote.mpg",
			Title:    media.Some("Javaone Keynote"),
			Width:    640,
			Height:   480,
			Format:   "video/mpg4",
			Duration: 18000000, // half an hour in milliseconds
			Size:     58982400, // bitrate * duration in seconds / 8 bits per byte
			Bitrate:  media.Some[int32](262144),
			Persons:  []string{"Bill Gates", "Steve Jobs"},
			Player:   media.PlayerJava,
		},
		Images: []media.Image{
			{
				URI:    "http://javaone.com/keynote_large.jpg",
				Title:  media.Some("Javaone Keynote"),
				Width:  1024,
				Height: 768,
				Size:   media.SizeLarge,
			},
			{
				URI:    "http://javaone.com/keynote_small.jpg",
				Title:  media.Some("Javaone Keynote"),
				Width:  320,
				Height: 240,
				Size:   media.SizeSmall,
			},
		},
	}
	c.Media.Pods.AddChain("The keynote starts", "with a slight delay", "as usual")
	c.Media.Pods.AddChain("Great talk")
	return c
}

// GenerateOptions controls the shape of generated content
type GenerateOptions struct {
	// Images is the number of images per item
	Images int
	// Persons is the number of persons per media
	Persons int
	// Pods is the number of pod chains per media
	Pods int
	// PodDepth is the maximum length of a pod chain (the actual length is random in [1, PodDepth])
	PodDepth int
	// OptionalRate is the probability in [0,1] that an optional field is present
	OptionalRate float64
}

// DefaultGenerateOptions mirror the shape of the standard item
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Images:       2,
		Persons:      2,
		Pods:         2,
		PodDepth:     3,
		OptionalRate: 0.75,
	}
}

// Generate builds n random items. The same seed always yields the same items.
func Generate(seed int64, n int, opts GenerateOptions) []*media.MediaContent {
	rnd := rand.New(rand.NewSource(seed))
	items := make([]*media.MediaContent, n)
	for i := range items {
		items[i] = generateOne(rnd, i, opts)
	}
	return items
}

func generateOne(rnd *rand.Rand, n int, opts GenerateOptions) *media.MediaContent {
	present := func() bool { return rnd.Float64() < opts.OptionalRate }

	c := &media.MediaContent{}
	m := &c.Media
	m.URI = fmt.Sprintf("http://media.example.com/%d/%08x.mpg", n, rnd.Uint32())
	if present() {
		m.Title = media.Some(fmt.Sprintf("Recording %d", rnd.Intn(100000)))
	}
	m.Width = int32(rnd.Intn(4096))
	m.Height = int32(rnd.Intn(2160))
	m.Format = []string{"video/mpg4", "video/webm", "video/quicktime"}[rnd.Intn(3)]
	m.Duration = rnd.Int63n(1 << 32)
	m.Size = rnd.Int63n(1 << 40)
	if present() {
		// zero is a legal bitrate and must survive as present
		m.Bitrate = media.Some(int32(rnd.Intn(1 << 20)))
	}
	m.Persons = make([]string, opts.Persons)
	for i := range m.Persons {
		m.Persons[i] = fmt.Sprintf("Person %d", rnd.Intn(1000))
	}
	if rnd.Intn(2) == 0 {
		m.Player = media.PlayerJava
	} else {
		m.Player = media.PlayerFlash
	}
	if present() {
		m.Copyright = media.Some(fmt.Sprintf("(c) %d Example Corp.", 1990+rnd.Intn(40)))
	}
	for i := 0; i < opts.Pods; i++ {
		depth := 1
		if opts.PodDepth > 1 {
			depth += rnd.Intn(opts.PodDepth)
		}
		messages := make([]string, depth)
		for j := range messages {
			messages[j] = fmt.Sprintf("comment %d.%d", i, j)
		}
		m.Pods.AddChain(messages...)
	}

	c.Images = make([]media.Image, opts.Images)
	for i := range c.Images {
		img := &c.Images[i]
		img.URI = fmt.Sprintf("http://media.example.com/%d/img-%d.jpg", n, i)
		if present() {
			img.Title = media.Some(fmt.Sprintf("Image %d", i))
		}
		img.Width = int32(rnd.Intn(4096))
		img.Height = int32(rnd.Intn(4096))
		if rnd.Intn(2) == 0 {
			img.Size = media.SizeSmall
		} else {
			img.Size = media.SizeLarge
		}
	}
	return c
}

// DeepPodChain returns the standard item with one additional pod chain of the given depth
func DeepPodChain(depth int) *media.MediaContent {
	c := Standard()
	messages := make([]string, depth)
	for i := range messages {
		messages[i] = fmt.Sprintf("level %d", i)
	}
	c.Media.Pods.AddChain(messages...)
	return c
}
