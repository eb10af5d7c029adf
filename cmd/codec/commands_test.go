package codec

import (
	"bytes"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/media/fixtures"
	"github.com/ValentinKolb/mediaser/lib/token/jsontok"
	"testing"
)

func TestEncodeInput(t *testing.T) {
	items, err := encodeInput("", 0, 1)
	if err != nil {
		t.Fatalf("encodeInput failed: %v", err)
	}
	if len(items) != 1 || !items[0].Equal(fixtures.Standard()) {
		t.Errorf("expected the standard item")
	}

	items, err = encodeInput("", 3, 1)
	if err != nil || len(items) != 3 {
		t.Fatalf("expected 3 generated items, got %d, %v", len(items), err)
	}

	items, err = encodeInput("../../lib/media/fixtures/testdata/sample.yaml", 0, 1)
	if err != nil {
		t.Fatalf("failed to read sample fixtures: %v", err)
	}
	if len(items) == 0 {
		t.Errorf("expected items in sample fixtures")
	}

	if _, err := encodeInput("does-not-exist.yaml", 0, 1); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestConvertRoundTrip(t *testing.T) {
	items := append(fixtures.Generate(3, 4, fixtures.DefaultGenerateOptions()), fixtures.Standard())

	var doc bytes.Buffer
	w := jsontok.NewWriter(&doc)
	if err := codec.NewEncoder(w).EncodeItems(items); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// json -> bin
	var bin bytes.Buffer
	r, _ := newTokenReader("json", bytes.NewReader(doc.Bytes()))
	bw, _ := newTokenWriter("bin", &bin)
	n, err := convert(bw, r)
	if err != nil || n != len(items) {
		t.Fatalf("json to bin: got %d values, %v", n, err)
	}
	_ = r.Close()
	if err := bw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// the binary stream must decode to the same items
	br, _ := newTokenReader("bin", bytes.NewReader(bin.Bytes()))
	got, err := codec.NewDecoder(br).DecodeItems(len(items))
	if err != nil {
		t.Fatalf("decode of converted stream failed: %v", err)
	}
	_ = br.Close()
	for i := range items {
		if !got[i].Equal(items[i]) {
			t.Errorf("item %d changed in conversion", i)
		}
	}
}

func TestUnknownTokenFormat(t *testing.T) {
	if _, err := newTokenReader("xml", nil); err == nil {
		t.Errorf("expected error for unknown reader format")
	}
	if _, err := newTokenWriter("xml", nil); err == nil {
		t.Errorf("expected error for unknown writer format")
	}
}

func TestCountingWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := &countingWriter{w: &buf}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("de"))
	if cw.n != 5 || buf.String() != "abcde" {
		t.Errorf("expected 5 bytes, got %d (%q)", cw.n, buf.String())
	}
}
