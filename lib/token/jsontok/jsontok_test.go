package jsontok

import (
	"bytes"
	"errors"
	"github.com/ValentinKolb/mediaser/lib/token"
	"strings"
	"testing"
)

func readAll(r token.Reader) ([]token.Kind, error) {
	defer r.Close()
	var kinds []token.Kind
	for k := r.NextToken(); k != token.EOF; k = r.NextToken() {
		if k == token.Invalid {
			return kinds, r.Err()
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteStartObject()
	w.WriteFieldName("uri")
	w.WriteString("http://x/\"y\"")
	w.WriteFieldName("player")
	w.WriteEnum(1, "FLASH")
	w.WriteFieldName("pod")
	w.WriteNull()
	w.WriteEndObject()
	w.WriteStartArray()
	w.WriteEndArray()
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	expected := `{"uri":"http://x/\"y\"","player":"FLASH","pod":null}` + "\n[]"
	if buf.String() != expected {
		t.Errorf("expected %s, got %s", expected, buf.String())
	}
}

func TestReaderAcceptsWhitespace(t *testing.T) {
	doc := " {\n  \"a\" : [ 1 , true , false ] ,\n  \"b\" : { }\n}\n\n"
	kinds, err := readAll(NewReader(strings.NewReader(doc)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{
		token.StartObject, token.FieldName, token.StartArray, token.Number, token.Bool, token.Bool, token.EndArray,
		token.FieldName, token.StartObject, token.EndObject, token.EndObject,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestReaderSyntaxErrors(t *testing.T) {
	testCases := map[string]string{
		"missing colon":    `{"a" 1}`,
		"missing comma":    `{"a":1 "b":2}`,
		"bare word":        `{"a":nope}`,
		"unclosed object":  `{"a":1`,
		"unclosed array":   `{"a":[1,2`,
		"unquoted key":     `{a:1}`,
		"stray close":      `]`,
		"unterminated str": `{"a":"abc`,
		"nested no comma":  `{"a":{"x":1} "b":2}`,
	}
	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := readAll(NewBytesReader([]byte(doc)))
			if err == nil {
				t.Fatalf("expected an error for %s", doc)
			}
			if !errors.Is(err, token.ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestReaderEmptyFieldNames(t *testing.T) {
	doc := `{"":1,"a":{"x":true,"":{"":null}},"b":{}}`
	want := []token.Kind{
		token.StartObject, token.FieldName, token.Number,
		token.FieldName, token.StartObject,
		token.FieldName, token.Bool,
		token.FieldName, token.StartObject, token.FieldName, token.Null, token.EndObject,
		token.EndObject,
		token.FieldName, token.StartObject, token.EndObject,
		token.EndObject,
	}
	wantNames := []string{"", "a", "x", "", "", "b"}

	readers := map[string]*Reader{
		"stream": NewReader(strings.NewReader(doc)),
		"bytes":  NewBytesReader([]byte(doc)),
	}
	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			defer r.Close()
			var names []string
			for i, k := range want {
				got := r.NextToken()
				if got != k {
					t.Fatalf("token %d: expected %s, got %s (%v)", i, k, got, r.Err())
				}
				if got == token.FieldName {
					names = append(names, r.CurrentName())
				}
			}
			if r.NextToken() != token.EOF {
				t.Fatalf("expected EOF, got %s (%v)", r.Current(), r.Err())
			}
			if len(names) != len(wantNames) {
				t.Fatalf("expected names %q, got %q", wantNames, names)
			}
			for i := range wantNames {
				if names[i] != wantNames[i] {
					t.Errorf("name %d: expected %q, got %q", i, wantNames[i], names[i])
				}
			}
		})
	}
}

func TestReaderNumbers(t *testing.T) {
	r := NewBytesReader([]byte(`[2147483647, -2147483648, 1.5, 9223372036854775807]`))
	defer r.Close()
	r.NextToken()

	r.NextToken()
	if v, err := r.Int32(); err != nil || v != 2147483647 {
		t.Errorf("max int32: got %d, %v", v, err)
	}
	r.NextToken()
	if v, err := r.Int32(); err != nil || v != -2147483648 {
		t.Errorf("min int32: got %d, %v", v, err)
	}
	r.NextToken()
	if _, err := r.Int64(); err == nil {
		t.Errorf("fractions are not integers")
	}
	if r.Text() != "1.5" {
		t.Errorf("expected text 1.5, got %s", r.Text())
	}
	r.NextToken()
	if v, err := r.Int64(); err != nil || v != 9223372036854775807 {
		t.Errorf("max int64: got %d, %v", v, err)
	}
}

func TestLocation(t *testing.T) {
	r := NewBytesReader([]byte(`{"a":{"b":1}}`))
	defer r.Close()
	for i := 0; i < 4; i++ {
		r.NextToken()
	}
	loc := r.Location()
	if loc.Offset != -1 || loc.Token != 4 || loc.Depth != 2 {
		t.Errorf("unexpected location %+v", loc)
	}
}
