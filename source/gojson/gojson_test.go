package gojson_test

import (
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/strictjson/internal/engine"
	"github.com/reoring/strictjson/source/gojson"
)

func TestTokenStream(t *testing.T) {
	src := gojson.NewBytes([]byte(`{"a": [1, true, null], "b": "s"}`))
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindBeginArray, eng.KindNumber, eng.KindBool, eng.KindNull, eng.KindEndArray,
		eng.KindKey, eng.KindString,
		eng.KindEndObject,
	}
	for i, k := range want {
		tok, err := src.NextToken()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tok.Kind != k {
			t.Fatalf("token %d: got kind %v want %v", i, tok.Kind, k)
		}
	}
	if _, err := src.NextToken(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestNumbersStayTextual(t *testing.T) {
	src := gojson.NewReader(strings.NewReader(`[1.50, 12345678901234567890]`))
	var nums []string
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if tok.Kind == eng.KindNumber {
			nums = append(nums, tok.Number)
		}
	}
	if len(nums) != 2 || nums[0] != "1.50" || nums[1] != "12345678901234567890" {
		t.Fatalf("got %v", nums)
	}
}

func TestMalformedInputSurfacesError(t *testing.T) {
	src := gojson.NewBytes([]byte(`{"a":`))
	var err error
	for err == nil {
		_, err = src.NextToken()
	}
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("truncated input must surface as unexpected EOF, got %v", err)
	}

	src = gojson.NewBytes([]byte(`{"a": 1}`))
	for {
		if _, err = src.NextToken(); err != nil {
			break
		}
	}
	if err != io.EOF {
		t.Fatalf("a complete document must end in clean EOF, got %v", err)
	}
}
