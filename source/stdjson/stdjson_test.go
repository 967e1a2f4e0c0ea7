package stdjson_test

import (
	"io"
	"testing"

	strictjson "github.com/reoring/strictjson"
	eng "github.com/reoring/strictjson/internal/engine"
	"github.com/reoring/strictjson/source/stdjson"
)

func TestTokenStream(t *testing.T) {
	src := stdjson.NewBytes([]byte(`{"a": [1, true, null], "b": "s"}`))
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
		if tok.Offset < 0 {
			t.Fatalf("token %d: offset must be tracked, got %d", i, tok.Offset)
		}
	}
	if _, err := src.NextToken(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestKeyVersusStringValue(t *testing.T) {
	src := stdjson.NewBytes([]byte(`{"k": "v"}`))
	kinds := []eng.Kind{}
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		kinds = append(kinds, tok.Kind)
	}
	if kinds[1] != eng.KindKey || kinds[2] != eng.KindString {
		t.Fatalf("got %v", kinds)
	}
}

func TestDriverSwap(t *testing.T) {
	strictjson.SetDriver(stdjson.Driver())
	defer strictjson.UseDefaultDriver()

	r := strictjson.DecodeBytes(strictjson.Field("a", strictjson.Int()), []byte(`{"a": 1}`))
	if r.Outcome != strictjson.OutcomeSuccess || r.Value != 1 {
		t.Fatalf("got %v (%d)", r.Outcome, r.Value)
	}
}

func TestMaxBytesEnforcement(t *testing.T) {
	strictjson.SetDriver(stdjson.Driver())
	defer strictjson.UseDefaultDriver()

	big := []byte(`{"a": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}`)

	r := strictjson.DecodeBytes(strictjson.AnyValue(), big, strictjson.DecodeOpt{MaxBytes: 10})
	if r.Outcome != strictjson.OutcomeBadInput {
		t.Fatalf("expected bad input past the byte limit, got %v", r.Outcome)
	}

	r = strictjson.DecodeBytes(strictjson.AnyValue(), big, strictjson.DecodeOpt{MaxBytes: int64(len(big))})
	if r.Outcome != strictjson.OutcomeSuccess {
		t.Fatalf("document within the limit should pass, got %v", r.Outcome)
	}
}
