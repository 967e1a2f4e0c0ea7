package strictjson_test

import (
	"encoding/json"
	"math"
	"testing"

	strictjson "github.com/reoring/strictjson"
)

func TestValueMarshalPreservesMemberOrder(t *testing.T) {
	v := strictjson.ObjectValue(
		strictjson.Member{Key: "z", Value: strictjson.IntValue(1)},
		strictjson.Member{Key: "a", Value: strictjson.ArrayValue(strictjson.BoolValue(true), strictjson.NullValue())},
	)
	if got := v.String(); got != `{"z":1,"a":[true,null]}` {
		t.Fatalf("got %s", got)
	}
}

func TestValueMarshalEscapesStrings(t *testing.T) {
	v := strictjson.StringValue("a\"b\n\\c")
	b, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round string
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("rendered string is not valid JSON: %v", err)
	}
	if round != "a\"b\n\\c" {
		t.Fatalf("round trip lost content: %q", round)
	}
}

func TestValueNumberKeepsTextualForm(t *testing.T) {
	v := parseValue(t, `{"n": 1.50, "big": 12345678901234567890}`)
	if got := v.String(); got != `{"n":1.50,"big":12345678901234567890}` {
		t.Fatalf("precision lost: %s", got)
	}
}

func TestValueIndent(t *testing.T) {
	if got := strictjson.IntValue(42).Indent("", "  "); got != "42" {
		t.Fatalf("scalars stay on one line, got %q", got)
	}
	v := parseValue(t, `{"a":[1,2]}`)
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if got := v.Indent("", "  "); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestValueEqual(t *testing.T) {
	a := parseValue(t, `{"x":[1,2],"y":"s"}`)
	b := parseValue(t, `{"x":[1,2],"y":"s"}`)
	c := parseValue(t, `{"y":"s","x":[1,2]}`)
	if !a.Equal(b) {
		t.Fatalf("identical documents must compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("member order participates in equality")
	}
	if a.Equal(parseValue(t, `{"x":[1,2],"y":"t"}`)) {
		t.Fatalf("differing leaves must not compare equal")
	}
}

func TestValueZeroIsNull(t *testing.T) {
	var v strictjson.Value
	if !v.IsNull() || v.String() != "null" {
		t.Fatalf("zero value should render as null, got %s", v.String())
	}
}

func TestFromAnySortsMapKeys(t *testing.T) {
	v, err := strictjson.FromAny(map[string]any{"b": 1, "a": "x", "c": true})
	if err != nil {
		t.Fatalf("from any: %v", err)
	}
	if got := v.String(); got != `{"a":"x","b":1,"c":true}` {
		t.Fatalf("got %s", got)
	}
}

func TestFromAnyRejectsNonJSON(t *testing.T) {
	if _, err := strictjson.FromAny(math.NaN()); err == nil {
		t.Fatalf("NaN must be rejected")
	}
	if _, err := strictjson.FromAny(make(chan int)); err == nil {
		t.Fatalf("channels must be rejected")
	}
	if _, err := strictjson.FromAny([]any{1, func() {}}); err == nil {
		t.Fatalf("nested non-JSON values must be rejected")
	}
}

func TestFromAnyNumbers(t *testing.T) {
	v, err := strictjson.FromAny([]any{int(1), int64(2), uint64(math.MaxUint64), json.Number("3.5"), 2.5})
	if err != nil {
		t.Fatalf("from any: %v", err)
	}
	if got := v.String(); got != `[1,2,18446744073709551615,3.5,2.5]` {
		t.Fatalf("got %s", got)
	}
}
