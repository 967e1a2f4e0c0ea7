package strictjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"

	eng "github.com/reoring/strictjson/internal/engine"
)

// ValueKind enumerates the JSON value kinds.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object. Member order is preserved for
// display; decoding semantics never depend on it.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable, order-preserving JSON value. The zero Value is
// null. Numbers are carried as json.Number so no precision is lost between
// input and re-rendering.
type Value struct {
	kind ValueKind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  []Member
}

// NullValue returns the JSON null value.
func NullValue() Value { return Value{kind: KindNull} }

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue returns a JSON number from its textual form.
func NumberValue(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// IntValue returns a JSON number holding an integer.
func IntValue(i int64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatInt(i, 10))}
}

// FloatValue returns a JSON number holding a float.
func FloatValue(f float64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// StringValue returns a JSON string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// ArrayValue returns a JSON array of the given items.
func ArrayValue(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue returns a JSON object with the given members, in order.
func ObjectValue(members ...Member) Value { return Value{kind: KindObject, obj: members} }

// Kind reports the JSON kind of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload when the value is a JSON bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload when the value is a JSON number.
func (v Value) AsNumber() (json.Number, bool) { return v.num, v.kind == KindNumber }

// AsString returns the string payload when the value is a JSON string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// Items returns the elements when the value is a JSON array.
func (v Value) Items() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Members returns the key/value pairs when the value is a JSON object.
func (v Value) Members() ([]Member, bool) { return v.obj, v.kind == KindObject }

// MarshalJSON renders the value, preserving member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf []byte
	return v.appendJSON(buf), nil
}

func (v Value) appendJSON(buf []byte) []byte {
	switch v.kind {
	case KindNull:
		return append(buf, "null"...)
	case KindBool:
		if v.b {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case KindNumber:
		if v.num == "" {
			return append(buf, '0')
		}
		return append(buf, v.num...)
	case KindString:
		return appendQuoted(buf, v.str)
	case KindArray:
		buf = append(buf, '[')
		for i, it := range v.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = it.appendJSON(buf)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, m := range v.obj {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendQuoted(buf, m.Key)
			buf = append(buf, ':')
			buf = m.Value.appendJSON(buf)
		}
		return append(buf, '}')
	default:
		return append(buf, "null"...)
	}
}

// appendQuoted escapes s as a JSON string via goccy/go-json, which handles
// the full escaping table.
func appendQuoted(buf []byte, s string) []byte {
	q, err := gojson.Marshal(s)
	if err != nil {
		// strings cannot fail to marshal; keep a safe fallback anyway
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, q...)
}

// String renders the value as compact JSON text.
func (v Value) String() string {
	b, _ := v.MarshalJSON()
	return string(b)
}

// Indent renders the value as indented JSON text with the given prefix.
func (v Value) Indent(prefix, indent string) string {
	b, _ := v.MarshalJSON()
	out, err := appendIndent(nil, b, prefix, indent)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func appendIndent(dst, src []byte, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(dst)
	if err := json.Indent(&buf, src, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Equal reports deep equality, comparing numbers by their textual form and
// object members in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != o.obj[i].Key || !v.obj[i].Value.Equal(o.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FromAny converts a generic Go value (as produced by any standard JSON
// parser) into a Value. Map keys are sorted so the conversion stays
// deterministic. Values outside the JSON-representable kinds (funcs,
// channels, structs, ...) yield an error, which DecodeAny maps to the
// invalid-input outcome.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}, fmt.Errorf("strictjson: %v is not representable in JSON", t)
		}
		return FloatValue(t), nil
	case float32:
		return FromAny(float64(t))
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint:
		return NumberValue(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint8:
		return IntValue(int64(t)), nil
	case uint16:
		return IntValue(int64(t)), nil
	case uint32:
		return IntValue(int64(t)), nil
	case uint64:
		return NumberValue(json.Number(strconv.FormatUint(t, 10))), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, el := range t {
			cv, err := FromAny(el)
			if err != nil {
				return Value{}, fmt.Errorf("strictjson: index %d: %w", i, err)
			}
			items = append(items, cv)
		}
		return ArrayValue(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			cv, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("strictjson: key %q: %w", k, err)
			}
			members = append(members, Member{Key: k, Value: cv})
		}
		return ObjectValue(members...), nil
	default:
		return Value{}, fmt.Errorf("strictjson: value of type %T is not representable in JSON", v)
	}
}

// ---- tree building from a token source ----

// valueFromSource builds a Value from the streaming token source. The source
// must yield exactly one complete JSON value; trailing tokens are rejected.
func valueFromSource(src eng.TokenSource) (Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	v, err := buildValue(src, tok)
	if err != nil {
		return Value{}, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("strictjson: trailing data after top-level value")
	}
	return v, nil
}

func buildValue(src eng.TokenSource, tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return buildObject(src)
	case eng.KindBeginArray:
		return buildArray(src)
	case eng.KindString:
		return StringValue(tok.String), nil
	case eng.KindNumber:
		return NumberValue(json.Number(tok.Number)), nil
	case eng.KindBool:
		return BoolValue(tok.Bool), nil
	case eng.KindNull:
		return NullValue(), nil
	default:
		return Value{}, io.ErrUnexpectedEOF
	}
}

func buildObject(src eng.TokenSource) (Value, error) {
	var members []Member
	for {
		tok, err := src.NextToken()
		if err != nil {
			if err == io.EOF {
				return Value{}, io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
		if tok.Kind == eng.KindEndObject {
			return ObjectValue(members...), nil
		}
		if tok.Kind != eng.KindKey {
			return Value{}, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			if err == io.EOF {
				return Value{}, io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return Value{}, err
		}
		// duplicate policy is enforced at the token layer; here last key wins
		replaced := false
		for i := range members {
			if members[i].Key == tok.String {
				members[i].Value = v
				replaced = true
				break
			}
		}
		if !replaced {
			members = append(members, Member{Key: tok.String, Value: v})
		}
	}
}

func buildArray(src eng.TokenSource) (Value, error) {
	var items []Value
	for {
		tok, err := src.NextToken()
		if err != nil {
			if err == io.EOF {
				return Value{}, io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
		if tok.Kind == eng.KindEndArray {
			return ArrayValue(items...), nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}
