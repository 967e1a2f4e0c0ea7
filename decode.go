package strictjson

import "math"

// Decoder is a pure transform from an annotated input tree to either a
// non-empty located error collection or a decoded value plus an
// equal-or-more-used rewrite of the tree. Decoders observe nothing outside
// the tree they receive; the same input always yields the same output.
type Decoder[T any] struct {
	run runFunc[T]
}

// runFunc is the internal decoder contract. The strip flag selects the
// union-usage variant: the returned tree then carries usage even on failure,
// accumulated across every attempted branch, which only Strip consumes.
type runFunc[T any] func(av annotated, strip bool) outcome[T]

type outcome[T any] struct {
	av    annotated
	value T
	warns []Located[Note]
	errs  Errors // nil means success
}

func fromFunc[T any](fn runFunc[T]) Decoder[T] { return Decoder[T]{run: fn} }

// mismatch builds the invalid_type failure carrying the original, unaltered
// rendering of the node. The node itself counts as inspected: its kind was
// consulted, so a minimized document must keep it for the error to
// reproduce.
func mismatch[T any](av annotated, expected string) outcome[T] {
	value := av.value()
	return outcome[T]{
		av:   markUsed(av),
		errs: Errors{Here(Failure{Code: CodeInvalidType, Expected: expected, Value: value})},
	}
}

// ---- scalar primitives ----

// String decodes a JSON string.
func String() Decoder[string] {
	return fromFunc(func(av annotated, strip bool) outcome[string] {
		if av.kind != KindString {
			return mismatch[string](av, "a string")
		}
		return outcome[string]{av: markUsed(av), value: av.str}
	})
}

// Bool decodes a JSON boolean.
func Bool() Decoder[bool] {
	return fromFunc(func(av annotated, strip bool) outcome[bool] {
		if av.kind != KindBool {
			return mismatch[bool](av, "a bool")
		}
		return outcome[bool]{av: markUsed(av), value: av.b}
	})
}

// Int decodes a JSON number with zero fractional part. A number with a
// non-zero fraction is a distinct mismatch, never a silent truncation.
func Int() Decoder[int64] {
	return fromFunc(func(av annotated, strip bool) outcome[int64] {
		if av.kind != KindNumber {
			return mismatch[int64](av, "an int")
		}
		if i, err := av.num.Int64(); err == nil {
			return outcome[int64]{av: markUsed(av), value: i}
		}
		// 1.0 and 1e3 are integers in disguise; 1.5 is not.
		if f, err := av.num.Float64(); err == nil {
			if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
				return outcome[int64]{av: markUsed(av), value: int64(f)}
			}
		}
		return mismatch[int64](av, "an int")
	})
}

// Float decodes any JSON number as a float64.
func Float() Decoder[float64] {
	return fromFunc(func(av annotated, strip bool) outcome[float64] {
		if av.kind != KindNumber {
			return mismatch[float64](av, "a number")
		}
		f, err := av.num.Float64()
		if err != nil {
			return mismatch[float64](av, "a number")
		}
		return outcome[float64]{av: markUsed(av), value: f}
	})
}

// Null succeeds only on JSON null, yielding the caller-supplied replacement.
func Null[T any](replacement T) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		if av.kind != KindNull {
			return mismatch[T](av, "null")
		}
		return outcome[T]{av: markUsed(av), value: replacement}
	})
}

// AnyValue extracts the current value without decoding it, marking the whole
// subtree used. This is the escape hatch for "I don't want warnings about
// this subtree."
func AnyValue() Decoder[Value] {
	return fromFunc(func(av annotated, strip bool) outcome[Value] {
		return outcome[Value]{av: markUsedDeep(av), value: av.value()}
	})
}

// ---- shape ascertainment ----

// IsObject succeeds when the current value is an object. Only the container
// is marked used; unread members still produce warnings.
func IsObject() Decoder[struct{}] {
	return fromFunc(func(av annotated, strip bool) outcome[struct{}] {
		if av.kind != KindObject {
			return mismatch[struct{}](av, "an object")
		}
		return outcome[struct{}]{av: markUsed(av)}
	})
}

// IsArray succeeds when the current value is an array. Only the container is
// marked used.
func IsArray() Decoder[struct{}] {
	return fromFunc(func(av annotated, strip bool) outcome[struct{}] {
		if av.kind != KindArray {
			return mismatch[struct{}](av, "an array")
		}
		return outcome[struct{}]{av: markUsed(av)}
	})
}

// ---- trivial decoders ----

// Succeed ignores the input entirely and yields v. Nothing is marked used.
func Succeed[T any](v T) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		return outcome[T]{av: av, value: v}
	})
}

// Fail always fails with a custom message attached to the current value.
func Fail[T any](message string) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		return outcome[T]{
			av:   av,
			errs: Errors{Here(Failure{Code: CodeFailure, Message: message, Value: av.value()})},
		}
	})
}

// Warn attaches a custom warning to the current value whenever d succeeds.
func Warn[T any](message string, d Decoder[T]) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		out := d.run(av, strip)
		if out.errs != nil {
			return out
		}
		warns := make([]Located[Note], 0, len(out.warns)+1)
		warns = append(warns, Here(Note{Code: CodeWarning, Message: message, Value: av.value()}))
		warns = append(warns, out.warns...)
		out.warns = warns
		return out
	})
}
