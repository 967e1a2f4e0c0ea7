package strictjson

import (
	"fmt"
	"io"

	eng "github.com/reoring/strictjson/internal/engine"
)

// Outcome is the four-way result of a decode invocation. This split, rather
// than a plain value/error pair, is the primary compatibility surface:
// invalid input is detected before any decoder runs and is disjoint from
// decoder-level errors, and warnings ride alongside a successful value.
type Outcome int

const (
	OutcomeBadInput Outcome = iota
	OutcomeErrors
	OutcomeWithWarnings
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBadInput:
		return "bad-input"
	case OutcomeErrors:
		return "errors"
	case OutcomeWithWarnings:
		return "with-warnings"
	case OutcomeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Result carries the decode outcome. Value is meaningful for
// OutcomeSuccess and OutcomeWithWarnings, Errors for OutcomeErrors,
// Warnings for OutcomeWithWarnings, and InputErr for OutcomeBadInput.
type Result[T any] struct {
	Outcome  Outcome
	Value    T
	Errors   Errors
	Warnings Warnings
	InputErr error
}

// DupPolicy mirrors the engine's duplicate key policy at the public surface.
type DupPolicy int

const (
	DupIgnore DupPolicy = iota // last key wins, silently
	DupWarn                    // decode proceeds, a warning is attached
	DupError                   // duplicates are invalid input
)

// DecodeOpt bundles tokenizer-level options. The zero value imposes no
// limits and ignores duplicate keys, matching encoding/json behavior.
type DecodeOpt struct {
	MaxDepth       int
	MaxBytes       int64
	OnDuplicateKey DupPolicy
}

// DecodeValue runs a decoder against a pre-parsed value.
func DecodeValue[T any](d Decoder[T], v Value) Result[T] {
	return finishDecode(d, v, nil)
}

// DecodeAny converts a generic Go value (the output of any standard JSON
// parser) and runs the decoder against it. Non-representable values map to
// the bad-input outcome.
func DecodeAny[T any](d Decoder[T], v any) Result[T] {
	cv, err := FromAny(v)
	if err != nil {
		return Result[T]{Outcome: OutcomeBadInput, InputErr: err}
	}
	return finishDecode(d, cv, nil)
}

// DecodeBytes tokenizes data with the current driver and runs the decoder.
// Malformed syntax, trailing garbage, and enforcement failures (depth,
// bytes, duplicate keys at DupError) all map to the bad-input outcome.
func DecodeBytes[T any](d Decoder[T], data []byte, opts ...DecodeOpt) Result[T] {
	return decodeSource(d, JSONBytes(data), opts)
}

// DecodeString is DecodeBytes over a string.
func DecodeString[T any](d Decoder[T], data string, opts ...DecodeOpt) Result[T] {
	return DecodeBytes(d, []byte(data), opts...)
}

// DecodeReader tokenizes the reader with the current driver and runs the
// decoder.
func DecodeReader[T any](d Decoder[T], r io.Reader, opts ...DecodeOpt) Result[T] {
	return decodeSource(d, JSONReader(r), opts)
}

func decodeSource[T any](d Decoder[T], src Source, opts []DecodeOpt) Result[T] {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	var dupNotes Warnings
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			dupNotes = append(dupNotes, Here(Note{Code: si.Code, Message: si.Message + " at " + si.Path}))
		},
	})
	v, err := valueFromSource(enforced)
	if err != nil {
		return Result[T]{Outcome: OutcomeBadInput, InputErr: err}
	}
	return finishDecode(d, v, dupNotes)
}

// finishDecode runs the decoder and derives the outcome: decoder failure
// reports errors; otherwise the final rewritten tree is scanned for input
// the decoder never looked at.
func finishDecode[T any](d Decoder[T], v Value, extra Warnings) Result[T] {
	out := d.run(annotate(v), false)
	if out.errs != nil {
		return Result[T]{Outcome: OutcomeErrors, Errors: out.errs}
	}
	warns := make(Warnings, 0, len(extra)+len(out.warns))
	warns = append(warns, extra...)
	warns = append(warns, out.warns...)
	warns = append(warns, collectUnused(out.av)...)
	if len(warns) > 0 {
		return Result[T]{Outcome: OutcomeWithWarnings, Value: out.value, Warnings: warns}
	}
	return Result[T]{Outcome: OutcomeSuccess, Value: out.value}
}

func toEngineDup(p DupPolicy) eng.DupPolicy {
	switch p {
	case DupWarn:
		return eng.DupWarn
	case DupError:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// Strict reinterprets a success-with-warnings result as a failure whose
// error collection is built from the same payloads at the same paths. Other
// outcomes pass through unchanged.
func Strict[T any](r Result[T]) Result[T] {
	if r.Outcome != OutcomeWithWarnings {
		return r
	}
	var zero T
	return Result[T]{
		Outcome: OutcomeErrors,
		Value:   zero,
		Errors:  mapLocated(r.Warnings, failureOf),
	}
}

// Classic collapses the four-way outcome into a conventional (value, error)
// pair for embedding where only that contract is understood. Warnings are
// dropped; error text comes from the reporting component.
func Classic[T any](d Decoder[T], data []byte, opts ...DecodeOpt) (T, error) {
	r := DecodeBytes(d, data, opts...)
	var zero T
	switch r.Outcome {
	case OutcomeBadInput:
		return zero, fmt.Errorf("strictjson: invalid input: %w", r.InputErr)
	case OutcomeErrors:
		return zero, r.Errors
	default:
		return r.Value, nil
	}
}

// Report renders the result's errors or warnings as human-readable text; an
// empty string means plain success.
func (r Result[T]) Report() string {
	switch r.Outcome {
	case OutcomeBadInput:
		return fmt.Sprintf("invalid input: %v", r.InputErr)
	case OutcomeErrors:
		return ErrorsToString(r.Errors)
	case OutcomeWithWarnings:
		return WarningsToString(r.Warnings)
	default:
		return ""
	}
}
