package strictjson

import (
	"errors"
	"fmt"
	"strings"
)

// Failure and warning codes (exported consts for IDE completion and type
// safety by convention).
const (
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeMissingIndex = "missing_index"
	CodeOneOfEmpty   = "one_of_empty"
	CodeOneOfFailed  = "one_of_failed"
	CodeFailure      = "failure"

	CodeUnusedValue  = "unused_value"
	CodeUnusedField  = "unused_field"
	CodeUnusedIndex  = "unused_index"
	CodeWarning      = "warning"
	CodeDuplicateKey = "duplicate_key"
)

// Failure is the payload of one decode error. Code selects the variant; the
// remaining fields carry that variant's data.
type Failure struct {
	Code     string
	Expected string   // invalid_type: the kind the decoder wanted
	Value    Value    // invalid_type/failure: the offending value, unaltered
	Field    string   // required: the missing key
	Index    int      // missing_index: the out-of-range position
	Branches []Errors // one_of_failed: every alternative's error set, in order
	Message  string   // failure: decoder-supplied text
}

// Errors is a non-empty collection of located decode errors. It implements
// error; the full report lives in ErrorsToString.
type Errors []Located[Failure]

// Error summarizes the first few failures.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	shown := 0
	for _, g := range Flatten(e) {
		for _, f := range g.Payloads {
			if shown == maxShown {
				fmt.Fprintf(b, "; ...")
				return b.String()
			}
			if shown > 0 {
				b.WriteString("; ")
			}
			path := g.Path
			if path == "" {
				path = "/"
			}
			fmt.Fprintf(b, "%s at %s", f.Code, path)
			shown++
		}
	}
	return b.String()
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var e Errors
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Note is the payload of one warning: input that decoded fine but was never
// inspected, or a note attached by the decoder author.
type Note struct {
	Code    string
	Value   Value  // the uninspected value
	Message string // warning/duplicate_key: free text
}

// Warnings is a collection of located decode warnings.
type Warnings []Located[Note]

// failureOf converts a warning payload into an error payload at the same
// path; Strict uses this to promote warnings.
func failureOf(n Note) Failure {
	return Failure{Code: n.Code, Value: n.Value, Message: n.Message}
}

func mergeErrors(a, b Errors) Errors {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(Errors, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
