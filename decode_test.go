package strictjson_test

import (
	"strings"
	"testing"

	strictjson "github.com/reoring/strictjson"
)

type account struct {
	ID    int64
	Name  string
	Email string
}

func accountDecoder() strictjson.Decoder[account] {
	return strictjson.Map3(
		func(id int64, name, email string) account {
			return account{ID: id, Name: name, Email: email}
		},
		strictjson.Field("id", strictjson.Int()),
		strictjson.Optional("name", strictjson.String(), "x"),
		strictjson.Field("email", strictjson.String()),
	)
}

func TestDecodeRecordWithOptionalDefault(t *testing.T) {
	r := strictjson.DecodeBytes(accountDecoder(), []byte(`{"id": 123, "email": "a@b.com"}`))
	if r.Outcome != strictjson.OutcomeSuccess {
		t.Fatalf("expected plain success, got %v (errors: %v, warnings: %d)", r.Outcome, r.Errors, len(r.Warnings))
	}
	want := account{ID: 123, Name: "x", Email: "a@b.com"}
	if r.Value != want {
		t.Fatalf("value mismatch: got %+v want %+v", r.Value, want)
	}
}

func TestDecodeReportsAllMissingFieldsAtOnce(t *testing.T) {
	r := strictjson.DecodeBytes(accountDecoder(), []byte(`{}`))
	if r.Outcome != strictjson.OutcomeErrors {
		t.Fatalf("expected errors, got %v", r.Outcome)
	}
	groups := strictjson.Flatten(r.Errors)
	if len(groups) != 1 || len(groups[0].Payloads) != 2 {
		t.Fatalf("expected both missing fields in one pass, got %v", r.Errors)
	}
	fields := []string{groups[0].Payloads[0].Field, groups[0].Payloads[1].Field}
	if fields[0] != "id" || fields[1] != "email" {
		t.Fatalf("expected id then email, got %v", fields)
	}
}

func TestDecodeSingleFieldLeavesNoWarnings(t *testing.T) {
	d := strictjson.Field("a", strictjson.Int())
	r := strictjson.DecodeBytes(d, []byte(`{"a":1}`))
	if r.Outcome != strictjson.OutcomeSuccess {
		t.Fatalf("expected success, got %v (warnings: %v)", r.Outcome, r.Warnings)
	}
	if r.Value != 1 {
		t.Fatalf("got %d", r.Value)
	}
}

func TestSucceedWarnsAboutUntouchedDocument(t *testing.T) {
	r := strictjson.DecodeBytes(strictjson.Succeed(5), []byte(`[]`))
	if r.Outcome != strictjson.OutcomeWithWarnings {
		t.Fatalf("expected success with warnings, got %v", r.Outcome)
	}
	if r.Value != 5 {
		t.Fatalf("got %d", r.Value)
	}
	groups := strictjson.Flatten(r.Warnings)
	if len(groups) != 1 || len(groups[0].Payloads) != 1 {
		t.Fatalf("expected exactly one warning, got %v", groups)
	}
	if got := groups[0].Payloads[0].Code; got != strictjson.CodeUnusedValue {
		t.Fatalf("expected unused_value, got %s", got)
	}
}

func TestUnusedFieldWarningCarriesPath(t *testing.T) {
	d := strictjson.Field("a", strictjson.Int())
	r := strictjson.DecodeBytes(d, []byte(`{"a":1,"b":2}`))
	if r.Outcome != strictjson.OutcomeWithWarnings {
		t.Fatalf("expected warnings, got %v", r.Outcome)
	}
	groups := strictjson.Flatten(r.Warnings)
	if len(groups) != 1 || groups[0].Path != "/b" {
		t.Fatalf("expected a warning at /b, got %v", groups)
	}
	if got := groups[0].Payloads[0].Code; got != strictjson.CodeUnusedField {
		t.Fatalf("expected unused_field, got %s", got)
	}
}

func TestMalformedInputIsBadInputNotDecodeError(t *testing.T) {
	r := strictjson.DecodeBytes(strictjson.AnyValue(), []byte(`{`))
	if r.Outcome != strictjson.OutcomeBadInput {
		t.Fatalf("expected bad input, got %v", r.Outcome)
	}
	if r.InputErr == nil {
		t.Fatalf("expected an input error")
	}
	if r.Errors != nil {
		t.Fatalf("bad input must not produce decode errors, got %v", r.Errors)
	}
}

func TestTrailingGarbageIsBadInput(t *testing.T) {
	r := strictjson.DecodeBytes(strictjson.AnyValue(), []byte(`1 2`))
	if r.Outcome != strictjson.OutcomeBadInput {
		t.Fatalf("expected bad input, got %v", r.Outcome)
	}
}

func TestDecodeAnyRejectsNonRepresentableValues(t *testing.T) {
	r := strictjson.DecodeAny(strictjson.AnyValue(), func() {})
	if r.Outcome != strictjson.OutcomeBadInput {
		t.Fatalf("expected bad input for a func value, got %v", r.Outcome)
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	data := []byte(`{"id": 1, "email": "e", "extra": [1,2,3]}`)
	first := strictjson.DecodeBytes(accountDecoder(), data)
	for i := 0; i < 3; i++ {
		again := strictjson.DecodeBytes(accountDecoder(), data)
		if again.Outcome != first.Outcome || again.Value != first.Value {
			t.Fatalf("outcome drifted on run %d: %v vs %v", i, again.Outcome, first.Outcome)
		}
		if again.Report() != first.Report() {
			t.Fatalf("report drifted on run %d", i)
		}
	}
}

func TestStrictPromotesWarningsToErrorsAtSamePath(t *testing.T) {
	d := strictjson.Field("a", strictjson.Int())
	r := strictjson.Strict(strictjson.DecodeBytes(d, []byte(`{"a":1,"b":2}`)))
	if r.Outcome != strictjson.OutcomeErrors {
		t.Fatalf("expected errors after strict, got %v", r.Outcome)
	}
	groups := strictjson.Flatten(r.Errors)
	if len(groups) != 1 || groups[0].Path != "/b" {
		t.Fatalf("expected a promoted error at /b, got %v", groups)
	}
	if got := groups[0].Payloads[0].Code; got != strictjson.CodeUnusedField {
		t.Fatalf("promoted error should keep the warning code, got %s", got)
	}
}

func TestStrictPassesOtherOutcomesThrough(t *testing.T) {
	ok := strictjson.DecodeBytes(strictjson.Field("a", strictjson.Int()), []byte(`{"a":1}`))
	if got := strictjson.Strict(ok); got.Outcome != strictjson.OutcomeSuccess || got.Value != 1 {
		t.Fatalf("strict must not touch plain success, got %v", got.Outcome)
	}
}

func TestClassicAdapter(t *testing.T) {
	v, err := strictjson.Classic(strictjson.Field("a", strictjson.Int()), []byte(`{"a":1,"b":2}`))
	if err != nil {
		t.Fatalf("warnings must not fail the classic contract: %v", err)
	}
	if v != 1 {
		t.Fatalf("got %d", v)
	}

	_, err = strictjson.Classic(strictjson.Field("a", strictjson.Int()), []byte(`{}`))
	if err == nil {
		t.Fatalf("expected an error for the missing field")
	}
	if _, ok := strictjson.AsErrors(err); !ok {
		t.Fatalf("expected typed Errors, got %T", err)
	}

	_, err = strictjson.Classic(strictjson.AnyValue(), []byte(`{`))
	if err == nil || !strings.Contains(err.Error(), "invalid input") {
		t.Fatalf("expected an invalid input error, got %v", err)
	}
}

func TestDuplicateKeyPolicies(t *testing.T) {
	data := []byte(`{"a":1,"a":2}`)
	d := strictjson.Field("a", strictjson.Int())

	r := strictjson.DecodeBytes(d, data)
	if r.Outcome != strictjson.OutcomeSuccess || r.Value != 2 {
		t.Fatalf("ignore policy should keep the last key, got %v (%d)", r.Outcome, r.Value)
	}

	r = strictjson.DecodeBytes(d, data, strictjson.DecodeOpt{OnDuplicateKey: strictjson.DupWarn})
	if r.Outcome != strictjson.OutcomeWithWarnings {
		t.Fatalf("warn policy should surface a warning, got %v", r.Outcome)
	}
	groups := strictjson.Flatten(r.Warnings)
	if groups[0].Payloads[0].Code != strictjson.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key, got %v", groups)
	}

	r = strictjson.DecodeBytes(d, data, strictjson.DecodeOpt{OnDuplicateKey: strictjson.DupError})
	if r.Outcome != strictjson.OutcomeBadInput {
		t.Fatalf("error policy should reject the document, got %v", r.Outcome)
	}
}

func TestMaxDepthIsBadInput(t *testing.T) {
	r := strictjson.DecodeBytes(strictjson.AnyValue(), []byte(`[[[1]]]`), strictjson.DecodeOpt{MaxDepth: 2})
	if r.Outcome != strictjson.OutcomeBadInput {
		t.Fatalf("expected bad input past the depth limit, got %v", r.Outcome)
	}
	r = strictjson.DecodeBytes(strictjson.AnyValue(), []byte(`[[1]]`), strictjson.DecodeOpt{MaxDepth: 2})
	if r.Outcome != strictjson.OutcomeSuccess {
		t.Fatalf("depth at the limit should pass, got %v", r.Outcome)
	}
}
