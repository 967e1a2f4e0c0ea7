package strictjson

// Strip computes the smallest JSON value that still decodes, through d, to
// the same result as v: same success value, or the same error (warnings are
// not required to persist). The decoder re-runs in union-usage mode, so
// substructure inspected by attempted-but-failed OneOf branches survives
// minimization even though only the winning branch's value is kept.
func Strip[T any](d Decoder[T], v Value) Value {
	out := d.run(annotate(v), true)
	return rebuildStripped(out.av)
}

// StripBytes parses data, strips it, and re-renders the minimized document.
// Tokenizer failures surface as an error, mirroring the bad-input outcome.
func StripBytes[T any](d Decoder[T], data []byte, opts ...DecodeOpt) ([]byte, error) {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	r := DecodeBytes(AnyValue(), data, opt)
	if r.Outcome == OutcomeBadInput {
		return nil, r.InputErr
	}
	return Strip(d, r.Value).MarshalJSON()
}

// rebuildStripped turns a union-usage tree into the minimal document:
//   - a subtree with no used node collapses to a null placeholder;
//   - a container that was consulted keeps its key set / length, so
//     positional and structural validity is preserved, with each child
//     minimized in turn;
//   - a used scalar keeps its literal value, since the decoded result may
//     depend on it.
func rebuildStripped(a annotated) Value {
	if !anyUsed(a) {
		return NullValue()
	}
	switch a.kind {
	case KindArray:
		items := make([]Value, len(a.arr))
		for i, el := range a.arr {
			items[i] = rebuildStripped(el)
		}
		return ArrayValue(items...)
	case KindObject:
		members := make([]Member, len(a.obj))
		for i, m := range a.obj {
			members[i] = Member{Key: m.key, Value: rebuildStripped(m.val)}
		}
		return ObjectValue(members...)
	default:
		return a.value()
	}
}
