package strictjson

import "encoding/json"

// annotated mirrors Value with a usage flag on every node. All marking is
// copy-on-write: callers must use the returned tree. Usage is monotonic
// within a single decode attempt; combinators only ever replace a subtree
// with an equal-or-more-used version of itself.
type annotated struct {
	used bool
	kind ValueKind
	b    bool
	num  json.Number
	str  string
	arr  []annotated
	obj  []annMember
}

type annMember struct {
	key string
	val annotated
}

// annotate builds the initial, fully-unused tree for one decode invocation.
func annotate(v Value) annotated {
	a := annotated{kind: v.kind, b: v.b, num: v.num, str: v.str}
	switch v.kind {
	case KindArray:
		a.arr = make([]annotated, len(v.arr))
		for i, el := range v.arr {
			a.arr[i] = annotate(el)
		}
	case KindObject:
		a.obj = make([]annMember, len(v.obj))
		for i, m := range v.obj {
			a.obj[i] = annMember{key: m.Key, val: annotate(m.Value)}
		}
	}
	return a
}

// value recovers the plain JSON value, dropping usage flags.
func (a annotated) value() Value {
	v := Value{kind: a.kind, b: a.b, num: a.num, str: a.str}
	switch a.kind {
	case KindArray:
		v.arr = make([]Value, len(a.arr))
		for i, el := range a.arr {
			v.arr[i] = el.value()
		}
	case KindObject:
		v.obj = make([]Member, len(a.obj))
		for i, m := range a.obj {
			v.obj[i] = Member{Key: m.key, Value: m.val.value()}
		}
	}
	return v
}

// markUsed sets the node's own flag. Children are left alone: field/index
// access touches the container, not the parts it never looked at.
func markUsed(a annotated) annotated {
	a.used = true
	return a
}

// markUsedDeep marks the whole subtree consumed. AnyValue uses this; it is
// the escape hatch for "no warnings below here".
func markUsedDeep(a annotated) annotated {
	a.used = true
	switch a.kind {
	case KindArray:
		arr := make([]annotated, len(a.arr))
		for i, el := range a.arr {
			arr[i] = markUsedDeep(el)
		}
		a.arr = arr
	case KindObject:
		obj := make([]annMember, len(a.obj))
		for i, m := range a.obj {
			obj[i] = annMember{key: m.key, val: markUsedDeep(m.val)}
		}
		a.obj = obj
	}
	return a
}

// unionUsage merges the usage flags of two rewrites of the same tree.
// Decoders never change shape, only flags, so both arguments are
// structurally identical.
func unionUsage(a, b annotated) annotated {
	a.used = a.used || b.used
	switch a.kind {
	case KindArray:
		arr := make([]annotated, len(a.arr))
		for i := range a.arr {
			arr[i] = unionUsage(a.arr[i], b.arr[i])
		}
		a.arr = arr
	case KindObject:
		obj := make([]annMember, len(a.obj))
		for i := range a.obj {
			obj[i] = annMember{key: a.obj[i].key, val: unionUsage(a.obj[i].val, b.obj[i].val)}
		}
		a.obj = obj
	}
	return a
}

// anyUsed reports whether the node or any descendant was consulted.
func anyUsed(a annotated) bool {
	if a.used {
		return true
	}
	switch a.kind {
	case KindArray:
		for _, el := range a.arr {
			if anyUsed(el) {
				return true
			}
		}
	case KindObject:
		for _, m := range a.obj {
			if anyUsed(m.val) {
				return true
			}
		}
	}
	return false
}

type unusedContext int

const (
	unusedAtRoot unusedContext = iota
	unusedInField
	unusedAtIndex
)

// collectUnused scans a final rewritten tree for input the decoder never
// looked at. A subtree with no used node at all yields a single warning at
// its topmost position rather than one per descendant.
func collectUnused(a annotated) Warnings {
	return unusedWarnings(a, unusedAtRoot)
}

func unusedWarnings(a annotated, ctx unusedContext) []Located[Note] {
	if !anyUsed(a) {
		code := CodeUnusedValue
		switch ctx {
		case unusedInField:
			code = CodeUnusedField
		case unusedAtIndex:
			code = CodeUnusedIndex
		}
		return []Located[Note]{Here(Note{Code: code, Value: a.value()})}
	}
	switch a.kind {
	case KindArray:
		var out []Located[Note]
		for i, el := range a.arr {
			if ws := unusedWarnings(el, unusedAtIndex); len(ws) > 0 {
				out = append(out, AtIndex(i, ws))
			}
		}
		return out
	case KindObject:
		var out []Located[Note]
		for _, m := range a.obj {
			if ws := unusedWarnings(m.val, unusedInField); len(ws) > 0 {
				out = append(out, InField(m.key, ws))
			}
		}
		return out
	default:
		return nil
	}
}
