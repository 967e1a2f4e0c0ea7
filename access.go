package strictjson

// Field requires the current value to be an object and runs d on the value
// under name. On success the object is rebuilt with only that member's value
// replaced by its rewritten, used counterpart; every other member passes
// through untouched so its usage (or lack of it) survives for the warning
// scan. Inner errors and warnings are wrapped under the key.
func Field[T any](name string, d Decoder[T]) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		if av.kind != KindObject {
			return mismatch[T](av, "an object")
		}
		idx := -1
		for i := range av.obj {
			if av.obj[i].key == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return outcome[T]{
				av:   markUsed(av),
				errs: Errors{Here(Failure{Code: CodeRequired, Field: name, Value: av.value()})},
			}
		}
		out := d.run(av.obj[idx].val, strip)
		rebuilt := markUsed(replaceMember(av, idx, out.av))
		if out.errs != nil {
			return outcome[T]{av: rebuilt, errs: Errors{InField(name, out.errs)}}
		}
		res := outcome[T]{av: rebuilt, value: out.value}
		if len(out.warns) > 0 {
			res.warns = []Located[Note]{InField(name, out.warns)}
		}
		return res
	})
}

// Index is the array analogue of Field, using position instead of key.
func Index[T any](i int, d Decoder[T]) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		if av.kind != KindArray {
			return mismatch[T](av, "an array")
		}
		if i < 0 || i >= len(av.arr) {
			return outcome[T]{
				av:   markUsed(av),
				errs: Errors{Here(Failure{Code: CodeMissingIndex, Index: i, Value: av.value()})},
			}
		}
		out := d.run(av.arr[i], strip)
		rebuilt := markUsed(replaceItem(av, i, out.av))
		if out.errs != nil {
			return outcome[T]{av: rebuilt, errs: Errors{AtIndex(i, out.errs)}}
		}
		res := outcome[T]{av: rebuilt, value: out.value}
		if len(out.warns) > 0 {
			res.warns = []Located[Note]{AtIndex(i, out.warns)}
		}
		return res
	})
}

// At is sugar: Field folded right over the path segments.
func At[T any](path []string, d Decoder[T]) Decoder[T] {
	for i := len(path) - 1; i >= 0; i-- {
		d = Field(path[i], d)
	}
	return d
}

// Optional decodes the value under name when present, and yields def without
// any warning when the key is absent. The container is still consulted.
func Optional[T any](name string, d Decoder[T], def T) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		if av.kind != KindObject {
			return mismatch[T](av, "an object")
		}
		for i := range av.obj {
			if av.obj[i].key == name {
				return Field(name, d).run(av, strip)
			}
		}
		return outcome[T]{av: markUsed(av), value: def}
	})
}

// List decodes every element of an array. All failures are collected, one
// located frame per failing index, instead of stopping at the first; a
// caller sees every problem in one pass.
func List[T any](d Decoder[T]) Decoder[[]T] {
	return fromFunc(func(av annotated, strip bool) outcome[[]T] {
		if av.kind != KindArray {
			return mismatch[[]T](av, "an array")
		}
		arr := make([]annotated, len(av.arr))
		copy(arr, av.arr)
		vals := make([]T, 0, len(arr))
		var errs Errors
		var warns []Located[Note]
		for i, el := range av.arr {
			out := d.run(el, strip)
			if out.errs != nil {
				errs = append(errs, AtIndex(i, out.errs))
				if strip {
					arr[i] = out.av
				}
				continue
			}
			arr[i] = out.av
			vals = append(vals, out.value)
			if len(out.warns) > 0 {
				warns = append(warns, AtIndex(i, out.warns))
			}
		}
		rebuilt := markUsed(av)
		rebuilt.arr = arr
		if errs != nil {
			return outcome[[]T]{av: rebuilt, errs: errs}
		}
		return outcome[[]T]{av: rebuilt, value: vals, warns: warns}
	})
}

// Entry is one decoded object member, order preserved.
type Entry[T any] struct {
	Key   string
	Value T
}

// KeyValuePairs decodes every member value of an object with d, collecting
// all failures like List does.
func KeyValuePairs[T any](d Decoder[T]) Decoder[[]Entry[T]] {
	return fromFunc(func(av annotated, strip bool) outcome[[]Entry[T]] {
		if av.kind != KindObject {
			return mismatch[[]Entry[T]](av, "an object")
		}
		obj := make([]annMember, len(av.obj))
		copy(obj, av.obj)
		vals := make([]Entry[T], 0, len(obj))
		var errs Errors
		var warns []Located[Note]
		for i, m := range av.obj {
			out := d.run(m.val, strip)
			if out.errs != nil {
				errs = append(errs, InField(m.key, out.errs))
				if strip {
					obj[i] = annMember{key: m.key, val: out.av}
				}
				continue
			}
			obj[i] = annMember{key: m.key, val: out.av}
			vals = append(vals, Entry[T]{Key: m.key, Value: out.value})
			if len(out.warns) > 0 {
				warns = append(warns, InField(m.key, out.warns))
			}
		}
		rebuilt := markUsed(av)
		rebuilt.obj = obj
		if errs != nil {
			return outcome[[]Entry[T]]{av: rebuilt, errs: errs}
		}
		return outcome[[]Entry[T]]{av: rebuilt, value: vals, warns: warns}
	})
}

func replaceMember(av annotated, idx int, val annotated) annotated {
	obj := make([]annMember, len(av.obj))
	copy(obj, av.obj)
	obj[idx] = annMember{key: obj[idx].key, val: val}
	av.obj = obj
	return av
}

func replaceItem(av annotated, idx int, val annotated) annotated {
	arr := make([]annotated, len(av.arr))
	copy(arr, av.arr)
	arr[idx] = val
	av.arr = arr
	return av
}
