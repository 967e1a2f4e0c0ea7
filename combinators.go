package strictjson

// Map transforms the result of a decoder.
func Map[A, B any](f func(A) B, d Decoder[A]) Decoder[B] {
	return fromFunc(func(av annotated, strip bool) outcome[B] {
		out := d.run(av, strip)
		if out.errs != nil {
			return outcome[B]{av: out.av, errs: out.errs}
		}
		return outcome[B]{av: out.av, value: f(out.value), warns: out.warns}
	})
}

// OneOf tries each decoder in order against the original input. The first to
// succeed wins and its rewrite is returned as-is; attempted-but-failed
// siblings contribute nothing to the returned tree. When every alternative
// fails, all of their error collections are preserved in order inside a
// single one_of_failed error. An empty list fails immediately with
// one_of_empty, never a vacuous success.
//
// In strip mode the returned tree is instead the union of every attempted
// branch's usage: a failed branch may still have inspected substructure the
// minimized document must keep.
func OneOf[T any](ds ...Decoder[T]) Decoder[T] {
	return fromFunc(func(av annotated, strip bool) outcome[T] {
		if len(ds) == 0 {
			return outcome[T]{av: av, errs: Errors{Here(Failure{Code: CodeOneOfEmpty})}}
		}
		union := av
		branches := make([]Errors, 0, len(ds))
		for _, d := range ds {
			out := d.run(av, strip)
			if strip {
				union = unionUsage(union, out.av)
			}
			if out.errs == nil {
				if strip {
					out.av = union
				}
				return out
			}
			branches = append(branches, out.errs)
		}
		failed := av
		if strip {
			failed = union
		}
		return outcome[T]{av: failed, errs: Errors{Here(Failure{Code: CodeOneOfFailed, Branches: branches})}}
	})
}

// AndThen runs d and, on success, feeds its value to f to obtain the next
// decoder, which runs against d's rewritten tree so accumulated usage stays
// visible. On failure d's errors propagate unchanged.
func AndThen[A, B any](d Decoder[A], f func(A) Decoder[B]) Decoder[B] {
	return fromFunc(func(av annotated, strip bool) outcome[B] {
		ra := d.run(av, strip)
		if ra.errs != nil {
			return outcome[B]{av: ra.av, errs: ra.errs}
		}
		rb := f(ra.value).run(ra.av, strip)
		if rb.errs != nil {
			return outcome[B]{av: rb.av, errs: rb.errs}
		}
		if len(ra.warns) > 0 {
			warns := make([]Located[Note], 0, len(ra.warns)+len(rb.warns))
			warns = append(warns, ra.warns...)
			warns = append(warns, rb.warns...)
			rb.warns = warns
		}
		return rb
	})
}

// Maybe yields nil instead of failing when d does not apply.
func Maybe[T any](d Decoder[T]) Decoder[*T] {
	return OneOf(Map(ptrOf[T], d), Succeed[*T](nil))
}

// Nullable decodes either JSON null (as nil) or whatever d decodes. Null is
// tried first: a null is structurally valid input and must not be
// misreported as a wrong type by d.
func Nullable[T any](d Decoder[T]) Decoder[*T] {
	return OneOf(Null[*T](nil), Map(ptrOf[T], d))
}

func ptrOf[T any](v T) *T { return &v }

// ---- applicative combination ----

// erasedRun is a type-erased decoder run; the MapN family shares one
// sequential engine over these.
type erasedRun func(av annotated, strip bool) outcome[any]

func erase[T any](d Decoder[T]) erasedRun {
	return func(av annotated, strip bool) outcome[any] {
		out := d.run(av, strip)
		return outcome[any]{av: out.av, value: out.value, warns: out.warns, errs: out.errs}
	}
}

// runSeq runs each decoder the way a left-fold of Map2 would: while all
// preceding decoders succeeded, each runs against the accumulated rewrite;
// after any failure, later decoders run against the original tree so a
// failing branch's errors never depend on sibling rewrites. Errors merge in
// decoder order. In strip mode every run sees the accumulating tree so
// failed-branch usage unions into it.
func runSeq(av annotated, strip bool, runs []erasedRun) ([]any, annotated, []Located[Note], Errors) {
	vals := make([]any, len(runs))
	acc := av
	good := true
	var warns []Located[Note]
	var errs Errors
	for i, r := range runs {
		base := acc
		if !strip && !good {
			base = av
		}
		out := r(base, strip)
		if strip || (good && out.errs == nil) {
			acc = out.av
		}
		if out.errs != nil {
			errs = mergeErrors(errs, out.errs)
			good = false
			continue
		}
		vals[i] = out.value
		warns = append(warns, out.warns...)
	}
	return vals, acc, warns, errs
}

// Map2 runs both decoders against the same input and combines their values.
// When both fail their error collections merge, first decoder's errors
// first: sibling fields of a record are typically decoded this way and the
// caller wants every missing or invalid field reported at once.
func Map2[A, B, C any](f func(A, B) C, da Decoder[A], db Decoder[B]) Decoder[C] {
	return fromFunc(func(av annotated, strip bool) outcome[C] {
		vals, acc, warns, errs := runSeq(av, strip, []erasedRun{erase(da), erase(db)})
		if errs != nil {
			return outcome[C]{av: acc, errs: errs}
		}
		return outcome[C]{av: acc, value: f(vals[0].(A), vals[1].(B)), warns: warns}
	})
}

// Map3 through Map8 extend Map2 pairwise, preserving its error-merging
// behavior.
func Map3[A, B, C, D any](f func(A, B, C) D, da Decoder[A], db Decoder[B], dc Decoder[C]) Decoder[D] {
	return fromFunc(func(av annotated, strip bool) outcome[D] {
		vals, acc, warns, errs := runSeq(av, strip, []erasedRun{erase(da), erase(db), erase(dc)})
		if errs != nil {
			return outcome[D]{av: acc, errs: errs}
		}
		return outcome[D]{av: acc, value: f(vals[0].(A), vals[1].(B), vals[2].(C)), warns: warns}
	})
}

func Map4[A, B, C, D, E any](f func(A, B, C, D) E, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D]) Decoder[E] {
	return fromFunc(func(av annotated, strip bool) outcome[E] {
		vals, acc, warns, errs := runSeq(av, strip, []erasedRun{erase(da), erase(db), erase(dc), erase(dd)})
		if errs != nil {
			return outcome[E]{av: acc, errs: errs}
		}
		return outcome[E]{av: acc, value: f(vals[0].(A), vals[1].(B), vals[2].(C), vals[3].(D)), warns: warns}
	})
}

func Map5[A, B, C, D, E, F any](f func(A, B, C, D, E) F, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E]) Decoder[F] {
	return fromFunc(func(av annotated, strip bool) outcome[F] {
		vals, acc, warns, errs := runSeq(av, strip, []erasedRun{erase(da), erase(db), erase(dc), erase(dd), erase(de)})
		if errs != nil {
			return outcome[F]{av: acc, errs: errs}
		}
		return outcome[F]{av: acc, value: f(vals[0].(A), vals[1].(B), vals[2].(C), vals[3].(D), vals[4].(E)), warns: warns}
	})
}

func Map6[A, B, C, D, E, F, G any](f func(A, B, C, D, E, F) G, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F]) Decoder[G] {
	return fromFunc(func(av annotated, strip bool) outcome[G] {
		vals, acc, warns, errs := runSeq(av, strip, []erasedRun{erase(da), erase(db), erase(dc), erase(dd), erase(de), erase(df)})
		if errs != nil {
			return outcome[G]{av: acc, errs: errs}
		}
		return outcome[G]{av: acc, value: f(vals[0].(A), vals[1].(B), vals[2].(C), vals[3].(D), vals[4].(E), vals[5].(F)), warns: warns}
	})
}

func Map7[A, B, C, D, E, F, G, H any](f func(A, B, C, D, E, F, G) H, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G]) Decoder[H] {
	return fromFunc(func(av annotated, strip bool) outcome[H] {
		vals, acc, warns, errs := runSeq(av, strip, []erasedRun{erase(da), erase(db), erase(dc), erase(dd), erase(de), erase(df), erase(dg)})
		if errs != nil {
			return outcome[H]{av: acc, errs: errs}
		}
		return outcome[H]{av: acc, value: f(vals[0].(A), vals[1].(B), vals[2].(C), vals[3].(D), vals[4].(E), vals[5].(F), vals[6].(G)), warns: warns}
	})
}

func Map8[A, B, C, D, E, F, G, H, I any](f func(A, B, C, D, E, F, G, H) I, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G], dh Decoder[H]) Decoder[I] {
	return fromFunc(func(av annotated, strip bool) outcome[I] {
		vals, acc, warns, errs := runSeq(av, strip, []erasedRun{erase(da), erase(db), erase(dc), erase(dd), erase(de), erase(df), erase(dg), erase(dh)})
		if errs != nil {
			return outcome[I]{av: acc, errs: errs}
		}
		return outcome[I]{av: acc, value: f(vals[0].(A), vals[1].(B), vals[2].(C), vals[3].(D), vals[4].(E), vals[5].(F), vals[6].(G), vals[7].(H)), warns: warns}
	})
}
