package strictjson

import (
	"sort"
	"strconv"

	eng "github.com/reoring/strictjson/internal/engine"
)

// Located is a path-tagged recursive container used uniformly for both
// errors and warnings: a payload sits either here, nested under an object
// key, or nested under an array index. Flattening a Located tree yields a
// multimap from JSON Pointer to the payloads at that path; sibling payloads
// at the same path are grouped, never lost.
type Located[T any] struct {
	kind    locatedKind
	field   string
	index   int
	payload T
	nested  []Located[T]
}

type locatedKind int

const (
	locHere locatedKind = iota
	locField
	locIndex
)

// Here places a payload at the current position.
func Here[T any](payload T) Located[T] {
	return Located[T]{kind: locHere, payload: payload}
}

// InField nests payloads under an object key.
func InField[T any](name string, nested []Located[T]) Located[T] {
	return Located[T]{kind: locField, field: name, nested: nested}
}

// AtIndex nests payloads under an array index.
func AtIndex[T any](index int, nested []Located[T]) Located[T] {
	return Located[T]{kind: locIndex, index: index, nested: nested}
}

// PathGroup is one flattened group: every payload that sits at Path.
type PathGroup[T any] struct {
	Path     string // JSON Pointer; "" at the document root
	Payloads []T
}

// Flatten walks the located trees and groups their payloads by path. Groups
// come back sorted by path; payload order within a group is preserved.
func Flatten[T any](items []Located[T]) []PathGroup[T] {
	type entry struct {
		path    string
		payload T
	}
	var entries []entry
	var walk func(prefix string, ls []Located[T])
	walk = func(prefix string, ls []Located[T]) {
		for _, l := range ls {
			switch l.kind {
			case locHere:
				entries = append(entries, entry{path: prefix, payload: l.payload})
			case locField:
				walk(eng.JoinPointer(prefix, l.field), l.nested)
			case locIndex:
				walk(eng.JoinPointer(prefix, strconv.Itoa(l.index)), l.nested)
			}
		}
	}
	walk("", items)

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	var groups []PathGroup[T]
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].Path == e.path {
			groups[n-1].Payloads = append(groups[n-1].Payloads, e.payload)
			continue
		}
		groups = append(groups, PathGroup[T]{Path: e.path, Payloads: []T{e.payload}})
	}
	return groups
}

// mapLocated rebuilds a located tree with every payload transformed; used by
// Strict to turn warnings into errors at the same paths.
func mapLocated[A, B any](ls []Located[A], f func(A) B) []Located[B] {
	out := make([]Located[B], 0, len(ls))
	for _, l := range ls {
		switch l.kind {
		case locHere:
			out = append(out, Here(f(l.payload)))
		case locField:
			out = append(out, InField(l.field, mapLocated(l.nested, f)))
		case locIndex:
			out = append(out, AtIndex(l.index, mapLocated(l.nested, f)))
		}
	}
	return out
}
