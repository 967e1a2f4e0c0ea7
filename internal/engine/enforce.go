package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource: duplicate key handling, max depth
// checks, and max bytes truncation, applied in a streaming fashion before
// any value tree is built.

// DupPolicy controls duplicate object key handling.
type DupPolicy int

const (
	DupIgnore DupPolicy = iota // last key wins, silently
	DupWarn                    // report via the sink, keep going
	DupError                   // abort tokenization
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DupPolicy
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (DupWarn). May be nil.
	IssueSink func(SimpleIssue)
}

// SimpleIssue is the lightweight issue representation produced during
// tokenization, before located errors exist.
type SimpleIssue struct {
	Code    string
	Path    string // JSON Pointer
	Message string
}

// IssueError is a fatal tokenization error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// WrapWithEnforcement returns a TokenSource that enforces duplicate key
// policy, maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
	depth int
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.pathForToken(tok)
	npath := normalizePointer(path)

	switch tok.Kind {
	case KindBeginObject:
		e.stack = append(e.stack, frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "max_depth", Path: npath, Message: "max depth exceeded"}}
		}
	case KindBeginArray:
		e.stack = append(e.stack, frame{kind: kindArray, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "max_depth", Path: npath, Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		if e.depth > 0 {
			e.depth--
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, ok := top.keys[tok.String]; ok {
						si := SimpleIssue{Code: "duplicate_key", Path: npath, Message: "key '" + tok.String + "' duplicated"}
						if e.opt.OnDuplicate == DupError {
							return Token{}, IssueError{si}
						}
						if e.opt.IssueSink != nil {
							e.opt.IssueSink(si)
						}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, IssueError{SimpleIssue{Code: "max_bytes", Path: npath, Message: "max bytes exceeded"}}
		}
	}

	return tok, nil
}

// valueDone flips the enclosing object frame back to key position after a
// complete member value.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) pathForToken(tok Token) string {
	if len(e.stack) == 0 {
		if tok.Kind == KindKey {
			return JoinPointer("", tok.String)
		}
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return JoinPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := JoinPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return JoinPointer(top.path, top.pendingKey)
		}
		return top.path
	default:
		return top.path
	}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func normalizePointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JoinPointer appends a token to a JSON Pointer base.
func JoinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
