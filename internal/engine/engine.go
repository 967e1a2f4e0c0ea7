// Package engine defines the streaming token contract shared by the input
// sources and the runtime enforcement wrapper applied on top of them.
package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string // key/string payload
	Number string // numbers travel as text; interpretation happens later
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface the tree builder consumes. Sources
// report io.EOF once the underlying input is exhausted.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}
