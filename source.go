package strictjson

import (
	"io"
	"sync"

	eng "github.com/reoring/strictjson/internal/engine"
	gojsonsrc "github.com/reoring/strictjson/source/gojson"
)

// TokenKind enumerates JSON token kinds, mirroring the internal engine so
// external sources can be written without importing internal packages.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes one token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // key/string payload
	Number string // numbers stay textual until a decoder interprets them
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic token inputs. Sources return io.EOF once
// the input is exhausted.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// Driver converts raw JSON input into a Source. The default implementation
// is backed by goccy/go-json and may be swapped with SetDriver.
type Driver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = goJSONDriver{}
)

// SetDriver replaces the global input driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the goccy/go-json-backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = goJSONDriver{}
	driverMu.Unlock()
}

func getDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// goJSONDriver wraps the goccy/go-json token source.
type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(gojsonsrc.NewReader(r)) }
func (goJSONDriver) NewBytes(b []byte) Source     { return SourceFromEngine(gojsonsrc.NewBytes(b)) }
func (goJSONDriver) Name() string                 { return "go-json" }

// JSONReader wraps an io.Reader as a Source using the current driver.
func JSONReader(r io.Reader) Source { return getDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a Source using the current driver.
func JSONBytes(b []byte) Source { return getDriver().NewBytes(b) }

// SourceFromEngine exposes an internal engine.TokenSource as a Source.
func SourceFromEngine(inner eng.TokenSource) Source {
	return &engineSourceAdapter{inner: inner}
}

type engineSourceAdapter struct{ inner eng.TokenSource }

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// engineTokenSource exposes the engine view of a Source, unwrapping
// engine-backed sources to avoid adapter round-trips.
func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func fromEngineKind(k eng.Kind) TokenKind {
	switch k {
	case eng.KindBeginObject:
		return TokenBeginObject
	case eng.KindEndObject:
		return TokenEndObject
	case eng.KindBeginArray:
		return TokenBeginArray
	case eng.KindEndArray:
		return TokenEndArray
	case eng.KindKey:
		return TokenKey
	case eng.KindString:
		return TokenString
	case eng.KindNumber:
		return TokenNumber
	case eng.KindBool:
		return TokenBool
	default:
		return TokenNull
	}
}

func toEngineKind(k TokenKind) eng.Kind {
	switch k {
	case TokenBeginObject:
		return eng.KindBeginObject
	case TokenEndObject:
		return eng.KindEndObject
	case TokenBeginArray:
		return eng.KindBeginArray
	case TokenEndArray:
		return eng.KindEndArray
	case TokenKey:
		return eng.KindKey
	case TokenString:
		return eng.KindString
	case TokenNumber:
		return eng.KindNumber
	case TokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}
