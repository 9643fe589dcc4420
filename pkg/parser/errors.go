package parser

import (
	"fmt"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

// Kind discriminates the three error taxonomies from spec.md §7: a failure
// can originate in the lexer, in the grammar itself, or in one of the
// post-parse validators (an "action" in LALR terminology).
type Kind int

const (
	LexError Kind = iota
	ParseError
	ActionError
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex"
	case ParseError:
		return "parse"
	case ActionError:
		return "action"
	default:
		return "unknown"
	}
}

// Error is the single user-visible error kind every failure mode in this
// package is mapped into (spec.md §4.5): a source reference, a kind tag, and
// a message. The parser never recovers from an Error — the first one aborts
// the parse and is returned, with no partial AST exposed to the caller.
type Error struct {
	Ref  source.Ref
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error at %s: %s", e.Kind, e.Ref, e.Msg)
}

func newError(kind Kind, ref source.Ref, format string, args ...interface{}) *Error {
	return &Error{Ref: ref, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
