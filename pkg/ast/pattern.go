package ast

import (
	"math/big"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

// Pattern is a node of the pattern grammar used in `let` bindings, lambda
// parameters, and match arms (spec.md §3, "Patterns"). Like Expression, it
// is a marker interface implemented by the concrete variants below.
//
// The parser never constructs PatternVariable directly: every bare
// identifier-shaped pattern becomes a PatternEnum with a one-segment path
// and no arguments (spec.md §4.3, design note "Variable-vs-enum ambiguity
// in patterns"). A later, out-of-scope resolution pass downgrades
// unresolved single-name paths to PatternVariable.
type Pattern interface {
	patternNode()
}

// PatternCatchAll is the wildcard pattern `_`.
type PatternCatchAll struct {
	Ref source.Ref
}

func (*PatternCatchAll) patternNode() {}

// PatternNumber matches an arbitrary-precision integer literal.
type PatternNumber struct {
	Value *big.Int
	Ref   source.Ref
}

func (*PatternNumber) patternNode() {}

// PatternString matches a string literal.
type PatternString struct {
	Value string
	Ref   source.Ref
}

func (*PatternString) patternNode() {}

// PatternTuple matches `(p1, p2, ...)`. Ellipsis may not appear inside a
// PatternTuple (spec.md §3 invariant; see PatternEllipsis).
type PatternTuple struct {
	Items []Pattern
	Ref   source.Ref
}

func (*PatternTuple) patternNode() {}

// PatternArray matches `[p1, p2, ...]` and may contain PatternEllipsis
// elements anywhere in the list; the parser does not limit how many
// (spec.md §3, §8 invariant 6: ".." is accepted only inside array patterns).
type PatternArray struct {
	Items []Pattern
	Ref   source.Ref
}

func (*PatternArray) patternNode() {}

// PatternEllipsis is the `..` wildcard, legal only as an element of a
// PatternArray's Items.
type PatternEllipsis struct {
	Ref source.Ref
}

func (*PatternEllipsis) patternNode() {}

// PatternEnum matches an enum variant by path, with optional argument
// patterns; a bare identifier pattern is represented as a PatternEnum with
// Args == nil and a single-segment Path (see the type doc above).
type PatternEnum struct {
	Path SymbolPath
	Args []Pattern // nil for a path with no parenthesized arguments
	Ref  source.Ref
}

func (*PatternEnum) patternNode() {}

// PatternVariable binds an identifier. Never produced by the parser (see
// the Pattern type doc); present so that downstream resolution has somewhere to
// rewrite an unresolved PatternEnum into.
type PatternVariable struct {
	Name string
	Ref  source.Ref
}

func (*PatternVariable) patternNode() {}
