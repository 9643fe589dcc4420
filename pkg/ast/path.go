// Package ast defines the strongly typed abstract syntax tree produced by
// the PIL and ASM grammars: symbol paths, expressions, patterns, types,
// type schemes, and PIL/ASM statements (spec.md §3).
//
// Every node that can appear standalone in a diagnostic carries a
// source.Ref; nodes are immutable once built by the parser and are safe to
// share across goroutines, matching the purity of the parsing pipeline that
// produces them.
package ast

import (
	"strings"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

// Part is one segment of a SymbolPath: either the "super" keyword (climbs
// one module level) or a named segment. A leading empty Named("") marks an
// absolute path (spec.md §3, "Symbol paths").
type Part struct {
	Super bool   // true for a "super" segment; Name is ignored when true
	Name  string // the segment text; "" only for the leading absolute marker
}

// SymbolPath is an ordered, non-empty sequence of Parts. The parser never
// enforces that Super appears only in non-terminal position or that the
// final Part is Named — those invariants are upheld by downstream name
// resolution, per spec.md §3.
type SymbolPath struct {
	Parts []Part
	Ref   source.Ref
}

// Absolute reports whether the path begins with the `::` marker, i.e. its
// first Part is Named("").
func (p SymbolPath) Absolute() bool {
	return len(p.Parts) > 0 && !p.Parts[0].Super && p.Parts[0].Name == ""
}

// Last returns the final Part's name. It panics if the path is empty, which
// the parser never produces.
func (p SymbolPath) Last() string {
	return p.Parts[len(p.Parts)-1].Name
}

// String renders the path using "::" as the Rust-style separator that the
// concrete syntax uses, matching the surface grammar rather than inventing
// a Go-ism.
func (p SymbolPath) String() string {
	segments := make([]string, len(p.Parts))
	for i, part := range p.Parts {
		if part.Super {
			segments[i] = "super"
		} else {
			segments[i] = part.Name
		}
	}
	return strings.Join(segments, "::")
}

// GenericSymbolPath is a SymbolPath with an optional turbofish type-argument
// list attached to its final segment (`path::<T1, T2>`).
type GenericSymbolPath struct {
	Path     SymbolPath
	TypeArgs []ExprType // nil when no turbofish was present
	Ref      source.Ref
}
