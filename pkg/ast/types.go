package ast

import "github.com/0xEigenLabs/powdr-pilcom/pkg/source"

// ArrayLen is the array-length representation a Type is parameterized over.
// ExprType uses Expression (lengths may be arbitrary, not-yet-evaluated
// expressions, as parsed from source); NumType uses a fixed uint64 (used by
// the secondary TypeNumber entry point for callers that already hold a
// resolved length). This mirrors the Rust frontend's `Type<L>` generic,
// expressed with a Go type parameter instead of a trait bound. Go does not
// allow an interface with methods (such as Expression) in a type-set union,
// so the constraint itself admits any type; ExprType and NumType below are
// the two instantiations the parser produces.
type ArrayLen interface {
	any
}

// TypeKind discriminates the variants of Type[L]; Go has no sum types, so
// Type[L] is represented as a single struct carrying a Kind tag plus the
// fields relevant to that kind, the common idiom the teacher's AST types use
// for their own statement/expression unions (see ast.Statement-shaped
// interfaces in the teacher's jack.go) — except here, because the grammar is
// generic over L, an interface-per-variant hierarchy cannot be
// parameterized cleanly, so a tagged struct is used instead.
type TypeKind int

const (
	TypeBottom TypeKind = iota
	TypeBool
	TypeInt
	TypeFe
	TypeString
	TypeCol
	TypeExpr_ // the primitive type named "expr" in source (Kind, not the Go generic param)
	TypeNamed
	TypeArray
	TypeTuple
	TypeFunction
)

// Type is the Hindley-style type term from spec.md §3, parameterized by the
// array-length representation L.
type Type[L ArrayLen] struct {
	Kind TypeKind
	Ref  source.Ref

	// TypeNamed
	Path        SymbolPath
	GenericArgs []Type[L] // nil unless Kind == TypeNamed and the path was followed by <...> args

	// TypeArray
	Base   *Type[L] // element type, set for TypeArray
	Length *L       // nil means unbounded ("col[]"-style open array)

	// TypeTuple
	Items []Type[L]

	// TypeFunction
	Params []Type[L]
	Value  *Type[L]
}

// ExprType is the type term shape produced by ordinary source parsing: the
// TypeExpr grammar entry point (spec.md §6).
type ExprType = Type[Expression]

// NumType is the type term shape produced by the TypeNumber entry point,
// used where an already-fixed unsigned length is expected instead of an
// expression (spec.md §6).
type NumType = Type[uint64]

// TypeBounds maps a type variable name to its unordered set of bound
// identifiers (spec.md §3, "Types").
type TypeBounds map[string]map[string]bool

// TypeVar is one entry of a TypeVarBounds list: a variable name with an
// optional set of trait-like bounds (spec.md §4.3, "Generics, traits,
// enums").
type TypeVar struct {
	Name   string
	Bounds []string // nil when no ": Id + Id + ..." clause was present
	Ref    source.Ref
}

// TypeScheme pairs an optional list of universally quantified type
// variables (with their bounds) and a body type (spec.md §3, "Types").
type TypeScheme struct {
	Vars   []TypeVar // nil for a monomorphic scheme
	Bounds TypeBounds
	Body   ExprType
	Ref    source.Ref
}
