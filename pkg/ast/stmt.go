package ast

import "github.com/0xEigenLabs/powdr-pilcom/pkg/source"

// PilStatement is any top-level statement of a PILFile (spec.md §3,
// "Statements" — PIL statements). Like Expression and Pattern it is a
// marker interface over the concrete variants below.
type PilStatement interface {
	pilStmtNode()
}

// Include records an `include "path";` statement. Per the Non-goals in
// spec.md §1 ("macro/include expansion beyond recording an include node"),
// the path is recorded verbatim and never resolved or expanded here.
type Include struct {
	Path string
	Ref  source.Ref
}

func (*Include) pilStmtNode() {}

// Namespace is `namespace name(degree);`. Both Name and Degree are optional
// in the grammar (an un-named or un-sized namespace is legal), hence the
// pointer fields.
type Namespace struct {
	Name   *SymbolPath
	Degree Expression // nil when no "(degree)" clause was present
	Ref    source.Ref
}

func (*Namespace) pilStmtNode() {}

// LetStatement is `let (<bounds>)? name (: type)? (= expr)? ;` at PIL/module level.
// Name is the bound identifier text (module-level lets always bind a single
// name, unlike block-level lets which bind a full Pattern).
type LetStatement struct {
	Name   string
	Scheme *TypeScheme // nil when no type annotation was given
	Value  Expression  // nil when the let only declares a name (no "= expr")
	Ref    source.Ref
}

func (*LetStatement) pilStmtNode() {}

// PolynomialName is one entry of a comma-separated polynomial declaration
// list, optionally carrying an array length (`name[N]`).
type PolynomialName struct {
	Name        string
	ArrayLength Expression // nil for a scalar polynomial
	Ref         source.Ref
}

// PolynomialDefinition is `pol name = expr;` (spec.md §4.3, "Polynomial
// declarations"). `pol` and `col` are synonyms and produce identical AST
// (spec.md §8 invariant 7): the parser normalizes both keywords to this one
// node shape.
type PolynomialDefinition struct {
	Name  string
	Value Expression
	Ref   source.Ref
}

func (*PolynomialDefinition) pilStmtNode() {}

// PublicDeclaration is `public name = polynomial[array_index](row);`.
type PublicDeclaration struct {
	Name       string
	Polynomial Expression
	ArrayIndex Expression // nil when the referenced polynomial is not an array
	Row        Expression
	Ref        source.Ref
}

func (*PublicDeclaration) pilStmtNode() {}

// PolynomialConstantDeclaration is `pol constant list;` (`fixed` is a
// synonym for `constant` and is normalized the same way).
type PolynomialConstantDeclaration struct {
	Names []PolynomialName
	Ref   source.Ref
}

func (*PolynomialConstantDeclaration) pilStmtNode() {}

// PolynomialConstantDefinition is `pol constant name fn_def;` — a constant
// column defined by a function rather than a flat array.
type PolynomialConstantDefinition struct {
	Name  string
	Value Expression // the function-valued definition
	Ref   source.Ref
}

func (*PolynomialConstantDefinition) pilStmtNode() {}

// PolynomialCommitDeclaration is `pol commit [stage(N)] list;`. `witness`
// is a synonym for `commit`, normalized the same way. Query is non-nil only
// when exactly one name was declared with a `name(params) query expr`
// attachment.
type PolynomialCommitDeclaration struct {
	Stage *uint64
	Names []PolynomialName
	Query Expression
	Ref   source.Ref
}

func (*PolynomialCommitDeclaration) pilStmtNode() {}

// EnumVariant is one `Name(types)?` entry of an EnumDeclaration.
type EnumVariant struct {
	Name   string
	Fields []ExprType // nil for a unit variant
	Ref    source.Ref
}

// EnumDeclaration is `enum Name<vars with bounds>? { Variant, ... }`
// (spec.md §4.3, "Generics, traits, enums").
type EnumDeclaration struct {
	Name     string
	TypeVars []TypeVar
	Variants []EnumVariant
	Ref      source.Ref
}

func (*EnumDeclaration) pilStmtNode() {}

// TraitFunction is one `fn_name : (ps) -> ret` entry of a TraitDeclaration.
type TraitFunction struct {
	Name   string
	Params []ExprType
	Return ExprType
	Ref    source.Ref
}

// TraitDeclaration is `trait Name<V1, V2, ...> { fn_name : (ps) -> ret, ... }`.
type TraitDeclaration struct {
	Name     string
	TypeVars []string
	Functions []TraitFunction
	Ref      source.Ref
}

func (*TraitDeclaration) pilStmtNode() {}

// SelectedExpressions is `(selector $)? expression`, the operand shape
// shared by plookup and permutation identities.
type SelectedExpressions struct {
	Selector Expression // nil when no "selector $" prefix was present
	Expr     Expression
	Ref      source.Ref
}

// PlookupIdentity is `se1 in se2;`.
type PlookupIdentity struct {
	Left  SelectedExpressions
	Right SelectedExpressions
	Ref   source.Ref
}

func (*PlookupIdentity) pilStmtNode() {}

// PermutationIdentity is `se1 is se2;`.
type PermutationIdentity struct {
	Left  SelectedExpressions
	Right SelectedExpressions
	Ref   source.Ref
}

func (*PermutationIdentity) pilStmtNode() {}

// ConnectIdentity is `[ list ] connect [ list ];`.
type ConnectIdentity struct {
	Left  []Expression
	Right []Expression
	Ref   source.Ref
}

func (*ConnectIdentity) pilStmtNode() {}

// ExpressionStatement is a bare `expr;` at PIL level — used for identity
// constraints written without `in`/`is`/`connect` (spec.md §4.3, "PIL
// identities").
type ExpressionStatement struct {
	Expr Expression
	Ref  source.Ref
}

func (*ExpressionStatement) pilStmtNode() {}

// PILFile is the flat list of PilStatement produced by the PILFile grammar
// entry point (spec.md §6).
type PILFile struct {
	Statements []PilStatement
	Ref        source.Ref
}
