package ast

import (
	"math/big"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

// Expression is any node of the recursive expression grammar (spec.md §3,
// "Expressions"). It is a marker interface rather than the teacher's bare
// `interface{}` union, because the expression grammar is large enough that
// an accidental non-expression value slipping into an Expression-typed
// field is worth catching at compile time; every concrete variant below
// implements it with an unexported method, the same pattern go/ast uses for
// its own Expr interface.
type Expression interface {
	exprNode()
}

// BinaryOperator enumerates the full 12-level precedence ladder from
// spec.md §4.3. Comparison operators are listed individually (rather than
// collapsed into one "Compare" operator with a sub-kind) so that the
// non-chaining rule can be checked with a single membership test; see
// IsComparison.
type BinaryOperator int

const (
	LogicalOr BinaryOperator = iota
	LogicalAnd
	Less
	LessEqual
	Equal    // "=="
	Identity // "=" — distinct from Equal, used only in identity statements
	NotEqual
	GreaterEqual
	Greater
	BinaryOr
	BinaryXor
	BinaryAnd
	ShiftLeft
	ShiftRight
	Add
	Sub
	Mul
	Div
	Modulo
	Pow
)

// IsComparison reports whether op is one of the non-associative comparison
// operators (spec.md §4.3, level 3). The expression grammar uses this to
// reject `a < b < c`-shaped chains: the comparison level accepts only
// non-comparison operands on either side.
func (op BinaryOperator) IsComparison() bool {
	switch op {
	case Less, LessEqual, Equal, Identity, NotEqual, GreaterEqual, Greater:
		return true
	default:
		return false
	}
}

// UnaryOperator covers the prefix and postfix unary forms (spec.md §3).
type UnaryOperator int

const (
	UnaryMinus UnaryOperator = iota // prefix "-"
	UnaryNot                       // prefix "!"
	UnaryNext                       // postfix "'" — next-row
)

// FunctionKind tags a lambda with the keyword (if any) that preceded it
// (spec.md §3, §4.3 "Lambdas").
type FunctionKind int

const (
	Pure FunctionKind = iota
	Query
	Constr
)

// Number is the `Number{value, type}` literal variant: an arbitrary
// precision unsigned integer with an optional declared type annotation
// (spec.md §3).
type Number struct {
	Value *big.Int
	Type  *ExprType // nil when the literal carries no type annotation
	Ref   source.Ref
}

func (*Number) exprNode() {}

// String is a string literal, already unescaped at lex time.
type String struct {
	Value string
	Ref   source.Ref
}

func (*String) exprNode() {}

// PublicReference is a `:name` public-column reference.
type PublicReference struct {
	Name string
	Ref  source.Ref
}

func (*PublicReference) exprNode() {}

// NamespacedPolynomialReference is a (possibly namespaced, possibly
// turbofish'd) reference to a polynomial/column/identifier.
type NamespacedPolynomialReference struct {
	Path GenericSymbolPath
	Ref  source.Ref
}

func (*NamespacedPolynomialReference) exprNode() {}

// BinaryOperation is a binary expression node; Op selects the operator and
// therefore the precedence level it was parsed at.
type BinaryOperation struct {
	Left  Expression
	Op    BinaryOperator
	Right Expression
	Ref   source.Ref
}

func (*BinaryOperation) exprNode() {}

// UnaryOperation is a prefix or postfix unary expression node.
type UnaryOperation struct {
	Op   UnaryOperator
	Expr Expression
	Ref  source.Ref
}

func (*UnaryOperation) exprNode() {}

// IndexAccess is `array[index]`.
type IndexAccess struct {
	Array Expression
	Index Expression
	Ref   source.Ref
}

func (*IndexAccess) exprNode() {}

// FunctionCall is `function(arguments...)`.
type FunctionCall struct {
	Function  Expression
	Arguments []Expression
	Ref       source.Ref
}

func (*FunctionCall) exprNode() {}

// LambdaExpression is `|params| body` (or `||` body), optionally preceded
// by a function-kind marker.
type LambdaExpression struct {
	Kind         FunctionKind
	Params       []Pattern
	Body         Expression
	OuterVarRefs []string // free variables captured from an enclosing scope; populated downstream, nil at parse time
	Ref          source.Ref
}

func (*LambdaExpression) exprNode() {}

// ArrayLiteral is `[item, item, ...]`.
type ArrayLiteral struct {
	Items []Expression
	Ref   source.Ref
}

func (*ArrayLiteral) exprNode() {}

// Tuple is `(item, item, ...)` with two or more items, or `()` for the
// empty tuple. A parenthesized single expression never becomes a Tuple —
// the parser collapses `(e)` to `e` (spec.md §3 invariant, tested in
// spec.md §8 scenario 3).
type Tuple struct {
	Items []Expression
	Ref   source.Ref
}

func (*Tuple) exprNode() {}

// MatchArm is one `pattern => expression` arm of a MatchExpression.
type MatchArm struct {
	Pattern Pattern
	Value   Expression
	Ref     source.Ref
}

// MatchExpression is `match scrutinee { arm, arm, ... }`.
type MatchExpression struct {
	Scrutinee Expression
	Arms      []MatchArm
	Ref       source.Ref
}

func (*MatchExpression) exprNode() {}

// IfExpression is `if condition body else elseBody`. ElseBody is nil when
// no else-branch was written.
type IfExpression struct {
	Condition Expression
	Body      Expression
	ElseBody  Expression // nil if absent
	Ref       source.Ref
}

func (*IfExpression) exprNode() {}

// BlockStatementKind discriminates the two forms a statement inside a
// BlockExpression can take.
type BlockStatementKind int

const (
	BlockLet BlockStatementKind = iota
	BlockExprStmt
)

// BlockStatement is one statement inside a BlockExpression: either
// `let pattern (: type)? (= expr)? ;` or a bare `expr ;`.
type BlockStatement struct {
	Kind    BlockStatementKind
	Pattern Pattern   // set when Kind == BlockLet
	Type    *ExprType // optional type annotation, BlockLet only
	Value   Expression
	Ref     source.Ref
}

// BlockExpression is `{ statement* trailing_expression? }`. Trailing is nil
// when the block ends in a `;`-terminated statement instead of a bare
// expression, in which case the block's value is implementation-defined
// unit (spec.md §4.3, "Blocks").
type BlockExpression struct {
	Statements []BlockStatement
	Trailing   Expression // nil if absent
	Ref        source.Ref
}

func (*BlockExpression) exprNode() {}

// FreeInput is `${ expr }`, the free-input selector.
type FreeInput struct {
	Expr Expression
	Ref  source.Ref
}

func (*FreeInput) exprNode() {}
