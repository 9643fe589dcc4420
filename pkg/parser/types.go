package parser

import (
	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/lexer"
)

// primitiveTypeKeywords maps a type-position keyword spelling to its Kind.
// "col" and "string" are ordinary keywords (never identifiers); the rest
// additionally double as SpecialIdents usable as plain identifiers outside
// type position (spec.md §4.2).
var primitiveTypeKeywords = map[string]ast.TypeKind{
	"bool":   ast.TypeBool,
	"int":    ast.TypeInt,
	"fe":     ast.TypeFe,
	"string": ast.TypeString,
	"col":    ast.TypeCol,
	"expr":   ast.TypeExpr_,
}

// TypeExpr is the TypeExpr grammar entry point (spec.md §6): a type term
// whose array lengths are themselves Expressions, as produced by ordinary
// source parsing.
func TypeExpr(c *cursor) (ast.ExprType, error) {
	return parseType(c, parseExpressionLen)
}

// TypeNumber is the TypeNumber grammar entry point (spec.md §6): a type term
// whose array lengths are already-resolved unsigned integers.
func TypeNumber(c *cursor) (ast.NumType, error) {
	return parseType(c, parseNumberLen)
}

func parseExpressionLen(c *cursor) (ast.Expression, error) {
	return Expression(c)
}

func parseNumberLen(c *cursor) (uint64, error) {
	t := c.peek()
	if t.Kind != lexer.Decimal && t.Kind != lexer.Hex {
		return 0, c.unexpected("a number")
	}
	c.next()
	v, err := lexer.ParseNumber(t.Text)
	if err != nil {
		return 0, newError(LexError, t.Ref, "%s", err)
	}
	return v.Uint64(), nil
}

// parseType parses one Type[L] term, using parseLen to parse the array
// length payload of an Array type (spec.md §3, "Types"). It is shared by
// both grammar entry points, generic over the array-length representation,
// mirroring the Rust frontend's Type<L> exactly (see SPEC_FULL.md).
func parseType[L ast.ArrayLen](c *cursor, parseLen func(*cursor) (L, error)) (ast.Type[L], error) {
	base, err := parseTypeAtom(c, parseLen)
	if err != nil {
		return ast.Type[L]{}, err
	}
	return parseTypeSuffix(c, base, parseLen)
}

func parseTypeAtom[L ast.ArrayLen](c *cursor, parseLen func(*cursor) (L, error)) (ast.Type[L], error) {
	start := c.here()
	t := c.peek()

	if t.Kind == lexer.LIdent {
		if kind, ok := primitiveTypeKeywords[t.Text]; ok {
			c.next()
			return ast.Type[L]{Kind: kind, Ref: start.Union(t.Ref)}, nil
		}
	}

	if c.atSymbol("(") {
		return parseTypeParen(c, parseLen)
	}

	// Named type: path of NonSpecialIdentifier/UIdent segments, optional
	// `<...>` generic argument list directly after the path.
	path, err := parseTypeSymbolPath(c)
	if err != nil {
		return ast.Type[L]{}, err
	}

	var args []ast.Type[L]
	if c.atSymbol("<") {
		c.next()
		for !c.atSymbol(">") {
			arg, err := parseType(c, parseLen)
			if err != nil {
				return ast.Type[L]{}, err
			}
			args = append(args, arg)
			if !c.eatSymbol(",") {
				break
			}
		}
		if _, err := c.expectSymbol(">"); err != nil {
			return ast.Type[L]{}, err
		}
	}

	end := c.toks[c.pos-1].Ref
	return ast.Type[L]{Kind: ast.TypeNamed, Path: path, GenericArgs: args, Ref: start.Union(end)}, nil
}

// parseTypeParen handles both the Tuple type `(T1, T2, ...)` and the
// Function type `(T1, T2) -> Tret`, plus the grouping form `(T)`, which
// collapses to T rather than becoming a one-element Tuple.
func parseTypeParen[L ast.ArrayLen](c *cursor, parseLen func(*cursor) (L, error)) (ast.Type[L], error) {
	start := c.here()
	c.next() // "("

	var items []ast.Type[L]
	for !c.atSymbol(")") {
		item, err := parseType(c, parseLen)
		if err != nil {
			return ast.Type[L]{}, err
		}
		items = append(items, item)
		if !c.eatSymbol(",") {
			break
		}
	}
	closeParen, err := c.expectSymbol(")")
	if err != nil {
		return ast.Type[L]{}, err
	}

	if c.eatSymbol("->") {
		value, err := parseType(c, parseLen)
		if err != nil {
			return ast.Type[L]{}, err
		}
		valRef := value.Ref
		return ast.Type[L]{Kind: ast.TypeFunction, Params: items, Value: &value, Ref: start.Union(valRef)}, nil
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return ast.Type[L]{Kind: ast.TypeTuple, Items: items, Ref: start.Union(closeParen.Ref)}, nil
}

// parseTypeSuffix handles the postfix `[length?]` array-type marker, which
// may be repeated for multi-dimensional arrays.
func parseTypeSuffix[L ast.ArrayLen](c *cursor, base ast.Type[L], parseLen func(*cursor) (L, error)) (ast.Type[L], error) {
	for c.atSymbol("[") {
		start := base.Ref
		c.next()
		var length *L
		if !c.atSymbol("]") {
			l, err := parseLen(c)
			if err != nil {
				return ast.Type[L]{}, err
			}
			length = &l
		}
		end, err := c.expectSymbol("]")
		if err != nil {
			return ast.Type[L]{}, err
		}
		b := base
		base = ast.Type[L]{Kind: ast.TypeArray, Base: &b, Length: length, Ref: start.Union(end.Ref)}
	}
	return base, nil
}

// parseTypeSymbolPath parses TypeSymbolPath (spec.md §4.2): like a plain
// SymbolPath, but lower-case segments go through NonSpecialIdentifier so
// that a primitive type keyword never accidentally parses as a path
// segment.
func parseTypeSymbolPath(c *cursor) (ast.SymbolPath, error) {
	start := c.here()
	var parts []ast.Part

	if c.eatSymbol("::") {
		parts = append(parts, ast.Part{Name: ""})
	}

	part, err := parseTypePathPart(c)
	if err != nil {
		return ast.SymbolPath{}, err
	}
	parts = append(parts, part)

	for c.atSymbol("::") {
		c.next()
		part, err := parseTypePathPart(c)
		if err != nil {
			return ast.SymbolPath{}, err
		}
		parts = append(parts, part)
	}

	end := c.toks[c.pos-1].Ref
	return ast.SymbolPath{Parts: parts, Ref: start.Union(end)}, nil
}

func parseTypePathPart(c *cursor) (ast.Part, error) {
	if c.eatKeyword("super") {
		return ast.Part{Super: true}, nil
	}
	t := c.peek()
	if t.Kind == lexer.UIdent {
		c.next()
		return ast.Part{Name: t.Text}, nil
	}
	tok, err := c.nonSpecialIdentifier()
	if err != nil {
		return ast.Part{}, err
	}
	return ast.Part{Name: tok.Text}, nil
}

// TypeVarBounds is the TypeVarBounds grammar entry point (spec.md §6): a
// comma-separated list of `name (: Id + Id + ...)?` entries.
func TypeVarBounds(c *cursor) ([]ast.TypeVar, error) {
	var vars []ast.TypeVar
	for {
		start := c.here()
		name, err := c.identifier()
		if err != nil {
			return nil, err
		}
		var bounds []string
		if c.eatSymbol(":") {
			for {
				b, err := c.identifier()
				if err != nil {
					return nil, err
				}
				bounds = append(bounds, b.Text)
				if !c.eatSymbol("+") {
					break
				}
			}
		}
		end := c.toks[c.pos-1].Ref
		vars = append(vars, ast.TypeVar{Name: name.Text, Bounds: bounds, Ref: start.Union(end)})
		if !c.eatSymbol(",") {
			break
		}
	}
	return vars, nil
}
