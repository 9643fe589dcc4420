package parser

import (
	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/lexer"
)

// SymbolPath is the SymbolPath grammar entry point (spec.md §6), exposed
// standalone for callers that want to parse a single path with nothing
// else around it.
func SymbolPath(c *cursor) (ast.SymbolPath, error) {
	return parseSymbolPath(c)
}

// parseSymbolPath parses a `(::)? (super|ident) (:: (super|ident))*` symbol
// path. SymbolPath and GenericSymbolPath are grammatically inlined rather
// than shared by reference in the LALR original to avoid a conflict; a
// recursive-descent parser has no such restriction, so every path-shaped
// production in this package (expressions, patterns, machine statements)
// calls this one function (spec.md §9, "Turbofish inside SymbolPath").
func parseSymbolPath(c *cursor) (ast.SymbolPath, error) {
	start := c.here()
	var parts []ast.Part

	if c.eatSymbol("::") {
		parts = append(parts, ast.Part{Name: ""})
	}

	part, err := parsePathPart(c)
	if err != nil {
		return ast.SymbolPath{}, err
	}
	parts = append(parts, part)

	for c.atSymbol("::") && c.peekAt(1).Text != "<" {
		c.next()
		part, err := parsePathPart(c)
		if err != nil {
			return ast.SymbolPath{}, err
		}
		parts = append(parts, part)
	}

	end := c.toks[c.pos-1].Ref
	return ast.SymbolPath{Parts: parts, Ref: start.Union(end)}, nil
}

func parsePathPart(c *cursor) (ast.Part, error) {
	if c.eatKeyword("super") {
		return ast.Part{Super: true}, nil
	}
	if t := c.peek(); t.Kind == lexer.UIdent {
		c.next()
		return ast.Part{Name: t.Text}, nil
	}
	tok, err := c.identifier()
	if err != nil {
		return ast.Part{}, err
	}
	return ast.Part{Name: tok.Text}, nil
}

// parseGenericSymbolPath parses a SymbolPath optionally followed by a
// turbofish `::<T1, T2, ...>` type-argument list.
func parseGenericSymbolPath(c *cursor) (ast.GenericSymbolPath, error) {
	start := c.here()
	path, err := parseSymbolPath(c)
	if err != nil {
		return ast.GenericSymbolPath{}, err
	}

	var typeArgs []ast.ExprType
	if c.atSymbol("::") && c.peekAt(1).Text == "<" {
		c.next() // "::"
		c.next() // "<"
		for !c.atSymbol(">") {
			ty, err := TypeExpr(c)
			if err != nil {
				return ast.GenericSymbolPath{}, err
			}
			typeArgs = append(typeArgs, ty)
			if !c.eatSymbol(",") {
				break
			}
		}
		if _, err := c.expectSymbol(">"); err != nil {
			return ast.GenericSymbolPath{}, err
		}
	}

	end := c.toks[c.pos-1].Ref
	return ast.GenericSymbolPath{Path: path, TypeArgs: typeArgs, Ref: start.Union(end)}, nil
}
