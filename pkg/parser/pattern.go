package parser

import (
	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/lexer"
)

// Pattern parses one Pattern (spec.md §3, "Patterns"). A bare identifier-
// shaped pattern is always produced as a PatternEnum with no arguments,
// never as a PatternVariable — the parser must not try to disambiguate
// variable-vs-enum at parse time (spec.md §9).
func Pattern(c *cursor) (ast.Pattern, error) {
	start := c.here()
	t := c.peek()

	switch {
	case t.Kind == lexer.LIdent && t.Text == "_":
		c.next()
		return &ast.PatternCatchAll{Ref: start.Union(t.Ref)}, nil

	case t.Kind == lexer.Decimal || t.Kind == lexer.Hex:
		c.next()
		v, err := lexer.ParseNumber(t.Text)
		if err != nil {
			return nil, newError(LexError, t.Ref, "%s", err)
		}
		return &ast.PatternNumber{Value: v, Ref: start.Union(t.Ref)}, nil

	case t.Kind == lexer.String:
		c.next()
		s, err := lexer.UnescapeString(t.Text)
		if err != nil {
			return nil, newError(LexError, t.Ref, "%s", err)
		}
		return &ast.PatternString{Value: s, Ref: start.Union(t.Ref)}, nil

	case c.atSymbol("-"):
		// a leading minus is only legal in front of a numeric pattern
		c.next()
		n := c.peek()
		if n.Kind != lexer.Decimal && n.Kind != lexer.Hex {
			return nil, c.unexpected("a number after '-'")
		}
		c.next()
		v, err := lexer.ParseNumber(n.Text)
		if err != nil {
			return nil, newError(LexError, n.Ref, "%s", err)
		}
		v.Neg(v)
		return &ast.PatternNumber{Value: v, Ref: start.Union(n.Ref)}, nil

	case c.atSymbol("("):
		return parsePatternTuple(c)

	case c.atSymbol("["):
		return parsePatternArray(c)

	case c.atSymbol(".."):
		return nil, c.errorf(t.Ref, "'..' is only allowed inside an array pattern")

	default:
		return parsePatternEnum(c)
	}
}

func parsePatternTuple(c *cursor) (ast.Pattern, error) {
	start := c.here()
	if _, err := c.expectSymbol("("); err != nil {
		return nil, err
	}

	var items []ast.Pattern
	for !c.atSymbol(")") {
		item, err := Pattern(c)
		if err != nil {
			return nil, err
		}
		if _, isEllipsis := item.(*ast.PatternEllipsis); isEllipsis {
			return nil, c.errorf(item.(*ast.PatternEllipsis).Ref, "'..' is not allowed inside a tuple pattern")
		}
		items = append(items, item)
		if !c.eatSymbol(",") {
			break
		}
	}

	end, err := c.expectSymbol(")")
	if err != nil {
		return nil, err
	}
	return &ast.PatternTuple{Items: items, Ref: start.Union(end.Ref)}, nil
}

func parsePatternArray(c *cursor) (ast.Pattern, error) {
	start := c.here()
	if _, err := c.expectSymbol("["); err != nil {
		return nil, err
	}

	var items []ast.Pattern
	for !c.atSymbol("]") {
		if t := c.peek(); c.eatSymbol("..") {
			items = append(items, &ast.PatternEllipsis{Ref: t.Ref})
		} else {
			item, err := Pattern(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if !c.eatSymbol(",") {
			break
		}
	}

	end, err := c.expectSymbol("]")
	if err != nil {
		return nil, err
	}
	return &ast.PatternArray{Items: items, Ref: start.Union(end.Ref)}, nil
}

func parsePatternEnum(c *cursor) (ast.Pattern, error) {
	start := c.here()
	path, err := parseSymbolPath(c)
	if err != nil {
		return nil, err
	}

	if !c.atSymbol("(") {
		return &ast.PatternEnum{Path: path, Ref: start.Union(path.Ref)}, nil
	}

	c.next() // "("
	var args []ast.Pattern
	for !c.atSymbol(")") {
		arg, err := Pattern(c)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !c.eatSymbol(",") {
			break
		}
	}
	end, err := c.expectSymbol(")")
	if err != nil {
		return nil, err
	}
	return &ast.PatternEnum{Path: path, Args: args, Ref: start.Union(end.Ref)}, nil
}
