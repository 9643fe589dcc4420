package parser

import (
	"strings"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/lexer"
)

// Expression parses one full expression, implementing the 12-level
// precedence ladder of spec.md §4.3 as a hand-written Pratt/recursive-
// descent parser rather than LALR table actions (spec.md §9, "Parser-
// generator choice"). Lambdas are recognized only here, at the very top of
// the hierarchy, which is how the grammar resolves the `|` ambiguity
// between bitwise-or and closure delimiters.
func Expression(c *cursor) (ast.Expression, error) {
	if isLambdaStart(c) {
		return parseLambda(c)
	}
	return parseLogicalOr(c)
}

func isLambdaStart(c *cursor) bool {
	if c.atSymbol("|") || c.atSymbol("||") {
		return true
	}
	if c.atKeyword("query") || c.atKeyword("constr") {
		return c.peekAt(1).Kind == lexer.Symbol && (c.peekAt(1).Text == "|" || c.peekAt(1).Text == "||")
	}
	return false
}

func parseLambda(c *cursor) (ast.Expression, error) {
	start := c.here()

	kind := ast.Pure
	switch {
	case c.eatKeyword("query"):
		kind = ast.Query
	case c.eatKeyword("constr"):
		kind = ast.Constr
	}

	var params []ast.Pattern
	switch {
	case c.eatSymbol("||"):
		// no parameters
	case c.eatSymbol("|"):
		for !c.atSymbol("|") {
			p, err := Pattern(c)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
			if !c.eatSymbol(",") {
				break
			}
		}
		if _, err := c.expectSymbol("|"); err != nil {
			return nil, err
		}
	default:
		return nil, c.unexpected("a lambda parameter list")
	}

	body, err := Expression(c)
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpression{Kind: kind, Params: params, Body: body, Ref: start.Union(c.toks[c.pos-1].Ref)}, nil
}

func binaryOpLevel(c *cursor, next func(*cursor) (ast.Expression, error), ops map[string]ast.BinaryOperator) (ast.Expression, error) {
	start := c.here()
	left, err := next(c)
	if err != nil {
		return nil, err
	}
	for {
		t := c.peek()
		op, ok := ops[t.Text]
		if t.Kind != lexer.Symbol || !ok {
			return left, nil
		}
		c.next()
		right, err := next(c)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Left: left, Op: op, Right: right, Ref: start.Union(c.toks[c.pos-1].Ref)}
	}
}

func parseLogicalOr(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseLogicalAnd, map[string]ast.BinaryOperator{"||": ast.LogicalOr})
}

func parseLogicalAnd(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseComparison, map[string]ast.BinaryOperator{"&&": ast.LogicalAnd})
}

var comparisonOps = map[string]ast.BinaryOperator{
	"<":  ast.Less,
	"<=": ast.LessEqual,
	"==": ast.Equal,
	"=":  ast.Identity,
	"!=": ast.NotEqual,
	">=": ast.GreaterEqual,
	">":  ast.Greater,
}

// parseComparison implements the non-associative comparison level: at most
// one comparison operator may appear at this level, never two chained
// together (spec.md §8 invariant 2, "comparisons do not chain").
func parseComparison(c *cursor) (ast.Expression, error) {
	start := c.here()
	left, err := parseBinOr(c)
	if err != nil {
		return nil, err
	}

	t := c.peek()
	op, ok := comparisonOps[t.Text]
	if t.Kind != lexer.Symbol || !ok {
		return left, nil
	}
	c.next()

	right, err := parseBinOr(c)
	if err != nil {
		return nil, err
	}

	if next := c.peek(); next.Kind == lexer.Symbol {
		if _, chained := comparisonOps[next.Text]; chained {
			return nil, c.errorf(next.Ref, "comparison operators do not chain")
		}
	}

	return &ast.BinaryOperation{Left: left, Op: op, Right: right, Ref: start.Union(c.toks[c.pos-1].Ref)}, nil
}

func parseBinOr(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseBinXor, map[string]ast.BinaryOperator{"|": ast.BinaryOr})
}

func parseBinXor(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseBinAnd, map[string]ast.BinaryOperator{"^": ast.BinaryXor})
}

func parseBinAnd(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseShift, map[string]ast.BinaryOperator{"&": ast.BinaryAnd})
}

func parseShift(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseAdditive, map[string]ast.BinaryOperator{"<<": ast.ShiftLeft, ">>": ast.ShiftRight})
}

func parseAdditive(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseMultiplicative, map[string]ast.BinaryOperator{"+": ast.Add, "-": ast.Sub})
}

func parseMultiplicative(c *cursor) (ast.Expression, error) {
	return binaryOpLevel(c, parseUnaryPrefix, map[string]ast.BinaryOperator{"*": ast.Mul, "/": ast.Div, "%": ast.Modulo})
}

// parseUnaryPrefix handles prefix `-`/`!` (level 11) and, below it, the
// right-associative `**` (level 10): Power's left operand is a Term, its
// right operand recurses back into Power, per spec.md §4.3.
func parseUnaryPrefix(c *cursor) (ast.Expression, error) {
	start := c.here()
	switch {
	case c.eatSymbol("-"):
		operand, err := parseUnaryPrefix(c)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{Op: ast.UnaryMinus, Expr: operand, Ref: start.Union(c.toks[c.pos-1].Ref)}, nil
	case c.eatSymbol("!"):
		operand, err := parseUnaryPrefix(c)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{Op: ast.UnaryNot, Expr: operand, Ref: start.Union(c.toks[c.pos-1].Ref)}, nil
	}
	return parsePower(c)
}

func parsePower(c *cursor) (ast.Expression, error) {
	start := c.here()
	left, err := parseNextRow(c)
	if err != nil {
		return nil, err
	}
	if c.eatSymbol("**") {
		right, err := parsePower(c)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOperation{Left: left, Op: ast.Pow, Right: right, Ref: start.Union(c.toks[c.pos-1].Ref)}, nil
	}
	return left, nil
}

// parseNextRow handles postfix `'` (level 12, tightest-binding).
func parseNextRow(c *cursor) (ast.Expression, error) {
	start := c.here()
	term, err := parseCallChain(c)
	if err != nil {
		return nil, err
	}
	for c.eatSymbol("'") {
		term = &ast.UnaryOperation{Op: ast.UnaryNext, Expr: term, Ref: start.Union(c.toks[c.pos-1].Ref)}
	}
	return term, nil
}

// parseCallChain parses a Term together with any trailing `(args)` call or
// `[index]` access applications, which the grammar treats as left-recursive
// forms of Term rather than a distinct precedence level.
func parseCallChain(c *cursor) (ast.Expression, error) {
	start := c.here()
	term, err := parseTerm(c)
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case c.atSymbol("("):
			c.next()
			var args []ast.Expression
			for !c.atSymbol(")") {
				arg, err := Expression(c)
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
			term = &ast.FunctionCall{Function: term, Arguments: args, Ref: start.Union(end.Ref)}
		case c.atSymbol("["):
			c.next()
			index, err := Expression(c)
			if err != nil {
				return nil, err
			}
			end, err := c.expectSymbol("]")
			if err != nil {
				return nil, err
			}
			term = &ast.IndexAccess{Array: term, Index: index, Ref: start.Union(end.Ref)}
		default:
			return term, nil
		}
	}
}

// parseTerm parses one atomic Term (spec.md §4.3, "Terms").
func parseTerm(c *cursor) (ast.Expression, error) {
	start := c.here()
	t := c.peek()

	switch {
	case t.Kind == lexer.Decimal || t.Kind == lexer.Hex:
		c.next()
		v, err := lexer.ParseNumber(t.Text)
		if err != nil {
			return nil, newError(LexError, t.Ref, "%s", err)
		}
		return &ast.Number{Value: v, Ref: start.Union(t.Ref)}, nil

	case t.Kind == lexer.String:
		c.next()
		s, err := lexer.UnescapeString(t.Text)
		if err != nil {
			return nil, newError(LexError, t.Ref, "%s", err)
		}
		return &ast.String{Value: s, Ref: start.Union(t.Ref)}, nil

	case t.Kind == lexer.PIdent:
		c.next()
		return &ast.PublicReference{Name: strings.TrimPrefix(t.Text, ":"), Ref: start.Union(t.Ref)}, nil

	case t.Kind == lexer.CIdent:
		c.next()
		path := ast.SymbolPath{Parts: []ast.Part{{Name: t.Text}}, Ref: t.Ref}
		return &ast.NamespacedPolynomialReference{Path: ast.GenericSymbolPath{Path: path, Ref: t.Ref}, Ref: start.Union(t.Ref)}, nil

	case t.Kind == lexer.Symbol && t.Text == "${":
		c.next()
		expr, err := Expression(c)
		if err != nil {
			return nil, err
		}
		end, err := c.expectSymbol("}")
		if err != nil {
			return nil, err
		}
		return &ast.FreeInput{Expr: expr, Ref: start.Union(end.Ref)}, nil

	case c.atKeyword("match"):
		return parseMatch(c)

	case c.atKeyword("if"):
		return parseIf(c)

	case c.atSymbol("{"):
		return parseBlock(c)

	case c.atSymbol("["):
		return parseArrayLiteral(c)

	case c.atSymbol("("):
		return parseParenOrTuple(c)

	case t.Kind == lexer.UIdent || c.atKeyword("super") || c.atSymbol("::") ||
		(t.Kind == lexer.LIdent && (!lexer.IsKeyword(t.Text) || lexer.IsSpecial(t.Text))):
		path, err := parseGenericSymbolPath(c)
		if err != nil {
			return nil, err
		}
		return &ast.NamespacedPolynomialReference{Path: path, Ref: path.Ref}, nil

	default:
		return nil, c.unexpected("an expression")
	}
}

func parseParenOrTuple(c *cursor) (ast.Expression, error) {
	start := c.here()
	c.next() // "("

	if c.atSymbol(")") {
		end, _ := c.expectSymbol(")")
		return &ast.Tuple{Items: nil, Ref: start.Union(end.Ref)}, nil
	}

	first, err := Expression(c)
	if err != nil {
		return nil, err
	}

	if c.atSymbol(",") {
		c.next()
		if c.atSymbol(")") {
			return nil, c.errorf(c.peek().Ref, "a parenthesized single expression followed by a trailing comma is not a valid tuple")
		}
		items := []ast.Expression{first}
		for {
			item, err := Expression(c)
			if err != nil {
				return nil, err
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
		return &ast.Tuple{Items: items, Ref: start.Union(end.Ref)}, nil
	}

	if _, err := c.expectSymbol(")"); err != nil {
		return nil, err
	}
	return first, nil
}

func parseArrayLiteral(c *cursor) (ast.Expression, error) {
	start := c.here()
	c.next() // "["
	var items []ast.Expression
	for !c.atSymbol("]") {
		item, err := Expression(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !c.eatSymbol(",") {
			break
		}
	}
	end, err := c.expectSymbol("]")
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{Items: items, Ref: start.Union(end.Ref)}, nil
}

func parseMatch(c *cursor) (ast.Expression, error) {
	start := c.here()
	c.next() // "match"
	scrutinee, err := Expression(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expectSymbol("{"); err != nil {
		return nil, err
	}

	var arms []ast.MatchArm
	for !c.atSymbol("}") {
		armStart := c.here()
		pat, err := Pattern(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expectSymbol("=>"); err != nil {
			return nil, err
		}
		value, err := Expression(c)
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Value: value, Ref: armStart.Union(c.toks[c.pos-1].Ref)})
		if !c.eatSymbol(",") {
			break
		}
	}
	end, err := c.expectSymbol("}")
	if err != nil {
		return nil, err
	}
	return &ast.MatchExpression{Scrutinee: scrutinee, Arms: arms, Ref: start.Union(end.Ref)}, nil
}

func parseIf(c *cursor) (ast.Expression, error) {
	start := c.here()
	c.next() // "if"
	cond, err := Expression(c)
	if err != nil {
		return nil, err
	}
	body, err := Expression(c)
	if err != nil {
		return nil, err
	}
	var elseBody ast.Expression
	if c.eatKeyword("else") {
		elseBody, err = Expression(c)
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfExpression{Condition: cond, Body: body, ElseBody: elseBody, Ref: start.Union(c.toks[c.pos-1].Ref)}, nil
}

func parseBlock(c *cursor) (ast.Expression, error) {
	start := c.here()
	c.next() // "{"

	var statements []ast.BlockStatement
	var trailing ast.Expression

	for !c.atSymbol("}") {
		stmtStart := c.here()

		if c.atKeyword("let") {
			c.next()
			pat, err := Pattern(c)
			if err != nil {
				return nil, err
			}
			var ty *ast.ExprType
			if c.eatSymbol(":") {
				t, err := TypeExpr(c)
				if err != nil {
					return nil, err
				}
				ty = &t
			}
			var value ast.Expression
			if c.eatSymbol("=") {
				value, err = Expression(c)
				if err != nil {
					return nil, err
				}
			}
			if _, err := c.expectSymbol(";"); err != nil {
				return nil, err
			}
			statements = append(statements, ast.BlockStatement{
				Kind: ast.BlockLet, Pattern: pat, Type: ty, Value: value,
				Ref: stmtStart.Union(c.toks[c.pos-1].Ref),
			})
			continue
		}

		expr, err := Expression(c)
		if err != nil {
			return nil, err
		}
		if c.eatSymbol(";") {
			statements = append(statements, ast.BlockStatement{
				Kind: ast.BlockExprStmt, Value: expr,
				Ref: stmtStart.Union(c.toks[c.pos-1].Ref),
			})
			continue
		}
		// No trailing ";": this must be the block's trailing expression.
		trailing = expr
		break
	}

	end, err := c.expectSymbol("}")
	if err != nil {
		return nil, err
	}
	return &ast.BlockExpression{Statements: statements, Trailing: trailing, Ref: start.Union(end.Ref)}, nil
}
