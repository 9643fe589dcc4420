package parser

import (
	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/lexer"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

// PILFile is the PILFile grammar entry point (spec.md §6): a flat list of
// PIL statements running to end of input.
func PILFile(c *cursor) (*ast.PILFile, error) {
	start := c.here()
	var stmts []ast.PilStatement
	for c.peek().Kind != lexer.EOF {
		stmt, err := parsePilStatement(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.PILFile{Statements: stmts, Ref: start.Union(c.peek().Ref)}, nil
}

// parsePilStatement dispatches on the leading keyword of one PIL statement
// (spec.md §3, "PIL statements").
func parsePilStatement(c *cursor) (ast.PilStatement, error) {
	switch {
	case c.atKeyword("include"):
		return parseInclude(c)
	case c.atKeyword("namespace"):
		return parseNamespace(c)
	case c.atKeyword("let"):
		return parseModuleLevelLet(c)
	case c.atKeyword("pol") || c.atKeyword("col"):
		return parsePolStatement(c)
	case c.atKeyword("public"):
		return parsePublicDeclaration(c)
	case c.atKeyword("enum"):
		return parseEnum(c)
	case c.atKeyword("trait"):
		return parseTrait(c)
	default:
		return parsePilIdentity(c)
	}
}

func parseInclude(c *cursor) (*ast.Include, error) {
	start := c.here()
	c.next() // "include"
	t := c.peek()
	if t.Kind != lexer.String {
		return nil, c.unexpected("a string literal")
	}
	c.next()
	path, err := lexer.UnescapeString(t.Text)
	if err != nil {
		return nil, newError(LexError, t.Ref, "%s", err)
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.Include{Path: path, Ref: start.Union(semi.Ref)}, nil
}

func parseNamespace(c *cursor) (*ast.Namespace, error) {
	start := c.here()
	c.next() // "namespace"

	var name *ast.SymbolPath
	if !c.atSymbol("(") && !c.atSymbol(";") {
		p, err := parseSymbolPath(c)
		if err != nil {
			return nil, err
		}
		name = &p
	}

	var degree ast.Expression
	if c.eatSymbol("(") {
		d, err := Expression(c)
		if err != nil {
			return nil, err
		}
		degree = d
		if _, err := c.expectSymbol(")"); err != nil {
			return nil, err
		}
	}

	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.Namespace{Name: name, Degree: degree, Ref: start.Union(semi.Ref)}, nil
}

// parseLet parses `("<" bounds ">")? name (":" type)? ("=" expr)? ";"`, the
// shape shared by PIL module-level let statements (via parseModuleLevelLet)
// and the ModuleLet wrapper at ASM module level (spec.md §4.3, "Generics").
func parseLet(c *cursor) (*ast.LetStatement, error) {
	start := c.here()
	c.next() // "let"

	var typeVars []ast.TypeVar
	if c.eatSymbol("<") {
		vars, err := TypeVarBounds(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expectSymbol(">"); err != nil {
			return nil, err
		}
		typeVars = vars
	}

	name, err := c.identifier()
	if err != nil {
		return nil, err
	}

	var scheme *ast.TypeScheme
	if c.eatSymbol(":") {
		ty, err := TypeExpr(c)
		if err != nil {
			return nil, err
		}
		scheme = &ast.TypeScheme{Vars: typeVars, Body: ty, Ref: ty.Ref}
	}

	var value ast.Expression
	if c.eatSymbol("=") {
		v, err := Expression(c)
		if err != nil {
			return nil, err
		}
		value = v
	}

	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.LetStatement{Name: name.Text, Scheme: scheme, Value: value, Ref: start.Union(semi.Ref)}, nil
}

func parseModuleLevelLet(c *cursor) (*ast.LetStatement, error) {
	return parseLet(c)
}

// parsePolStatement handles the `pol`/`col` family (spec.md §4.3,
// "Polynomial declarations"). "pol" and "col" are synonyms, as are
// "constant"/"fixed" and "commit"/"witness"; all four normalize to
// identical AST regardless of which spelling was used (spec.md §8
// invariant 7).
func parsePolStatement(c *cursor) (ast.PilStatement, error) {
	start := c.here()
	c.next() // "pol" or "col"

	switch {
	case c.eatKeyword("constant") || c.eatKeyword("fixed"):
		return parsePolynomialConstant(c, start)
	case c.eatKeyword("commit") || c.eatKeyword("witness"):
		return parsePolynomialCommit(c, start)
	default:
		name, err := c.identifier()
		if err != nil {
			return nil, err
		}
		if _, err := c.expectSymbol("="); err != nil {
			return nil, err
		}
		value, err := Expression(c)
		if err != nil {
			return nil, err
		}
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		return &ast.PolynomialDefinition{Name: name.Text, Value: value, Ref: start.Union(semi.Ref)}, nil
	}
}

// parsePolynomialName parses one `name ("[" length "]")?` entry shared by
// the constant-declaration and commit-declaration lists.
func parsePolynomialName(c *cursor) (ast.PolynomialName, error) {
	start := c.here()
	name, err := c.identifier()
	if err != nil {
		return ast.PolynomialName{}, err
	}
	var arrLen ast.Expression
	if c.eatSymbol("[") {
		l, err := Expression(c)
		if err != nil {
			return ast.PolynomialName{}, err
		}
		arrLen = l
		if _, err := c.expectSymbol("]"); err != nil {
			return ast.PolynomialName{}, err
		}
	}
	end := c.toks[c.pos-1].Ref
	return ast.PolynomialName{Name: name.Text, ArrayLength: arrLen, Ref: start.Union(end)}, nil
}

func parsePolynomialConstant(c *cursor, start source.Ref) (ast.PilStatement, error) {
	name, err := c.identifier()
	if err != nil {
		return nil, err
	}
	var arrLen ast.Expression
	if c.eatSymbol("[") {
		l, err := Expression(c)
		if err != nil {
			return nil, err
		}
		arrLen = l
		if _, err := c.expectSymbol("]"); err != nil {
			return nil, err
		}
	}

	if c.eatSymbol("=") {
		value, err := Expression(c)
		if err != nil {
			return nil, err
		}
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		return &ast.PolynomialConstantDefinition{Name: name.Text, Value: value, Ref: start.Union(semi.Ref)}, nil
	}

	names := []ast.PolynomialName{{Name: name.Text, ArrayLength: arrLen, Ref: name.Ref.Union(c.toks[c.pos-1].Ref)}}
	for c.eatSymbol(",") {
		n, err := parsePolynomialName(c)
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.PolynomialConstantDeclaration{Names: names, Ref: start.Union(semi.Ref)}, nil
}

func parsePolynomialCommit(c *cursor, start source.Ref) (ast.PilStatement, error) {
	var stage *uint64
	if c.eatKeyword("stage") {
		if _, err := c.expectSymbol("("); err != nil {
			return nil, err
		}
		n, err := parseNumberLen(c)
		if err != nil {
			return nil, err
		}
		stage = &n
		if _, err := c.expectSymbol(")"); err != nil {
			return nil, err
		}
	}

	first, err := parsePolynomialName(c)
	if err != nil {
		return nil, err
	}
	names := []ast.PolynomialName{first}

	var query ast.Expression
	if c.atSymbol("(") {
		qStart := c.here()
		c.next() // "("
		var params []ast.Pattern
		for !c.atSymbol(")") {
			p, err := Pattern(c)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
			if !c.eatSymbol(",") {
				break
			}
		}
		if _, err := c.expectSymbol(")"); err != nil {
			return nil, err
		}
		if _, err := c.expectKeyword("query"); err != nil {
			return nil, err
		}
		body, err := Expression(c)
		if err != nil {
			return nil, err
		}
		end := c.toks[c.pos-1].Ref
		query = &ast.LambdaExpression{Kind: ast.Query, Params: params, Body: body, Ref: qStart.Union(end)}
	}

	for c.eatSymbol(",") {
		n, err := parsePolynomialName(c)
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}

	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.PolynomialCommitDeclaration{Stage: stage, Names: names, Query: query, Ref: start.Union(semi.Ref)}, nil
}

// parsePublicDeclaration parses `public name = polynomial ("[" index "]")? "(" row ")" ";"`.
// The bracketed array index is optional; the final parenthesized row is
// always required (spec.md §4.3, "Public declarations").
func parsePublicDeclaration(c *cursor) (*ast.PublicDeclaration, error) {
	start := c.here()
	c.next() // "public"
	name, err := c.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := c.expectSymbol("="); err != nil {
		return nil, err
	}

	path, err := parseGenericSymbolPath(c)
	if err != nil {
		return nil, err
	}
	polynomial := ast.Expression(&ast.NamespacedPolynomialReference{Path: path, Ref: path.Ref})

	var arrayIndex ast.Expression
	if c.eatSymbol("[") {
		idx, err := Expression(c)
		if err != nil {
			return nil, err
		}
		arrayIndex = idx
		if _, err := c.expectSymbol("]"); err != nil {
			return nil, err
		}
	}

	if _, err := c.expectSymbol("("); err != nil {
		return nil, err
	}
	row, err := Expression(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expectSymbol(")"); err != nil {
		return nil, err
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.PublicDeclaration{Name: name.Text, Polynomial: polynomial, ArrayIndex: arrayIndex, Row: row, Ref: start.Union(semi.Ref)}, nil
}

func parseEnum(c *cursor) (*ast.EnumDeclaration, error) {
	start := c.here()
	c.next() // "enum"
	name, err := parseDeclName(c)
	if err != nil {
		return nil, err
	}

	var typeVars []ast.TypeVar
	if c.eatSymbol("<") {
		vars, err := TypeVarBounds(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expectSymbol(">"); err != nil {
			return nil, err
		}
		typeVars = vars
	}

	if _, err := c.expectSymbol("{"); err != nil {
		return nil, err
	}
	var variants []ast.EnumVariant
	for !c.atSymbol("}") {
		vStart := c.here()
		vName, err := parseDeclName(c)
		if err != nil {
			return nil, err
		}
		var fields []ast.ExprType
		if c.eatSymbol("(") {
			for !c.atSymbol(")") {
				ty, err := TypeExpr(c)
				if err != nil {
					return nil, err
				}
				fields = append(fields, ty)
				if !c.eatSymbol(",") {
					break
				}
			}
			if _, err := c.expectSymbol(")"); err != nil {
				return nil, err
			}
		}
		end := c.toks[c.pos-1].Ref
		variants = append(variants, ast.EnumVariant{Name: vName, Fields: fields, Ref: vStart.Union(end)})
		if !c.eatSymbol(",") {
			break
		}
	}
	closeBrace, err := c.expectSymbol("}")
	if err != nil {
		return nil, err
	}
	return &ast.EnumDeclaration{Name: name, TypeVars: typeVars, Variants: variants, Ref: start.Union(closeBrace.Ref)}, nil
}

func parseTrait(c *cursor) (*ast.TraitDeclaration, error) {
	start := c.here()
	c.next() // "trait"
	name, err := parseDeclName(c)
	if err != nil {
		return nil, err
	}

	var typeVars []string
	if c.eatSymbol("<") {
		for !c.atSymbol(">") {
			v, err := c.identifier()
			if err != nil {
				return nil, err
			}
			typeVars = append(typeVars, v.Text)
			if !c.eatSymbol(",") {
				break
			}
		}
		if _, err := c.expectSymbol(">"); err != nil {
			return nil, err
		}
	}

	if _, err := c.expectSymbol("{"); err != nil {
		return nil, err
	}
	var fns []ast.TraitFunction
	for !c.atSymbol("}") {
		fnStart := c.here()
		fnName, err := c.identifier()
		if err != nil {
			return nil, err
		}
		if _, err := c.expectSymbol(":"); err != nil {
			return nil, err
		}
		if _, err := c.expectSymbol("("); err != nil {
			return nil, err
		}
		var params []ast.ExprType
		for !c.atSymbol(")") {
			ty, err := TypeExpr(c)
			if err != nil {
				return nil, err
			}
			params = append(params, ty)
			if !c.eatSymbol(",") {
				break
			}
		}
		if _, err := c.expectSymbol(")"); err != nil {
			return nil, err
		}
		if _, err := c.expectSymbol("->"); err != nil {
			return nil, err
		}
		ret, err := TypeExpr(c)
		if err != nil {
			return nil, err
		}
		fns = append(fns, ast.TraitFunction{Name: fnName.Text, Params: params, Return: ret, Ref: fnStart.Union(ret.Ref)})
		if !c.eatSymbol(",") {
			break
		}
	}
	closeBrace, err := c.expectSymbol("}")
	if err != nil {
		return nil, err
	}
	return &ast.TraitDeclaration{Name: name, TypeVars: typeVars, Functions: fns, Ref: start.Union(closeBrace.Ref)}, nil
}

// parseDeclName accepts either an upper- or lower-case identifier as the
// name of an enum/trait/machine declaration; the grammar in spec.md §4.3
// does not restrict declaration names to one identifier flavor.
func parseDeclName(c *cursor) (string, error) {
	if t := c.peek(); t.Kind == lexer.UIdent {
		c.next()
		return t.Text, nil
	}
	t, err := c.identifier()
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

// parseSelectedExpressions parses `(selector "$")? expression`. Since both
// the selector and the main expression are ordinary Expressions, the
// grammar is only disambiguated by the literal "$" token: an expression is
// parsed speculatively and reinterpreted as the selector only if "$"
// follows it (spec.md §4.3, "PIL identities").
func parseSelectedExpressions(c *cursor) (ast.SelectedExpressions, error) {
	start := c.here()
	first, err := Expression(c)
	if err != nil {
		return ast.SelectedExpressions{}, err
	}
	if c.eatSymbol("$") {
		main, err := Expression(c)
		if err != nil {
			return ast.SelectedExpressions{}, err
		}
		end := c.toks[c.pos-1].Ref
		return ast.SelectedExpressions{Selector: first, Expr: main, Ref: start.Union(end)}, nil
	}
	end := c.toks[c.pos-1].Ref
	return ast.SelectedExpressions{Expr: first, Ref: start.Union(end)}, nil
}

// parseExprBracketList parses a plain `"[" expr, expr, ... "]"` list, used
// by ConnectIdentity's two operands.
func parseExprBracketList(c *cursor) ([]ast.Expression, error) {
	if _, err := c.expectSymbol("["); err != nil {
		return nil, err
	}
	var items []ast.Expression
	for !c.atSymbol("]") {
		e, err := Expression(c)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		if !c.eatSymbol(",") {
			break
		}
	}
	if _, err := c.expectSymbol("]"); err != nil {
		return nil, err
	}
	return items, nil
}

// parsePilIdentity parses one of the three identity forms (plookup,
// permutation, connect) or falls back to a bare ExpressionStatement
// (spec.md §4.3, "PIL identities"). ConnectIdentity's `[ list ]` prefix is
// ambiguous with a plain array-literal expression, so it is tried
// speculatively first and the cursor is rewound if "connect" doesn't
// follow.
func parsePilIdentity(c *cursor) (ast.PilStatement, error) {
	start := c.here()

	if c.atSymbol("[") {
		mark := c.pos
		left, err := parseExprBracketList(c)
		if err == nil && c.atKeyword("connect") {
			c.next()
			right, err := parseExprBracketList(c)
			if err != nil {
				return nil, err
			}
			semi, err := c.expectSymbol(";")
			if err != nil {
				return nil, err
			}
			return &ast.ConnectIdentity{Left: left, Right: right, Ref: start.Union(semi.Ref)}, nil
		}
		c.pos = mark
	}

	se1, err := parseSelectedExpressions(c)
	if err != nil {
		return nil, err
	}

	switch {
	case c.eatKeyword("in"):
		se2, err := parseSelectedExpressions(c)
		if err != nil {
			return nil, err
		}
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		return &ast.PlookupIdentity{Left: se1, Right: se2, Ref: start.Union(semi.Ref)}, nil

	case c.eatKeyword("is"):
		se2, err := parseSelectedExpressions(c)
		if err != nil {
			return nil, err
		}
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		return &ast.PermutationIdentity{Left: se1, Right: se2, Ref: start.Union(semi.Ref)}, nil

	default:
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expr: se1.Expr, Ref: start.Union(semi.Ref)}, nil
	}
}
