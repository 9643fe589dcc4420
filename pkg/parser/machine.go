package parser

import (
	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/lexer"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

// ASMModule is the ASMModule grammar entry point (spec.md §6): a flat list
// of module-level statements running to end of input. Nested modules
// (spec.md §4.3, "mod name { ... }") recurse back into this same
// production via parseMod.
func ASMModule(c *cursor) (*ast.ASMModule, error) {
	start := c.here()
	var stmts []ast.ModuleStatement
	for c.peek().Kind != lexer.EOF {
		s, err := parseModuleStatement(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return &ast.ASMModule{Statements: stmts, Ref: start.Union(c.peek().Ref)}, nil
}

func parseModuleStatement(c *cursor) (ast.ModuleStatement, error) {
	switch {
	case c.atKeyword("use"):
		return parseUse(c)
	case c.atKeyword("mod"):
		return parseMod(c)
	case c.atKeyword("let"):
		let, err := parseLet(c)
		if err != nil {
			return nil, err
		}
		return &ast.ModuleLet{Let: *let, Ref: let.Ref}, nil
	case c.atKeyword("enum"):
		e, err := parseEnum(c)
		if err != nil {
			return nil, err
		}
		return &ast.ModuleEnum{Enum: *e, Ref: e.Ref}, nil
	case c.atKeyword("trait"):
		t, err := parseTrait(c)
		if err != nil {
			return nil, err
		}
		return &ast.ModuleTrait{Trait: *t, Ref: t.Ref}, nil
	case c.atKeyword("machine"):
		return parseMachineDeclaration(c)
	default:
		return nil, c.unexpected("a module-level statement (use/mod/let/enum/trait/machine)")
	}
}

// parseUse parses `use path (as alias)? ;`. Alias defaults to the path's
// last segment when no "as" clause is present (spec.md §4.3).
func parseUse(c *cursor) (*ast.Use, error) {
	start := c.here()
	c.next() // "use"
	path, err := parseSymbolPath(c)
	if err != nil {
		return nil, err
	}
	alias := ""
	if len(path.Parts) > 0 {
		alias = path.Parts[len(path.Parts)-1].Name
	}
	if c.eatKeyword("as") {
		a, err := c.identifier()
		if err != nil {
			return nil, err
		}
		alias = a.Text
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.Use{Path: path, Alias: alias, Ref: start.Union(semi.Ref)}, nil
}

// parseMod parses `mod name;` (external module, Body == nil) or
// `mod name { ... }` (local nested module tree).
func parseMod(c *cursor) (*ast.Mod, error) {
	start := c.here()
	c.next() // "mod"
	name, err := c.identifier()
	if err != nil {
		return nil, err
	}
	if c.atSymbol(";") {
		semi := c.next()
		return &ast.Mod{Name: name.Text, Body: nil, Ref: start.Union(semi.Ref)}, nil
	}

	if _, err := c.expectSymbol("{"); err != nil {
		return nil, err
	}
	var stmts []ast.ModuleStatement
	for !c.atSymbol("}") {
		s, err := parseModuleStatement(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	closeBrace, err := c.expectSymbol("}")
	if err != nil {
		return nil, err
	}
	body := &ast.ASMModule{Statements: stmts, Ref: start.Union(closeBrace.Ref)}
	return &ast.Mod{Name: name.Text, Body: body, Ref: start.Union(closeBrace.Ref)}, nil
}

// parseMachineName parses a machine's name through parseDeclName (pil.go),
// which accepts either an upper- or lower-case identifier as a
// machine/enum/trait name.
func parseMachineName(c *cursor) (string, error) {
	return parseDeclName(c)
}

func parseMachineDeclaration(c *cursor) (*ast.MachineDeclaration, error) {
	start := c.here()
	c.next() // "machine"
	name, err := parseMachineName(c)
	if err != nil {
		return nil, err
	}

	var params ast.MachineParams
	if c.atSymbol("(") {
		raw, err := parseMachineParamList(c)
		if err != nil {
			return nil, err
		}
		params, err = validateMachineParams(raw)
		if err != nil {
			return nil, newError(ActionError, start, "%s", err)
		}
	}

	var props ast.MachineProperties
	if c.eatKeyword("with") {
		order, entries, err := parseMachinePropList(c)
		if err != nil {
			return nil, err
		}
		props, err = validateMachineProperties(order, entries)
		if err != nil {
			return nil, newError(ActionError, start, "%s", err)
		}
	} else {
		props = ast.NewMachineProperties(nil, map[string]ast.Expression{})
	}

	if _, err := c.expectSymbol("{"); err != nil {
		return nil, err
	}
	var stmts []ast.MachineStatement
	for !c.atSymbol("}") {
		s, err := parseMachineStatement(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	closeBrace, err := c.expectSymbol("}")
	if err != nil {
		return nil, err
	}
	return &ast.MachineDeclaration{Name: name, Params: params, Properties: props, Statements: stmts, Ref: start.Union(closeBrace.Ref)}, nil
}

func parseMachineParamList(c *cursor) ([]ast.MachineParam, error) {
	if _, err := c.expectSymbol("("); err != nil {
		return nil, err
	}
	var params []ast.MachineParam
	for !c.atSymbol(")") {
		start := c.here()
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
		var ty *ast.ExprType
		if c.eatSymbol(":") {
			t, err := TypeExpr(c)
			if err != nil {
				return nil, err
			}
			ty = &t
		}
		end := c.toks[c.pos-1].Ref
		params = append(params, ast.MachineParam{Name: name.Text, ArrayLength: arrLen, Type: ty, Ref: start.Union(end)})
		if !c.eatSymbol(",") {
			break
		}
	}
	if _, err := c.expectSymbol(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func parseMachinePropList(c *cursor) ([]string, map[string]ast.Expression, error) {
	var order []string
	entries := map[string]ast.Expression{}
	for !c.atSymbol("{") {
		name, err := c.identifier()
		if err != nil {
			return nil, nil, err
		}
		if _, err := c.expectSymbol(":"); err != nil {
			return nil, nil, err
		}
		val, err := Expression(c)
		if err != nil {
			return nil, nil, err
		}
		order = append(order, name.Text)
		entries[name.Text] = val
		if !c.eatSymbol(",") {
			break
		}
	}
	return order, entries, nil
}

// parseParamList parses a parenthesized `(name (: type)?, ...)` list, the
// shape used by function declarations.
func parseParamList(c *cursor) ([]ast.Param, error) {
	if _, err := c.expectSymbol("("); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !c.atSymbol(")") {
		p, err := parseOneParam(c)
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
	return params, nil
}

// parseBareParamList parses a comma-separated `name (: type)?` list with no
// enclosing parens, the shape used by instr/operation declarations, which
// may also separate inputs from outputs with "->"; this grammar folds both
// sides into one flat Params list (an Open Question resolution — see
// DESIGN.md).
func parseBareParamList(c *cursor, stop func() bool) ([]ast.Param, error) {
	var params []ast.Param
	for !stop() {
		p, err := parseOneParam(c)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
		if c.eatSymbol("->") {
			continue
		}
		if !c.eatSymbol(",") {
			break
		}
	}
	return params, nil
}

func parseOneParam(c *cursor) (ast.Param, error) {
	start := c.here()
	name, err := c.identifier()
	if err != nil {
		return ast.Param{}, err
	}
	var ty *ast.ExprType
	if c.eatSymbol(":") {
		t, err := TypeExpr(c)
		if err != nil {
			return ast.Param{}, err
		}
		ty = &t
	}
	end := c.toks[c.pos-1].Ref
	return ast.Param{Name: name.Text, Type: ty, Ref: start.Union(end)}, nil
}

func parseMachineStatement(c *cursor) (ast.MachineStatement, error) {
	start := c.here()
	switch {
	case c.atKeyword("reg"):
		return RegisterDeclaration(c)
	case c.atKeyword("instr"):
		return InstructionDeclaration(c)
	case c.atKeyword("link"):
		l, err := LinkDeclaration(c)
		if err != nil {
			return nil, err
		}
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		l.Ref = l.Ref.Union(semi.Ref)
		return l, nil
	case c.atKeyword("function"):
		return parseFunctionDeclaration(c)
	case c.atKeyword("operation"):
		return parseOperationDeclaration(c)
	case c.atKeyword("pol") || c.atKeyword("col") || c.atKeyword("public") ||
		c.atKeyword("enum") || c.atKeyword("trait") || c.atKeyword("let") ||
		c.atKeyword("namespace") || c.atKeyword("include"):
		stmt, err := parsePilStatement(c)
		if err != nil {
			return nil, err
		}
		end := c.toks[c.pos-1].Ref
		return &ast.PilInMachine{Stmt: stmt, Ref: start.Union(end)}, nil
	default:
		return parseSubmachine(c)
	}
}

// RegisterDeclaration is the RegisterDeclaration grammar entry point
// (spec.md §6): `reg id ("[" flag "]")? ;`.
func RegisterDeclaration(c *cursor) (*ast.RegisterDeclaration, error) {
	start := c.here()
	c.next() // "reg"
	id, err := c.identifier()
	if err != nil {
		return nil, err
	}
	flag := ast.RegisterNone
	if c.eatSymbol("[") {
		switch {
		case c.atSymbol("@pc"):
			c.next()
			flag = ast.RegisterPC
		case c.atSymbol("<="):
			c.next()
			flag = ast.RegisterAssign
		case c.atSymbol("@r"):
			c.next()
			flag = ast.RegisterReadOnly
		default:
			return nil, c.unexpected("a register flag ('@pc', '<=', or '@r')")
		}
		if _, err := c.expectSymbol("]"); err != nil {
			return nil, err
		}
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.RegisterDeclaration{Id: id.Text, Flag: flag, Ref: start.Union(semi.Ref)}, nil
}

// LinkDeclaration is the LinkDeclaration grammar entry point (spec.md §6):
// `link (flag)? ("=>"|"~>") target`. Used both standalone inside a
// machine body and embedded ahead of an instruction's body; it never
// consumes a trailing ";", which each caller handles itself.
func LinkDeclaration(c *cursor) (*ast.LinkDeclaration, error) {
	start := c.here()
	if _, err := c.expectKeyword("link"); err != nil {
		return nil, err
	}

	var flag ast.Expression
	if !c.atSymbol("=>") && !c.atSymbol("~>") {
		f, err := Expression(c)
		if err != nil {
			return nil, err
		}
		flag = f
	}

	var kind ast.LinkKind
	switch {
	case c.eatSymbol("=>"):
		kind = ast.LinkLookup
	case c.eatSymbol("~>"):
		kind = ast.LinkPermutation
	default:
		return nil, c.unexpected("'=>' or '~>'")
	}

	targetExpr, err := Expression(c)
	if err != nil {
		return nil, err
	}
	target, err := linkTargetFromExpression(targetExpr)
	if err != nil {
		return nil, newError(ActionError, start, "%s", err)
	}

	end := c.toks[c.pos-1].Ref
	return &ast.LinkDeclaration{Flag: flag, Kind: kind, Target: target, Ref: start.Union(end)}, nil
}

// InstructionDeclaration is the InstructionDeclaration grammar entry point
// (spec.md §6): `instr id params (link)* ("{" body "}" | ";")`.
func InstructionDeclaration(c *cursor) (*ast.InstructionDeclaration, error) {
	start := c.here()
	c.next() // "instr"
	id, err := c.identifier()
	if err != nil {
		return nil, err
	}

	params, err := parseBareParamList(c, func() bool {
		return c.atSymbol("{") || c.atSymbol(";") || c.atKeyword("link")
	})
	if err != nil {
		return nil, err
	}

	var links []ast.LinkDeclaration
	for c.atKeyword("link") {
		l, err := LinkDeclaration(c)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}

	hasBody := false
	var body []ast.FunctionStatement
	var end source.Ref
	if c.eatSymbol("{") {
		hasBody = true
		for !c.atSymbol("}") {
			s, err := parseFunctionStatement(c)
			if err != nil {
				return nil, err
			}
			body = append(body, s)
		}
		closeBrace, err := c.expectSymbol("}")
		if err != nil {
			return nil, err
		}
		end = closeBrace.Ref
	} else {
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		end = semi.Ref
	}

	return &ast.InstructionDeclaration{Id: id.Text, Params: params, Links: links, Body: body, HasBody: hasBody, Ref: start.Union(end)}, nil
}

func parseFunctionDeclaration(c *cursor) (*ast.FunctionDeclaration, error) {
	start := c.here()
	c.next() // "function"
	id, err := c.identifier()
	if err != nil {
		return nil, err
	}
	params, err := parseParamList(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expectSymbol("{"); err != nil {
		return nil, err
	}
	var body []ast.FunctionStatement
	for !c.atSymbol("}") {
		s, err := parseFunctionStatement(c)
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	closeBrace, err := c.expectSymbol("}")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Id: id.Text, Params: params, Body: body, Ref: start.Union(closeBrace.Ref)}, nil
}

func parseOperationDeclaration(c *cursor) (*ast.OperationDeclaration, error) {
	start := c.here()
	c.next() // "operation"
	id, err := c.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := c.expectSymbol("<"); err != nil {
		return nil, err
	}
	opId, err := parseTerm(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expectSymbol(">"); err != nil {
		return nil, err
	}
	params, err := parseBareParamList(c, func() bool { return c.atSymbol(";") })
	if err != nil {
		return nil, err
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.OperationDeclaration{Id: id.Text, OpId: opId, Params: params, Ref: start.Union(semi.Ref)}, nil
}

func parseSubmachine(c *cursor) (*ast.Submachine, error) {
	start := c.here()
	path, err := parseSymbolPath(c)
	if err != nil {
		return nil, err
	}
	id, err := c.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := c.expectSymbol("("); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !c.atSymbol(")") {
		e, err := Expression(c)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !c.eatSymbol(",") {
			break
		}
	}
	if _, err := c.expectSymbol(")"); err != nil {
		return nil, err
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.Submachine{Path: path, Id: id.Text, Args: args, Ref: start.Union(semi.Ref)}, nil
}

// parseFunctionStatement parses one statement inside a function or
// instruction body (spec.md §3, "Function-body statements").
func parseFunctionStatement(c *cursor) (ast.FunctionStatement, error) {
	start := c.here()

	if c.atSymbol(".") {
		return parseDebugDirective(c)
	}

	if c.atKeyword("return") {
		c.next()
		var exprs []ast.Expression
		if !c.atSymbol(";") {
			for {
				e, err := Expression(c)
				if err != nil {
					return nil, err
				}
				exprs = append(exprs, e)
				if !c.eatSymbol(",") {
					break
				}
			}
		}
		semi, err := c.expectSymbol(";")
		if err != nil {
			return nil, err
		}
		return &ast.Return{Exprs: exprs, Ref: start.Union(semi.Ref)}, nil
	}

	if t := c.peek(); t.Kind == lexer.LIdent && c.peekAt(1).Text == ":" && c.peekAt(2).Text != ":" {
		c.next()
		colon := c.next()
		return &ast.Label{Id: t.Text, Ref: start.Union(colon.Ref)}, nil
	}

	if t := c.peek(); t.Kind == lexer.LIdent || t.Kind == lexer.UIdent {
		mark := c.pos
		ids, ok := tryParseIdList(c)
		if ok && c.eatSymbol("<=") {
			rhs, err := Expression(c)
			if err != nil {
				return nil, err
			}
			semi, err := c.expectSymbol(";")
			if err != nil {
				return nil, err
			}
			return &ast.Assignment{Ids: ids, Op: ast.AssignSimple, Rhs: rhs, Ref: start.Union(semi.Ref)}, nil
		}
		c.pos = mark
	}

	id, err := c.identifier()
	if err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !c.atSymbol(";") {
		for {
			e, err := Expression(c)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			if !c.eatSymbol(",") {
				break
			}
		}
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.Instruction{Id: id.Text, Args: args, Ref: start.Union(semi.Ref)}, nil
}

// tryParseIdList speculatively consumes a comma-separated list of plain
// identifiers, reporting false (with the cursor left wherever it stopped)
// if any entry of the list is not an identifier. Callers that fail the
// "<=" lookahead after this must restore c.pos themselves.
func tryParseIdList(c *cursor) ([]string, bool) {
	var ids []string
	for {
		id, err := c.identifier()
		if err != nil {
			return nil, false
		}
		ids = append(ids, id.Text)
		if !c.eatSymbol(",") {
			break
		}
	}
	return ids, true
}

func parseDebugDirective(c *cursor) (*ast.DebugDirective, error) {
	start := c.here()
	c.next() // "."
	if _, err := c.expectKeyword("debug"); err != nil {
		return nil, err
	}
	var kind ast.DebugKind
	switch {
	case c.eatKeyword("file"):
		kind = ast.DebugFile
	case c.eatKeyword("loc"):
		kind = ast.DebugLoc
	case c.eatKeyword("insn"):
		kind = ast.DebugOriginalInstruction
	default:
		return nil, c.unexpected("'file', 'loc', or 'insn'")
	}

	var args []ast.Expression
	for !c.atSymbol(";") {
		e, err := Expression(c)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		c.eatSymbol(",")
	}
	semi, err := c.expectSymbol(";")
	if err != nil {
		return nil, err
	}
	return &ast.DebugDirective{Kind: kind, Args: args, Ref: start.Union(semi.Ref)}, nil
}
