package parser

import (
	"testing"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
)

func parseASMModuleString(t *testing.T, src string) *ast.ASMModule {
	t.Helper()
	c := mustTokenize(t, src)
	m, err := ASMModule(c)
	if err != nil {
		t.Fatalf("ASMModule(%q): %v", src, err)
	}
	return m
}

func onlyModuleStatement(t *testing.T, m *ast.ASMModule) ast.ModuleStatement {
	t.Helper()
	if len(m.Statements) != 1 {
		t.Fatalf("got %d statements, want 1: %#v", len(m.Statements), m.Statements)
	}
	return m.Statements[0]
}

func TestUseWithoutAlias(t *testing.T) {
	m := parseASMModuleString(t, "use std::machines::Binary;")
	u, ok := onlyModuleStatement(t, m).(*ast.Use)
	if !ok {
		t.Fatalf("got %T, want *ast.Use", onlyModuleStatement(t, m))
	}
	if u.Alias != "Binary" {
		t.Errorf("Alias = %q, want Binary (defaults to last path segment)", u.Alias)
	}
}

func TestUseWithAlias(t *testing.T) {
	m := parseASMModuleString(t, "use std::machines::Binary as Bin;")
	u, ok := onlyModuleStatement(t, m).(*ast.Use)
	if !ok {
		t.Fatalf("got %T, want *ast.Use", onlyModuleStatement(t, m))
	}
	if u.Alias != "Bin" {
		t.Errorf("Alias = %q, want Bin", u.Alias)
	}
}

func TestModExternal(t *testing.T) {
	m := parseASMModuleString(t, "mod helpers;")
	mod, ok := onlyModuleStatement(t, m).(*ast.Mod)
	if !ok {
		t.Fatalf("got %T, want *ast.Mod", onlyModuleStatement(t, m))
	}
	if mod.Body != nil {
		t.Errorf("Body = %#v, want nil for an external mod", mod.Body)
	}
}

func TestModNested(t *testing.T) {
	m := parseASMModuleString(t, "mod helpers { use std::foo; }")
	mod, ok := onlyModuleStatement(t, m).(*ast.Mod)
	if !ok {
		t.Fatalf("got %T, want *ast.Mod", onlyModuleStatement(t, m))
	}
	if mod.Body == nil {
		t.Fatal("expected a non-nil Body for a nested mod")
	}
	if len(mod.Body.Statements) != 1 {
		t.Fatalf("got %d nested statements, want 1", len(mod.Body.Statements))
	}
}

func TestFullMachineDeclaration(t *testing.T) {
	src := `
machine Main(latch: int, sel: int) with degree: 1024 {
    reg pc[@pc];
    reg X[<=];
    reg Y[@r];

    Binary bin(8);

    instr add X, Y -> X link => bin::add(X, Y, X);

    function main() {
        X <= 1;
        loop: X <= X;
        return X;
    }

    operation add<0> X, Y -> X;
}
`
	m := parseASMModuleString(t, src)
	decl, ok := onlyModuleStatement(t, m).(*ast.MachineDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.MachineDeclaration", onlyModuleStatement(t, m))
	}
	if decl.Name != "Main" {
		t.Errorf("Name = %q, want Main", decl.Name)
	}
	if len(decl.Params.Params) != 2 {
		t.Fatalf("got %d machine params, want 2", len(decl.Params.Params))
	}
	if decl.Properties.Keys() == nil {
		t.Fatal("expected a non-nil Properties.Keys() from the 'with degree: ...' clause")
	}
	if v, ok := decl.Properties.Lookup("degree"); !ok || v == nil {
		t.Error("expected a 'degree' machine property")
	}

	var regs, instrs, fns, ops, subs int
	for _, s := range decl.Statements {
		switch s.(type) {
		case *ast.RegisterDeclaration:
			regs++
		case *ast.InstructionDeclaration:
			instrs++
		case *ast.FunctionDeclaration:
			fns++
		case *ast.OperationDeclaration:
			ops++
		case *ast.Submachine:
			subs++
		}
	}
	if regs != 3 {
		t.Errorf("got %d RegisterDeclarations, want 3", regs)
	}
	if instrs != 1 {
		t.Errorf("got %d InstructionDeclarations, want 1", instrs)
	}
	if fns != 1 {
		t.Errorf("got %d FunctionDeclarations, want 1", fns)
	}
	if ops != 1 {
		t.Errorf("got %d OperationDeclarations, want 1", ops)
	}
	if subs != 1 {
		t.Errorf("got %d Submachines, want 1", subs)
	}
}

func TestMachineWithUnknownPropertyRejected(t *testing.T) {
	c := mustTokenize(t, "machine M with bogus: 1 { }")
	if _, err := parseModuleStatement(c); err == nil {
		t.Fatal("expected an error for an unrecognized machine property")
	}
}

func TestRegisterFlags(t *testing.T) {
	cases := map[string]ast.RegisterFlag{
		"reg a;":      ast.RegisterNone,
		"reg a[@pc];": ast.RegisterPC,
		"reg a[<=];":  ast.RegisterAssign,
		"reg a[@r];":  ast.RegisterReadOnly,
	}
	for src, want := range cases {
		c := mustTokenize(t, src)
		reg, err := RegisterDeclaration(c)
		if err != nil {
			t.Fatalf("RegisterDeclaration(%q): %v", src, err)
		}
		if reg.Flag != want {
			t.Errorf("RegisterDeclaration(%q).Flag = %v, want %v", src, reg.Flag, want)
		}
	}
}

func TestLinkDeclarationLookupAndPermutation(t *testing.T) {
	lookup := mustTokenize(t, "link => bin::add(X, Y, X);")
	l, err := LinkDeclaration(lookup)
	if err != nil {
		t.Fatalf("LinkDeclaration: %v", err)
	}
	if l.Kind != ast.LinkLookup {
		t.Errorf("Kind = %v, want LinkLookup", l.Kind)
	}
	if l.Target.Instance.String() != "bin::add" {
		t.Errorf("Target.Instance = %q, want bin::add", l.Target.Instance.String())
	}
	if len(l.Target.Args) != 3 {
		t.Errorf("got %d target args, want 3", len(l.Target.Args))
	}

	perm := mustTokenize(t, "link flag ~> bin::add(X);")
	p, err := LinkDeclaration(perm)
	if err != nil {
		t.Fatalf("LinkDeclaration: %v", err)
	}
	if p.Kind != ast.LinkPermutation {
		t.Errorf("Kind = %v, want LinkPermutation", p.Kind)
	}
	if p.Flag == nil {
		t.Error("expected a non-nil Flag")
	}
}

func TestLinkDeclarationRejectsNonCallTarget(t *testing.T) {
	c := mustTokenize(t, "link => 1 + 2;")
	if _, err := LinkDeclaration(c); err == nil {
		t.Fatal("expected an error: link target must be a call-shaped reference")
	}
}

func TestInstructionDeclarationWithBareBody(t *testing.T) {
	c := mustTokenize(t, "instr jmp target { pc <= target; }")
	instr, err := InstructionDeclaration(c)
	if err != nil {
		t.Fatalf("InstructionDeclaration: %v", err)
	}
	if !instr.HasBody {
		t.Error("expected HasBody == true")
	}
	if len(instr.Params) != 1 || instr.Params[0].Name != "target" {
		t.Fatalf("Params = %#v, want a single target param", instr.Params)
	}
	if len(instr.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(instr.Body))
	}
}

func TestInstructionDeclarationWithoutBody(t *testing.T) {
	c := mustTokenize(t, "instr nop;")
	instr, err := InstructionDeclaration(c)
	if err != nil {
		t.Fatalf("InstructionDeclaration: %v", err)
	}
	if instr.HasBody {
		t.Error("expected HasBody == false")
	}
}

func TestFunctionStatementAssignment(t *testing.T) {
	c := mustTokenize(t, "X, Y <= add(X, Y);")
	s, err := FunctionStatement(c)
	if err != nil {
		t.Fatalf("FunctionStatement: %v", err)
	}
	assign, ok := s.(*ast.Assignment)
	if !ok {
		t.Fatalf("got %T, want *ast.Assignment", s)
	}
	if len(assign.Ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(assign.Ids))
	}
}

func TestFunctionStatementLabel(t *testing.T) {
	c := mustTokenize(t, "loop:")
	s, err := FunctionStatement(c)
	if err != nil {
		t.Fatalf("FunctionStatement: %v", err)
	}
	label, ok := s.(*ast.Label)
	if !ok {
		t.Fatalf("got %T, want *ast.Label", s)
	}
	if label.Id != "loop" {
		t.Errorf("Id = %q, want loop", label.Id)
	}
}

func TestFunctionStatementReturn(t *testing.T) {
	c := mustTokenize(t, "return X, Y;")
	s, err := FunctionStatement(c)
	if err != nil {
		t.Fatalf("FunctionStatement: %v", err)
	}
	ret, ok := s.(*ast.Return)
	if !ok {
		t.Fatalf("got %T, want *ast.Return", s)
	}
	if len(ret.Exprs) != 2 {
		t.Fatalf("got %d return exprs, want 2", len(ret.Exprs))
	}
}

func TestFunctionStatementBareInstruction(t *testing.T) {
	c := mustTokenize(t, "jmp target;")
	s, err := FunctionStatement(c)
	if err != nil {
		t.Fatalf("FunctionStatement: %v", err)
	}
	instr, ok := s.(*ast.Instruction)
	if !ok {
		t.Fatalf("got %T, want *ast.Instruction", s)
	}
	if instr.Id != "jmp" {
		t.Errorf("Id = %q, want jmp", instr.Id)
	}
	if len(instr.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(instr.Args))
	}
}

func TestDebugDirective(t *testing.T) {
	c := mustTokenize(t, `.debug loc 1 2 3;`)
	s, err := FunctionStatement(c)
	if err != nil {
		t.Fatalf("FunctionStatement: %v", err)
	}
	dbg, ok := s.(*ast.DebugDirective)
	if !ok {
		t.Fatalf("got %T, want *ast.DebugDirective", s)
	}
	if dbg.Kind != ast.DebugLoc {
		t.Errorf("Kind = %v, want DebugLoc", dbg.Kind)
	}
	if len(dbg.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(dbg.Args))
	}
}
