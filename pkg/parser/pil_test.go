package parser

import (
	"testing"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
)

func parsePILFileString(t *testing.T, src string) *ast.PILFile {
	t.Helper()
	c := mustTokenize(t, src)
	f, err := PILFile(c)
	if err != nil {
		t.Fatalf("PILFile(%q): %v", src, err)
	}
	return f
}

func onlyStatement(t *testing.T, f *ast.PILFile) ast.PilStatement {
	t.Helper()
	if len(f.Statements) != 1 {
		t.Fatalf("got %d statements, want 1: %#v", len(f.Statements), f.Statements)
	}
	return f.Statements[0]
}

func TestNamespaceWithDegree(t *testing.T) {
	f := parsePILFileString(t, "namespace Main(8);")
	ns, ok := onlyStatement(t, f).(*ast.Namespace)
	if !ok {
		t.Fatalf("got %T, want *ast.Namespace", onlyStatement(t, f))
	}
	if ns.Name == nil || ns.Name.String() != "Main" {
		t.Errorf("Name = %v, want Main", ns.Name)
	}
	if ns.Degree == nil {
		t.Fatal("expected a non-nil Degree")
	}
}

func TestIncludeStatement(t *testing.T) {
	f := parsePILFileString(t, `include "std/prelude.asm";`)
	inc, ok := onlyStatement(t, f).(*ast.Include)
	if !ok {
		t.Fatalf("got %T, want *ast.Include", onlyStatement(t, f))
	}
	if inc.Path != "std/prelude.asm" {
		t.Errorf("Path = %q, want %q", inc.Path, "std/prelude.asm")
	}
}

func TestModuleLevelLetWithTypedArray(t *testing.T) {
	f := parsePILFileString(t, "let x: int[4] = [1, 2, 3, 4];")
	let, ok := onlyStatement(t, f).(*ast.LetStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.LetStatement", onlyStatement(t, f))
	}
	if let.Name != "x" {
		t.Errorf("Name = %q, want x", let.Name)
	}
	if let.Scheme == nil || let.Scheme.Body.Kind != ast.TypeArray {
		t.Fatalf("Scheme = %#v, want an array type scheme", let.Scheme)
	}
	if let.Value == nil {
		t.Error("expected a non-nil Value")
	}
}

func TestPolCommitSynonymsNormalizeIdentically(t *testing.T) {
	spellings := []string{"pol commit a;", "col commit a;", "pol witness a;", "col witness a;"}
	var shapes []*ast.PolynomialCommitDeclaration
	for _, src := range spellings {
		f := parsePILFileString(t, src)
		decl, ok := onlyStatement(t, f).(*ast.PolynomialCommitDeclaration)
		if !ok {
			t.Fatalf("%q: got %T, want *ast.PolynomialCommitDeclaration", src, onlyStatement(t, f))
		}
		shapes = append(shapes, decl)
	}
	for i, decl := range shapes {
		if len(decl.Names) != 1 || decl.Names[0].Name != "a" {
			t.Errorf("spelling %d: Names = %#v, want a single entry named a", i, decl.Names)
		}
	}
}

func TestPolConstantSynonymsNormalizeIdentically(t *testing.T) {
	for _, src := range []string{"pol constant a;", "col constant a;", "pol fixed a;", "col fixed a;"} {
		f := parsePILFileString(t, src)
		decl, ok := onlyStatement(t, f).(*ast.PolynomialConstantDeclaration)
		if !ok {
			t.Fatalf("%q: got %T, want *ast.PolynomialConstantDeclaration", src, onlyStatement(t, f))
		}
		if len(decl.Names) != 1 || decl.Names[0].Name != "a" {
			t.Errorf("%q: Names = %#v, want a single entry named a", src, decl.Names)
		}
	}
}

func TestPolynomialCommitWithStageAndQuery(t *testing.T) {
	f := parsePILFileString(t, "pol commit stage(1) a(i) query std::prover::eval(i);")
	decl, ok := onlyStatement(t, f).(*ast.PolynomialCommitDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.PolynomialCommitDeclaration", onlyStatement(t, f))
	}
	if decl.Stage == nil || *decl.Stage != 1 {
		t.Fatalf("Stage = %v, want 1", decl.Stage)
	}
	lam, ok := decl.Query.(*ast.LambdaExpression)
	if !ok {
		t.Fatalf("Query = %T, want *ast.LambdaExpression", decl.Query)
	}
	if lam.Kind != ast.Query {
		t.Errorf("Kind = %v, want ast.Query", lam.Kind)
	}
	if len(lam.Params) != 1 {
		t.Fatalf("got %d query params, want 1", len(lam.Params))
	}
}

func TestPublicDeclarationWithArrayIndex(t *testing.T) {
	f := parsePILFileString(t, "public out = Main::x[2](7);")
	pub, ok := onlyStatement(t, f).(*ast.PublicDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.PublicDeclaration", onlyStatement(t, f))
	}
	if pub.Name != "out" {
		t.Errorf("Name = %q, want out", pub.Name)
	}
	if pub.ArrayIndex == nil {
		t.Error("expected a non-nil ArrayIndex")
	}
	if pub.Row == nil {
		t.Error("expected a non-nil Row")
	}
}

func TestPublicDeclarationWithoutArrayIndex(t *testing.T) {
	f := parsePILFileString(t, "public out = Main::x(7);")
	pub, ok := onlyStatement(t, f).(*ast.PublicDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.PublicDeclaration", onlyStatement(t, f))
	}
	if pub.ArrayIndex != nil {
		t.Errorf("ArrayIndex = %v, want nil", pub.ArrayIndex)
	}
}

func TestEnumDeclaration(t *testing.T) {
	f := parsePILFileString(t, "enum Option<T> { None, Some(T) }")
	en, ok := onlyStatement(t, f).(*ast.EnumDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.EnumDeclaration", onlyStatement(t, f))
	}
	if en.Name != "Option" {
		t.Errorf("Name = %q, want Option", en.Name)
	}
	if len(en.TypeVars) != 1 || en.TypeVars[0].Name != "T" {
		t.Fatalf("TypeVars = %#v, want a single T", en.TypeVars)
	}
	if len(en.Variants) != 2 {
		t.Fatalf("got %d variants, want 2", len(en.Variants))
	}
	if en.Variants[0].Fields != nil {
		t.Errorf("None variant Fields = %#v, want nil", en.Variants[0].Fields)
	}
	if len(en.Variants[1].Fields) != 1 {
		t.Fatalf("Some variant Fields = %#v, want one field", en.Variants[1].Fields)
	}
}

func TestTraitDeclaration(t *testing.T) {
	f := parsePILFileString(t, "trait FromLiteral<T> { from_literal: (int) -> T }")
	tr, ok := onlyStatement(t, f).(*ast.TraitDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.TraitDeclaration", onlyStatement(t, f))
	}
	if len(tr.Functions) != 1 || tr.Functions[0].Name != "from_literal" {
		t.Fatalf("Functions = %#v, want a single from_literal entry", tr.Functions)
	}
}

func TestPlookupIdentity(t *testing.T) {
	f := parsePILFileString(t, "sel $ [a, b] in [c, d];")
	pl, ok := onlyStatement(t, f).(*ast.PlookupIdentity)
	if !ok {
		t.Fatalf("got %T, want *ast.PlookupIdentity", onlyStatement(t, f))
	}
	if pl.Left.Selector == nil {
		t.Error("expected a non-nil selector on the left side")
	}
}

func TestPermutationIdentity(t *testing.T) {
	f := parsePILFileString(t, "[a, b] is [c, d];")
	_, ok := onlyStatement(t, f).(*ast.PermutationIdentity)
	if !ok {
		t.Fatalf("got %T, want *ast.PermutationIdentity", onlyStatement(t, f))
	}
}

func TestConnectIdentity(t *testing.T) {
	f := parsePILFileString(t, "[a, b] connect [c, d];")
	conn, ok := onlyStatement(t, f).(*ast.ConnectIdentity)
	if !ok {
		t.Fatalf("got %T, want *ast.ConnectIdentity", onlyStatement(t, f))
	}
	if len(conn.Left) != 2 || len(conn.Right) != 2 {
		t.Errorf("got Left=%d Right=%d operands, want 2 and 2", len(conn.Left), len(conn.Right))
	}
}

func TestBareExpressionStatement(t *testing.T) {
	f := parsePILFileString(t, "a = b;")
	_, ok := onlyStatement(t, f).(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionStatement", onlyStatement(t, f))
	}
}
