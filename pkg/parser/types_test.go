package parser

import (
	"testing"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/ast"
)

func parseTypeExprString(t *testing.T, src string) ast.ExprType {
	t.Helper()
	c := mustTokenize(t, src)
	ty, err := TypeExpr(c)
	if err != nil {
		t.Fatalf("TypeExpr(%q): %v", src, err)
	}
	if err := c.expectEOF(); err != nil {
		t.Fatalf("TypeExpr(%q) left trailing tokens: %v", src, err)
	}
	return ty
}

func TestTypePrimitiveKeywords(t *testing.T) {
	cases := map[string]ast.TypeKind{
		"bool":   ast.TypeBool,
		"int":    ast.TypeInt,
		"fe":     ast.TypeFe,
		"string": ast.TypeString,
		"col":    ast.TypeCol,
		"expr":   ast.TypeExpr_,
	}
	for src, want := range cases {
		ty := parseTypeExprString(t, src)
		if ty.Kind != want {
			t.Errorf("TypeExpr(%q).Kind = %v, want %v", src, ty.Kind, want)
		}
	}
}

func TestTypeNamedWithGenericArgs(t *testing.T) {
	ty := parseTypeExprString(t, "Option<int>")
	if ty.Kind != ast.TypeNamed {
		t.Fatalf("got Kind %v, want TypeNamed", ty.Kind)
	}
	if got, want := ty.Path.String(), "Option"; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if len(ty.GenericArgs) != 1 || ty.GenericArgs[0].Kind != ast.TypeInt {
		t.Fatalf("GenericArgs = %#v, want a single TypeInt", ty.GenericArgs)
	}
}

func TestTypeArrayWithAndWithoutLength(t *testing.T) {
	withLen := parseTypeExprString(t, "int[4]")
	if withLen.Kind != ast.TypeArray {
		t.Fatalf("got Kind %v, want TypeArray", withLen.Kind)
	}
	if withLen.Length == nil {
		t.Fatal("expected a non-nil array length")
	}
	if withLen.Base == nil || withLen.Base.Kind != ast.TypeInt {
		t.Fatalf("Base = %#v, want TypeInt", withLen.Base)
	}

	withoutLen := parseTypeExprString(t, "int[]")
	if withoutLen.Kind != ast.TypeArray {
		t.Fatalf("got Kind %v, want TypeArray", withoutLen.Kind)
	}
	if withoutLen.Length != nil {
		t.Errorf("expected a nil array length, got %v", *withoutLen.Length)
	}
}

func TestTypeTuple(t *testing.T) {
	ty := parseTypeExprString(t, "(int, bool)")
	if ty.Kind != ast.TypeTuple {
		t.Fatalf("got Kind %v, want TypeTuple", ty.Kind)
	}
	if len(ty.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(ty.Items))
	}
}

func TestTypeFunction(t *testing.T) {
	ty := parseTypeExprString(t, "(int, int) -> bool")
	if ty.Kind != ast.TypeFunction {
		t.Fatalf("got Kind %v, want TypeFunction", ty.Kind)
	}
	if len(ty.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(ty.Params))
	}
	if ty.Value == nil || ty.Value.Kind != ast.TypeBool {
		t.Fatalf("Value = %#v, want TypeBool", ty.Value)
	}
}

func TestTypeParenCollapsesToInner(t *testing.T) {
	ty := parseTypeExprString(t, "(int)")
	if ty.Kind != ast.TypeInt {
		t.Fatalf("got Kind %v, want TypeInt (paren should collapse)", ty.Kind)
	}
}

func TestTypeVarBoundsList(t *testing.T) {
	c := mustTokenize(t, "T: FromLiteral + Add, U")
	vars, err := TypeVarBounds(c)
	if err != nil {
		t.Fatalf("TypeVarBounds: %v", err)
	}
	if len(vars) != 2 {
		t.Fatalf("got %d type vars, want 2", len(vars))
	}
	if vars[0].Name != "T" || len(vars[0].Bounds) != 2 {
		t.Errorf("got %+v, want T with 2 bounds", vars[0])
	}
	if vars[1].Name != "U" || len(vars[1].Bounds) != 0 {
		t.Errorf("got %+v, want U with no bounds", vars[1])
	}
}
