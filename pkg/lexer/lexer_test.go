package lexer

import (
	"testing"

	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

func kinds(t []Token) []Kind {
	ks := make([]Kind, len(t))
	for i, tok := range t {
		ks[i] = tok.Kind
	}
	return ks
}

func TestTokenizeIdentifierFlavors(t *testing.T) {
	toks, err := Tokenize(0, []byte("lower Upper %constant :public"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Kind{LIdent, UIdent, CIdent, PIdent, EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got kind %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := Tokenize(0, []byte("123 0xFF_00"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != Decimal || toks[0].Text != "123" {
		t.Errorf("got %+v, want decimal 123", toks[0])
	}
	if toks[1].Kind != Hex || toks[1].Text != "0xFF_00" {
		t.Errorf("got %+v, want hex 0xFF_00", toks[1])
	}
}

func TestTokenizeSpecialIdentsAreLIdent(t *testing.T) {
	for _, name := range []string{"file", "loc", "insn", "int", "fe", "expr", "bool"} {
		toks, err := Tokenize(0, []byte(name))
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", name, err)
		}
		if toks[0].Kind != LIdent || toks[0].Text != name {
			t.Errorf("Tokenize(%q) = %+v, want LIdent %q", name, toks[0], name)
		}
		if !IsSpecial(name) {
			t.Errorf("IsSpecial(%q) = false, want true", name)
		}
		if !IsKeyword(name) {
			t.Errorf("IsKeyword(%q) = false, want true", name)
		}
	}
}

func TestTokenizeOrdinaryIdentIsNeitherKeywordNorSpecial(t *testing.T) {
	if IsKeyword("foobar") {
		t.Errorf("IsKeyword(\"foobar\") = true, want false")
	}
	if IsSpecial("foobar") {
		t.Errorf("IsSpecial(\"foobar\") = true, want false")
	}
}

func TestTokenizeOperatorsLongestMatchFirst(t *testing.T) {
	toks, err := Tokenize(0, []byte("<<= == -> ~> => :: ** || && .. ${"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []string{"<<", "=", "==", "->", "~>", "=>", "::", "**", "||", "&&", "..", "${"}
	if len(toks)-1 != len(want) {
		t.Fatalf("got %d symbol tokens, want %d: %+v", len(toks)-1, len(want), toks)
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d: got %q, want %q", i, toks[i].Text, w)
		}
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	toks, err := Tokenize(0, []byte("a // line comment\nb /* block\ncomment */ c"))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var names []string
	for _, tok := range toks {
		if tok.Kind == LIdent {
			names = append(names, tok.Text)
		}
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("got identifiers %v, want [a b c]", names)
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks, err := Tokenize(0, []byte(`"hello\nworld"`))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != String {
		t.Fatalf("got kind %v, want String", toks[0].Kind)
	}
	s, err := UnescapeString(toks[0].Text)
	if err != nil {
		t.Fatalf("UnescapeString: %v", err)
	}
	if s != "hello\nworld" {
		t.Errorf("got %q, want %q", s, "hello\nworld")
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize(0, []byte("a # b"))
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if lexErr.Ref.Start != 2 {
		t.Errorf("got error at offset %d, want 2", lexErr.Ref.Start)
	}
}

func TestTokenSpansMatchSourceOffsets(t *testing.T) {
	content := []byte("foo bar")
	toks, err := Tokenize(7, content)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := source.Ref{File: 7, Start: 4, End: 7}
	if toks[1].Ref != want {
		t.Errorf("got ref %+v, want %+v", toks[1].Ref, want)
	}
}

func TestParseNumberDecimalAndHex(t *testing.T) {
	n, err := ParseNumber("1_000")
	if err != nil {
		t.Fatalf("ParseNumber(1_000): %v", err)
	}
	if n.String() != "1000" {
		t.Errorf("got %s, want 1000", n.String())
	}

	h, err := ParseNumber("0xFF")
	if err != nil {
		t.Fatalf("ParseNumber(0xFF): %v", err)
	}
	if h.String() != "255" {
		t.Errorf("got %s, want 255", h.String())
	}
}

func TestUnescapeStringEscapes(t *testing.T) {
	cases := map[string]string{
		`"\t\n\r"`:  "\t\n\r",
		`"\x41"`:    "A",
		`"\""`:      `"`,
		`"\\"`:      `\`,
		`"plain"`:   "plain",
		`"\101bc"`:  "Abc",
	}
	for raw, want := range cases {
		got, err := UnescapeString(raw)
		if err != nil {
			t.Fatalf("UnescapeString(%q): %v", raw, err)
		}
		if got != want {
			t.Errorf("UnescapeString(%q) = %q, want %q", raw, got, want)
		}
	}
}
