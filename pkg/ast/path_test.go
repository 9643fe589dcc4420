package ast

import "testing"

func TestSymbolPathAbsolute(t *testing.T) {
	abs := SymbolPath{Parts: []Part{{Name: ""}, {Name: "foo"}}}
	if !abs.Absolute() {
		t.Error("expected an absolute path to report Absolute() == true")
	}

	rel := SymbolPath{Parts: []Part{{Name: "foo"}}}
	if rel.Absolute() {
		t.Error("expected a relative path to report Absolute() == false")
	}
}

func TestSymbolPathString(t *testing.T) {
	p := SymbolPath{Parts: []Part{{Super: true}, {Name: "foo"}, {Name: "bar"}}}
	if got, want := p.String(), "super::foo::bar"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSymbolPathLast(t *testing.T) {
	p := SymbolPath{Parts: []Part{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	if got, want := p.Last(), "c"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
