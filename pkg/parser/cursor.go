package parser

import (
	"github.com/0xEigenLabs/powdr-pilcom/pkg/lexer"
	"github.com/0xEigenLabs/powdr-pilcom/pkg/source"
)

// cursor walks a token stream produced by lexer.Tokenize, offering the small
// set of lookahead/consume primitives every grammar file in this package is
// built from. Most grammar functions only look at "what's next" and advance
// forward; the few speculative productions (the connect-identity prefix and
// the function-body assignment target list) save pos and restore it when
// the speculation fails.
type cursor struct {
	toks []lexer.Token
	pos  int
}

func newCursor(toks []lexer.Token) *cursor {
	return &cursor{toks: toks}
}

// peek returns the token at the cursor without consuming it. Past the end of
// the stream it keeps returning the trailing EOF token.
func (c *cursor) peek() lexer.Token {
	if c.pos >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[c.pos]
}

// peekAt looks ahead n tokens (0 == peek()).
func (c *cursor) peekAt(n int) lexer.Token {
	idx := c.pos + n
	if idx >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[idx]
}

// next consumes and returns the current token.
func (c *cursor) next() lexer.Token {
	t := c.peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return t
}

// here returns a zero-width Ref at the cursor's current position, used as
// the start marker before a production has consumed any of its tokens.
func (c *cursor) here() source.Ref {
	t := c.peek()
	return source.Ref{File: t.Ref.File, Start: t.Ref.Start, End: t.Ref.Start}
}

func (c *cursor) errorf(ref source.Ref, format string, args ...interface{}) *Error {
	return newError(ParseError, ref, format, args...)
}

func (c *cursor) unexpected(wanted string) *Error {
	t := c.peek()
	if t.Kind == lexer.EOF {
		return c.errorf(t.Ref, "unexpected end of input, wanted %s", wanted)
	}
	return c.errorf(t.Ref, "unexpected token %q, wanted %s", t.Text, wanted)
}

// atSymbol reports whether the current token is the given operator/
// punctuation spelling.
func (c *cursor) atSymbol(sym string) bool {
	t := c.peek()
	return t.Kind == lexer.Symbol && t.Text == sym
}

// atKeyword reports whether the current token is the given reserved word.
func (c *cursor) atKeyword(kw string) bool {
	t := c.peek()
	return t.Kind == lexer.LIdent && t.Text == kw
}

// eatSymbol consumes and reports true if the current token is sym.
func (c *cursor) eatSymbol(sym string) bool {
	if c.atSymbol(sym) {
		c.next()
		return true
	}
	return false
}

// eatKeyword consumes and reports true if the current token is kw.
func (c *cursor) eatKeyword(kw string) bool {
	if c.atKeyword(kw) {
		c.next()
		return true
	}
	return false
}

func (c *cursor) expectSymbol(sym string) (lexer.Token, error) {
	if !c.atSymbol(sym) {
		return lexer.Token{}, c.unexpected("'" + sym + "'")
	}
	return c.next(), nil
}

func (c *cursor) expectKeyword(kw string) (lexer.Token, error) {
	if !c.atKeyword(kw) {
		return lexer.Token{}, c.unexpected("'" + kw + "'")
	}
	return c.next(), nil
}

// identifier is the Identifier production (spec.md §4.2): any upper-case
// identifier, or a lower-case identifier-shaped token whose text is either
// not a keyword at all, or one of the special identifiers that remain usable
// as plain identifiers outside type position.
func (c *cursor) identifier() (lexer.Token, error) {
	t := c.peek()
	if t.Kind == lexer.UIdent {
		return c.next(), nil
	}
	if t.Kind != lexer.LIdent {
		return lexer.Token{}, c.unexpected("an identifier")
	}
	if lexer.IsKeyword(t.Text) && !lexer.IsSpecial(t.Text) {
		return lexer.Token{}, c.unexpected("an identifier")
	}
	return c.next(), nil
}

// nonSpecialIdentifier is the NonSpecialIdentifier production, used only
// inside TypeSymbolPath (spec.md §4.2) so the type grammar can tell a named
// type apart from a primitive type keyword.
func (c *cursor) nonSpecialIdentifier() (lexer.Token, error) {
	t := c.peek()
	if t.Kind != lexer.LIdent || lexer.IsKeyword(t.Text) {
		return lexer.Token{}, c.unexpected("a non-special identifier")
	}
	return c.next(), nil
}

// expectEOF requires the stream to be fully consumed, used by the secondary
// grammar entry points (spec.md §6) that parse exactly one production and
// nothing else.
func (c *cursor) expectEOF() error {
	if c.peek().Kind != lexer.EOF {
		return c.unexpected("end of input")
	}
	return nil
}
