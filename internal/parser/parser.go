// Package parser implements a recursive-descent parser for the
// kernel's surface grammar (spec.md §6.1), turning a token stream into
// internal/ast commands and terms.
//
// Shaped after the teacher's current/peek-token parser
// (_examples/SeleniaProject-Orizon/internal/parser/parser.go:
// NewParser/nextToken/currentTokenIs/peekTokenIs/expectPeek, an
// accumulated error slice rather than panicking on the first mistake),
// cut down to this grammar's handful of productions — no operator
// precedence climbing is needed since the only binary-looking forms
// (application, `->`) are resolved structurally, not by precedence
// table.
package parser

import (
	"fmt"

	"github.com/asm-nop/proost-go/internal/ast"
	"github.com/asm-nop/proost-go/internal/lexer"
	"github.com/asm-nop/proost-go/internal/position"
)

// ParseError is one recorded parse failure with its source span.
type ParseError struct {
	Pos     position.Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parser holds a fully buffered token stream and an index into it,
// accumulating errors rather than stopping at the first one, matching
// the teacher's recovery-friendly parsing style. Buffering the whole
// stream up front (rather than a live two-token lexer window) is what
// lets parseParenOrProd mark a position and backtrack when the
// binder-group-vs-plain-term lookahead guess is wrong.
type Parser struct {
	tokens []lexer.Token
	idx    int
	cur    lexer.Token
	peek   lexer.Token
	errors []error
}

// New creates a Parser over every token l produces.
func New(l *lexer.Lexer) *Parser {
	var toks []lexer.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.TokenEOF {
			break
		}
	}
	p := &Parser{tokens: toks}
	p.cur = p.at(0)
	p.peek = p.at(1)
	return p
}

func (p *Parser) at(i int) lexer.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *Parser) nextToken() {
	p.idx++
	p.cur = p.at(p.idx)
	p.peek = p.at(p.idx + 1)
}

// mark returns a token index to later restore with reset, for the one
// production (parenthesized term vs. dependent product) that needs
// unbounded lookahead to disambiguate.
func (p *Parser) mark() int { return p.idx }

func (p *Parser) reset(m int) {
	p.idx = m
	p.cur = p.at(p.idx)
	p.peek = p.at(p.idx + 1)
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.nextToken()
		return true
	}
	p.addErrorf(p.cur.Span, "expected %s, got %s %q", tt, p.cur.Type, p.cur.Literal)
	return false
}

func (p *Parser) addErrorf(span position.Span, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: span, Message: fmt.Sprintf(format, args...)})
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []error { return p.errors }

// AtEOF reports whether the parser has consumed every token.
func (p *Parser) AtEOF() bool { return p.curIs(lexer.TokenEOF) }

// ParseCommand parses exactly one top-level command (spec.md §6.1's
// command productions). Returns nil, along with any errors recorded via
// Errors, when the input could not be parsed.
func (p *Parser) ParseCommand() ast.Command {
	switch p.cur.Type {
	case lexer.TokenDef:
		return p.parseDefine()
	case lexer.TokenCheck:
		return p.parseCheck()
	case lexer.TokenEval:
		return p.parseEval()
	case lexer.TokenSearch:
		return p.parseSearch()
	case lexer.TokenImport:
		return p.parseImport()
	default:
		p.addErrorf(p.cur.Span, "expected a command (def/check/eval/search/import), got %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
}

// parseDefine parses `def NAME.{u...} Args [: T] := term`.
func (p *Parser) parseDefine() *ast.Define {
	start := p.cur.Span
	p.nextToken() // consume 'def'

	if !p.curIs(lexer.TokenIdentifier) {
		p.addErrorf(p.cur.Span, "expected a name after 'def', got %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
	name := p.cur.Literal
	p.nextToken()

	var univParams []string
	if p.curIs(lexer.TokenDot) {
		p.nextToken()
		if !p.expect(lexer.TokenLBrace) {
			return nil
		}
		for !p.curIs(lexer.TokenRBrace) {
			if !p.curIs(lexer.TokenIdentifier) {
				p.addErrorf(p.cur.Span, "expected a universe parameter name, got %s %q", p.cur.Type, p.cur.Literal)
				return nil
			}
			univParams = append(univParams, p.cur.Literal)
			p.nextToken()
			if p.curIs(lexer.TokenComma) {
				p.nextToken()
			}
		}
		p.nextToken() // consume '}'
	}

	args := p.parseBinderGroups()

	var ty ast.Term
	if p.curIs(lexer.TokenColon) {
		p.nextToken()
		ty = p.parseTerm()
	}

	if !p.expect(lexer.TokenColonEq) {
		return nil
	}
	body := p.parseTerm()

	return &ast.Define{Pos: start, Name: name, UnivParams: univParams, Args: args, Type: ty, Body: body}
}

func (p *Parser) parseCheck() *ast.CheckType {
	start := p.cur.Span
	p.nextToken()
	t := p.parseTerm()

	var ty ast.Term
	if p.curIs(lexer.TokenColon) {
		p.nextToken()
		ty = p.parseTerm()
	}
	return &ast.CheckType{Pos: start, Term: t, Type: ty}
}

func (p *Parser) parseEval() *ast.Eval {
	start := p.cur.Span
	p.nextToken()
	return &ast.Eval{Pos: start, Term: p.parseTerm()}
}

func (p *Parser) parseSearch() *ast.Search {
	start := p.cur.Span
	p.nextToken()
	if !p.curIs(lexer.TokenIdentifier) {
		p.addErrorf(p.cur.Span, "expected a name after 'search', got %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
	name := p.cur.Literal
	p.nextToken()
	return &ast.Search{Pos: start, Substr: name}
}

// parseImport parses `import file ...`; since the grammar has no
// string-literal token, each filename is a plain identifier token
// (spec.md §6.1 does not further specify file name syntax).
func (p *Parser) parseImport() *ast.Import {
	start := p.cur.Span
	p.nextToken()
	var files []string
	for p.curIs(lexer.TokenIdentifier) {
		files = append(files, p.cur.Literal)
		p.nextToken()
	}
	return &ast.Import{Pos: start, Files: files}
}

// parseBinderGroups parses zero or more `(x y z : τ)` groups, flattening
// each into one ast.Binder per name (spec.md §6.1), or, when the
// argument list is a single bare `name : τ` with no enclosing parens
// (the shorthand spec.md's own worked examples use for `fun`), that one
// binder.
func (p *Parser) parseBinderGroups() []ast.Binder {
	if p.curIs(lexer.TokenIdentifier) && p.peekIs(lexer.TokenColon) {
		name := p.cur.Literal
		p.nextToken() // consume the name
		p.nextToken() // consume ':'
		ty := p.parseTerm()
		return []ast.Binder{{Name: name, Type: ty}}
	}

	var out []ast.Binder
	for p.curIs(lexer.TokenLParen) {
		p.nextToken()
		var names []string
		for p.curIs(lexer.TokenIdentifier) {
			names = append(names, p.cur.Literal)
			p.nextToken()
		}
		if !p.expect(lexer.TokenColon) {
			return out
		}
		ty := p.parseTerm()
		if !p.expect(lexer.TokenRParen) {
			return out
		}
		for _, n := range names {
			out = append(out, ast.Binder{Name: n, Type: ty})
		}
	}
	return out
}

// parseTerm parses a full term, handling the lowest-precedence forms
// (`fun`, `->` products) around parseApp's application/atom level.
func (p *Parser) parseTerm() ast.Term {
	switch p.cur.Type {
	case lexer.TokenFun:
		return p.parseAbs()
	}

	start := p.cur.Span
	left := p.parseApp()

	if p.curIs(lexer.TokenArrow) {
		p.nextToken()
		cod := p.parseTerm()
		return &ast.Prod{Pos: start, Binders: []ast.Binder{{Name: "_", Type: left}}, Codomain: cod}
	}
	return left
}

func (p *Parser) parseAbs() *ast.Abs {
	start := p.cur.Span
	p.nextToken() // consume 'fun'
	binders := p.parseBinderGroups()
	if !p.expect(lexer.TokenFatArrow) {
		return nil
	}
	return &ast.Abs{Pos: start, Binders: binders, Body: p.parseTerm()}
}

// parseApp parses left-associative juxtaposition over atoms. The
// `(x:τ) -> u` dependent product form is handled inside parseAtom by
// parseParenOrProd, which reads it as a binder group followed by `->`.
func (p *Parser) parseApp() ast.Term {
	left := p.parseAtom()
	if left == nil {
		return nil
	}
	for p.startsAtom() {
		start := left.Span()
		arg := p.parseAtom()
		if arg == nil {
			break
		}
		left = &ast.App{Pos: start, Fun: left, Arg: arg}
	}
	return left
}

func (p *Parser) startsAtom() bool {
	switch p.cur.Type {
	case lexer.TokenIdentifier, lexer.TokenProp, lexer.TokenType_, lexer.TokenSort, lexer.TokenLParen:
		return true
	default:
		return false
	}
}

// startsUniverseAtom reports whether the current token can begin a
// universe atom, used to tell a bare `Type` (level defaults to 0, i.e.
// `Type` = `Sort 1`) apart from `Type k`.
func (p *Parser) startsUniverseAtom() bool {
	switch p.cur.Type {
	case lexer.TokenNumber, lexer.TokenIdentifier, lexer.TokenLParen:
		return true
	default:
		return false
	}
}

// parseAtom parses an identifier (with optional `.{...}` universe
// instance), a `Prop`/`Type k`/`Sort ℓ` expression, or a parenthesized
// term — which, if it opens a `(x...: τ)` binder group followed by
// `->`, is instead a dependent Prod.
func (p *Parser) parseAtom() ast.Term {
	switch p.cur.Type {
	case lexer.TokenIdentifier:
		return p.parseIdent()

	case lexer.TokenProp:
		start := p.cur.Span
		p.nextToken()
		return &ast.SortExpr{Pos: start, Level: &ast.UniverseLiteral{Pos: start, N: 0}}

	case lexer.TokenType_:
		start := p.cur.Span
		p.nextToken()
		var lvl ast.Universe = &ast.UniverseLiteral{Pos: start, N: 0}
		if p.startsUniverseAtom() {
			lvl = p.parseUniverseAtom()
		}
		return &ast.SortExpr{Pos: start, Level: &ast.UniverseOffset{Pos: start, Base: lvl, N: 1}}

	case lexer.TokenSort:
		start := p.cur.Span
		p.nextToken()
		return &ast.SortExpr{Pos: start, Level: p.parseUniverse()}

	case lexer.TokenLParen:
		return p.parseParenOrProd()

	default:
		p.addErrorf(p.cur.Span, "expected a term, got %s %q", p.cur.Type, p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseIdent() *ast.Ident {
	start := p.cur.Span
	name := p.cur.Literal
	p.nextToken()

	var inst []ast.Universe
	if p.curIs(lexer.TokenDot) {
		p.nextToken()
		if !p.expect(lexer.TokenLBrace) {
			return &ast.Ident{Pos: start, Name: name}
		}
		for !p.curIs(lexer.TokenRBrace) {
			inst = append(inst, p.parseUniverse())
			if p.curIs(lexer.TokenComma) {
				p.nextToken()
			}
		}
		p.nextToken() // consume '}'
	}
	return &ast.Ident{Pos: start, Name: name, Instance: inst}
}

// prodGroup is one `(x y z : τ)` binder group parsed while looking
// ahead for the dependent-product shape.
type prodGroup struct {
	names []string
	ty    ast.Term
}

// parseParenOrProd parses `(...)`: either one or more chained
// dependent-product binder groups `(x...: τ) (y...: σ) -> u` (spec.md
// §6.1's worked examples chain several groups before the final arrow,
// each becoming its own nested Prod, innermost group closest to the
// codomain) or a plain parenthesized term.
func (p *Parser) parseParenOrProd() ast.Term {
	start := p.cur.Span
	m := p.mark()
	savedErrors := len(p.errors)

	var groups []prodGroup
	for p.curIs(lexer.TokenLParen) {
		gm := p.mark()
		p.nextToken() // consume '('
		var names []string
		for p.curIs(lexer.TokenIdentifier) {
			names = append(names, p.cur.Literal)
			p.nextToken()
		}
		if len(names) == 0 || !p.curIs(lexer.TokenColon) {
			p.reset(gm)
			break
		}
		p.nextToken() // consume ':'
		ty := p.parseTerm()
		if !p.curIs(lexer.TokenRParen) {
			p.reset(gm)
			break
		}
		p.nextToken() // consume ')'
		groups = append(groups, prodGroup{names: names, ty: ty})
	}

	if len(groups) > 0 && p.curIs(lexer.TokenArrow) {
		p.nextToken()
		cod := p.parseTerm()
		for i := len(groups) - 1; i >= 0; i-- {
			g := groups[i]
			binders := make([]ast.Binder, len(g.names))
			for j, n := range g.names {
				binders[j] = ast.Binder{Name: n, Type: g.ty}
			}
			cod = &ast.Prod{Pos: start, Binders: binders, Codomain: cod}
		}
		return cod
	}

	// Not a (complete) product: backtrack and parse a plain
	// parenthesized term instead.
	p.errors = p.errors[:savedErrors]
	p.reset(m)
	p.nextToken() // consume '('
	t := p.parseTerm()
	p.expect(lexer.TokenRParen)
	return t
}

// parseUniverse parses a universe expression: `max`/`imax` applications,
// or a universe atom optionally followed by `+ n`.
func (p *Parser) parseUniverse() ast.Universe {
	switch p.cur.Type {
	case lexer.TokenMax:
		start := p.cur.Span
		p.nextToken()
		l, r := p.parseUniversePair()
		return &ast.UniverseMax{Pos: start, Left: l, Right: r}
	case lexer.TokenIMax:
		start := p.cur.Span
		p.nextToken()
		l, r := p.parseUniversePair()
		return &ast.UniverseIMax{Pos: start, Left: l, Right: r}
	default:
		u := p.parseUniverseAtom()
		if p.curIs(lexer.TokenPlus) {
			start := u.Span()
			p.nextToken()
			n := p.parseNatLiteral()
			return &ast.UniverseOffset{Pos: start, Base: u, N: n}
		}
		return u
	}
}

// parseUniversePair parses the two arguments to `max`/`imax`, accepting
// both `max ℓ₁ ℓ₂` (juxtaposed) and `max(ℓ₁, ℓ₂)` (spec.md §6.1).
func (p *Parser) parseUniversePair() (ast.Universe, ast.Universe) {
	if p.curIs(lexer.TokenLParen) {
		p.nextToken()
		l := p.parseUniverse()
		p.expect(lexer.TokenComma)
		r := p.parseUniverse()
		p.expect(lexer.TokenRParen)
		return l, r
	}
	l := p.parseUniverseAtom()
	r := p.parseUniverseAtom()
	return l, r
}

func (p *Parser) parseUniverseAtom() ast.Universe {
	start := p.cur.Span
	switch p.cur.Type {
	case lexer.TokenNumber:
		return &ast.UniverseLiteral{Pos: start, N: p.parseNatLiteral()}
	case lexer.TokenIdentifier:
		name := p.cur.Literal
		p.nextToken()
		return &ast.UniverseVar{Pos: start, Name: name}
	case lexer.TokenLParen:
		p.nextToken()
		u := p.parseUniverse()
		p.expect(lexer.TokenRParen)
		return u
	default:
		p.addErrorf(p.cur.Span, "expected a universe expression, got %s %q", p.cur.Type, p.cur.Literal)
		return &ast.UniverseLiteral{Pos: start, N: 0}
	}
}

func (p *Parser) parseNatLiteral() int {
	lit := p.cur.Literal
	n := 0
	for _, c := range lit {
		n = n*10 + int(c-'0')
	}
	p.nextToken()
	return n
}
