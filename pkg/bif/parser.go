package bif

import (
	"io"
	"math"
	"strconv"
)

// Parse reads a BIF document and returns its syntax tree. It checks syntax
// only; use [Build] to turn the tree into a network.
//
// Errors are *Error values carrying the line and column of the offending
// token. Read errors from r are returned unchanged.
func Parse(r io.Reader) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(src)
}

// ParseBytes is like [Parse] for an in-memory document.
func ParseBytes(src []byte) (*File, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.file()
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected(want string) error {
	return errorf(p.tok.pos, "expected %s, found %s", want, p.tok.describe())
}

// expect consumes a token of the given kind.
func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return token{}, p.unexpected(kind.String())
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *parser) isKeyword(word string) bool {
	return p.tok.kind == tokWord && p.tok.text == word
}

// keyword consumes the given bare word.
func (p *parser) keyword(word string) error {
	if !p.isKeyword(word) {
		return p.unexpected(strconv.Quote(word))
	}
	return p.advance()
}

// skip consumes an optional token of the given kind.
func (p *parser) skip(kind tokenKind) error {
	if p.tok.kind == kind {
		return p.advance()
	}
	return nil
}

// name consumes a word or a quoted string.
func (p *parser) name(what string) (string, error) {
	if p.tok.kind != tokWord && p.tok.kind != tokString {
		return "", p.unexpected(what)
	}
	text := p.tok.text
	return text, p.advance()
}

// property is called with the current token on "property"; the lexer sits
// right after it, so the rest of the statement is read raw.
func (p *parser) property() (string, error) {
	text, err := p.lex.raw()
	if err != nil {
		return "", err
	}
	return text, p.advance()
}

func (p *parser) file() (*File, error) {
	f := &File{}
	if !p.isKeyword("network") {
		return nil, p.unexpected("network declaration")
	}
	header, err := p.network()
	if err != nil {
		return nil, err
	}
	f.Network = header

	for {
		switch {
		case p.tok.kind == tokEOF:
			return f, nil
		case p.isKeyword("variable"):
			v, err := p.variable()
			if err != nil {
				return nil, err
			}
			f.Variables = append(f.Variables, v)
		case p.isKeyword("probability"):
			prob, err := p.probability()
			if err != nil {
				return nil, err
			}
			f.Probabilities = append(f.Probabilities, prob)
		default:
			return nil, p.unexpected("variable or probability block")
		}
	}
}

// network parses: network [name] { property...; }
func (p *parser) network() (Header, error) {
	h := Header{Pos: p.tok.pos}
	if err := p.keyword("network"); err != nil {
		return h, err
	}
	if p.tok.kind == tokWord || p.tok.kind == tokString {
		h.Name = p.tok.text
		if err := p.advance(); err != nil {
			return h, err
		}
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return h, err
	}
	for p.tok.kind != tokRBrace {
		if !p.isKeyword("property") {
			return h, p.unexpected("property or '}'")
		}
		prop, err := p.property()
		if err != nil {
			return h, err
		}
		h.Properties = append(h.Properties, prop)
	}
	return h, p.advance()
}

// variable parses: variable name { type discrete [ n ] { s1, s2 }; property...; }
func (p *parser) variable() (Variable, error) {
	v := Variable{Pos: p.tok.pos}
	if err := p.keyword("variable"); err != nil {
		return v, err
	}
	name, err := p.name("variable name")
	if err != nil {
		return v, err
	}
	v.Name = name
	if _, err := p.expect(tokLBrace); err != nil {
		return v, err
	}

	for p.tok.kind != tokRBrace {
		switch {
		case p.isKeyword("property"):
			prop, err := p.property()
			if err != nil {
				return v, err
			}
			v.Properties = append(v.Properties, prop)
		case p.isKeyword("type"):
			if v.Type != "" {
				return v, errorf(p.tok.pos, "variable %q declares its type twice", v.Name)
			}
			if err := p.variableType(&v); err != nil {
				return v, err
			}
		default:
			return v, p.unexpected("type, property or '}'")
		}
	}
	if v.Type == "" {
		return v, errorf(p.tok.pos, "variable %q has no type declaration", v.Name)
	}
	return v, p.advance()
}

func (p *parser) variableType(v *Variable) error {
	if err := p.keyword("type"); err != nil {
		return err
	}
	if !p.isKeyword("discrete") {
		return errorf(p.tok.pos, "unsupported variable type %s, only discrete is supported", p.tok.describe())
	}
	v.Type = "discrete"
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(tokLBracket); err != nil {
		return err
	}
	sizeTok, err := p.expect(tokWord)
	if err != nil {
		return err
	}
	size, err := strconv.Atoi(sizeTok.text)
	if err != nil || size < 0 {
		return errorf(sizeTok.pos, "expected state count, found %s", sizeTok.describe())
	}
	v.Size = size
	if _, err := p.expect(tokRBracket); err != nil {
		return err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for p.tok.kind != tokRBrace {
		state, err := p.name("state name or '}'")
		if err != nil {
			return err
		}
		v.States = append(v.States, state)
		if err := p.skip(tokComma); err != nil {
			return err
		}
	}
	if err := p.advance(); err != nil {
		return err
	}
	return p.skip(tokSemi)
}

// probability parses: probability ( child | p1, p2 ) { ... }
func (p *parser) probability() (Probability, error) {
	prob := Probability{Pos: p.tok.pos}
	if err := p.keyword("probability"); err != nil {
		return prob, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return prob, err
	}
	child, err := p.name("variable name")
	if err != nil {
		return prob, err
	}
	prob.Variable = child
	if err := p.skip(tokPipe); err != nil {
		return prob, err
	}
	for p.tok.kind != tokRParen {
		parent, err := p.name("parent name or ')'")
		if err != nil {
			return prob, err
		}
		prob.Parents = append(prob.Parents, parent)
		if err := p.skip(tokComma); err != nil {
			return prob, err
		}
	}
	if err := p.advance(); err != nil {
		return prob, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return prob, err
	}

	for p.tok.kind != tokRBrace {
		if err := p.probabilityItem(&prob); err != nil {
			return prob, err
		}
	}
	return prob, p.advance()
}

func (p *parser) probabilityItem(prob *Probability) error {
	pos := p.tok.pos
	switch {
	case p.isKeyword("property"):
		prop, err := p.property()
		if err != nil {
			return err
		}
		prob.Properties = append(prob.Properties, prop)
	case p.isKeyword("table"):
		if prob.Table != nil {
			return errorf(pos, "probability block for %q has more than one table", prob.Variable)
		}
		if err := p.advance(); err != nil {
			return err
		}
		values, err := p.numbers()
		if err != nil {
			return err
		}
		prob.Table = values
		prob.tablePos = pos
	case p.isKeyword("default"):
		if prob.Default != nil {
			return errorf(pos, "probability block for %q has more than one default", prob.Variable)
		}
		if err := p.advance(); err != nil {
			return err
		}
		values, err := p.numbers()
		if err != nil {
			return err
		}
		prob.Default = values
		prob.defaultPos = pos
	case p.tok.kind == tokLParen:
		entry := Entry{Pos: pos}
		if err := p.advance(); err != nil {
			return err
		}
		for p.tok.kind != tokRParen {
			state, err := p.name("state name or ')'")
			if err != nil {
				return err
			}
			entry.States = append(entry.States, state)
			if err := p.skip(tokComma); err != nil {
				return err
			}
		}
		if err := p.advance(); err != nil {
			return err
		}
		values, err := p.numbers()
		if err != nil {
			return err
		}
		entry.Values = values
		prob.Entries = append(prob.Entries, entry)
	default:
		return p.unexpected("table, default, entry, property or '}'")
	}
	return nil
}

// numbers parses a non-empty list of finite numbers separated by commas
// and/or whitespace and terminated by ';'.
func (p *parser) numbers() ([]float64, error) {
	values := []float64{}
	for p.tok.kind != tokSemi {
		if p.tok.kind != tokWord {
			return nil, p.unexpected("number")
		}
		f, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, errorf(p.tok.pos, "expected number, found %s", p.tok.describe())
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errorf(p.tok.pos, "expected finite number, found %s", p.tok.describe())
		}
		values = append(values, f)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skip(tokComma); err != nil {
			return nil, err
		}
	}
	if len(values) == 0 {
		return nil, p.unexpected("number")
	}
	return values, p.advance()
}
