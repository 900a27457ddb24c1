package bif

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokPipe
	tokComma
	tokSemi
)

var tokenNames = map[tokenKind]string{
	tokEOF:      "end of input",
	tokWord:     "word",
	tokString:   "string",
	tokLBrace:   "'{'",
	tokRBrace:   "'}'",
	tokLBracket: "'['",
	tokRBracket: "']'",
	tokLParen:   "'('",
	tokRParen:   "')'",
	tokPipe:     "'|'",
	tokComma:    "','",
	tokSemi:     "';'",
}

func (k tokenKind) String() string { return tokenNames[k] }

var punct = map[byte]tokenKind{
	'{': tokLBrace,
	'}': tokRBrace,
	'[': tokLBracket,
	']': tokRBracket,
	'(': tokLParen,
	')': tokRParen,
	'|': tokPipe,
	',': tokComma,
	';': tokSemi,
}

// Pos is a 1-based line and column in the source. Columns count runes.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

type token struct {
	kind tokenKind
	text string
	pos  Pos
}

// describe renders a token for error messages.
func (t token) describe() string {
	switch t.kind {
	case tokWord:
		return fmt.Sprintf("%q", t.text)
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	default:
		return t.kind.String()
	}
}

// lexer splits BIF source into tokens on demand. It never looks ahead, so
// the parser can switch it into raw mode for property text.
type lexer struct {
	src  []byte
	off  int
	line int
	col  int
}

func newLexer(src []byte) *lexer {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) pos() Pos { return Pos{Line: l.line, Col: l.col} }

func (l *lexer) peekByte(ahead int) byte {
	if l.off+ahead < len(l.src) {
		return l.src[l.off+ahead]
	}
	return 0
}

// advance consumes one rune and updates the position.
func (l *lexer) advance() {
	if l.off >= len(l.src) {
		return
	}
	if l.src[l.off] == '\n' {
		l.line++
		l.col = 1
		l.off++
		return
	}
	_, size := utf8.DecodeRune(l.src[l.off:])
	l.off += size
	l.col++
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func (l *lexer) atComment() bool {
	return l.peekByte(0) == '/' && (l.peekByte(1) == '/' || l.peekByte(1) == '*')
}

// skip consumes whitespace and comments.
func (l *lexer) skip() error {
	for l.off < len(l.src) {
		switch {
		case isSpace(l.src[l.off]):
			l.advance()
		case l.peekByte(0) == '/' && l.peekByte(1) == '/':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance()
			}
		case l.peekByte(0) == '/' && l.peekByte(1) == '*':
			start := l.pos()
			l.advance()
			l.advance()
			for {
				if l.off >= len(l.src) {
					return errorf(start, "unterminated comment")
				}
				if l.peekByte(0) == '*' && l.peekByte(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// next returns the next token.
func (l *lexer) next() (token, error) {
	if err := l.skip(); err != nil {
		return token{}, err
	}
	start := l.pos()
	if l.off >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.src[l.off]
	if kind, ok := punct[c]; ok {
		l.advance()
		return token{kind: kind, text: string(c), pos: start}, nil
	}
	if c == '"' {
		text, err := l.quoted()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: text, pos: start}, nil
	}

	begin := l.off
	for l.off < len(l.src) {
		c := l.src[l.off]
		if isSpace(c) || c == '"' || l.atComment() {
			break
		}
		if _, ok := punct[c]; ok {
			break
		}
		l.advance()
	}
	return token{kind: tokWord, text: string(l.src[begin:l.off]), pos: start}, nil
}

// quoted consumes a double-quoted string and returns its content.
// A backslash escapes the following character.
func (l *lexer) quoted() (string, error) {
	start := l.pos()
	l.advance() // opening quote
	var buf bytes.Buffer
	for {
		if l.off >= len(l.src) {
			return "", errorf(start, "unterminated string")
		}
		c := l.src[l.off]
		switch c {
		case '"':
			l.advance()
			return buf.String(), nil
		case '\\':
			l.advance()
			if l.off >= len(l.src) {
				return "", errorf(start, "unterminated string")
			}
			_, size := utf8.DecodeRune(l.src[l.off:])
			buf.Write(l.src[l.off : l.off+size])
			l.advance()
		default:
			_, size := utf8.DecodeRune(l.src[l.off:])
			buf.Write(l.src[l.off : l.off+size])
			l.advance()
		}
	}
}

// raw consumes everything up to and including the next ';' outside of a
// quoted string and returns the trimmed text before it.
func (l *lexer) raw() (string, error) {
	start := l.pos()
	begin := l.off
	inString := false
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == '\\' && inString:
			l.advance()
		case c == '"':
			inString = !inString
		case c == ';' && !inString:
			text := string(bytes.TrimSpace(l.src[begin:l.off]))
			l.advance()
			return text, nil
		}
		l.advance()
	}
	return "", errorf(start, "unterminated property, expected ';'")
}
