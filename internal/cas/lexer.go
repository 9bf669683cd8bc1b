package cas

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokString
	tokOp
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNum:
		return "number"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokOp:
		return "operator"
	default:
		return "unknown"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%q", t.text)
}

// lex splits src into tokens. Operators are + - * / ** ( ) , and =.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size

		case isDigit(r) || (r == '.' && i+1 < len(src) && isDigit(rune(src[i+1]))):
			start := i
			i = scanNumber(src, i)
			toks = append(toks, token{tokNum, src[start:i], start})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
					break
				}
				i += size
			}
			toks = append(toks, token{tokIdent, src[start:i], start})

		case r == '\'' || r == '"':
			start := i
			end := indexRune(src, i+1, r)
			if end < 0 {
				return nil, &ParseError{Input: src, Pos: start, Msg: "unterminated string"}
			}
			toks = append(toks, token{tokString, src[i+1 : end], start})
			i = end + 1

		case r == '*' && i+1 < len(src) && src[i+1] == '*':
			toks = append(toks, token{tokOp, "**", i})
			i += 2

		case r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')' || r == ',' || r == '=':
			toks = append(toks, token{tokOp, string(r), i})
			i += size

		default:
			return nil, &ParseError{Input: src, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

// scanNumber reads digits, an optional fraction and an optional exponent.
// An "e" only starts an exponent when digits follow, so 2e stays 2*e.
func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(rune(src[i])) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(rune(src[i])) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(rune(src[j])) {
			for j < len(src) && isDigit(rune(src[j])) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func indexRune(s string, from int, r rune) int {
	for i, c := range s[from:] {
		if c == r {
			return from + i
		}
	}
	return -1
}
