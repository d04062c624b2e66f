// Package wheretok tokenizes the inside of a where: clause (spec §4.1,
// §4.3). It is shared by the strict parser, which treats any tokenizing
// failure as a hard error, and the autocomplete engine, which tokenizes
// tolerantly over partial/invalid text and never fails (spec §4.4).
package wheretok

import (
	"errors"
	"strconv"
	"strings"

	"github.com/reflog-io/reflog-ql/lexer"
)

// Kind discriminates the token shapes produced by Tokenize.
type Kind int

const (
	EOF Kind = iota
	LParen
	RParen
	Op
	Keyword
	String
	Number
	Boolean
	Ident
)

// Tok is one lexical token of a where expression. Text carries the
// payload appropriate to Kind: the operator symbol for Op, "and"/"or"
// for Keyword, the unescaped contents for String/Ident, the original
// literal spelling for Number, and the lowercased "true"/"false" for
// Boolean (left for the caller to parse into whatever numeric/boolean
// representation it uses).
type Tok struct {
	Kind Kind
	Text string
}

// Sentinel errors returned by Tokenize in strict mode. Tolerant mode
// (strict=false) never returns an error; it stops and returns whatever
// tokens were already recognized.
var (
	ErrUnclosedQuote  = errors.New("unclosed quoted string")
	ErrUnexpectedChar = errors.New("unexpected character")
)

// Tokenize scans text (the already-unwrapped inside of a where: value)
// into a flat token stream.
func Tokenize(text string, strict bool) ([]Tok, error) {
	lx := lexer.New(text)
	var toks []Tok

	for {
		lx.Some(lexer.IsRQLSpace)
		lx.Reduce()

		r := lx.Peek()
		if r == lexer.RuneEOF {
			break
		}

		switch r {
		case '(':
			lx.Shift()
			lx.Reduce()
			toks = append(toks, Tok{Kind: LParen, Text: "("})

		case ')':
			lx.Shift()
			lx.Reduce()
			toks = append(toks, Tok{Kind: RParen, Text: ")"})

		case '"':
			body, ok := scanQuotedBody(lx)
			lx.Reduce()
			if !ok {
				if strict {
					return nil, ErrUnclosedQuote
				}
				toks = append(toks, Tok{Kind: String, Text: body})
				return toks, nil
			}
			toks = append(toks, Tok{Kind: String, Text: body})

		case '!':
			lx.Shift()
			if lx.Peek() == '=' {
				lx.Shift()
				text := lx.Reduce()
				toks = append(toks, Tok{Kind: Op, Text: text})
			} else {
				lx.Reduce()
				if strict {
					return nil, ErrUnexpectedChar
				}
				return toks, nil
			}

		case '<', '>':
			lx.Shift()
			if lx.Peek() == '=' {
				lx.Shift()
			}
			text := lx.Reduce()
			toks = append(toks, Tok{Kind: Op, Text: text})

		case '=':
			lx.Shift()
			text := lx.Reduce()
			toks = append(toks, Tok{Kind: Op, Text: text})

		default:
			if !lx.Some(lexer.Not(lexer.Or(lexer.IsWhereSpecial, lexer.Eq(lexer.RuneEOF)))) {
				lx.Reduce()
				if strict {
					return nil, ErrUnexpectedChar
				}
				return toks, nil
			}
			word := lx.Reduce()
			toks = append(toks, identToken(word))
		}
	}
	return toks, nil
}

// scanQuotedBody consumes a double-quoted string with the lexer
// positioned on the opening '"', applying the \", \\, and \x -> x
// escapes of spec §4.1. ok is false when the string runs to end of
// input unterminated; body still holds whatever was scanned so
// tolerant callers can use it as a partial.
func scanQuotedBody(lx *lexer.Lexer) (string, bool) {
	lx.Shift() // opening quote
	var body stack[rune]
	for {
		r := lx.Peek()
		if r == lexer.RuneEOF {
			return runesToString(body), false
		}
		if r == '"' {
			lx.Shift()
			return runesToString(body), true
		}
		if r == '\\' {
			lx.Shift()
			esc := lx.Peek()
			if esc == lexer.RuneEOF {
				return runesToString(body), false
			}
			lx.Shift()
			body.push(esc)
			continue
		}
		lx.Shift()
		body.push(r)
	}
}

// identToken classifies a bare word into a keyword, boolean, number, or
// plain ident token, per spec §4.1/§4.3.
func identToken(word string) Tok {
	lower := strings.ToLower(word)
	switch lower {
	case "and", "or":
		return Tok{Kind: Keyword, Text: lower}
	case "true", "false":
		return Tok{Kind: Boolean, Text: lower}
	}
	if looksNumeric(word) {
		return Tok{Kind: Number, Text: word}
	}
	return Tok{Kind: Ident, Text: word}
}

// looksNumeric reports whether s matches -?\d+(\.\d+)? exactly.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if digits == 0 {
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	frac := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		frac++
	}
	return i == len(s) && frac > 0
}

// ParseNumber converts a Number token's Text into an int64/float64 pair,
// mirroring looksNumeric's grammar.
func ParseNumber(s string) (i int64, f float64, isInt, ok bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, float64(n), true, true
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return 0, fv, false, true
	}
	return 0, 0, false, false
}
