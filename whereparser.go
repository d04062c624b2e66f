package rql

import "github.com/reflog-io/reflog-ql/internal/wheretok"

// whereParser is a recursive-descent parser over the flat token stream
// produced by wheretok.Tokenize, implementing spec §4.3's grammar:
//
//	Or         := And   ("or" And)*
//	And        := Primary  (("and")? Primary)*   // adjacency is implicit AND
//	Primary    := "(" Or ")" | Comparison
//	Comparison := FieldTok OpTok? ValueTok
//	FieldTok   := ident | string
//	OpTok      := "=" | "!=" | "<" | ">" | "<=" | ">="   // default "=" when absent
//	ValueTok   := ident | string | number | boolean
type whereParser struct {
	toks []wheretok.Tok
	pos  int
}

func (p *whereParser) peek() wheretok.Tok {
	if p.pos >= len(p.toks) {
		return wheretok.Tok{Kind: wheretok.EOF}
	}
	return p.toks[p.pos]
}

func (p *whereParser) next() wheretok.Tok {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// parseWhere tokenizes and parses the inner text of a where expression
// (already unwrapped of its outermost parens, per spec §4.2).
func parseWhere(inner string) (*Condition, error) {
	toks, err := wheretok.Tokenize(inner, true)
	if err != nil {
		return nil, wrapTokenizeError(err)
	}
	if len(toks) == 0 {
		return nil, newParseError(ErrEmptyExpr, "Empty or invalid where expression")
	}
	p := &whereParser{toks: toks}
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		if p.peek().Kind == wheretok.RParen {
			return nil, newParseError(ErrUnbalancedParens, "Unbalanced parentheses in where clause")
		}
		return nil, newParseError(ErrUnexpectedChar, "Unexpected character in where clause")
	}
	return cond, nil
}

// wrapTokenizeError turns a wheretok sentinel into this package's
// ParseError with spec §4's verbatim message text.
func wrapTokenizeError(err error) *ParseError {
	switch err {
	case wheretok.ErrUnclosedQuote:
		return newParseError(ErrUnclosedQuote, "Unclosed quoted string in where clause")
	default:
		return newParseError(ErrUnexpectedChar, "Unexpected character in where clause")
	}
}

func isPrimaryStart(t wheretok.Tok) bool {
	switch t.Kind {
	case wheretok.LParen, wheretok.Ident, wheretok.String, wheretok.Number, wheretok.Boolean:
		return true
	default:
		return false
	}
}

func (p *whereParser) parseOr() (*Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	children := []*Condition{left}
	for p.peek().Kind == wheretok.Keyword && p.peek().Text == "or" {
		p.next()
		if !isPrimaryStart(p.peek()) {
			return nil, newParseError(ErrDanglingLogicalOp, "Invalid where: OR with no right side")
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	return newLogical(LogicalOr, children...), nil
}

func (p *whereParser) parseAnd() (*Condition, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	children := []*Condition{left}
	for {
		t := p.peek()
		if t.Kind == wheretok.Keyword && t.Text == "and" {
			p.next()
			if !isPrimaryStart(p.peek()) {
				return nil, newParseError(ErrDanglingLogicalOp, "Invalid where: AND with no right side")
			}
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			children = append(children, right)
			continue
		}
		if isPrimaryStart(t) {
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			children = append(children, right)
			continue
		}
		break
	}
	return newLogical(LogicalAnd, children...), nil
}

func (p *whereParser) parsePrimary() (*Condition, error) {
	t := p.peek()
	switch t.Kind {
	case wheretok.LParen:
		p.next()
		if p.peek().Kind == wheretok.RParen {
			return nil, newParseError(ErrEmptyParenExpr, "Empty parenthetical expression")
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != wheretok.RParen {
			return nil, newParseError(ErrUnbalancedParens, "Missing closing parenthesis")
		}
		p.next()
		return inner, nil
	case wheretok.Keyword:
		if t.Text == "or" {
			return nil, newParseError(ErrDanglingLogicalOp, "Invalid where: OR with no left side")
		}
		return nil, newParseError(ErrDanglingLogicalOp, "Invalid where: AND with no right side")
	case wheretok.RParen:
		return nil, newParseError(ErrEmptyParenExpr, "Empty parenthetical expression")
	case wheretok.EOF:
		return nil, newParseError(ErrEmptyExpr, "Empty or invalid where expression")
	default:
		return p.parseComparison()
	}
}

func (p *whereParser) parseComparison() (*Condition, error) {
	fieldTok := p.peek()
	var field string
	switch fieldTok.Kind {
	case wheretok.Ident, wheretok.String:
		field = fieldTok.Text
	default:
		return nil, newParseError(ErrIncompleteCompare, "Incomplete comparison in where clause")
	}
	p.next()

	op := OpEqual
	if p.peek().Kind == wheretok.Op {
		op = CompareOp(p.peek().Text)
		p.next()
	}

	valTok := p.peek()
	var val Value
	switch valTok.Kind {
	case wheretok.Ident, wheretok.String:
		val = StringValue(valTok.Text)
	case wheretok.Number:
		i, f, isInt, ok := wheretok.ParseNumber(valTok.Text)
		if !ok {
			return nil, newParseError(ErrInvalidValueToken, "Invalid value in where comparison")
		}
		if isInt {
			val = IntValue(i)
		} else {
			val = FloatValue(f)
		}
	case wheretok.Boolean:
		val = BoolValue(valTok.Text == "true")
	case wheretok.LParen, wheretok.Op:
		return nil, newParseError(ErrInvalidValueToken, "Invalid value in where comparison")
	default:
		return nil, newParseError(ErrIncompleteCompare, "Incomplete comparison in where clause")
	}
	p.next()
	return newComparison(field, op, val), nil
}
