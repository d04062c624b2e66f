package lexer

// RQL's lexical conventions (spec §4.1) define whitespace and quoting
// rules in ASCII terms, byte-for-byte, rather than via Unicode categories.
// These predicates sit alongside the generic CheckFn combinators in
// checks.go and are what the where tokenizer (internal/wheretok) uses; the
// clause splitter (internal/clausescan) does its own byte checks.
var (
	IsRQLSpace  = In(" \t\r\n")
	IsQuote     = Eq('"')
	IsLeftParen = Eq('(')
	IsRightParen = Eq(')')
	IsComma     = Eq(',')
	IsColon     = Eq(':')

	// IsWhereSpecial matches the runes that always end a bare ident token
	// inside a where expression: whitespace, parens, the quote
	// character, and the leading characters of every comparison
	// operator.
	IsWhereSpecial = Or(IsRQLSpace, IsLeftParen, IsRightParen, IsQuote,
		Eq('='), Eq('<'), Eq('>'), Eq('!'))
)
