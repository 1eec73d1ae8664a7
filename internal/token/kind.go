package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a malformed lexeme (unterminated string, unknown characters).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwImport // import
	KwLet    // let
	KwReturn // return
	KwIf     // if
	KwElse   // else
	KwWhile  // while
	KwTrue   // true
	KwFalse  // false

	// ключевые слова-типы
	KwInt    // int
	KwFloat  // float
	KwString // string
	KwBool   // bool
	KwVoid   // void

	IntLit
	FloatLit
	StringLit

	Plus      // +
	Minus     // -
	Star      // *
	StarStar  // **
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	AndAnd    // &&
	OrOr      // ||
	Colon     // :
	Semicolon // ;
	Comma     // ,
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	At        // @
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwImport:  "KwImport",
	KwLet:     "KwLet",
	KwReturn:  "KwReturn",
	KwIf:      "KwIf",
	KwElse:    "KwElse",
	KwWhile:   "KwWhile",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	KwInt:     "KwInt",
	KwFloat:   "KwFloat",
	KwString:  "KwString",
	KwBool:    "KwBool",
	KwVoid:    "KwVoid",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	StarStar:  "StarStar",
	Slash:     "Slash",
	Percent:   "Percent",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	At:        "At",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindSpellings = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/", Percent: "%",
	Assign: "=", EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=",
	Gt: ">", GtEq: ">=", AndAnd: "&&", OrOr: "||", Colon: ":", Semicolon: ";",
	Comma: ",", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", At: "@",
}

// Spelling returns the source form of fixed tokens (operators, keywords)
// for diagnostics, e.g. "';'" style messages.
func (k Kind) Spelling() string {
	if s, ok := kindSpellings[k]; ok {
		return s
	}
	for word, kw := range keywords {
		if kw == k {
			return word
		}
	}
	switch k {
	case Ident:
		return "identifier"
	case IntLit, FloatLit:
		return "number"
	case StringLit:
		return "string"
	case EOF:
		return "end of file"
	}
	return k.String()
}
