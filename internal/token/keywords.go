package token

var keywords = map[string]Kind{
	"import": KwImport,
	"let":    KwLet,
	"return": KwReturn,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"true":   KwTrue,
	"false":  KwFalse,
	"int":    KwInt,
	"float":  KwFloat,
	"string": KwString,
	"bool":   KwBool,
	"void":   KwVoid,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsTypeKeyword reports whether k names a primitive type.
func IsTypeKeyword(k Kind) bool {
	switch k {
	case KwInt, KwFloat, KwString, KwBool, KwVoid:
		return true
	default:
		return false
	}
}
