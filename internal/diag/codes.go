package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexTokenTooLong             Code = 1005

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2012
	SynMalformedLiteral Code = 2030

	// Разрешение имён
	SemaInfo             Code = 3000
	SemaDuplicateSymbol  Code = 3002
	SemaUnresolvedSymbol Code = 3005
	SemaImportNotFound   Code = 3013
	SemaDuplicateImport  Code = 3014

	// Типы
	SemaTypeMismatch       Code = 3015
	SemaArityMismatch      Code = 3046
	SemaMissingReturn      Code = 3051
	SemaReturnTypeMismatch Code = 3052

	// Ошибки I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Invalid character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexTokenTooLong:             "Token too long",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Missing ';'",
	SynMalformedLiteral:         "Malformed literal form",
	SemaInfo:                    "Semantic information",
	SemaDuplicateSymbol:         "Duplicate declaration",
	SemaUnresolvedSymbol:        "Undeclared name",
	SemaImportNotFound:          "Import not found",
	SemaDuplicateImport:         "Duplicate import",
	SemaTypeMismatch:            "Type mismatch",
	SemaArityMismatch:           "Wrong number of arguments",
	SemaMissingReturn:           "Missing return",
	SemaReturnTypeMismatch:      "Return type mismatch",
	IOLoadFileError:             "Failed to load file",
}

// codeKinds maps codes onto the diagnostic taxonomy shown to users.
var codeKinds = map[Code]string{
	LexUnknownChar:              "InvalidCharacter",
	LexUnterminatedString:       "UnterminatedLiteral",
	LexUnterminatedBlockComment: "UnterminatedLiteral",
	LexTokenTooLong:             "InvalidCharacter",
	SynUnexpectedToken:          "UnexpectedToken",
	SynExpectSemicolon:          "MissingTerminator",
	SynMalformedLiteral:         "MalformedLiteralForm",
	SemaDuplicateSymbol:         "DuplicateDeclaration",
	SemaUnresolvedSymbol:        "UndeclaredName",
	SemaImportNotFound:          "ImportNotFound",
	SemaDuplicateImport:         "DuplicateDeclaration",
	SemaTypeMismatch:            "TypeMismatch",
	SemaArityMismatch:           "ArityError",
	SemaMissingReturn:           "MissingReturn",
	SemaReturnTypeMismatch:      "ReturnTypeMismatch",
	IOLoadFileError:             "IOError",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Kind returns the taxonomy name of the code, e.g. "ArityError".
func (c Code) Kind() string {
	if k, ok := codeKinds[c]; ok {
		return k
	}
	return "Unknown"
}

// Family groups kinds by the phase that produces them.
func (c Code) Family() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "LexError"
	case ic >= 2000 && ic < 3000:
		return "SyntaxError"
	case c == SemaDuplicateSymbol, c == SemaUnresolvedSymbol, c == SemaImportNotFound, c == SemaDuplicateImport:
		return "ResolutionError"
	case ic >= 3000 && ic < 4000:
		return "TypeError"
	case ic >= 4000 && ic < 5000:
		return "IOError"
	}
	return "Unknown"
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
