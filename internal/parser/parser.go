package parser

import (
	"slices"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/lexer"
	"ocl/internal/source"
	"ocl/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer    // поток токенов (Peek/Next)
	arenas   *ast.Builder    // построитель аренных узлов
	file     ast.FileID      // текущий FileID (в AST)
	fs       *source.FileSet // нужен только для спанов/путей при надобности
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	// sawInvalid: текущий statement уже содержит Invalid токен от лексера;
	// синтаксические ошибки до конца statement не репортим.
	sawInvalid bool
	// recovered: в теле текущей функции было восстановление после ошибки.
	recovered bool
}

// ParseFile: входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems: основной цикл верхнего уровня: необязательная прагма, затем items до EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	if p.at(token.At) {
		p.parsePragma()
	}
	for !p.at(token.EOF) {
		p.sawInvalid = false
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KwImport:
		return p.parseImportItem()
	case tok.Kind == token.KwLet:
		return p.parseLetItem()
	case token.IsTypeKeyword(tok.Kind):
		return p.parseTypedItem()
	case tok.Kind == token.At:
		p.err(diag.SynUnexpectedToken, "pragma must be the first item in the file")
		p.advance()
		return ast.NoItemID, false
	case tok.Kind == token.Invalid:
		// лексическая ошибка уже зарепорчена
		p.advance()
		return ast.NoItemID, false
	default:
		p.err(diag.SynUnexpectedToken, "expected import, function or global declaration, got "+describe(tok))
		return ast.NoItemID, false
	}
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
// Содержимое фигурных скобок пропускается целиком.
func (p *Parser) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		switch {
		case k == token.LBrace:
			depth++
		case k == token.RBrace:
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				p.advance()
				return
			}
		case depth == 0 && k == token.Semicolon:
			p.advance()
			return
		case depth == 0 && isTopLevelStarter(k):
			return
		}
		p.advance()
	}
}

// isTopLevelStarter reports whether k begins a top-level declaration.
func isTopLevelStarter(k token.Kind) bool {
	return k == token.KwImport || k == token.KwLet || k == token.At || token.IsTypeKeyword(k)
}

// parseIdent: утилита: ожидает Ident и интернирует его.
// На ошибке: репорт SynUnexpectedToken.
func (p *Parser) parseIdent(what string) (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynUnexpectedToken, "expected "+what+", got "+describe(p.lx.Peek()))
	return source.NoStringID, source.Span{}, false
}

// parseTypeName съедает ключевое слово типа.
func (p *Parser) parseTypeName(what string) (ast.TypeName, source.Span, bool) {
	tok := p.lx.Peek()
	if tn, ok := ast.TypeNameFromToken(tok.Kind); ok {
		p.advance()
		return tn, tok.Span, true
	}
	p.err(diag.SynUnexpectedToken, "expected "+what+", got "+describe(tok))
	return ast.TypeNone, source.Span{}, false
}
