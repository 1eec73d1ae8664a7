package lexer

import (
	"ocl/internal/diag"
	"ocl/internal/source"
)

// DefaultMaxTokenLen ограничивает длину одного токена в байтах.
const DefaultMaxTokenLen = 4096

type Options struct {
	Reporter    diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	MaxTokenLen int           // <= 0 означает DefaultMaxTokenLen
}

func (o Options) maxTokenLen() uint32 {
	if o.MaxTokenLen <= 0 {
		return DefaultMaxTokenLen
	}
	return uint32(o.MaxTokenLen)
}

// errLex отправляет лексическую ошибку в Reporter, если он задан.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
