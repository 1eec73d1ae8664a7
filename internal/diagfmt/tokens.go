package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"ocl/internal/source"
	"ocl/internal/token"
)

type TokenOutput struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Line    uint32   `json:"line"`
	Column  uint32   `json:"column"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Leading []string `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, 0, len(tok.Leading))
	for _, trivia := range tok.Leading {
		out = append(out, trivia.Kind.String())
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start := fs.Position(tok.Span)
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Line:    start.Line,
			Column:  start.Col,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Leading: leadingKinds(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return EncodeJSON(w, output)
}
