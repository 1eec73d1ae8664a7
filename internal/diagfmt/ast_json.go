package diagfmt

import (
	"io"

	"ocl/internal/ast"
	"ocl/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTJSON writes the file as a JSON tree of ASTNodeOutput.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := BuildASTOutput(builder, fileID)
	if err != nil {
		return err
	}
	return EncodeJSON(w, root)
}

// BuildASTOutput converts the file into its JSON representation.
func BuildASTOutput(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, errFileNotFound
	}
	jb := jsonBuilder{b: builder}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	if !file.Pragma.IsEmpty() {
		root.Fields = map[string]any{
			"pragma": map[string]any{
				"name":      builder.Name(file.Pragma.Name),
				"value":     file.Pragma.Value,
				"raw":       file.Pragma.Raw,
				"malformed": file.Pragma.Malformed,
			},
		}
	}
	for _, id := range file.Items {
		root.Children = append(root.Children, jb.item(id))
	}
	return root, nil
}

type jsonBuilder struct {
	b *ast.Builder
}

func (jb jsonBuilder) item(id ast.ItemID) ASTNodeOutput {
	item := jb.b.Items.Get(id)
	node := ASTNodeOutput{Type: "Item", Kind: item.Kind.String(), Span: item.Span}
	switch item.Kind {
	case ast.ItemImport:
		imp, _ := jb.b.Items.Import(id)
		node.Text = jb.b.Name(imp.Module)
	case ast.ItemLet:
		let, _ := jb.b.Items.Let(id)
		jb.decl(&node, &let.LetDecl)
	case ast.ItemFn:
		fn, _ := jb.b.Items.Fn(id)
		node.Text = jb.b.Name(fn.Name)
		params := make([]map[string]string, 0, fn.ParamsCount)
		for _, pid := range jb.b.Items.Params(fn) {
			p := jb.b.Items.FnParam(pid)
			params = append(params, map[string]string{"name": jb.b.Name(p.Name), "type": p.Type.String()})
		}
		node.Fields = map[string]any{
			"params":    params,
			"return":    fn.ReturnType.String(),
			"recovered": fn.Recovered,
		}
		if fn.Body.IsValid() {
			node.Children = append(node.Children, jb.stmt(fn.Body))
		}
	}
	return node
}

func (jb jsonBuilder) decl(node *ASTNodeOutput, decl *ast.LetDecl) {
	node.Text = jb.b.Name(decl.Name)
	node.Fields = map[string]any{}
	if decl.Type != ast.TypeNone {
		node.Fields["type"] = decl.Type.String()
	}
	if decl.Form == ast.LetTyped {
		node.Fields["form"] = "typed"
	} else {
		node.Fields["form"] = "let"
	}
	if decl.Value.IsValid() {
		node.Children = append(node.Children, jb.expr(decl.Value))
	}
}

func (jb jsonBuilder) stmt(id ast.StmtID) ASTNodeOutput {
	stmt := jb.b.Stmts.Get(id)
	node := ASTNodeOutput{Type: "Stmt", Kind: stmt.Kind.String(), Span: stmt.Span}
	switch stmt.Kind {
	case ast.StmtBlock:
		for _, child := range jb.b.Stmts.Block(id).Stmts {
			node.Children = append(node.Children, jb.stmt(child))
		}
	case ast.StmtLet:
		jb.decl(&node, &jb.b.Stmts.Let(id).LetDecl)
	case ast.StmtExpr:
		node.Children = append(node.Children, jb.expr(jb.b.Stmts.Expr(id).Expr))
	case ast.StmtReturn:
		if ret := jb.b.Stmts.Return(id); ret.Expr.IsValid() {
			node.Children = append(node.Children, jb.expr(ret.Expr))
		}
	case ast.StmtIf:
		ifStmt := jb.b.Stmts.If(id)
		node.Children = append(node.Children, jb.expr(ifStmt.Cond), jb.stmt(ifStmt.Then))
		if ifStmt.Else.IsValid() {
			node.Children = append(node.Children, jb.stmt(ifStmt.Else))
		}
	case ast.StmtWhile:
		whileStmt := jb.b.Stmts.While(id)
		node.Children = append(node.Children, jb.expr(whileStmt.Cond), jb.stmt(whileStmt.Body))
	}
	return node
}

func (jb jsonBuilder) expr(id ast.ExprID) ASTNodeOutput {
	expr := jb.b.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "Invalid"}
	}
	node := ASTNodeOutput{Type: "Expr", Kind: expr.Kind.String(), Span: expr.Span}
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := jb.b.Exprs.Ident(id)
		node.Text = jb.b.Name(ident.Name)
	case ast.ExprLit:
		lit, _ := jb.b.Exprs.Literal(id)
		node.Text = jb.b.Name(lit.Value)
		node.Fields = map[string]any{"literal": lit.Kind.String()}
	case ast.ExprBinary:
		bin, _ := jb.b.Exprs.Binary(id)
		node.Text = bin.Op.String()
		node.Children = []ASTNodeOutput{jb.expr(bin.Left), jb.expr(bin.Right)}
	case ast.ExprUnary:
		un, _ := jb.b.Exprs.Unary(id)
		node.Text = un.Op.String()
		node.Children = []ASTNodeOutput{jb.expr(un.Operand)}
	case ast.ExprCall:
		call, _ := jb.b.Exprs.Call(id)
		node.Children = append(node.Children, jb.expr(call.Target))
		for _, arg := range call.Args {
			node.Children = append(node.Children, jb.expr(arg))
		}
	case ast.ExprGroup:
		group, _ := jb.b.Exprs.Group(id)
		node.Children = []ASTNodeOutput{jb.expr(group.Inner)}
	case ast.ExprAssign:
		assign, _ := jb.b.Exprs.Assign(id)
		node.Children = []ASTNodeOutput{jb.expr(assign.Target), jb.expr(assign.Value)}
	}
	return node
}
