package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ocl/internal/ast"
	"ocl/internal/source"
)

var errFileNotFound = errors.New("ast file not found")

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string, children ...*treeNode) *treeNode {
	child := &treeNode{label: label, children: children}
	n.children = append(n.children, child)
	return child
}

// FormatASTPretty prints the file as an indented tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := buildFileTreeNode(builder, fileID, fs)
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeTree(&sb, root.children, "")
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeTree(sb *strings.Builder, nodes []*treeNode, prefix string) {
	for i, node := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + node.label + "\n")
		writeTree(sb, node.children, prefix+next)
	}
}

type treeBuilder struct {
	b  *ast.Builder
	fs *source.FileSet
}

func buildFileTreeNode(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) (*treeNode, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil, errFileNotFound
	}
	tb := treeBuilder{b: builder, fs: fs}
	header := "File"
	if fs != nil {
		header = displayPath(fs, file.Span.File, PathModeAuto)
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, tb.span(file.Span))}
	if !file.Pragma.IsEmpty() {
		label := fmt.Sprintf("Pragma @%s %q", builder.Name(file.Pragma.Name), file.Pragma.Value)
		if file.Pragma.Malformed {
			label = fmt.Sprintf("Pragma @%s <malformed: %s>", builder.Name(file.Pragma.Name), file.Pragma.Raw)
		}
		root.add(label)
	}
	for idx, itemID := range file.Items {
		root.children = append(root.children, tb.item(itemID, idx))
	}
	return root, nil
}

func (tb treeBuilder) span(sp source.Span) string {
	if tb.fs == nil {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := tb.fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func (tb treeBuilder) item(id ast.ItemID, idx int) *treeNode {
	item := tb.b.Items.Get(id)
	if item == nil {
		return &treeNode{label: fmt.Sprintf("Item[%d]: <nil>", idx)}
	}
	node := &treeNode{label: fmt.Sprintf("Item[%d]: %s (span: %s)", idx, item.Kind, tb.span(item.Span))}
	switch item.Kind {
	case ast.ItemImport:
		if imp, ok := tb.b.Items.Import(id); ok {
			node.add("Module: " + tb.b.Name(imp.Module))
		}
	case ast.ItemLet:
		if let, ok := tb.b.Items.Let(id); ok {
			tb.decl(node, &let.LetDecl)
		}
	case ast.ItemFn:
		if fn, ok := tb.b.Items.Fn(id); ok {
			node.add("Name: " + tb.b.Name(fn.Name))
			params := node.add("Params")
			for _, pid := range tb.b.Items.Params(fn) {
				p := tb.b.Items.FnParam(pid)
				params.add(fmt.Sprintf("%s %s", p.Type, tb.b.Name(p.Name)))
			}
			node.add("Return: " + fn.ReturnType.String())
			if fn.Recovered {
				node.add("Recovered: true")
			}
			node.children = append(node.children, tb.stmt(fn.Body, "Body"))
		}
	}
	return node
}

func (tb treeBuilder) decl(node *treeNode, decl *ast.LetDecl) {
	node.add("Name: " + tb.b.Name(decl.Name))
	if decl.Type != ast.TypeNone {
		node.add("Type: " + decl.Type.String())
	}
	if decl.Value.IsValid() {
		node.add("Value", tb.expr(decl.Value))
	}
}

func (tb treeBuilder) stmt(id ast.StmtID, role string) *treeNode {
	stmt := tb.b.Stmts.Get(id)
	if stmt == nil {
		return &treeNode{label: role + ": <none>"}
	}
	node := &treeNode{label: fmt.Sprintf("%s: %s (span: %s)", role, stmt.Kind, tb.span(stmt.Span))}
	switch stmt.Kind {
	case ast.StmtBlock:
		for i, child := range tb.b.Stmts.Block(id).Stmts {
			node.children = append(node.children, tb.stmt(child, fmt.Sprintf("[%d]", i)))
		}
	case ast.StmtLet:
		tb.decl(node, &tb.b.Stmts.Let(id).LetDecl)
	case ast.StmtExpr:
		node.children = append(node.children, tb.expr(tb.b.Stmts.Expr(id).Expr))
	case ast.StmtReturn:
		if ret := tb.b.Stmts.Return(id); ret.Expr.IsValid() {
			node.children = append(node.children, tb.expr(ret.Expr))
		}
	case ast.StmtIf:
		ifStmt := tb.b.Stmts.If(id)
		node.add("Cond", tb.expr(ifStmt.Cond))
		node.children = append(node.children, tb.stmt(ifStmt.Then, "Then"))
		if ifStmt.Else.IsValid() {
			node.children = append(node.children, tb.stmt(ifStmt.Else, "Else"))
		}
	case ast.StmtWhile:
		whileStmt := tb.b.Stmts.While(id)
		node.add("Cond", tb.expr(whileStmt.Cond))
		node.children = append(node.children, tb.stmt(whileStmt.Body, "Body"))
	}
	return node
}

func (tb treeBuilder) expr(id ast.ExprID) *treeNode {
	expr := tb.b.Exprs.Get(id)
	if expr == nil {
		return &treeNode{label: "<invalid expr>"}
	}
	node := &treeNode{}
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := tb.b.Exprs.Ident(id)
		node.label = "Ident " + tb.b.Name(ident.Name)
	case ast.ExprLit:
		lit, _ := tb.b.Exprs.Literal(id)
		node.label = fmt.Sprintf("Lit(%s) %s", lit.Kind, tb.b.Name(lit.Value))
	case ast.ExprBinary:
		bin, _ := tb.b.Exprs.Binary(id)
		node.label = fmt.Sprintf("Binary %s", bin.Op)
		node.children = []*treeNode{tb.expr(bin.Left), tb.expr(bin.Right)}
	case ast.ExprUnary:
		un, _ := tb.b.Exprs.Unary(id)
		node.label = fmt.Sprintf("Unary %s", un.Op)
		node.children = []*treeNode{tb.expr(un.Operand)}
	case ast.ExprCall:
		call, _ := tb.b.Exprs.Call(id)
		node.label = "Call"
		node.children = append(node.children, tb.expr(call.Target))
		if len(call.Args) > 0 {
			args := node.add("Args")
			for _, arg := range call.Args {
				args.children = append(args.children, tb.expr(arg))
			}
		}
	case ast.ExprGroup:
		group, _ := tb.b.Exprs.Group(id)
		node.label = "Group"
		node.children = []*treeNode{tb.expr(group.Inner)}
	case ast.ExprAssign:
		assign, _ := tb.b.Exprs.Assign(id)
		node.label = "Assign"
		node.children = []*treeNode{tb.expr(assign.Target), tb.expr(assign.Value)}
	}
	node.label += " (span: " + tb.span(expr.Span) + ")"
	return node
}
