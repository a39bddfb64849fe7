package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

// FprintTyped is like Fprint but annotates every expression with the
// string returned by typeOf, when it is not empty.
func FprintTyped(w io.Writer, node Node, typeOf func(Expr) string) {
	p := &printer{w: w, typeOf: typeOf}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
	typeOf func(Expr) string
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// header prints the first line of node: its kind, position and detail,
// followed by the type annotation for expressions.
func (p *printer) header(kind string, node Node, detail string) {
	line := kind + " " + node.Pos().String()
	if detail != "" {
		line += " " + detail
	}
	if x, ok := node.(Expr); ok && p.typeOf != nil {
		if t := p.typeOf(x); t != "" {
			line += " : " + t
		}
	}
	p.printf("%s\n", line)
}

// child prints a labelled child node one level deeper.
func (p *printer) child(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Block:
		detail := ""
		if n.Value != nil {
			detail = "(value)"
		}
		p.header("Block", n, detail)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		if n.Value != nil {
			p.child("Value", n.Value)
		}
		p.indent--

	case *VarDecl:
		p.header("VarDecl", n, typeString(n.Type))
		p.indent++
		for _, s := range n.Specs {
			if s.Value == nil {
				p.printf("Name: %s\n", s.Name.Value)
				continue
			}
			p.printf("Name: %s =\n", s.Name.Value)
			p.indent++
			p.print(s.Value)
			p.indent--
		}
		p.indent--

	case *FuncDecl:
		p.header("FuncDecl", n, n.Name.Value)
		p.indent++
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s %s\n", f.Name.Value, typeString(f.Type))
			}
			p.indent--
		}
		if n.Result != nil {
			p.printf("Result: %s\n", typeString(n.Result))
		}
		p.child("Body", n.Body)
		p.indent--

	case *StructDecl:
		p.header("StructDecl", n, n.Name.Value)
		p.indent++
		for _, f := range n.Fields {
			name := "_"
			if f.Name != nil {
				name = f.Name.Value
			}
			p.printf("Field: %s %s\n", name, typeString(f.Type))
		}
		p.indent--

	case *AliasDecl:
		p.header("AliasDecl", n, n.Name.Value+" = "+typeString(n.Type))

	case *TemplateDecl:
		names := make([]string, len(n.Params))
		for i, tp := range n.Params {
			names[i] = tp.Value
		}
		p.header("TemplateDecl", n, "<"+strings.Join(names, ", ")+">")
		p.indent++
		p.print(n.Decl)
		p.indent--

	case *Field:
		name := "_"
		if n.Name != nil {
			name = n.Name.Value
		}
		p.header("Field", n, name+" "+typeString(n.Type))

	case *IfStmt:
		p.header("IfStmt", n, "")
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Then", n.Then)
		if n.Else != nil {
			p.child("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.header("WhileStmt", n, "")
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Body", n.Body)
		p.indent--

	case *DoWhileStmt:
		p.header("DoWhileStmt", n, "")
		p.indent++
		p.child("Body", n.Body)
		p.child("Cond", n.Cond)
		p.indent--

	case *ReturnStmt:
		p.header("ReturnStmt", n, "")
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *BranchStmt:
		p.header("BranchStmt", n, fmt.Sprintf("%s %d", n.Tok, n.Levels))

	case *ExprStmt:
		p.header("ExprStmt", n, "")
		p.indent++
		p.print(n.X)
		p.indent--

	case *EmptyStmt:
		p.header("EmptyStmt", n, "")

	case *Name:
		p.header("Name", n, fmt.Sprintf("%q", n.Value))

	case *BasicLit:
		p.header("BasicLit", n, fmt.Sprintf("%s %q", n.Kind, n.Value))

	case *Operation:
		if n.Y == nil {
			kind := "UnaryOp"
			if n.Op == PostInc || n.Op == PostDec {
				kind = "PostfixOp"
			}
			p.header(kind, n, n.Op.String())
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.header("BinaryOp", n, n.Op.String())
			p.indent++
			p.child("X", n.X)
			p.child("Y", n.Y)
			p.indent--
		}

	case *AssignExpr:
		op := "="
		if n.Op != Def {
			op = n.Op.String() + "="
		}
		p.header("AssignExpr", n, op)
		p.indent++
		p.child("LHS", n.LHS)
		p.child("RHS", n.RHS)
		p.indent--

	case *CallExpr:
		p.header("CallExpr", n, "")
		p.indent++
		p.child("Fun", n.Fun)
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		p.indent--

	case *IndexExpr:
		p.header("IndexExpr", n, "")
		p.indent++
		p.child("X", n.X)
		p.child("Index", n.Index)
		p.indent--

	case *SelectorExpr:
		p.header("SelectorExpr", n, "")
		p.indent++
		p.child("X", n.X)
		p.printf("Sel: %s\n", n.Sel.Value)
		p.indent--

	case *ArrayType, *PointerType, *RefType:
		p.header("Type", n, typeString(n.(Expr)))

	default:
		p.printf("<%T>\n", node)
	}
}

// typeString returns a string representation of a type expression.
func typeString(e Expr) string {
	if e == nil {
		return ""
	}
	switch t := e.(type) {
	case *Name:
		return t.Value
	case *PointerType:
		return "*" + typeString(t.Base)
	case *RefType:
		return "&" + typeString(t.Base)
	case *ArrayType:
		return typeString(t.Elem) + "[" + ExprString(t.Len) + "]"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

// ExprString returns a compact source-like rendering of an expression,
// fully parenthesizing nested operations.
func ExprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch x := e.(type) {
	case *Name:
		return x.Value
	case *BasicLit:
		if x.Kind == StringLit {
			return fmt.Sprintf("%q", x.Value)
		}
		return x.Value
	case *Operation:
		switch {
		case x.Y != nil:
			return "(" + ExprString(x.X) + " " + x.Op.String() + " " + ExprString(x.Y) + ")"
		case x.Op == PostInc || x.Op == PostDec:
			return "(" + ExprString(x.X) + x.Op.String() + ")"
		default:
			return "(" + x.Op.String() + ExprString(x.X) + ")"
		}
	case *AssignExpr:
		op := "="
		if x.Op != Def {
			op = x.Op.String() + "="
		}
		return "(" + ExprString(x.LHS) + " " + op + " " + ExprString(x.RHS) + ")"
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = ExprString(a)
		}
		return ExprString(x.Fun) + "(" + strings.Join(args, ", ") + ")"
	case *IndexExpr:
		return ExprString(x.X) + "[" + ExprString(x.Index) + "]"
	case *SelectorExpr:
		return ExprString(x.X) + "." + x.Sel.Value
	case *Block:
		return "{...}"
	case *ArrayType, *PointerType, *RefType:
		return typeString(x)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
