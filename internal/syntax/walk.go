package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *VarDecl:
		if n.Type != nil {
			Walk(n.Type, v)
		}
		for _, s := range n.Specs {
			Walk(s.Name, v)
			if s.Value != nil {
				Walk(s.Value, v)
			}
		}

	case *FuncDecl:
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Result != nil {
			Walk(n.Result, v)
		}
		Walk(n.Body, v)

	case *StructDecl:
		Walk(n.Name, v)
		for _, f := range n.Fields {
			Walk(f, v)
		}

	case *AliasDecl:
		Walk(n.Name, v)
		Walk(n.Type, v)

	case *TemplateDecl:
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Decl, v)

	case *Field:
		if n.Name != nil {
			Walk(n.Name, v)
		}
		Walk(n.Type, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *DoWhileStmt:
		Walk(n.Body, v)
		Walk(n.Cond, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *ExprStmt:
		Walk(n.X, v)

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *AssignExpr:
		Walk(n.LHS, v)
		Walk(n.RHS, v)

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *IndexExpr:
		Walk(n.X, v)
		Walk(n.Index, v)

	case *SelectorExpr:
		Walk(n.X, v)
		Walk(n.Sel, v)

	case *ArrayType:
		Walk(n.Elem, v)
		Walk(n.Len, v)

	case *PointerType:
		Walk(n.Base, v)

	case *RefType:
		Walk(n.Base, v)

	// Leaf nodes: Name, BasicLit, EmptyStmt, BranchStmt
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
