package ast

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil && !isNilNode(c) {
			out = append(out, c)
		}
	}
	switch x := n.(type) {
	case *Opaque:
		for _, f := range x.Fields {
			out = appendValueNodes(out, f.Value)
		}
	case *Element:
		add(x.Name)
		for _, a := range x.Attrs {
			add(a)
		}
		for _, c := range x.Children {
			add(c)
		}
	case *Fragment:
		for _, c := range x.Children {
			add(c)
		}
	case *ExprContainer:
		add(x.Expr)
	case *MemberTagName:
		add(x.Object)
		if x.Property != nil {
			add(x.Property)
		}
	case *NamespacedName:
		if x.Namespace != nil {
			add(x.Namespace)
		}
		if x.Name != nil {
			add(x.Name)
		}
	case *Attr:
		add(x.Name)
		add(x.Value)
	case *SpreadAttr:
		add(x.Expr)
	case *SpreadChild:
		add(x.Expr)
	}
	return out
}

func appendValueNodes(out []Node, v Value) []Node {
	switch v.kind {
	case ValueNode:
		out = append(out, v.node)
	case ValueList:
		for _, item := range v.list {
			out = appendValueNodes(out, item)
		}
	}
	return out
}

// Inspect visits root and its descendants in pre-order. When fn returns
// false the children of that node are skipped. It uses an explicit stack,
// so deeply nested trees do not grow the goroutine stack.
func Inspect(root Node, fn func(Node) bool) {
	if root == nil || isNilNode(root) {
		return
	}
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		kids := Children(n)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}
