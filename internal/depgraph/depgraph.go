// Package depgraph lists what the members of a type depend on.
//
// Every member of the root (nested types included) is a node. An edge runs
// from a member to each type or member it mentions: field types, signature
// types, and the field, method and type operands of its body. Properties and
// events point at their type and at their accessors.
package depgraph

import (
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"mixin-cloner/il"
)

// Build constructs the dependency graph of root.
func Build(root *il.TypeDefinition) *lattice.Graph {
	b := &builder{g: &lattice.Graph{}, seen: make(map[string]struct{})}
	b.typeDef(root)
	b.g.Dedup()

	return b.g
}

// DOT renders g in Graphviz format.
func DOT(g *lattice.Graph, title string) string {
	return render.DOT(g, title)
}

type builder struct {
	g    *lattice.Graph
	seen map[string]struct{}
}

func (b *builder) node(name string) {
	if _, ok := b.seen[name]; ok {
		return
	}

	b.seen[name] = struct{}{}
	b.g.Nodes = append(b.g.Nodes, name)
}

func (b *builder) edge(from, to string) {
	if to == "" || from == to {
		return
	}

	b.node(to)
	b.g.Edges = append(b.g.Edges, lattice.Edge{Caller: from, Callee: to})
}

func (b *builder) edgeType(from string, t il.Type) {
	if t == nil {
		return
	}

	if _, generic := t.(*il.GenericParameter); generic {
		return
	}

	b.edge(from, il.ElementType(t).FullName())

	if gi, ok := t.(*il.GenericInstanceType); ok {
		for _, arg := range gi.Args {
			b.edgeType(from, arg)
		}
	}
}

func (b *builder) typeDef(t *il.TypeDefinition) {
	name := t.FullName()
	b.node(name)
	b.edgeType(name, t.BaseType)

	for _, iface := range t.Interfaces {
		b.edgeType(name, iface)
	}

	for _, n := range t.NestedTypes {
		b.typeDef(n)
		b.edge(name, n.FullName())
	}

	for _, f := range t.Fields {
		member := il.MemberFullName(f)
		b.node(member)
		b.edge(name, member)
		b.edgeType(member, f.Type)
	}

	for _, m := range t.Methods {
		b.method(name, m)
	}

	for _, p := range t.Properties {
		member := il.MemberFullName(p)
		b.node(member)
		b.edge(name, member)
		b.edgeType(member, p.Type)
		b.accessors(member, append([]*il.MethodDefinition{p.GetMethod, p.SetMethod}, p.OtherMethods...))
	}

	for _, e := range t.Events {
		member := il.MemberFullName(e)
		b.node(member)
		b.edge(name, member)
		b.edgeType(member, e.EventType)
		b.accessors(member, append([]*il.MethodDefinition{e.AddMethod, e.RemoveMethod, e.InvokeMethod}, e.OtherMethods...))
	}
}

func (b *builder) accessors(from string, methods []*il.MethodDefinition) {
	for _, m := range methods {
		if m != nil {
			b.edge(from, il.MemberFullName(m))
		}
	}
}

func (b *builder) method(owner string, m *il.MethodDefinition) {
	name := il.MemberFullName(m)
	b.node(name)
	b.edge(owner, name)
	b.edgeType(name, m.Return)

	for _, p := range m.Parameters {
		b.edgeType(name, p.Type)
	}

	if !m.HasBody() {
		return
	}

	for _, v := range m.Body.Variables {
		b.edgeType(name, v.Type)
	}

	for _, ins := range m.Body.Instructions {
		switch op := ins.Operand.(type) {
		case il.Member:
			b.edge(name, il.MemberFullName(op))
		case il.Type:
			b.edgeType(name, op)
		}
	}
}
