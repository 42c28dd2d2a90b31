package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zboralski/lattice"

	"mixin-cloner/il"
	"mixin-cloner/internal/depgraph"
)

func TestBuild(t *testing.T) {
	lib := il.NewCoreLibrary()
	mod := il.NewModule("Mixins")

	impl := il.NewTypeDefinition("M", "Impl", il.TypePublic, lib.Object)
	mod.AddType(impl)

	x := il.NewFieldDefinition("x", il.FieldPrivate, lib.Int32)
	impl.AddField(x)

	bar := il.NewMethodDefinition("Bar", il.MethodPublic, lib.Int32)
	impl.AddMethod(bar)

	body := il.NewMethodBody(bar)
	body.Append(
		il.Create(il.Ldarg_0, nil),
		il.Create(il.Ldfld, x),
		il.Create(il.Ret, nil),
	)

	foo := il.NewMethodDefinition("Foo", il.MethodPublic, lib.Int32)
	impl.AddMethod(foo)

	body = il.NewMethodBody(foo)
	body.Append(
		il.Create(il.Ldarg_0, nil),
		il.Create(il.Call, bar),
		il.Create(il.Ret, nil),
	)

	g := depgraph.Build(impl)

	fooName := "System.Int32 M.Impl::Foo()"
	barName := "System.Int32 M.Impl::Bar()"

	assert.Contains(t, g.Nodes, "M.Impl")
	assert.Contains(t, g.Nodes, "M.Impl::x")
	assert.Contains(t, g.Nodes, "System.Object")
	assert.Contains(t, g.Edges, lattice.Edge{Caller: fooName, Callee: barName})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: barName, Callee: "M.Impl::x"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Impl::x", Callee: "System.Int32"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Impl", Callee: "System.Object"})

	dot := depgraph.DOT(g, "Impl")
	require.NotEmpty(t, dot)
}

func TestBuild_NestedAndGenerics(t *testing.T) {
	lib := il.NewCoreLibrary()
	mod := il.NewModule("Mixins")

	outer := il.NewTypeDefinition("M", "Outer", il.TypePublic, lib.Object)
	mod.AddType(outer)

	inner := il.NewTypeDefinition("", "Inner", il.TypeNestedPrivate, lib.Object)
	outer.AddNestedType(inner)

	list := &il.TypeRef{Namespace: "System.Collections.Generic", Name: "List`1", ModuleID: lib.Module.MVID}
	items := il.NewFieldDefinition("items", il.FieldPrivate,
		&il.GenericInstanceType{Element: list, Args: []il.Type{inner}})
	outer.AddField(items)

	g := depgraph.Build(outer)

	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Outer", Callee: "M.Outer/Inner"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Outer::items", Callee: "System.Collections.Generic.List`1"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Outer::items", Callee: "M.Outer/Inner"})
}

func TestBuild_PropertiesAndEvents(t *testing.T) {
	lib := il.NewCoreLibrary()
	mod := il.NewModule("Mixins")

	impl := il.NewTypeDefinition("M", "Impl", il.TypePublic, lib.Object)
	mod.AddType(impl)

	getter := il.NewMethodDefinition("get_Count", il.MethodPublic, lib.Int32)
	impl.AddMethod(getter)
	impl.AddProperty(&il.PropertyDefinition{Name: "Count", Type: lib.Int32, GetMethod: getter})

	handler := &il.TypeRef{Namespace: "System", Name: "EventHandler", ModuleID: lib.Module.MVID}
	add := il.NewMethodDefinition("add_Changed", il.MethodPublic, lib.Void)
	impl.AddMethod(add)
	impl.AddEvent(&il.EventDefinition{Name: "Changed", EventType: handler, AddMethod: add})

	g := depgraph.Build(impl)

	assert.Contains(t, g.Nodes, "M.Impl::Count")
	assert.Contains(t, g.Nodes, "M.Impl::Changed")
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Impl", Callee: "M.Impl::Count"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Impl::Count", Callee: "System.Int32"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Impl::Count", Callee: "System.Int32 M.Impl::get_Count()"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Impl::Changed", Callee: "System.EventHandler"})
	assert.Contains(t, g.Edges, lattice.Edge{Caller: "M.Impl::Changed", Callee: "System.Void M.Impl::add_Changed()"})
}
