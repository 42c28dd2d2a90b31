package il_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixin-cloner/il"
)

func TestModuleFindType(t *testing.T) {
	f := newFixture()

	assert.Same(t, f.outer, f.source.FindType("N.Outer"))
	assert.Same(t, f.inner, f.source.FindType("N.Outer/Inner"))
	assert.Nil(t, f.source.FindType("N.Outer/Missing"))
	assert.Nil(t, f.source.FindType("Missing"))
	assert.Same(t, f.source, f.inner.Module)

	all := f.source.AllTypes()
	require.Len(t, all, 3)
	assert.Same(t, f.inner, all[2])
}

func TestModuleSetResolve(t *testing.T) {
	f := newFixture()
	set := il.NewModuleSet(f.lib.Module, f.source, f.target)
	set.Add(f.source)

	found, ok := set.FindType("System.Int32")
	require.True(t, ok)
	assert.Same(t, f.lib.Int32, found)

	_, ok = set.FindType("Nope")
	assert.False(t, ok)

	typeRef := f.target.ImportType(f.inner)
	assert.Same(t, f.inner, set.ResolveType(typeRef))
	assert.Same(t, f.list, set.ResolveType(&il.GenericInstanceType{Element: f.target.ImportType(f.list), Args: []il.Type{f.lib.Int32}}))

	assert.Same(t, f.count, set.ResolveField(f.target.ImportField(f.count)))
	assert.Same(t, f.add, set.ResolveMethod(f.target.ImportMethod(f.add)))

	missing := &il.MethodRef{Name: "Add", DeclaringType: typeRef, Return: f.lib.Int32}
	assert.Nil(t, set.ResolveMethod(missing))

	unknown := &il.TypeRef{Namespace: "X", Name: "Y"}
	assert.Nil(t, set.ResolveType(unknown))
}

func TestImportType(t *testing.T) {
	f := newFixture()
	local := il.NewTypeDefinition("T", "Local", il.TypePublic, f.lib.Object)
	f.target.AddType(local)

	assert.Same(t, local, f.target.ImportType(local))

	first := f.target.ImportType(f.outer)
	second := f.target.ImportType(f.outer)
	assert.Same(t, first, second, "references are interned per module")

	ref, ok := first.(*il.TypeRef)
	require.True(t, ok)
	assert.Equal(t, "Source", ref.ModuleName)
	assert.Equal(t, f.source.MVID, ref.Scope())

	// a reference pointing back into the importing module resolves to the definition
	back := f.source.ImportType(local)
	assert.Same(t, local, f.target.ImportType(back))

	array, ok := f.target.ImportType(&il.ArrayType{Element: f.inner, Rank: 1}).(*il.ArrayType)
	require.True(t, ok)
	assert.Equal(t, "N.Outer/Inner[]", array.FullName())
	assert.IsType(t, &il.TypeRef{}, array.Element)

	inst, ok := f.target.ImportType(&il.GenericInstanceType{Element: f.list, Args: []il.Type{f.inner}}).(*il.GenericInstanceType)
	require.True(t, ok)
	assert.Equal(t, "Collections.List`1<N.Outer/Inner>", inst.FullName())

	gp := f.list.GenericParameters[0]
	assert.Same(t, gp, f.target.ImportType(gp))
	assert.Nil(t, f.target.ImportType(nil))
}

func TestImportMemberLocalLookup(t *testing.T) {
	f := newFixture()
	local := il.NewTypeDefinition("T", "Local", il.TypePublic, f.lib.Object)
	f.target.AddType(local)
	field := il.NewFieldDefinition("count", il.FieldPrivate, f.lib.Int32)
	local.AddField(field)
	method := il.NewMethodDefinition("Run", il.MethodPublic, f.lib.Void)
	local.AddMethod(method)

	fieldRef := &il.FieldRef{Name: "count", Type: f.lib.Int32, DeclaringType: f.source.ImportType(local)}
	assert.Same(t, field, f.target.ImportField(fieldRef))

	methodRef := &il.MethodRef{Name: "Run", DeclaringType: f.source.ImportType(local), Return: f.lib.Void, HasThis: true}
	assert.Same(t, method, f.target.ImportMethod(methodRef))

	inst := f.target.ImportMethod(&il.GenericInstanceMethod{Element: f.add, Args: []il.Type{f.inner}})
	gim, ok := inst.(*il.GenericInstanceMethod)
	require.True(t, ok)
	assert.IsType(t, &il.MethodRef{}, gim.Element)
	assert.IsType(t, &il.TypeRef{}, gim.Args[0])
}
