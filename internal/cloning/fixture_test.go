package cloning_test

import (
	"mixin-cloner/il"
)

const ctorAttrs = il.MethodPublic | il.MethodHideBySig | il.MethodSpecialName | il.MethodRTSpecialName

// world holds a core library, a mixin module and an application module.
type world struct {
	lib     *il.CoreLibrary
	mixins  *il.Module
	app     *il.Module
	modules *il.ModuleSet

	skip     *il.TypeDefinition
	skipCtor *il.MethodDefinition
}

func newWorld() *world {
	lib := il.NewCoreLibrary()
	w := &world{
		lib:    lib,
		mixins: il.NewModule("Mixins"),
		app:    il.NewModule("App"),
	}

	w.modules = il.NewModuleSet(lib.Module, w.mixins, w.app)

	w.skip = il.NewTypeDefinition("Mixins", "SkipAttribute", il.TypePublic|il.TypeSealed, lib.Attribute)
	w.mixins.AddType(w.skip)
	w.skipCtor = w.ctor(w.skip, lib.ObjectCtor, nil, nil)

	return w
}

// mixin declares a source root type.
func (w *world) mixin(name string) *il.TypeDefinition {
	t := il.NewTypeDefinition("M", name, il.TypePublic, w.lib.Object)
	w.mixins.AddType(t)

	return t
}

// class declares a target type with an initializing default constructor.
func (w *world) class(name string, base *il.TypeDefinition, baseCtor *il.MethodDefinition) *il.TypeDefinition {
	t := il.NewTypeDefinition("App", name, il.TypePublic, base)
	w.app.AddType(t)
	w.ctor(t, baseCtor, nil, nil)

	return t
}

// ctor declares a default constructor on t:
// ldarg.0, before..., [ldarg.0,] call base, after..., ret.
// before must consume the leading this.
func (w *world) ctor(t *il.TypeDefinition, base *il.MethodDefinition, before, after []*il.Instruction) *il.MethodDefinition {
	m := il.NewMethodDefinition(".ctor", ctorAttrs, w.lib.Void)
	t.AddMethod(m)

	body := il.NewMethodBody(m)
	body.Append(il.Create(il.Ldarg_0, nil))

	if len(before) > 0 {
		body.Append(before...)
		body.Append(il.Create(il.Ldarg_0, nil))
	}

	body.Append(il.Create(il.Call, base))
	body.Append(after...)
	body.Append(il.Create(il.Ret, nil))

	return m
}

// method declares an instance method with the given body.
func (w *world) method(t *il.TypeDefinition, name string, ret il.Type, code ...*il.Instruction) *il.MethodDefinition {
	m := il.NewMethodDefinition(name, il.MethodPublic|il.MethodHideBySig, ret)
	t.AddMethod(m)

	body := il.NewMethodBody(m)
	body.Append(code...)

	return m
}

func (w *world) skipped() *il.CustomAttribute {
	return &il.CustomAttribute{Constructor: w.skipCtor}
}

func opcodes(m *il.MethodDefinition) []string {
	names := make([]string, len(m.Body.Instructions))
	for i, ins := range m.Body.Instructions {
		names[i] = ins.OpCode.Name
	}

	return names
}

func methodNamed(t *il.TypeDefinition, name string) *il.MethodDefinition {
	methods := t.FindMethods(name)
	if len(methods) != 1 {
		return nil
	}

	return methods[0]
}
