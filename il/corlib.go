package il

// CoreLibrary is a minimal system module with the primitive types the
// engine and its callers build signatures from.
type CoreLibrary struct {
	Module     *Module
	Object     *TypeDefinition
	ValueType  *TypeDefinition
	Void       *TypeDefinition
	Boolean    *TypeDefinition
	Int32      *TypeDefinition
	Int64      *TypeDefinition
	String     *TypeDefinition
	Type       *TypeDefinition
	Attribute  *TypeDefinition
	Exception  *TypeDefinition
	ObjectCtor *MethodDefinition
}

// NewCoreLibrary builds the system module.
func NewCoreLibrary() *CoreLibrary {
	m := NewModule("System.Runtime")
	lib := &CoreLibrary{Module: m}

	lib.Object = NewTypeDefinition("System", "Object", TypePublic, nil)
	m.AddType(lib.Object)

	lib.ObjectCtor = NewMethodDefinition(".ctor",
		MethodPublic|MethodHideBySig|MethodSpecialName|MethodRTSpecialName, nil)
	lib.Object.AddMethod(lib.ObjectCtor)
	body := NewMethodBody(lib.ObjectCtor)
	body.Append(Create(Ret, nil))

	lib.ValueType = lib.define("ValueType", lib.Object, false)
	lib.Void = lib.define("Void", lib.ValueType, true)
	lib.Boolean = lib.define("Boolean", lib.ValueType, true)
	lib.Int32 = lib.define("Int32", lib.ValueType, true)
	lib.Int64 = lib.define("Int64", lib.ValueType, true)
	lib.String = lib.define("String", lib.Object, false)
	lib.Type = lib.define("Type", lib.Object, false)
	lib.Attribute = lib.define("Attribute", lib.Object, false)
	lib.Exception = lib.define("Exception", lib.Object, false)

	lib.ObjectCtor.Return = lib.Void

	return lib
}

func (lib *CoreLibrary) define(name string, base *TypeDefinition, valueType bool) *TypeDefinition {
	attrs := TypePublic
	if valueType {
		attrs |= TypeSealed
	}

	t := NewTypeDefinition("System", name, attrs, base)
	t.ValueType = valueType
	lib.Module.AddType(t)

	return t
}
