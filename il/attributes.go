package il

// TypeAttributes are the metadata flags of a type definition.
type TypeAttributes uint32

const (
	TypeNotPublic        TypeAttributes = 0x00000000
	TypePublic           TypeAttributes = 0x00000001
	TypeNestedPublic     TypeAttributes = 0x00000002
	TypeNestedPrivate    TypeAttributes = 0x00000003
	TypeNestedFamily     TypeAttributes = 0x00000004
	TypeNestedAssembly   TypeAttributes = 0x00000005
	TypeVisibilityMask   TypeAttributes = 0x00000007
	TypeSequentialLayout TypeAttributes = 0x00000008
	TypeExplicitLayout   TypeAttributes = 0x00000010
	TypeInterface        TypeAttributes = 0x00000020
	TypeAbstract         TypeAttributes = 0x00000080
	TypeSealed           TypeAttributes = 0x00000100
	TypeSpecialName      TypeAttributes = 0x00000400
	TypeSerializable     TypeAttributes = 0x00002000
	TypeBeforeFieldInit  TypeAttributes = 0x00100000
	TypeHasSecurity      TypeAttributes = 0x00040000
	TypeRTSpecialName    TypeAttributes = 0x00000800
)

// Has reports whether all bits of flag are set.
func (a TypeAttributes) Has(flag TypeAttributes) bool { return a&flag == flag }

// FieldAttributes are the metadata flags of a field definition.
type FieldAttributes uint16

const (
	FieldPrivate         FieldAttributes = 0x0001
	FieldFamANDAssem     FieldAttributes = 0x0002
	FieldAssembly        FieldAttributes = 0x0003
	FieldFamily          FieldAttributes = 0x0004
	FieldFamORAssem      FieldAttributes = 0x0005
	FieldPublic          FieldAttributes = 0x0006
	FieldAccessMask      FieldAttributes = 0x0007
	FieldStatic          FieldAttributes = 0x0010
	FieldInitOnly        FieldAttributes = 0x0020
	FieldLiteral         FieldAttributes = 0x0040
	FieldNotSerialized   FieldAttributes = 0x0080
	FieldSpecialName     FieldAttributes = 0x0200
	FieldRTSpecialName   FieldAttributes = 0x0400
	FieldHasFieldMarshal FieldAttributes = 0x1000
	FieldHasDefault      FieldAttributes = 0x8000
	FieldHasFieldRVA     FieldAttributes = 0x0100
	FieldPInvokeImpl     FieldAttributes = 0x2000
)

// Has reports whether all bits of flag are set.
func (a FieldAttributes) Has(flag FieldAttributes) bool { return a&flag == flag }

// MethodAttributes are the metadata flags of a method definition.
type MethodAttributes uint16

const (
	MethodPrivate       MethodAttributes = 0x0001
	MethodFamANDAssem   MethodAttributes = 0x0002
	MethodAssembly      MethodAttributes = 0x0003
	MethodFamily        MethodAttributes = 0x0004
	MethodFamORAssem    MethodAttributes = 0x0005
	MethodPublic        MethodAttributes = 0x0006
	MethodAccessMask    MethodAttributes = 0x0007
	MethodStatic        MethodAttributes = 0x0010
	MethodFinal         MethodAttributes = 0x0020
	MethodVirtual       MethodAttributes = 0x0040
	MethodHideBySig     MethodAttributes = 0x0080
	MethodNewSlot       MethodAttributes = 0x0100
	MethodAbstract      MethodAttributes = 0x0400
	MethodSpecialName   MethodAttributes = 0x0800
	MethodRTSpecialName MethodAttributes = 0x1000
	MethodPInvokeImpl   MethodAttributes = 0x2000
	MethodHasSecurity   MethodAttributes = 0x4000
)

// Has reports whether all bits of flag are set.
func (a MethodAttributes) Has(flag MethodAttributes) bool { return a&flag == flag }

// MethodImplAttributes are the implementation flags of a method definition.
type MethodImplAttributes uint16

const (
	MethodImplIL             MethodImplAttributes = 0x0000
	MethodImplNative         MethodImplAttributes = 0x0001
	MethodImplRuntime        MethodImplAttributes = 0x0003
	MethodImplUnmanaged      MethodImplAttributes = 0x0004
	MethodImplNoInlining     MethodImplAttributes = 0x0008
	MethodImplInternalCall   MethodImplAttributes = 0x1000
	MethodImplSynchronized   MethodImplAttributes = 0x0020
	MethodImplPreserveSig    MethodImplAttributes = 0x0080
	MethodImplAggressiveInl  MethodImplAttributes = 0x0100
	MethodImplNoOptimization MethodImplAttributes = 0x0040
)

// CallingConvention is the calling convention of a method signature.
type CallingConvention uint8

const (
	CallDefault  CallingConvention = 0x00
	CallC        CallingConvention = 0x01
	CallStdCall  CallingConvention = 0x02
	CallThisCall CallingConvention = 0x03
	CallFastCall CallingConvention = 0x04
	CallVarArg   CallingConvention = 0x05
	CallGeneric  CallingConvention = 0x10
)

// ParameterAttributes are the metadata flags of a parameter definition.
type ParameterAttributes uint16

const (
	ParamNone            ParameterAttributes = 0x0000
	ParamIn              ParameterAttributes = 0x0001
	ParamOut             ParameterAttributes = 0x0002
	ParamOptional        ParameterAttributes = 0x0010
	ParamHasDefault      ParameterAttributes = 0x1000
	ParamHasFieldMarshal ParameterAttributes = 0x2000
)

// PropertyAttributes are the metadata flags of a property definition.
type PropertyAttributes uint16

const (
	PropertyNone          PropertyAttributes = 0x0000
	PropertySpecialName   PropertyAttributes = 0x0200
	PropertyRTSpecialName PropertyAttributes = 0x0400
	PropertyHasDefault    PropertyAttributes = 0x1000
)

// EventAttributes are the metadata flags of an event definition.
type EventAttributes uint16

const (
	EventNone          EventAttributes = 0x0000
	EventSpecialName   EventAttributes = 0x0200
	EventRTSpecialName EventAttributes = 0x0400
)

// GenericParameterAttributes carry variance and special constraints.
type GenericParameterAttributes uint16

const (
	GenericNonVariant                     GenericParameterAttributes = 0x0000
	GenericCovariant                      GenericParameterAttributes = 0x0001
	GenericContravariant                  GenericParameterAttributes = 0x0002
	GenericReferenceTypeConstraint        GenericParameterAttributes = 0x0004
	GenericNotNullableValueTypeConstraint GenericParameterAttributes = 0x0008
	GenericDefaultConstructorConstraint   GenericParameterAttributes = 0x0010
)

// ExceptionHandlerType is the kind of protected-region handler.
type ExceptionHandlerType int

const (
	HandlerCatch ExceptionHandlerType = iota
	HandlerFilter
	HandlerFinally
	HandlerFault
)

// PInvokeAttributes are the flags of a platform-invoke mapping.
type PInvokeAttributes uint16

// NativeType is the unmanaged type a value is marshaled as.
type NativeType uint8

// SecurityAction is the action of a declarative security declaration.
type SecurityAction uint16
