package il

// Member is a field, method, property or event seen through any reference form.
type Member interface {
	Item
	MemberName() string
	// Owner is the declaring type, nil when detached.
	Owner() Type
}

// Field is a field definition or reference.
type Field interface {
	Member
	Operand
	FieldType() Type
}

// Method is a method definition, reference or generic instance.
type Method interface {
	Member
	Operand
	ReturnType() Type
	ParameterTypes() []Type
	// Instance reports whether the signature carries an implicit this.
	Instance() bool
	GenericArity() int
}

// AttributeProvider is an item that can carry custom attributes.
type AttributeProvider interface {
	Item
	CustomAttributeList() []*CustomAttribute
	AddCustomAttribute(*CustomAttribute)
}

// FieldDefinition is a field declared on a type definition.
type FieldDefinition struct {
	Name          string
	Attributes    FieldAttributes
	Type          Type
	DeclaringType *TypeDefinition

	Constant     any
	HasConstant  bool
	InitialValue []byte
	Offset       int32 // explicit layout offset, -1 when unset
	MarshalInfo  *MarshalInfo

	CustomAttributes []*CustomAttribute
}

// NewFieldDefinition creates a detached field definition.
func NewFieldDefinition(name string, attrs FieldAttributes, fieldType Type) *FieldDefinition {
	return &FieldDefinition{Name: name, Attributes: attrs, Type: fieldType, Offset: -1}
}

func (f *FieldDefinition) ItemKind() ItemKind { return KindField }
func (f *FieldDefinition) operand()           {}
func (f *FieldDefinition) MemberName() string { return f.Name }
func (f *FieldDefinition) FieldType() Type    { return f.Type }
func (f *FieldDefinition) IsStatic() bool     { return f.Attributes.Has(FieldStatic) }

// Owner returns the declaring type.
func (f *FieldDefinition) Owner() Type {
	if f.DeclaringType == nil {
		return nil
	}

	return f.DeclaringType
}

// CustomAttributeList returns the custom attributes applied to the field.
func (f *FieldDefinition) CustomAttributeList() []*CustomAttribute { return f.CustomAttributes }

// AddCustomAttribute appends a custom attribute to the field.
func (f *FieldDefinition) AddCustomAttribute(ca *CustomAttribute) {
	f.CustomAttributes = append(f.CustomAttributes, ca)
}

// FieldRef references a field by name on a declaring type.
type FieldRef struct {
	Name          string
	Type          Type
	DeclaringType Type
}

func (f *FieldRef) ItemKind() ItemKind { return KindField }
func (f *FieldRef) operand()           {}
func (f *FieldRef) MemberName() string { return f.Name }
func (f *FieldRef) FieldType() Type    { return f.Type }
func (f *FieldRef) Owner() Type        { return f.DeclaringType }

// MethodDefinition is a method declared on a type definition.
type MethodDefinition struct {
	Name              string
	Attributes        MethodAttributes
	ImplAttributes    MethodImplAttributes
	CallingConvention CallingConvention
	Return            Type
	Parameters        []*ParameterDefinition
	GenericParameters []*GenericParameter
	Body              *MethodBody
	DeclaringType     *TypeDefinition
	Overrides         []Method

	PInvoke              *PInvokeInfo
	CustomAttributes     []*CustomAttribute
	SecurityDeclarations []*SecurityDeclaration
}

// NewMethodDefinition creates a detached method definition.
func NewMethodDefinition(name string, attrs MethodAttributes, returnType Type) *MethodDefinition {
	return &MethodDefinition{Name: name, Attributes: attrs, Return: returnType}
}

func (m *MethodDefinition) ItemKind() ItemKind { return KindMethod }
func (m *MethodDefinition) operand()           {}
func (m *MethodDefinition) MemberName() string { return m.Name }
func (m *MethodDefinition) ReturnType() Type   { return m.Return }
func (m *MethodDefinition) Instance() bool     { return !m.IsStatic() }
func (m *MethodDefinition) GenericArity() int  { return len(m.GenericParameters) }
func (m *MethodDefinition) IsStatic() bool     { return m.Attributes.Has(MethodStatic) }
func (m *MethodDefinition) HasBody() bool      { return m.Body != nil }

// Owner returns the declaring type.
func (m *MethodDefinition) Owner() Type {
	if m.DeclaringType == nil {
		return nil
	}

	return m.DeclaringType
}

// ParameterTypes returns the declared parameter types in order.
func (m *MethodDefinition) ParameterTypes() []Type {
	out := make([]Type, len(m.Parameters))
	for i, p := range m.Parameters {
		out[i] = p.Type
	}

	return out
}

// IsConstructor reports whether m is an instance constructor.
func (m *MethodDefinition) IsConstructor() bool {
	return m.Name == ".ctor" && !m.IsStatic()
}

// IsTypeInitializer reports whether m is the static constructor.
func (m *MethodDefinition) IsTypeInitializer() bool {
	return m.Name == ".cctor" && m.IsStatic()
}

// AddParameter appends a parameter at the next index.
func (m *MethodDefinition) AddParameter(p *ParameterDefinition) {
	p.Index = len(m.Parameters)
	p.Method = m
	m.Parameters = append(m.Parameters, p)
}

// AddGenericParameter attaches a method-level generic parameter.
func (m *MethodDefinition) AddGenericParameter(gp *GenericParameter) {
	gp.Owner = m
	gp.Position = len(m.GenericParameters)
	m.GenericParameters = append(m.GenericParameters, gp)
}

// CustomAttributeList returns the custom attributes applied to the method.
func (m *MethodDefinition) CustomAttributeList() []*CustomAttribute { return m.CustomAttributes }

// AddCustomAttribute appends a custom attribute to the method.
func (m *MethodDefinition) AddCustomAttribute(ca *CustomAttribute) {
	m.CustomAttributes = append(m.CustomAttributes, ca)
}

// String renders the method as Owner::Name(signature).
func (m *MethodDefinition) String() string { return MemberFullName(m) }

// MethodRef references a method by name and signature on a declaring type.
type MethodRef struct {
	Name              string
	DeclaringType     Type
	Return            Type
	Parameters        []Type
	HasThis           bool
	Arity             int
	CallingConvention CallingConvention
}

func (m *MethodRef) ItemKind() ItemKind     { return KindMethod }
func (m *MethodRef) operand()               {}
func (m *MethodRef) MemberName() string     { return m.Name }
func (m *MethodRef) Owner() Type            { return m.DeclaringType }
func (m *MethodRef) ReturnType() Type       { return m.Return }
func (m *MethodRef) ParameterTypes() []Type { return m.Parameters }
func (m *MethodRef) Instance() bool         { return m.HasThis }
func (m *MethodRef) GenericArity() int      { return m.Arity }

// String renders the method as Owner::Name(signature).
func (m *MethodRef) String() string { return MemberFullName(m) }

// GenericInstanceMethod closes a generic method over arguments.
type GenericInstanceMethod struct {
	Element Method
	Args    []Type
}

func (m *GenericInstanceMethod) ItemKind() ItemKind     { return KindMethod }
func (m *GenericInstanceMethod) operand()               {}
func (m *GenericInstanceMethod) MemberName() string     { return m.Element.MemberName() }
func (m *GenericInstanceMethod) Owner() Type            { return m.Element.Owner() }
func (m *GenericInstanceMethod) ReturnType() Type       { return m.Element.ReturnType() }
func (m *GenericInstanceMethod) ParameterTypes() []Type { return m.Element.ParameterTypes() }
func (m *GenericInstanceMethod) Instance() bool         { return m.Element.Instance() }
func (m *GenericInstanceMethod) GenericArity() int      { return m.Element.GenericArity() }

// ParameterDefinition is a declared method parameter, or the implicit this.
type ParameterDefinition struct {
	Name        string
	Index       int // -1 for the implicit this parameter
	Attributes  ParameterAttributes
	Type        Type
	Constant    any
	HasConstant bool
	MarshalInfo *MarshalInfo
	Method      *MethodDefinition

	CustomAttributes []*CustomAttribute
}

// NewParameterDefinition creates a detached parameter.
func NewParameterDefinition(name string, attrs ParameterAttributes, paramType Type) *ParameterDefinition {
	return &ParameterDefinition{Name: name, Attributes: attrs, Type: paramType}
}

func (p *ParameterDefinition) ItemKind() ItemKind { return KindParameter }
func (p *ParameterDefinition) operand()           {}

// IsThis reports whether p is the implicit this parameter of a body.
func (p *ParameterDefinition) IsThis() bool { return p.Index < 0 }

// CustomAttributeList returns the custom attributes applied to the parameter.
func (p *ParameterDefinition) CustomAttributeList() []*CustomAttribute { return p.CustomAttributes }

// AddCustomAttribute appends a custom attribute to the parameter.
func (p *ParameterDefinition) AddCustomAttribute(ca *CustomAttribute) {
	p.CustomAttributes = append(p.CustomAttributes, ca)
}

// PropertyDefinition is a property declared on a type definition.
type PropertyDefinition struct {
	Name          string
	Attributes    PropertyAttributes
	Type          Type
	Parameters    []*ParameterDefinition
	GetMethod     *MethodDefinition
	SetMethod     *MethodDefinition
	OtherMethods  []*MethodDefinition
	DeclaringType *TypeDefinition
	Constant      any
	HasConstant   bool

	CustomAttributes []*CustomAttribute
}

func (p *PropertyDefinition) ItemKind() ItemKind { return KindProperty }
func (p *PropertyDefinition) MemberName() string { return p.Name }

// Owner returns the declaring type.
func (p *PropertyDefinition) Owner() Type {
	if p.DeclaringType == nil {
		return nil
	}

	return p.DeclaringType
}

// CustomAttributeList returns the custom attributes applied to the property.
func (p *PropertyDefinition) CustomAttributeList() []*CustomAttribute { return p.CustomAttributes }

// AddCustomAttribute appends a custom attribute to the property.
func (p *PropertyDefinition) AddCustomAttribute(ca *CustomAttribute) {
	p.CustomAttributes = append(p.CustomAttributes, ca)
}

// EventDefinition is an event declared on a type definition.
type EventDefinition struct {
	Name          string
	Attributes    EventAttributes
	EventType     Type
	AddMethod     *MethodDefinition
	RemoveMethod  *MethodDefinition
	InvokeMethod  *MethodDefinition
	OtherMethods  []*MethodDefinition
	DeclaringType *TypeDefinition

	CustomAttributes []*CustomAttribute
}

func (e *EventDefinition) ItemKind() ItemKind { return KindEvent }
func (e *EventDefinition) MemberName() string { return e.Name }

// Owner returns the declaring type.
func (e *EventDefinition) Owner() Type {
	if e.DeclaringType == nil {
		return nil
	}

	return e.DeclaringType
}

// CustomAttributeList returns the custom attributes applied to the event.
func (e *EventDefinition) CustomAttributeList() []*CustomAttribute { return e.CustomAttributes }

// AddCustomAttribute appends a custom attribute to the event.
func (e *EventDefinition) AddCustomAttribute(ca *CustomAttribute) {
	e.CustomAttributes = append(e.CustomAttributes, ca)
}

// CustomAttribute is an attribute instance: constructor plus blob arguments.
type CustomAttribute struct {
	Constructor Method
	Args        []CustomAttributeArgument
	Fields      []CustomAttributeNamedArgument
	Properties  []CustomAttributeNamedArgument
}

func (c *CustomAttribute) ItemKind() ItemKind { return KindCustomAttribute }

// AttributeType returns the declaring type of the constructor.
func (c *CustomAttribute) AttributeType() Type {
	if c.Constructor == nil {
		return nil
	}

	return c.Constructor.Owner()
}

// CustomAttributeArgument is a typed attribute blob value.
// Value holds a primitive, a string, a Type (typeof) or []CustomAttributeArgument.
type CustomAttributeArgument struct {
	Type  Type
	Value any
}

// CustomAttributeNamedArgument is a field or property assignment in an attribute.
type CustomAttributeNamedArgument struct {
	Name     string
	Argument CustomAttributeArgument
}

// SecurityDeclaration is a declarative security blob.
type SecurityDeclaration struct {
	Action SecurityAction
	Blob   []byte
}

// PInvokeInfo maps a method onto an unmanaged entry point.
type PInvokeInfo struct {
	EntryPoint string
	ModuleName string
	Attributes PInvokeAttributes
}

// MarshalInfo describes how a field or parameter is marshaled.
type MarshalInfo struct {
	NativeType NativeType
}

// CallSite is a standalone method signature, the operand of calli.
type CallSite struct {
	Return            Type
	Parameters        []Type
	HasThis           bool
	CallingConvention CallingConvention
}

func (c *CallSite) operand() {}
