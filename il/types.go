package il

import (
	"strings"

	"github.com/google/uuid"
)

// Item is implemented by every node of the object model.
type Item interface {
	ItemKind() ItemKind
}

// Operand is the closed set of values an instruction can carry.
type Operand interface {
	operand()
}

// Type is a type definition or any form of type reference.
type Type interface {
	Item
	Operand
	// FullName is the metadata name, nested types joined with '/'.
	FullName() string
	// Scope is the MVID of the module defining the type's element.
	Scope() uuid.UUID
	IsValueType() bool
}

// TypeRef references a type defined in some module by name.
type TypeRef struct {
	Namespace     string
	Name          string
	DeclaringType *TypeRef
	ModuleID      uuid.UUID
	ModuleName    string
	ValueType     bool
}

func (t *TypeRef) ItemKind() ItemKind { return KindType }
func (t *TypeRef) operand()           {}
func (t *TypeRef) Scope() uuid.UUID   { return t.ModuleID }
func (t *TypeRef) IsValueType() bool  { return t.ValueType }

// FullName returns the metadata full name of the referenced type.
func (t *TypeRef) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "/" + t.Name
	}

	return qualify(t.Namespace, t.Name)
}

// String implements fmt.Stringer.
func (t *TypeRef) String() string { return t.FullName() }

// TypeDefinition is a type declared in a module.
type TypeDefinition struct {
	Namespace  string
	Name       string
	Attributes TypeAttributes
	BaseType   Type
	Interfaces []Type
	ValueType  bool

	PackingSize int16
	ClassSize   int32

	Module        *Module
	DeclaringType *TypeDefinition

	NestedTypes          []*TypeDefinition
	Fields               []*FieldDefinition
	Methods              []*MethodDefinition
	Properties           []*PropertyDefinition
	Events               []*EventDefinition
	GenericParameters    []*GenericParameter
	CustomAttributes     []*CustomAttribute
	SecurityDeclarations []*SecurityDeclaration
}

// NewTypeDefinition creates a detached type definition.
func NewTypeDefinition(namespace, name string, attrs TypeAttributes, baseType Type) *TypeDefinition {
	return &TypeDefinition{
		Namespace:  namespace,
		Name:       name,
		Attributes: attrs,
		BaseType:   baseType,
	}
}

func (t *TypeDefinition) ItemKind() ItemKind { return KindType }
func (t *TypeDefinition) operand()           {}
func (t *TypeDefinition) IsValueType() bool  { return t.ValueType }

// Scope returns the MVID of the owning module, or uuid.Nil when detached.
func (t *TypeDefinition) Scope() uuid.UUID {
	if t.Module == nil {
		return uuid.Nil
	}

	return t.Module.MVID
}

// FullName returns the metadata full name of the type.
func (t *TypeDefinition) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "/" + t.Name
	}

	return qualify(t.Namespace, t.Name)
}

// String implements fmt.Stringer.
func (t *TypeDefinition) String() string { return t.FullName() }

// CustomAttributeList returns the custom attributes applied to the type.
func (t *TypeDefinition) CustomAttributeList() []*CustomAttribute { return t.CustomAttributes }

// AddCustomAttribute appends a custom attribute to the type.
func (t *TypeDefinition) AddCustomAttribute(ca *CustomAttribute) {
	t.CustomAttributes = append(t.CustomAttributes, ca)
}

// AddNestedType attaches a nested type, adopting it into the module.
func (t *TypeDefinition) AddNestedType(nested *TypeDefinition) {
	nested.DeclaringType = t
	nested.Module = t.Module
	nested.adopt()
	t.NestedTypes = append(t.NestedTypes, nested)
}

// adopt propagates the module to nested types attached before the owner was.
func (t *TypeDefinition) adopt() {
	for _, n := range t.NestedTypes {
		n.Module = t.Module
		n.adopt()
	}
}

// AddField attaches a field to the type.
func (t *TypeDefinition) AddField(f *FieldDefinition) {
	f.DeclaringType = t
	t.Fields = append(t.Fields, f)
}

// AddMethod attaches a method to the type.
func (t *TypeDefinition) AddMethod(m *MethodDefinition) {
	m.DeclaringType = t
	t.Methods = append(t.Methods, m)
}

// AddProperty attaches a property to the type.
func (t *TypeDefinition) AddProperty(p *PropertyDefinition) {
	p.DeclaringType = t
	t.Properties = append(t.Properties, p)
}

// AddEvent attaches an event to the type.
func (t *TypeDefinition) AddEvent(e *EventDefinition) {
	e.DeclaringType = t
	t.Events = append(t.Events, e)
}

// AddGenericParameter attaches a generic parameter at the next position.
func (t *TypeDefinition) AddGenericParameter(gp *GenericParameter) {
	gp.Owner = t
	gp.Position = len(t.GenericParameters)
	t.GenericParameters = append(t.GenericParameters, gp)
}

// FindField returns the field with the given name, or nil.
func (t *TypeDefinition) FindField(name string) *FieldDefinition {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// FindMethods returns every method with the given name.
func (t *TypeDefinition) FindMethods(name string) []*MethodDefinition {
	var out []*MethodDefinition

	for _, m := range t.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}

	return out
}

// FindMethod returns the method matching name and signature, or nil.
func (t *TypeDefinition) FindMethod(name, signature string) *MethodDefinition {
	for _, m := range t.Methods {
		if m.Name == name && SignatureOf(m) == signature {
			return m
		}
	}

	return nil
}

// FindProperty returns the property with the given name, or nil.
func (t *TypeDefinition) FindProperty(name string) *PropertyDefinition {
	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// FindEvent returns the event with the given name, or nil.
func (t *TypeDefinition) FindEvent(name string) *EventDefinition {
	for _, e := range t.Events {
		if e.Name == name {
			return e
		}
	}

	return nil
}

// FindNestedType returns the directly nested type with the given name, or nil.
func (t *TypeDefinition) FindNestedType(name string) *TypeDefinition {
	for _, n := range t.NestedTypes {
		if n.Name == name {
			return n
		}
	}

	return nil
}

// Constructors returns the instance constructors in declaration order.
func (t *TypeDefinition) Constructors() []*MethodDefinition {
	var out []*MethodDefinition

	for _, m := range t.Methods {
		if m.IsConstructor() {
			out = append(out, m)
		}
	}

	return out
}

// TypeInitializer returns the static constructor, or nil.
func (t *TypeDefinition) TypeInitializer() *MethodDefinition {
	for _, m := range t.Methods {
		if m.IsTypeInitializer() {
			return m
		}
	}

	return nil
}

// ArrayType is a single or multi-dimensional array of an element type.
type ArrayType struct {
	Element Type
	Rank    int
}

func (t *ArrayType) ItemKind() ItemKind { return KindType }
func (t *ArrayType) operand()           {}
func (t *ArrayType) Scope() uuid.UUID   { return t.Element.Scope() }
func (t *ArrayType) IsValueType() bool  { return false }

// FullName renders T[] or T[,] for rank 2 and up.
func (t *ArrayType) FullName() string {
	if t.Rank <= 1 {
		return t.Element.FullName() + "[]"
	}

	return t.Element.FullName() + "[" + strings.Repeat(",", t.Rank-1) + "]"
}

// ByRefType is a managed reference to an element type.
type ByRefType struct {
	Element Type
}

func (t *ByRefType) ItemKind() ItemKind { return KindType }
func (t *ByRefType) operand()           {}
func (t *ByRefType) Scope() uuid.UUID   { return t.Element.Scope() }
func (t *ByRefType) IsValueType() bool  { return false }
func (t *ByRefType) FullName() string   { return t.Element.FullName() + "&" }

// PointerType is an unmanaged pointer to an element type.
type PointerType struct {
	Element Type
}

func (t *PointerType) ItemKind() ItemKind { return KindType }
func (t *PointerType) operand()           {}
func (t *PointerType) Scope() uuid.UUID   { return t.Element.Scope() }
func (t *PointerType) IsValueType() bool  { return false }
func (t *PointerType) FullName() string   { return t.Element.FullName() + "*" }

// GenericInstanceType closes a generic type definition over arguments.
type GenericInstanceType struct {
	Element Type
	Args    []Type
}

func (t *GenericInstanceType) ItemKind() ItemKind { return KindType }
func (t *GenericInstanceType) operand()           {}
func (t *GenericInstanceType) Scope() uuid.UUID   { return t.Element.Scope() }
func (t *GenericInstanceType) IsValueType() bool  { return t.Element.IsValueType() }

// FullName renders Element<Arg1,Arg2>.
func (t *GenericInstanceType) FullName() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.FullName()
	}

	return t.Element.FullName() + "<" + strings.Join(args, ",") + ">"
}

// GenericParameterOwner is a type or method declaring generic parameters.
type GenericParameterOwner interface {
	Item
}

// GenericParameter is a type- or method-level generic parameter.
type GenericParameter struct {
	Name             string
	Position         int
	Owner            GenericParameterOwner
	Attributes       GenericParameterAttributes
	Constraints      []Type
	CustomAttributes []*CustomAttribute
}

func (g *GenericParameter) ItemKind() ItemKind { return KindGenericParameter }
func (g *GenericParameter) operand()           {}
func (g *GenericParameter) FullName() string   { return g.Name }
func (g *GenericParameter) IsValueType() bool  { return false }

// IsMethodParameter reports whether the parameter is declared by a method.
func (g *GenericParameter) IsMethodParameter() bool {
	return g.Owner != nil && g.Owner.ItemKind() == KindMethod
}

// Scope returns the module MVID of the declaring type or method.
func (g *GenericParameter) Scope() uuid.UUID {
	switch owner := g.Owner.(type) {
	case Type:
		return owner.Scope()
	case Method:
		if declaring := owner.Owner(); declaring != nil {
			return declaring.Scope()
		}
	}

	return uuid.Nil
}

// CustomAttributeList returns the custom attributes applied to the parameter.
func (g *GenericParameter) CustomAttributeList() []*CustomAttribute { return g.CustomAttributes }

// AddCustomAttribute appends a custom attribute to the parameter.
func (g *GenericParameter) AddCustomAttribute(ca *CustomAttribute) {
	g.CustomAttributes = append(g.CustomAttributes, ca)
}

// ElementType strips generic instantiation, returning the open definition form.
func ElementType(t Type) Type {
	if gi, ok := t.(*GenericInstanceType); ok {
		return gi.Element
	}

	return t
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + "." + name
}
