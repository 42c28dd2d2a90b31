package il

import (
	"errors"
	"fmt"
)

// ErrUnsupportedItem is returned when an item of an unknown kind is dispatched.
var ErrUnsupportedItem = errors.New("unsupported item")

// Visitor receives one callback per definition kind.
type Visitor interface {
	VisitType(*TypeDefinition) error
	VisitField(*FieldDefinition) error
	VisitMethod(*MethodDefinition) error
	VisitParameter(*ParameterDefinition) error
	VisitVariable(*VariableDefinition) error
	VisitInstruction(*Instruction) error
	VisitGenericParameter(*GenericParameter) error
	VisitProperty(*PropertyDefinition) error
	VisitEvent(*EventDefinition) error
	VisitCustomAttribute(*CustomAttribute) error
	VisitExceptionHandler(*ExceptionHandler) error
}

// Dispatch invokes the visitor callback matching the concrete kind of item.
// References are not definitions and are rejected like any unknown item.
func Dispatch(item Item, v Visitor) error {
	switch it := item.(type) {
	case *TypeDefinition:
		return v.VisitType(it)
	case *FieldDefinition:
		return v.VisitField(it)
	case *MethodDefinition:
		return v.VisitMethod(it)
	case *ParameterDefinition:
		return v.VisitParameter(it)
	case *VariableDefinition:
		return v.VisitVariable(it)
	case *Instruction:
		return v.VisitInstruction(it)
	case *GenericParameter:
		return v.VisitGenericParameter(it)
	case *PropertyDefinition:
		return v.VisitProperty(it)
	case *EventDefinition:
		return v.VisitEvent(it)
	case *CustomAttribute:
		return v.VisitCustomAttribute(it)
	case *ExceptionHandler:
		return v.VisitExceptionHandler(it)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedItem, item)
	}
}

// KindOf returns the kind of item, or the zero kind for nil.
func KindOf(item Item) ItemKind {
	if item == nil {
		return 0
	}

	return item.ItemKind()
}

// BaseVisitor implements Visitor with no-op callbacks, for embedding.
type BaseVisitor struct{}

func (BaseVisitor) VisitType(*TypeDefinition) error               { return nil }
func (BaseVisitor) VisitField(*FieldDefinition) error             { return nil }
func (BaseVisitor) VisitMethod(*MethodDefinition) error           { return nil }
func (BaseVisitor) VisitParameter(*ParameterDefinition) error     { return nil }
func (BaseVisitor) VisitVariable(*VariableDefinition) error       { return nil }
func (BaseVisitor) VisitInstruction(*Instruction) error           { return nil }
func (BaseVisitor) VisitGenericParameter(*GenericParameter) error { return nil }
func (BaseVisitor) VisitProperty(*PropertyDefinition) error       { return nil }
func (BaseVisitor) VisitEvent(*EventDefinition) error             { return nil }
func (BaseVisitor) VisitCustomAttribute(*CustomAttribute) error   { return nil }
func (BaseVisitor) VisitExceptionHandler(*ExceptionHandler) error { return nil }

// Children returns the items directly owned by item, in declaration order:
// nested types, fields, methods, properties, events, generic parameters,
// then custom attributes for types; parameters, body locals, instructions
// and handlers for methods.
func Children(item Item) []Item {
	var out []Item

	switch it := item.(type) {
	case *TypeDefinition:
		for _, n := range it.NestedTypes {
			out = append(out, n)
		}
		for _, f := range it.Fields {
			out = append(out, f)
		}
		for _, m := range it.Methods {
			out = append(out, m)
		}
		for _, p := range it.Properties {
			out = append(out, p)
		}
		for _, e := range it.Events {
			out = append(out, e)
		}
		for _, g := range it.GenericParameters {
			out = append(out, g)
		}
	case *MethodDefinition:
		for _, p := range it.Parameters {
			out = append(out, p)
		}
		for _, g := range it.GenericParameters {
			out = append(out, g)
		}
		if it.Body != nil {
			for _, v := range it.Body.Variables {
				out = append(out, v)
			}
			for _, ins := range it.Body.Instructions {
				out = append(out, ins)
			}
			for _, h := range it.Body.ExceptionHandlers {
				out = append(out, h)
			}
		}
	case *PropertyDefinition:
		for _, p := range it.Parameters {
			out = append(out, p)
		}
	}

	if provider, ok := item.(AttributeProvider); ok {
		for _, ca := range provider.CustomAttributeList() {
			out = append(out, ca)
		}
	}

	return out
}

// Walk dispatches item and then its children depth-first.
func Walk(item Item, v Visitor) error {
	if err := Dispatch(item, v); err != nil {
		return err
	}

	for _, child := range Children(item) {
		if err := Walk(child, v); err != nil {
			return err
		}
	}

	return nil
}
