package il

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Key is the structural identity of a named item: the owning module, the item
// kind, the owner's full name, the simple name, the generic arity and a hash
// of the signature. References and the definitions they point at share a key.
type Key struct {
	Module uuid.UUID
	Kind   ItemKind
	Owner  string
	Name   string
	Arity  int
	Sig    uint64
}

// String returns a human-readable representation of the key.
func (k Key) String() string {
	name := k.Name
	if k.Owner != "" {
		name = k.Owner + "::" + k.Name
	}

	if k.Arity > 0 {
		name += "`" + strconv.Itoa(k.Arity)
	}

	if k.Sig != 0 {
		name += fmt.Sprintf("#%016x", k.Sig)
	}

	return fmt.Sprintf("%s[%s]%s", k.Kind, k.Module, name)
}

// KeyOf returns the definition identity of an item. Members seen through a
// generic instance of their declaring type map to the open definition, and
// generic method instances map to their element method.
// Owned items (parameters, variables, instructions, handlers, attributes) have no key.
func KeyOf(item Item) (Key, bool) {
	switch it := item.(type) {
	case *TypeDefinition:
		owner := it.Namespace
		if it.DeclaringType != nil {
			owner = it.DeclaringType.FullName()
		}

		return Key{Module: it.Scope(), Kind: KindType, Owner: owner, Name: it.Name}, true

	case *TypeRef:
		owner := it.Namespace
		if it.DeclaringType != nil {
			owner = it.DeclaringType.FullName()
		}

		return Key{Module: it.Scope(), Kind: KindType, Owner: owner, Name: it.Name}, true

	case *ArrayType, *ByRefType, *PointerType, *GenericInstanceType:
		t := it.(Type)

		return Key{
			Module: t.Scope(),
			Kind:   KindType,
			Name:   t.FullName(),
			Sig:    xxhash.Sum64String(scopedName(t)),
		}, true

	case *GenericParameter:
		return Key{
			Module: it.Scope(),
			Kind:   KindGenericParameter,
			Owner:  genericOwnerName(it.Owner),
			Name:   sigName(it),
			Arity:  it.Position,
		}, true

	case *GenericInstanceMethod:
		return KeyOf(it.Element)

	case Method:
		module, owner := memberOwner(it)

		return Key{
			Module: module,
			Kind:   KindMethod,
			Owner:  owner,
			Name:   it.MemberName(),
			Arity:  it.GenericArity(),
			Sig:    xxhash.Sum64String(SignatureOf(it)),
		}, true

	case Field:
		module, owner := memberOwner(it)

		return Key{Module: module, Kind: KindField, Owner: owner, Name: it.MemberName()}, true

	case *PropertyDefinition:
		module, owner := memberOwner(it)

		return Key{Module: module, Kind: KindProperty, Owner: owner, Name: it.Name}, true

	case *EventDefinition:
		module, owner := memberOwner(it)

		return Key{Module: module, Kind: KindEvent, Owner: owner, Name: it.Name}, true

	default:
		return Key{}, false
	}
}

// ReferenceKey returns the exact identity of a reference: unlike KeyOf it keeps
// generic instantiations apart, so List<A>::Add and List<B>::Add differ.
func ReferenceKey(item Item) (Key, bool) {
	key, ok := KeyOf(item)
	if !ok {
		return key, false
	}

	switch it := item.(type) {
	case *GenericInstanceMethod:
		args := make([]string, len(it.Args))
		for i, a := range it.Args {
			args[i] = scopedName(a)
		}

		key.Sig = xxhash.Sum64String(referenceText(it.Element) + "<" + strings.Join(args, ",") + ">")

	case Member:
		if _, generic := it.Owner().(*GenericInstanceType); generic {
			key.Sig = xxhash.Sum64String(referenceText(it))
		}
	}

	return key, true
}

func referenceText(m Member) string {
	owner := ""
	if o := m.Owner(); o != nil {
		owner = scopedName(o)
	}

	text := owner + "::" + m.MemberName()
	if method, ok := m.(Method); ok {
		text += " " + SignatureOf(method)
	}

	return text
}

func memberOwner(m Member) (uuid.UUID, string) {
	owner := m.Owner()
	if owner == nil {
		return uuid.Nil, ""
	}

	owner = ElementType(owner)

	return owner.Scope(), owner.FullName()
}

func genericOwnerName(owner GenericParameterOwner) string {
	switch o := owner.(type) {
	case Type:
		return o.FullName()
	case Method:
		return MemberFullName(o)
	default:
		return ""
	}
}

// SignatureOf renders the return and parameter types of m. Generic parameters
// render positionally (!0 for type parameters, !!0 for method parameters) so
// that references in open form match their definitions.
func SignatureOf(m Method) string {
	return sigName(m.ReturnType()) + parameterList(m)
}

// SignatureWith renders the signature of m like SignatureOf, naming every
// non-generic named type with name.
func SignatureWith(m Method, name func(Type) string) string {
	params := m.ParameterTypes()
	names := make([]string, len(params))

	for i, p := range params {
		names[i] = renderType(p, name)
	}

	return renderType(m.ReturnType(), name) + "(" + strings.Join(names, ",") + ")"
}

// MemberFullName renders a member as Owner::Name; methods render as
// Return Owner::Name(Params).
func MemberFullName(m Member) string {
	owner := ""
	if o := m.Owner(); o != nil {
		owner = o.FullName() + "::"
	}

	if method, ok := m.(Method); ok {
		return sigName(method.ReturnType()) + " " + owner + method.MemberName() + parameterList(method)
	}

	return owner + m.MemberName()
}

func parameterList(m Method) string {
	params := m.ParameterTypes()
	names := make([]string, len(params))

	for i, p := range params {
		names[i] = sigName(p)
	}

	return "(" + strings.Join(names, ",") + ")"
}

func sigName(t Type) string {
	return renderType(t, func(named Type) string { return named.FullName() })
}

func scopedName(t Type) string {
	return renderType(t, func(named Type) string { return "[" + named.Scope().String() + "]" + named.FullName() })
}

func renderType(t Type, named func(Type) string) string {
	switch tt := t.(type) {
	case nil:
		return ""
	case *GenericParameter:
		if tt.IsMethodParameter() {
			return "!!" + strconv.Itoa(tt.Position)
		}

		return "!" + strconv.Itoa(tt.Position)
	case *ArrayType:
		suffix := "[]"
		if tt.Rank > 1 {
			suffix = "[" + strings.Repeat(",", tt.Rank-1) + "]"
		}

		return renderType(tt.Element, named) + suffix
	case *ByRefType:
		return renderType(tt.Element, named) + "&"
	case *PointerType:
		return renderType(tt.Element, named) + "*"
	case *GenericInstanceType:
		args := make([]string, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = renderType(a, named)
		}

		return renderType(tt.Element, named) + "<" + strings.Join(args, ",") + ">"
	default:
		return named(t)
	}
}
