package cloning

import (
	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
)

// RootImporter rewrites references seen from the source module into
// references valid in the target module. A reference to an item that is
// being cloned resolves to its clone; anything else is imported, after its
// declaring type and generic arguments were resolved the same way.
type RootImporter struct {
	registry *Registry
	module   *il.Module

	types   map[il.Key]il.Type
	fields  map[il.Key]il.Field
	methods map[il.Key]il.Method
}

// NewRootImporter creates an importer into the module of targetRoot.
func NewRootImporter(r *Registry, targetRoot *il.TypeDefinition) *RootImporter {
	return &RootImporter{
		registry: r,
		module:   targetRoot.Module,
		types:    make(map[il.Key]il.Type),
		fields:   make(map[il.Key]il.Field),
		methods:  make(map[il.Key]il.Method),
	}
}

// cached memoizes resolve per reference key. A key is written once.
func cached[T comparable](cache map[il.Key]T, item il.Item, resolve func() (T, error)) (T, error) {
	var zero T

	key, ok := il.ReferenceKey(item)
	if !ok {
		return zero, diagnostic.Internal("reference_without_key", "cannot import %T", item)
	}

	if hit, found := cache[key]; found {
		if hit == zero {
			return zero, diagnostic.Internal("import_cache_nil", "import cache holds nil for %s", key)
		}

		return hit, nil
	}

	resolved, err := resolve()
	if err != nil {
		return zero, err
	}

	if resolved == zero {
		return zero, diagnostic.Internal("import_nil", "import of %s resolved to nil", key)
	}

	cache[key] = resolved

	return resolved, nil
}

// ImportType resolves a type reference into the target module.
func (ri *RootImporter) ImportType(t il.Type) (il.Type, error) {
	if t == nil {
		return nil, nil
	}

	return cached(ri.types, t, func() (il.Type, error) { return ri.resolveType(t) })
}

func (ri *RootImporter) resolveType(t il.Type) (il.Type, error) {
	switch tt := t.(type) {
	case *il.GenericParameter:
		target, ok, err := ri.registry.TargetGenericParameter(tt)
		if err != nil || ok {
			return target, err
		}

		// generic parameters of external owners are positional
		return tt, nil

	case *il.ArrayType:
		element, err := ri.ImportType(tt.Element)
		if err != nil {
			return nil, err
		}

		return &il.ArrayType{Element: element, Rank: tt.Rank}, nil

	case *il.ByRefType:
		element, err := ri.ImportType(tt.Element)
		if err != nil {
			return nil, err
		}

		return &il.ByRefType{Element: element}, nil

	case *il.PointerType:
		element, err := ri.ImportType(tt.Element)
		if err != nil {
			return nil, err
		}

		return &il.PointerType{Element: element}, nil

	case *il.GenericInstanceType:
		element, err := ri.ImportType(tt.Element)
		if err != nil {
			return nil, err
		}

		args, err := ri.importTypes(tt.Args)
		if err != nil {
			return nil, err
		}

		return &il.GenericInstanceType{Element: element, Args: args}, nil

	case *il.TypeDefinition, *il.TypeRef:
		target, ok, err := ri.registry.TargetType(tt)
		if err != nil || ok {
			return target, err
		}

		return ri.importNamed(tt)

	default:
		return nil, diagnostic.UnsupportedOperand("unsupported_type", "type reference of kind %T is not supported", t)
	}
}

// importNamed imports a type that is not cloned itself. Its declaring type
// may still be redirected, in which case the nested type must already exist
// in the redirected declaring type.
func (ri *RootImporter) importNamed(t il.Type) (il.Type, error) {
	var declaring il.Type

	name := ""

	switch tt := t.(type) {
	case *il.TypeDefinition:
		name = tt.Name
		if tt.DeclaringType != nil {
			declaring = tt.DeclaringType
		}
	case *il.TypeRef:
		name = tt.Name
		if tt.DeclaringType != nil {
			declaring = tt.DeclaringType
		}
	}

	if declaring != nil {
		resolved, err := ri.ImportType(declaring)
		if err != nil {
			return nil, err
		}

		if local := ri.local(resolved); local != nil {
			nested := local.FindNestedType(name)
			if nested == nil {
				return nil, missingMember(local, name)
			}

			return nested, nil
		}
	}

	return ri.module.ImportType(t), nil
}

// ImportField resolves a field reference into the target module.
func (ri *RootImporter) ImportField(f il.Field) (il.Field, error) {
	if f == nil {
		return nil, nil
	}

	return cached(ri.fields, f, func() (il.Field, error) { return ri.resolveField(f) })
}

func (ri *RootImporter) resolveField(f il.Field) (il.Field, error) {
	_, generic := f.Owner().(*il.GenericInstanceType)

	if !generic {
		target, ok, err := ri.registry.TargetField(f)
		if err != nil {
			return nil, err
		}

		if ok {
			return target, nil
		}
	}

	owner, err := ri.ImportType(f.Owner())
	if err != nil {
		return nil, err
	}

	if local := ri.local(owner); local != nil {
		def := local.FindField(f.MemberName())
		if def == nil {
			return nil, missingMember(local, f.MemberName())
		}

		if generic {
			return &il.FieldRef{Name: def.Name, Type: def.Type, DeclaringType: owner}, nil
		}

		return def, nil
	}

	fieldType, err := ri.ImportType(f.FieldType())
	if err != nil {
		return nil, err
	}

	return &il.FieldRef{Name: f.MemberName(), Type: fieldType, DeclaringType: owner}, nil
}

// ImportMethod resolves a method reference into the target module.
func (ri *RootImporter) ImportMethod(m il.Method) (il.Method, error) {
	if m == nil {
		return nil, nil
	}

	return cached(ri.methods, m, func() (il.Method, error) { return ri.resolveMethod(m) })
}

func (ri *RootImporter) resolveMethod(m il.Method) (il.Method, error) {
	if gi, ok := m.(*il.GenericInstanceMethod); ok {
		element, err := ri.ImportMethod(gi.Element)
		if err != nil {
			return nil, err
		}

		args, err := ri.importTypes(gi.Args)
		if err != nil {
			return nil, err
		}

		return &il.GenericInstanceMethod{Element: element, Args: args}, nil
	}

	_, generic := m.Owner().(*il.GenericInstanceType)

	if !generic {
		target, ok, err := ri.registry.TargetMethod(m)
		if err != nil {
			return nil, err
		}

		if ok {
			return target, nil
		}
	}

	owner, err := ri.ImportType(m.Owner())
	if err != nil {
		return nil, err
	}

	ret, err := ri.ImportType(m.ReturnType())
	if err != nil {
		return nil, err
	}

	params, err := ri.importTypes(m.ParameterTypes())
	if err != nil {
		return nil, err
	}

	ref := &il.MethodRef{
		Name:              m.MemberName(),
		DeclaringType:     owner,
		Return:            ret,
		Parameters:        params,
		HasThis:           m.Instance(),
		Arity:             m.GenericArity(),
		CallingConvention: callingConvention(m),
	}

	local := ri.local(owner)
	if local == nil {
		return ref, nil
	}

	def := local.FindMethod(ref.Name, il.SignatureOf(ref))
	if def == nil {
		return nil, missingMember(local, ref.Name+il.SignatureOf(ref))
	}

	if generic {
		ref.Return = def.Return
		ref.Parameters = def.ParameterTypes()
		ref.CallingConvention = def.CallingConvention

		return ref, nil
	}

	return def, nil
}

func (ri *RootImporter) importTypes(types []il.Type) ([]il.Type, error) {
	if types == nil {
		return nil, nil
	}

	out := make([]il.Type, len(types))
	for i, t := range types {
		imported, err := ri.ImportType(t)
		if err != nil {
			return nil, err
		}

		out[i] = imported
	}

	return out, nil
}

// local returns the definition behind t when it lives in the target module.
func (ri *RootImporter) local(t il.Type) *il.TypeDefinition {
	def, ok := il.ElementType(t).(*il.TypeDefinition)
	if !ok || def.Module != ri.module {
		return nil
	}

	return def
}

func callingConvention(m il.Method) il.CallingConvention {
	switch mm := m.(type) {
	case *il.MethodDefinition:
		return mm.CallingConvention
	case *il.MethodRef:
		return mm.CallingConvention
	default:
		return il.CallDefault
	}
}

func missingMember(owner *il.TypeDefinition, member string) error {
	return diagnostic.Internal("missing_expected_member",
		"could not find expected member %s on %s", member, owner.FullName())
}
