package il

// ImportType returns a form of t usable from module m. Definitions of m are
// returned as-is, definitions of other modules become references, composite
// types are rebuilt around their imported elements and generic parameters
// are positional, so they are returned unchanged.
func (m *Module) ImportType(t Type) Type {
	switch tt := t.(type) {
	case nil:
		return nil
	case *TypeDefinition:
		if tt.Module == m {
			return tt
		}

		return m.typeRef(tt)
	case *TypeRef:
		if tt.ModuleID == m.MVID {
			if def := m.FindType(tt.FullName()); def != nil {
				return def
			}
		}

		return m.internRef(tt)
	case *ArrayType:
		return &ArrayType{Element: m.ImportType(tt.Element), Rank: tt.Rank}
	case *ByRefType:
		return &ByRefType{Element: m.ImportType(tt.Element)}
	case *PointerType:
		return &PointerType{Element: m.ImportType(tt.Element)}
	case *GenericInstanceType:
		return &GenericInstanceType{Element: m.ImportType(tt.Element), Args: m.importTypes(tt.Args)}
	default:
		return t
	}
}

// ImportField returns a form of f usable from module m.
func (m *Module) ImportField(f Field) Field {
	if f == nil {
		return nil
	}

	if def, ok := f.(*FieldDefinition); ok && def.DeclaringType != nil && def.DeclaringType.Module == m {
		return def
	}

	owner := m.ImportType(f.Owner())
	if local, ok := owner.(*TypeDefinition); ok && local.Module == m {
		if def := local.FindField(f.MemberName()); def != nil {
			return def
		}
	}

	return &FieldRef{Name: f.MemberName(), Type: m.ImportType(f.FieldType()), DeclaringType: owner}
}

// ImportMethod returns a form of mr usable from module m.
func (m *Module) ImportMethod(mr Method) Method {
	switch mt := mr.(type) {
	case nil:
		return nil
	case *GenericInstanceMethod:
		return &GenericInstanceMethod{Element: m.ImportMethod(mt.Element), Args: m.importTypes(mt.Args)}
	case *MethodDefinition:
		if mt.DeclaringType != nil && mt.DeclaringType.Module == m {
			return mt
		}
	}

	owner := m.ImportType(mr.Owner())
	if local, ok := owner.(*TypeDefinition); ok && local.Module == m {
		if def := local.FindMethod(mr.MemberName(), SignatureOf(mr)); def != nil {
			return def
		}
	}

	cc := CallDefault
	if def, ok := mr.(*MethodDefinition); ok {
		cc = def.CallingConvention
	} else if ref, ok := mr.(*MethodRef); ok {
		cc = ref.CallingConvention
	}

	return &MethodRef{
		Name:              mr.MemberName(),
		DeclaringType:     owner,
		Return:            m.ImportType(mr.ReturnType()),
		Parameters:        m.importTypes(mr.ParameterTypes()),
		HasThis:           mr.Instance(),
		Arity:             mr.GenericArity(),
		CallingConvention: cc,
	}
}

func (m *Module) importTypes(types []Type) []Type {
	if types == nil {
		return nil
	}

	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = m.ImportType(t)
	}

	return out
}

// typeRef builds the reference m uses for a foreign definition.
func (m *Module) typeRef(def *TypeDefinition) *TypeRef {
	ref := &TypeRef{
		Namespace: def.Namespace,
		Name:      def.Name,
		ModuleID:  def.Scope(),
		ValueType: def.ValueType,
	}

	if def.Module != nil {
		ref.ModuleName = def.Module.Name
	}

	if def.DeclaringType != nil {
		ref.DeclaringType = m.typeRef(def.DeclaringType)
	}

	return m.internRef(ref)
}

// internRef returns the single TypeRef m holds for the referenced type.
func (m *Module) internRef(ref *TypeRef) *TypeRef {
	key, _ := KeyOf(ref)

	if existing, ok := m.refs[key]; ok {
		return existing
	}

	if m.refs == nil {
		m.refs = make(map[Key]*TypeRef)
	}

	interned := *ref
	if ref.DeclaringType != nil {
		interned.DeclaringType = m.internRef(ref.DeclaringType)
	}

	m.refs[key] = &interned

	return &interned
}
