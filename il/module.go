package il

import (
	"strings"

	"github.com/google/uuid"
)

// Module is a loaded module: a named container of type definitions.
type Module struct {
	Name  string
	MVID  uuid.UUID
	Types []*TypeDefinition

	refs map[Key]*TypeRef
}

// NewModule creates an empty module with a fresh MVID.
func NewModule(name string) *Module {
	return &Module{Name: name, MVID: uuid.New()}
}

// AddType attaches a top-level type to the module.
func (m *Module) AddType(t *TypeDefinition) {
	t.Module = m
	t.adopt()
	m.Types = append(m.Types, t)
}

// FindType returns the type with the given full name, nested types included.
func (m *Module) FindType(fullName string) *TypeDefinition {
	outer, nested, _ := strings.Cut(fullName, "/")

	for _, t := range m.Types {
		if t.FullName() != outer {
			continue
		}

		if nested == "" {
			return t
		}

		return findNested(t, nested)
	}

	return nil
}

func findNested(t *TypeDefinition, path string) *TypeDefinition {
	name, rest, _ := strings.Cut(path, "/")

	n := t.FindNestedType(name)
	if n == nil || rest == "" {
		return n
	}

	return findNested(n, rest)
}

// AllTypes returns every type of the module, nested types after their owner.
func (m *Module) AllTypes() []*TypeDefinition {
	var out []*TypeDefinition

	var walk func(types []*TypeDefinition)
	walk = func(types []*TypeDefinition) {
		for _, t := range types {
			out = append(out, t)
			walk(t.NestedTypes)
		}
	}
	walk(m.Types)

	return out
}

// ModuleSet is the set of loaded modules references are resolved against.
type ModuleSet struct {
	modules map[uuid.UUID]*Module
	order   []*Module
}

// NewModuleSet creates a module set holding the given modules.
func NewModuleSet(modules ...*Module) *ModuleSet {
	s := &ModuleSet{modules: make(map[uuid.UUID]*Module)}
	for _, m := range modules {
		s.Add(m)
	}

	return s
}

// Add registers a module. Adding the same module twice is a no-op.
func (s *ModuleSet) Add(m *Module) {
	if _, ok := s.modules[m.MVID]; ok {
		return
	}

	s.modules[m.MVID] = m
	s.order = append(s.order, m)
}

// Module returns the module with the given MVID.
func (s *ModuleSet) Module(id uuid.UUID) (*Module, bool) {
	m, ok := s.modules[id]
	return m, ok
}

// FindType searches every module for a type by full name.
func (s *ModuleSet) FindType(fullName string) (*TypeDefinition, bool) {
	for _, m := range s.order {
		if t := m.FindType(fullName); t != nil {
			return t, true
		}
	}

	return nil, false
}

// ResolveType returns the definition behind a type reference, or nil.
// Generic instances resolve to their open definition.
func (s *ModuleSet) ResolveType(t Type) *TypeDefinition {
	switch tt := ElementType(t).(type) {
	case *TypeDefinition:
		return tt
	case *TypeRef:
		m, ok := s.modules[tt.ModuleID]
		if !ok {
			return nil
		}

		return m.FindType(tt.FullName())
	default:
		return nil
	}
}

// ResolveField returns the definition behind a field reference, or nil.
func (s *ModuleSet) ResolveField(f Field) *FieldDefinition {
	if def, ok := f.(*FieldDefinition); ok {
		return def
	}

	owner := s.ResolveType(f.Owner())
	if owner == nil {
		return nil
	}

	return owner.FindField(f.MemberName())
}

// ResolveMethod returns the definition behind a method reference, or nil.
// The signature is matched in open form.
func (s *ModuleSet) ResolveMethod(m Method) *MethodDefinition {
	if gi, ok := m.(*GenericInstanceMethod); ok {
		m = gi.Element
	}

	if def, ok := m.(*MethodDefinition); ok {
		return def
	}

	owner := s.ResolveType(m.Owner())
	if owner == nil {
		return nil
	}

	return owner.FindMethod(m.MemberName(), SignatureOf(m))
}
