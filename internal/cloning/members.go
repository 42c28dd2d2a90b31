package cloning

import (
	"slices"

	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
)

// targetOfID returns the typed target of the cloner with the given ID.
func targetOfID[T il.Item](r *Registry, id ID) (T, error) {
	var zero T

	c, err := r.Get(id)
	if err != nil {
		return zero, err
	}

	if err := c.Materialize(r); err != nil {
		return zero, err
	}

	target, err := c.Target()
	if err != nil {
		return zero, err
	}

	typed, ok := target.(T)
	if !ok {
		return zero, diagnostic.Internal("target_kind_mismatch",
			"target of cloner %d is a %T, want %T", id, target, zero)
	}

	return typed, nil
}

// typeCloner clones a nested type, or extends the root target type.
type typeCloner struct {
	core[*il.TypeDefinition, *il.TypeDefinition]
	importer *RootImporter
	// root is the existing target of the root source type.
	root *il.TypeDefinition
}

func newTypeCloner(source *il.TypeDefinition, parent ID, root *il.TypeDefinition, importer *RootImporter) *typeCloner {
	return &typeCloner{
		core:     newCore[*il.TypeDefinition, *il.TypeDefinition](source, parent),
		importer: importer,
		root:     root,
	}
}

func (c *typeCloner) Kind() il.ItemKind { return il.KindType }
func (c *typeCloner) Stage() Stage      { return StageType }

func (c *typeCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.TypeDefinition, error) {
		if c.root != nil {
			return c.root, nil
		}

		owner, err := targetOfID[*il.TypeDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		nested := il.NewTypeDefinition("", c.source.Name, c.source.Attributes, nil)
		owner.AddNestedType(nested)

		return nested, nil
	})
}

func (c *typeCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	if c.root == nil {
		base, err := c.importer.ImportType(c.source.BaseType)
		if err != nil {
			return err
		}

		c.target.BaseType = base
		c.target.ValueType = c.source.ValueType
		c.target.PackingSize = c.source.PackingSize
		c.target.ClassSize = c.source.ClassSize
	}

	for _, iface := range c.source.Interfaces {
		imported, err := c.importer.ImportType(iface)
		if err != nil {
			return err
		}

		if !implements(c.target, imported) {
			c.target.Interfaces = append(c.target.Interfaces, imported)
		}
	}

	c.done()

	return nil
}

func implements(t *il.TypeDefinition, iface il.Type) bool {
	want, _ := il.ReferenceKey(iface)

	return slices.ContainsFunc(t.Interfaces, func(existing il.Type) bool {
		got, _ := il.ReferenceKey(existing)
		return got == want
	})
}

// genericParameterCloner clones a type-level generic parameter.
type genericParameterCloner struct {
	core[*il.GenericParameter, *il.GenericParameter]
	importer *RootImporter
}

func newGenericParameterCloner(source *il.GenericParameter, parent ID, importer *RootImporter) *genericParameterCloner {
	return &genericParameterCloner{
		core:     newCore[*il.GenericParameter, *il.GenericParameter](source, parent),
		importer: importer,
	}
}

func (c *genericParameterCloner) Kind() il.ItemKind { return il.KindGenericParameter }
func (c *genericParameterCloner) Stage() Stage      { return StageGenericParameter }

func (c *genericParameterCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.GenericParameter, error) {
		owner, err := targetOfID[*il.TypeDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		gp := &il.GenericParameter{Name: c.source.Name}
		owner.AddGenericParameter(gp)

		return gp, nil
	})
}

func (c *genericParameterCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	c.target.Attributes = c.source.Attributes

	constraints, err := c.importer.importTypes(c.source.Constraints)
	if err != nil {
		return err
	}

	c.target.Constraints = constraints
	c.done()

	return nil
}

// fieldCloner clones a field.
type fieldCloner struct {
	core[*il.FieldDefinition, *il.FieldDefinition]
	importer *RootImporter
}

func newFieldCloner(source *il.FieldDefinition, parent ID, importer *RootImporter) *fieldCloner {
	return &fieldCloner{
		core:     newCore[*il.FieldDefinition, *il.FieldDefinition](source, parent),
		importer: importer,
	}
}

func (c *fieldCloner) Kind() il.ItemKind { return il.KindField }
func (c *fieldCloner) Stage() Stage      { return StageField }

func (c *fieldCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.FieldDefinition, error) {
		owner, err := targetOfID[*il.TypeDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		f := il.NewFieldDefinition(c.source.Name, c.source.Attributes, nil)
		owner.AddField(f)

		return f, nil
	})
}

func (c *fieldCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	fieldType, err := c.importer.ImportType(c.source.Type)
	if err != nil {
		return err
	}

	src, dst := c.source, c.target
	dst.Type = fieldType
	dst.Constant = src.Constant
	dst.HasConstant = src.HasConstant
	dst.InitialValue = slices.Clone(src.InitialValue)
	dst.Offset = src.Offset
	dst.MarshalInfo = cloneMarshalInfo(src.MarshalInfo)

	c.done()

	return nil
}

func cloneMarshalInfo(info *il.MarshalInfo) *il.MarshalInfo {
	if info == nil {
		return nil
	}

	clone := *info

	return &clone
}

// propertyCloner clones a property and links its accessors.
type propertyCloner struct {
	core[*il.PropertyDefinition, *il.PropertyDefinition]
	importer *RootImporter
}

func newPropertyCloner(source *il.PropertyDefinition, parent ID, importer *RootImporter) *propertyCloner {
	return &propertyCloner{
		core:     newCore[*il.PropertyDefinition, *il.PropertyDefinition](source, parent),
		importer: importer,
	}
}

func (c *propertyCloner) Kind() il.ItemKind { return il.KindProperty }
func (c *propertyCloner) Stage() Stage      { return StageProperty }

func (c *propertyCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.PropertyDefinition, error) {
		owner, err := targetOfID[*il.TypeDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		p := &il.PropertyDefinition{Name: c.source.Name, Attributes: c.source.Attributes}
		owner.AddProperty(p)

		return p, nil
	})
}

func (c *propertyCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	propertyType, err := c.importer.ImportType(c.source.Type)
	if err != nil {
		return err
	}

	c.target.Type = propertyType
	c.target.Constant = c.source.Constant
	c.target.HasConstant = c.source.HasConstant

	if c.target.GetMethod, err = c.importer.accessor(c.source.GetMethod); err != nil {
		return err
	}

	if c.target.SetMethod, err = c.importer.accessor(c.source.SetMethod); err != nil {
		return err
	}

	if c.target.OtherMethods, err = c.importer.accessors(c.source.OtherMethods); err != nil {
		return err
	}

	c.done()

	return nil
}

// eventCloner clones an event and links its accessors.
type eventCloner struct {
	core[*il.EventDefinition, *il.EventDefinition]
	importer *RootImporter
}

func newEventCloner(source *il.EventDefinition, parent ID, importer *RootImporter) *eventCloner {
	return &eventCloner{
		core:     newCore[*il.EventDefinition, *il.EventDefinition](source, parent),
		importer: importer,
	}
}

func (c *eventCloner) Kind() il.ItemKind { return il.KindEvent }
func (c *eventCloner) Stage() Stage      { return StageEvent }

func (c *eventCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.EventDefinition, error) {
		owner, err := targetOfID[*il.TypeDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		e := &il.EventDefinition{Name: c.source.Name, Attributes: c.source.Attributes}
		owner.AddEvent(e)

		return e, nil
	})
}

func (c *eventCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	eventType, err := c.importer.ImportType(c.source.EventType)
	if err != nil {
		return err
	}

	c.target.EventType = eventType

	if c.target.AddMethod, err = c.importer.accessor(c.source.AddMethod); err != nil {
		return err
	}

	if c.target.RemoveMethod, err = c.importer.accessor(c.source.RemoveMethod); err != nil {
		return err
	}

	if c.target.InvokeMethod, err = c.importer.accessor(c.source.InvokeMethod); err != nil {
		return err
	}

	if c.target.OtherMethods, err = c.importer.accessors(c.source.OtherMethods); err != nil {
		return err
	}

	c.done()

	return nil
}

// accessor resolves a property or event accessor to a method of the target module.
func (ri *RootImporter) accessor(m *il.MethodDefinition) (*il.MethodDefinition, error) {
	if m == nil {
		return nil, nil
	}

	imported, err := ri.ImportMethod(m)
	if err != nil {
		return nil, err
	}

	def, ok := imported.(*il.MethodDefinition)
	if !ok {
		return nil, diagnostic.Internal("accessor_not_local",
			"accessor %s resolved outside the target module", m)
	}

	return def, nil
}

func (ri *RootImporter) accessors(methods []*il.MethodDefinition) ([]*il.MethodDefinition, error) {
	if methods == nil {
		return nil, nil
	}

	out := make([]*il.MethodDefinition, len(methods))
	for i, m := range methods {
		def, err := ri.accessor(m)
		if err != nil {
			return nil, err
		}

		out[i] = def
	}

	return out, nil
}

// customAttributeCloner clones an attribute onto the clone of its provider.
type customAttributeCloner struct {
	core[*il.CustomAttribute, *il.CustomAttribute]
	importer *RootImporter
}

func newCustomAttributeCloner(source *il.CustomAttribute, parent ID, importer *RootImporter) *customAttributeCloner {
	return &customAttributeCloner{
		core:     newCore[*il.CustomAttribute, *il.CustomAttribute](source, parent),
		importer: importer,
	}
}

func (c *customAttributeCloner) Kind() il.ItemKind { return il.KindCustomAttribute }
func (c *customAttributeCloner) Stage() Stage      { return StageCustomAttribute }

func (c *customAttributeCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.CustomAttribute, error) {
		provider, err := targetOfID[il.AttributeProvider](r, c.parent)
		if err != nil {
			return nil, err
		}

		ca := &il.CustomAttribute{}
		provider.AddCustomAttribute(ca)

		return ca, nil
	})
}

func (c *customAttributeCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	ctor, err := c.importer.ImportMethod(c.source.Constructor)
	if err != nil {
		return err
	}

	c.target.Constructor = ctor

	if c.target.Args, err = c.importer.attributeArguments(c.source.Args); err != nil {
		return err
	}

	if c.target.Fields, err = c.importer.namedArguments(c.source.Fields); err != nil {
		return err
	}

	if c.target.Properties, err = c.importer.namedArguments(c.source.Properties); err != nil {
		return err
	}

	c.done()

	return nil
}

func (ri *RootImporter) attributeArgument(arg il.CustomAttributeArgument) (il.CustomAttributeArgument, error) {
	argType, err := ri.ImportType(arg.Type)
	if err != nil {
		return arg, err
	}

	out := il.CustomAttributeArgument{Type: argType, Value: arg.Value}

	switch v := arg.Value.(type) {
	case il.Type:
		// typeof(T)
		if out.Value, err = ri.ImportType(v); err != nil {
			return arg, err
		}
	case []il.CustomAttributeArgument:
		if out.Value, err = ri.attributeArguments(v); err != nil {
			return arg, err
		}
	}

	return out, nil
}

func (ri *RootImporter) attributeArguments(args []il.CustomAttributeArgument) ([]il.CustomAttributeArgument, error) {
	if args == nil {
		return nil, nil
	}

	out := make([]il.CustomAttributeArgument, len(args))
	for i, arg := range args {
		cloned, err := ri.attributeArgument(arg)
		if err != nil {
			return nil, err
		}

		out[i] = cloned
	}

	return out, nil
}

func (ri *RootImporter) namedArguments(args []il.CustomAttributeNamedArgument) ([]il.CustomAttributeNamedArgument, error) {
	if args == nil {
		return nil, nil
	}

	out := make([]il.CustomAttributeNamedArgument, len(args))
	for i, arg := range args {
		cloned, err := ri.attributeArgument(arg.Argument)
		if err != nil {
			return nil, err
		}

		out[i] = il.CustomAttributeNamedArgument{Name: arg.Name, Argument: cloned}
	}

	return out, nil
}
