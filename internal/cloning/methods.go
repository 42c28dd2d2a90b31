package cloning

import (
	"mixin-cloner/il"
)

// methodCloner clones a method signature. A synthesized method takes its
// name and attributes from the cloner rather than from the source; it is
// never the clone target of the source method.
type methodCloner struct {
	core[*il.MethodDefinition, *il.MethodDefinition]
	importer *RootImporter

	synthesized bool
	name        string
	attributes  il.MethodAttributes
}

func newMethodCloner(source *il.MethodDefinition, parent ID, importer *RootImporter) *methodCloner {
	return &methodCloner{
		core:       newCore[*il.MethodDefinition, *il.MethodDefinition](source, parent),
		importer:   importer,
		name:       source.Name,
		attributes: source.Attributes,
	}
}

// newHelperCloner clones the signature of source into a new method with the given
// name and attributes, returning void and taking no parameters.
func newHelperCloner(source *il.MethodDefinition, parent ID, name string, attrs il.MethodAttributes, importer *RootImporter) *methodCloner {
	c := newMethodCloner(source, parent, importer)
	c.synthesized = true
	c.name = name
	c.attributes = attrs

	return c
}

func (c *methodCloner) Kind() il.ItemKind { return il.KindMethod }
func (c *methodCloner) Stage() Stage      { return StageSignature }

func (c *methodCloner) lookupKey() (il.Key, bool) {
	if c.synthesized {
		return il.Key{}, false
	}

	return il.KeyOf(c.source)
}

func (c *methodCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.MethodDefinition, error) {
		owner, err := targetOfID[*il.TypeDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		m := il.NewMethodDefinition(c.name, c.attributes, nil)
		owner.AddMethod(m)

		return m, nil
	})
}

func (c *methodCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	src, dst := c.source, c.target
	dst.ImplAttributes = src.ImplAttributes
	dst.CallingConvention = src.CallingConvention

	returnType, err := c.importer.ImportType(src.Return)
	if err != nil {
		return err
	}

	dst.Return = returnType

	c.done()

	return nil
}

// overrideCloner rewrites the explicit overrides of a cloned method. It runs
// after the parameter stage, when every cloned signature is complete and can
// be matched against.
type overrideCloner struct {
	core[*il.MethodDefinition, *il.MethodDefinition]
	importer *RootImporter
}

func newOverrideCloner(source *il.MethodDefinition, method ID, importer *RootImporter) *overrideCloner {
	return &overrideCloner{
		core:     newCore[*il.MethodDefinition, *il.MethodDefinition](source, method),
		importer: importer,
	}
}

func (c *overrideCloner) Kind() il.ItemKind { return il.KindMethod }
func (c *overrideCloner) Stage() Stage      { return StageOverride }

func (c *overrideCloner) lookupKey() (il.Key, bool) { return il.Key{}, false }

func (c *overrideCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.MethodDefinition, error) {
		return targetOfID[*il.MethodDefinition](r, c.parent)
	})
}

func (c *overrideCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	for _, o := range c.source.Overrides {
		imported, err := c.importer.ImportMethod(o)
		if err != nil {
			return err
		}

		c.target.Overrides = append(c.target.Overrides, imported)
	}

	c.done()

	return nil
}

// parameterCloner clones a declared parameter of a method.
type parameterCloner struct {
	core[*il.ParameterDefinition, *il.ParameterDefinition]
	importer *RootImporter
}

func newParameterCloner(source *il.ParameterDefinition, parent ID, importer *RootImporter) *parameterCloner {
	return &parameterCloner{
		core:     newCore[*il.ParameterDefinition, *il.ParameterDefinition](source, parent),
		importer: importer,
	}
}

func (c *parameterCloner) Kind() il.ItemKind { return il.KindParameter }
func (c *parameterCloner) Stage() Stage      { return StageParameter }

func (c *parameterCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.ParameterDefinition, error) {
		method, err := targetOfID[*il.MethodDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		p := il.NewParameterDefinition(c.source.Name, c.source.Attributes, nil)
		method.AddParameter(p)

		return p, nil
	})
}

func (c *parameterCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	paramType, err := c.importer.ImportType(c.source.Type)
	if err != nil {
		return err
	}

	c.target.Type = paramType
	c.target.Constant = c.source.Constant
	c.target.HasConstant = c.source.HasConstant
	c.target.MarshalInfo = cloneMarshalInfo(c.source.MarshalInfo)

	c.done()

	return nil
}

// bodyCloner creates the body of a cloned method. Its source and target are
// the methods owning the bodies.
type bodyCloner struct {
	core[*il.MethodDefinition, *il.MethodDefinition]
}

func newBodyCloner(source *il.MethodDefinition, method ID) *bodyCloner {
	return &bodyCloner{core: newCore[*il.MethodDefinition, *il.MethodDefinition](source, method)}
}

func (c *bodyCloner) Kind() il.ItemKind { return il.KindMethod }
func (c *bodyCloner) Stage() Stage      { return StageBody }

func (c *bodyCloner) lookupKey() (il.Key, bool) { return il.Key{}, false }

func (c *bodyCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.MethodDefinition, error) {
		method, err := targetOfID[*il.MethodDefinition](r, c.parent)
		if err != nil {
			return nil, err
		}

		il.NewMethodBody(method)

		return method, nil
	})
}

func (c *bodyCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	c.target.Body.MaxStack = c.source.Body.MaxStack
	c.target.Body.InitLocals = c.source.Body.InitLocals

	c.done()

	return nil
}
