package cloning

import (
	"go.uber.org/zap"

	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
	"mixin-cloner/options"
)

// gatherer walks the source root and registers one cloner per clonable item.
// The instance default constructor and the type initializer of the root are
// set aside for the broadcaster.
type gatherer struct {
	registry *Registry
	importer *RootImporter
	cfg      options.Config
	logger   *zap.Logger
	diags    *diagnostic.Diagnostics

	sourceRoot *il.TypeDefinition
	targetRoot *il.TypeDefinition
	rootID     ID

	// parent is the cloner owning the items being visited.
	parent ID
	// scope, previous and anchor place the owned items of the body being visited.
	scope    *Scope
	previous ID
	anchor   *il.Instruction

	ctor  *il.MethodDefinition
	cctor *il.MethodDefinition
	// taken holds the method names helpers must not reuse.
	taken map[string]struct{}
}

func newGatherer(r *Registry, importer *RootImporter, cfg options.Config, logger *zap.Logger, diags *diagnostic.Diagnostics,
	source, target *il.TypeDefinition,
) *gatherer {
	return &gatherer{
		registry:   r,
		importer:   importer,
		cfg:        cfg,
		logger:     logger,
		diags:      diags,
		sourceRoot: source,
		targetRoot: target,
		rootID:     noParent,
		parent:     noParent,
		previous:   noParent,
	}
}

// gather registers the cloners of the whole source root.
func (g *gatherer) gather() error {
	if err := il.Dispatch(g.sourceRoot, g); err != nil {
		return err
	}

	if g.ctor != nil {
		if err := g.broadcastConstructor(g.ctor); err != nil {
			return err
		}
	}

	if g.cctor != nil {
		if err := g.mergeTypeInitializer(g.cctor); err != nil {
			return err
		}
	}

	return nil
}

// add registers c and descends into the children of its source.
func (g *gatherer) add(c Cloner, children ...il.Item) (ID, error) {
	id, err := g.registry.Add(c)
	if err != nil {
		return noParent, err
	}

	if len(children) == 0 {
		return id, nil
	}

	saved := g.parent
	g.parent = id

	defer func() { g.parent = saved }()

	for _, child := range children {
		if err := il.Dispatch(child, g); err != nil {
			return noParent, err
		}
	}

	return id, nil
}

// skipped reports whether the item carries the skip attribute.
func (g *gatherer) skipped(item il.AttributeProvider, name string) bool {
	if !hasAttribute(item, g.cfg.SkipAttribute) {
		return false
	}

	g.diags.AddInfo("member_skipped", "member carries "+g.cfg.SkipAttribute, g.sourceRoot.FullName(), name)
	g.logger.Debug("skipping member", zap.String("member", name))

	return true
}

// danglingAccessor reports whether one of the accessors of the property or
// event owner is skipped. The owner is then left out as well.
func (g *gatherer) danglingAccessor(owner string, accessors ...*il.MethodDefinition) bool {
	for _, m := range accessors {
		if m == nil || !hasAttribute(m, g.cfg.SkipAttribute) {
			continue
		}

		g.diags.AddWarning("accessor_skipped",
			"accessor "+m.Name+" carries "+g.cfg.SkipAttribute+", so the member is not cloned",
			g.sourceRoot.FullName(), owner)
		g.logger.Debug("skipping member with skipped accessor", zap.String("member", owner))

		return true
	}

	return false
}

// sharedInterfaces warns about root interfaces the target already implements.
// The interface is listed once and the cloned members sit beside the target's
// own implementation.
func (g *gatherer) sharedInterfaces(root *il.TypeDefinition) {
	for _, iface := range root.Interfaces {
		for _, existing := range g.targetRoot.Interfaces {
			if existing.FullName() != iface.FullName() {
				continue
			}

			g.diags.AddWarning("interface_already_implemented",
				"target already implements "+iface.FullName(), g.sourceRoot.FullName(), g.targetRoot.FullName())

			break
		}
	}
}

func attributes(item il.AttributeProvider) []il.Item {
	list := item.CustomAttributeList()
	out := make([]il.Item, len(list))

	for i, ca := range list {
		out[i] = ca
	}

	return out
}

func (g *gatherer) VisitType(t *il.TypeDefinition) error {
	if len(t.SecurityDeclarations) > 0 {
		return diagnostic.NotImplemented("type_security", "type %s has security declarations", t)
	}

	if t == g.sourceRoot {
		if len(t.GenericParameters) > 0 {
			return diagnostic.Configuration("root_open_generic", "root type %s has open generic parameters", t)
		}

		// root attributes describe the mixin itself and stay behind
		var children []il.Item
		for _, child := range il.Children(t) {
			if child.ItemKind() != il.KindCustomAttribute {
				children = append(children, child)
			}
		}

		id, err := g.add(newTypeCloner(t, noParent, g.targetRoot, g.importer))
		if err != nil {
			return err
		}

		g.rootID = id
		g.sharedInterfaces(t)

		saved := g.parent
		g.parent = id

		defer func() { g.parent = saved }()

		for _, child := range children {
			if err := il.Dispatch(child, g); err != nil {
				return err
			}
		}

		return nil
	}

	if g.skipped(t, t.FullName()) {
		return nil
	}

	_, err := g.add(newTypeCloner(t, g.parent, nil, g.importer), il.Children(t)...)

	return err
}

func (g *gatherer) VisitGenericParameter(gp *il.GenericParameter) error {
	if gp.IsMethodParameter() {
		return diagnostic.NotImplemented("generic_method", "generic parameter %s of a method", gp.Name)
	}

	_, err := g.add(newGenericParameterCloner(gp, g.parent, g.importer), attributes(gp)...)

	return err
}

func (g *gatherer) VisitField(f *il.FieldDefinition) error {
	if g.skipped(f, il.MemberFullName(f)) {
		return nil
	}

	_, err := g.add(newFieldCloner(f, g.parent, g.importer), attributes(f)...)

	return err
}

func (g *gatherer) VisitMethod(m *il.MethodDefinition) error {
	name := m.String()

	if g.skipped(m, name) {
		return nil
	}

	if m.DeclaringType == g.sourceRoot {
		switch {
		case m.IsConstructor() && len(m.Parameters) > 0:
			return diagnostic.Configuration("root_ctor_parameters",
				"constructor %s takes parameters; only a default constructor can be broadcast", name)
		case m.IsConstructor():
			g.ctor = m
			return nil
		case m.IsTypeInitializer():
			g.cctor = m
			return nil
		}
	}

	if err := checkMethod(m); err != nil {
		return err
	}

	id, err := g.add(newMethodCloner(m, g.parent, g.importer))
	if err != nil {
		return err
	}

	return g.gatherMethod(m, id)
}

// checkMethod rejects method shapes the engine does not clone.
func checkMethod(m *il.MethodDefinition) error {
	name := m.String()

	switch {
	case m.PInvoke != nil || m.Attributes.Has(il.MethodPInvokeImpl):
		return diagnostic.NotImplemented("pinvoke_method", "method %s is a platform invoke", name)
	case len(m.SecurityDeclarations) > 0 || m.Attributes.Has(il.MethodHasSecurity):
		return diagnostic.NotImplemented("method_security", "method %s has security declarations", name)
	case len(m.GenericParameters) > 0:
		return diagnostic.NotImplemented("generic_method", "method %s has generic parameters", name)
	}

	return nil
}

// gatherMethod registers the parameters, body and attributes of the method
// whose signature cloner is id.
func (g *gatherer) gatherMethod(m *il.MethodDefinition, id ID) error {
	saved := g.parent
	g.parent = id

	defer func() { g.parent = saved }()

	for _, p := range m.Parameters {
		if err := il.Dispatch(p, g); err != nil {
			return err
		}
	}

	if len(m.Overrides) > 0 {
		if _, err := g.registry.Add(newOverrideCloner(m, id, g.importer)); err != nil {
			return err
		}
	}

	if m.HasBody() {
		bodyID, err := g.registry.Add(newBodyCloner(m, id))
		if err != nil {
			return err
		}

		scope := g.registry.newScope(newScope(m.String(), m.Body, bodyID, nil))
		if err := g.region(scope, m.Body.Variables, m.Body.Instructions, m.Body.ExceptionHandlers, nil); err != nil {
			return err
		}
	}

	for _, ca := range m.CustomAttributes {
		if err := il.Dispatch(ca, g); err != nil {
			return err
		}
	}

	return nil
}

// region registers the owned items of one body region into scope. The first
// instruction of a spliced scope goes right after anchor.
func (g *gatherer) region(scope *Scope, variables []*il.VariableDefinition, instructions []*il.Instruction,
	handlers []*il.ExceptionHandler, anchor *il.Instruction,
) error {
	g.scope, g.previous, g.anchor = scope, noParent, anchor

	defer func() { g.scope, g.previous, g.anchor = nil, noParent, nil }()

	for _, v := range variables {
		if err := il.Dispatch(v, g); err != nil {
			return err
		}
	}

	for _, ins := range instructions {
		if err := il.Dispatch(ins, g); err != nil {
			return err
		}
	}

	for _, h := range handlers {
		if err := il.Dispatch(h, g); err != nil {
			return err
		}
	}

	return nil
}

func (g *gatherer) VisitParameter(p *il.ParameterDefinition) error {
	_, err := g.add(newParameterCloner(p, g.parent, g.importer), attributes(p)...)
	return err
}

func (g *gatherer) VisitVariable(v *il.VariableDefinition) error {
	if g.scope == nil {
		return diagnostic.Internal("variable_outside_body", "local %s visited outside a body", v)
	}

	id, err := g.registry.Add(newVariableCloner(v, g.scope, g.importer))
	if err != nil {
		return err
	}

	g.scope.addVariable(v, id)

	return nil
}

func (g *gatherer) VisitInstruction(ins *il.Instruction) error {
	if g.scope == nil {
		return diagnostic.Internal("instruction_outside_body", "instruction %s visited outside a body", ins)
	}

	switch kind := il.Classify(ins.Operand); kind {
	case il.OperandCallSite:
		return diagnostic.UnsupportedOperand("callsite_operand",
			"%s in %s: native call sites cannot be cloned", ins.OpCode, g.scope.name)
	case il.OperandUnknown:
		return diagnostic.UnsupportedOperand("unknown_operand",
			"%s in %s: operand of type %T is not supported", ins.OpCode, g.scope.name, ins.Operand)
	}

	id, err := g.registry.Add(newInstructionCloner(ins, g.scope, g.previous, g.anchor, g.importer))
	if err != nil {
		return err
	}

	g.scope.addInstruction(ins, id)
	g.previous = id

	return nil
}

func (g *gatherer) VisitExceptionHandler(h *il.ExceptionHandler) error {
	if g.scope == nil {
		return diagnostic.Internal("handler_outside_body", "exception handler visited outside a body")
	}

	_, err := g.registry.Add(newExceptionHandlerCloner(h, g.scope, g.importer))

	return err
}

func (g *gatherer) VisitProperty(p *il.PropertyDefinition) error {
	name := il.MemberFullName(p)

	if g.skipped(p, name) {
		return nil
	}

	if len(p.Parameters) > 0 {
		return diagnostic.NotImplemented("indexed_property", "property %s has parameters", name)
	}

	if g.danglingAccessor(name, p.GetMethod, p.SetMethod) || g.danglingAccessor(name, p.OtherMethods...) {
		return nil
	}

	_, err := g.add(newPropertyCloner(p, g.parent, g.importer), attributes(p)...)

	return err
}

func (g *gatherer) VisitEvent(e *il.EventDefinition) error {
	name := il.MemberFullName(e)

	if g.skipped(e, name) {
		return nil
	}

	if g.danglingAccessor(name, e.AddMethod, e.RemoveMethod, e.InvokeMethod) || g.danglingAccessor(name, e.OtherMethods...) {
		return nil
	}

	_, err := g.add(newEventCloner(e, g.parent, g.importer), attributes(e)...)

	return err
}

func (g *gatherer) VisitCustomAttribute(ca *il.CustomAttribute) error {
	_, err := g.add(newCustomAttributeCloner(ca, g.parent, g.importer))
	return err
}
