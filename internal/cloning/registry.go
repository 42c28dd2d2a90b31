package cloning

import (
	"go.uber.org/zap"

	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
)

// Registry owns every cloner of one cloning operation.
// Cloners are added before Seal and invoked once after it.
type Registry struct {
	cloners []Cloner
	sealed  bool
	invoked bool

	// targets maps the definition key of every named source item to its cloner.
	targets    map[il.Key]ID
	parameters map[*il.ParameterDefinition]ID
	scopes     []*Scope
	finishers  []func() error

	logger *zap.Logger
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		targets:    make(map[il.Key]ID),
		parameters: make(map[*il.ParameterDefinition]ID),
		logger:     logger,
	}
}

// Add registers a cloner and assigns its ID.
// Named source items may be registered only once.
func (r *Registry) Add(c Cloner) (ID, error) {
	if r.sealed {
		return noParent, diagnostic.Internal("registry_sealed",
			"cannot add a cloner for %T after the registry was sealed", c.Source())
	}

	id := ID(len(r.cloners))

	if key, ok := r.keyFor(c); ok {
		if _, exists := r.targets[key]; exists {
			return noParent, diagnostic.Internal("duplicate_cloner", "%s is already being cloned", key)
		}

		r.targets[key] = id
	}

	if p, ok := c.Source().(*il.ParameterDefinition); ok {
		r.parameters[p] = id
	}

	c.bind(id)
	r.cloners = append(r.cloners, c)

	return id, nil
}

// keyFor returns the lookup key of a cloner. Bodies, synthesized helpers and
// owned items are not looked up by key.
func (r *Registry) keyFor(c Cloner) (il.Key, bool) {
	if k, ok := c.(interface{ lookupKey() (il.Key, bool) }); ok {
		return k.lookupKey()
	}

	return il.KeyOf(c.Source())
}

// Seal closes the registry for additions and opens it for lookups.
func (r *Registry) Seal() {
	r.sealed = true
	r.logger.Debug("registry sealed", zap.Int("cloners", len(r.cloners)), zap.Int("scopes", len(r.scopes)))
}

// IsSealed reports whether Seal was called.
func (r *Registry) IsSealed() bool { return r.sealed }

// CanInvokeCloners reports whether InvokeCloners may run: after Seal, and only once.
func (r *Registry) CanInvokeCloners() bool {
	return r.sealed && !r.invoked
}

// Len returns the number of registered cloners.
func (r *Registry) Len() int { return len(r.cloners) }

// Get returns the cloner with the given ID.
func (r *Registry) Get(id ID) (Cloner, error) {
	if id < 0 || int(id) >= len(r.cloners) {
		return nil, diagnostic.Internal("unknown_cloner", "no cloner with id %d", id)
	}

	return r.cloners[id], nil
}

// Cloners returns the cloners in creation order.
func (r *Registry) Cloners() []Cloner {
	return append([]Cloner(nil), r.cloners...)
}

// Stats counts cloners per stage. Method signatures and bodies are
// counted apart.
func (r *Registry) Stats() map[Stage]int {
	stats := make(map[Stage]int)
	for _, c := range r.cloners {
		stats[c.Stage()]++
	}

	return stats
}

// InvokeCloners materializes every target in creation order, then clones
// stage by stage, then runs the registered finishers. It refuses to run
// before Seal and more than once.
func (r *Registry) InvokeCloners() error {
	if !r.sealed {
		return diagnostic.Internal("registry_not_sealed", "cloners invoked before the registry was sealed")
	}

	if r.invoked {
		return diagnostic.Internal("registry_invoked", "cloners were already invoked")
	}

	r.invoked = true

	for _, c := range r.cloners {
		if err := c.Materialize(r); err != nil {
			return err
		}
	}

	byStage := make([][]Cloner, stageTotal)
	for _, c := range r.cloners {
		byStage[c.Stage()] = append(byStage[c.Stage()], c)
	}

	for stage := StageGenericParameter; stage < stageTotal; stage++ {
		if len(byStage[stage]) == 0 {
			continue
		}

		r.logger.Debug("invoking cloners", zap.Stringer("stage", stage), zap.Int("cloners", len(byStage[stage])))

		for _, c := range byStage[stage] {
			if err := c.Clone(r); err != nil {
				return err
			}
		}
	}

	for _, s := range r.scopes {
		if err := s.finish(r); err != nil {
			return err
		}
	}

	for _, finish := range r.finishers {
		if err := finish(); err != nil {
			return err
		}
	}

	return nil
}

// materialize creates the target of the cloner with the given ID.
func (r *Registry) materialize(id ID) error {
	c, err := r.Get(id)
	if err != nil {
		return err
	}

	return c.Materialize(r)
}

// afterInvoke registers work that runs once every cloner is complete.
func (r *Registry) afterInvoke(f func() error) {
	r.finishers = append(r.finishers, f)
}

// newScope registers a body scope.
func (r *Registry) newScope(s *Scope) *Scope {
	s.index = len(r.scopes)
	r.scopes = append(r.scopes, s)

	return s
}

func (r *Registry) lookup(item il.Item) (Cloner, bool, error) {
	if !r.sealed {
		return nil, false, diagnostic.Internal("registry_not_sealed",
			"clone target of %T looked up before the registry was sealed", item)
	}

	key, ok := il.KeyOf(item)
	if !ok {
		return nil, false, nil
	}

	id, ok := r.targets[key]
	if !ok {
		return nil, false, nil
	}

	c := r.cloners[id]
	if err := c.Materialize(r); err != nil {
		return nil, false, err
	}

	return c, true, nil
}

// targetOf looks up the target of a named source item and checks its type.
func targetOf[T il.Item](r *Registry, item il.Item) (T, bool, error) {
	var zero T

	c, ok, err := r.lookup(item)
	if err != nil || !ok {
		return zero, false, err
	}

	target, err := c.Target()
	if err != nil {
		return zero, false, err
	}

	typed, ok := target.(T)
	if !ok {
		return zero, false, diagnostic.Internal("target_kind_mismatch",
			"clone target of %T is a %T", item, target)
	}

	return typed, true, nil
}

// TargetType returns the clone of a source type, if it is being cloned.
func (r *Registry) TargetType(t il.Type) (*il.TypeDefinition, bool, error) {
	return targetOf[*il.TypeDefinition](r, t)
}

// TargetField returns the clone of a source field, if it is being cloned.
func (r *Registry) TargetField(f il.Field) (*il.FieldDefinition, bool, error) {
	return targetOf[*il.FieldDefinition](r, f)
}

// TargetMethod returns the clone of a source method, if it is being cloned.
func (r *Registry) TargetMethod(m il.Method) (*il.MethodDefinition, bool, error) {
	return targetOf[*il.MethodDefinition](r, m)
}

// TargetGenericParameter returns the clone of a source generic parameter.
func (r *Registry) TargetGenericParameter(g *il.GenericParameter) (*il.GenericParameter, bool, error) {
	return targetOf[*il.GenericParameter](r, g)
}

// TargetProperty returns the clone of a source property.
func (r *Registry) TargetProperty(p *il.PropertyDefinition) (*il.PropertyDefinition, bool, error) {
	return targetOf[*il.PropertyDefinition](r, p)
}

// TargetEvent returns the clone of a source event.
func (r *Registry) TargetEvent(e *il.EventDefinition) (*il.EventDefinition, bool, error) {
	return targetOf[*il.EventDefinition](r, e)
}

// TargetParameter returns the clone of a declared source parameter.
func (r *Registry) TargetParameter(p *il.ParameterDefinition) (*il.ParameterDefinition, bool, error) {
	if !r.sealed {
		return nil, false, diagnostic.Internal("registry_not_sealed",
			"clone target of parameter %s looked up before the registry was sealed", p.Name)
	}

	id, ok := r.parameters[p]
	if !ok {
		return nil, false, nil
	}

	if err := r.materialize(id); err != nil {
		return nil, false, err
	}

	target, err := r.cloners[id].Target()
	if err != nil {
		return nil, false, err
	}

	return target.(*il.ParameterDefinition), true, nil
}
