package cloning

import (
	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
)

// Scope maps the owned items of one source body region onto one target body.
// A broadcast clones the same source region into several target bodies, so
// a source variable or instruction has one target per scope.
type Scope struct {
	index  int
	name   string
	source *il.MethodBody

	// body is the cloner creating the target body, noParent when fixed is set.
	body  ID
	fixed *il.MethodDefinition
	// spliced scopes insert into an existing body rather than filling a new one.
	spliced bool

	variables    map[*il.VariableDefinition]ID
	instructions map[*il.Instruction]ID
	// pinned maps source instructions outside the region to existing targets.
	pinned map[*il.Instruction]*il.Instruction
}

func newScope(name string, source *il.MethodBody, body ID, fixed *il.MethodDefinition) *Scope {
	return &Scope{
		name:         name,
		source:       source,
		body:         body,
		fixed:        fixed,
		spliced:      fixed != nil,
		variables:    make(map[*il.VariableDefinition]ID),
		instructions: make(map[*il.Instruction]ID),
		pinned:       make(map[*il.Instruction]*il.Instruction),
	}
}

// Name describes the scope for diagnostics.
func (s *Scope) Name() string { return s.name }

// Body returns the target body of the scope, creating it when needed.
func (s *Scope) Body(r *Registry) (*il.MethodBody, error) {
	method := s.fixed
	if method == nil {
		c, err := r.Get(s.body)
		if err != nil {
			return nil, err
		}

		if err := c.Materialize(r); err != nil {
			return nil, err
		}

		target, err := c.Target()
		if err != nil {
			return nil, err
		}

		method = target.(*il.MethodDefinition)
	}

	if method.Body == nil {
		return nil, diagnostic.Internal("scope_without_body", "scope %s has no target body", s.name)
	}

	return method.Body, nil
}

func (s *Scope) addVariable(v *il.VariableDefinition, id ID) { s.variables[v] = id }

func (s *Scope) addInstruction(ins *il.Instruction, id ID) { s.instructions[ins] = id }

// pin resolves source to an instruction already present in the target body.
func (s *Scope) pin(source, target *il.Instruction) { s.pinned[source] = target }

// Variable returns the target of a source local of this scope.
func (s *Scope) Variable(r *Registry, v *il.VariableDefinition) (*il.VariableDefinition, error) {
	id, ok := s.variables[v]
	if !ok {
		return nil, diagnostic.Internal("variable_not_cloned",
			"local %s has no clone in scope %s", v, s.name)
	}

	if err := r.materialize(id); err != nil {
		return nil, err
	}

	target, err := r.cloners[id].Target()
	if err != nil {
		return nil, err
	}

	return target.(*il.VariableDefinition), nil
}

// Instruction returns the target of a source instruction of this scope.
func (s *Scope) Instruction(r *Registry, ins *il.Instruction) (*il.Instruction, error) {
	if target, ok := s.pinned[ins]; ok {
		return target, nil
	}

	id, ok := s.instructions[ins]
	if !ok {
		return nil, diagnostic.Internal("instruction_not_cloned",
			"instruction %s has no clone in scope %s", ins, s.name)
	}

	if err := r.materialize(id); err != nil {
		return nil, err
	}

	target, err := r.cloners[id].Target()
	if err != nil {
		return nil, err
	}

	return target.(*il.Instruction), nil
}

// This returns the this parameter of the target body.
func (s *Scope) This(r *Registry) (*il.ParameterDefinition, error) {
	body, err := s.Body(r)
	if err != nil {
		return nil, err
	}

	if body.This == nil {
		return nil, diagnostic.Internal("this_in_static_body",
			"this used in scope %s whose target is static", s.name)
	}

	return body.This, nil
}

// finish fixes up branch encodings and offsets of the target body. A spliced
// body also takes the stack depth and local initialization the region needs.
func (s *Scope) finish(r *Registry) error {
	body, err := s.Body(r)
	if err != nil {
		return err
	}

	if s.spliced {
		body.MaxStack = max(body.MaxStack, s.source.MaxStack)
		body.InitLocals = body.InitLocals || s.source.InitLocals
		body.ExpandShortBranches()
	} else {
		body.ComputeOffsets()
	}

	return nil
}
