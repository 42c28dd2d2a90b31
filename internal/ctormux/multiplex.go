package ctormux

import (
	"slices"

	"mixin-cloner/il"
	"mixin-cloner/internal/common"
	"mixin-cloner/internal/diagnostic"
)

// Role tells which kind of constructor the boundary call reaches.
type Role int

const (
	_ Role = iota
	// RoleInitializing constructors call a constructor of the base type.
	RoleInitializing
	// RoleForwarding constructors call another constructor of their own type.
	RoleForwarding
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleInitializing:
		return "initializing"
	case RoleForwarding:
		return "forwarding"
	default:
		return common.UnknownStr
	}
}

// Result is the classification of one constructor.
type Result struct {
	Constructor *il.MethodDefinition
	Role        Role
	// Boundary is the index of the base or forwarding constructor call.
	Boundary int

	InitInstructions         []*il.Instruction
	ConstructionInstructions []*il.Instruction

	InitVariables         []*il.VariableDefinition
	ConstructionVariables []*il.VariableDefinition

	InitHandlers         []*il.ExceptionHandler
	ConstructionHandlers []*il.ExceptionHandler
}

// BoundaryCall returns the base or forwarding constructor call.
func (r *Result) BoundaryCall() *il.Instruction {
	return r.Constructor.Body.Instructions[r.Boundary]
}

// Leading returns the load of this that opens the constructor.
func (r *Result) Leading() *il.Instruction {
	return r.Constructor.Body.Instructions[0]
}

// HasInitialization reports whether there is code before the boundary to broadcast.
func (r *Result) HasInitialization() bool {
	return !common.IsEmpty(r.InitInstructions)
}

// HasConstructionLogic reports whether the construction region does anything
// beyond returning.
func (r *Result) HasConstructionLogic() bool {
	if len(r.ConstructionVariables) > 0 || len(r.ConstructionHandlers) > 0 {
		return true
	}

	for _, ins := range r.ConstructionInstructions {
		if ins.OpCode != il.Nop && ins.OpCode != il.Ret {
			return true
		}
	}

	return false
}

// region is the partition an instruction index falls into.
type region int

const (
	regionOutside region = iota
	regionLeading
	regionInit
	regionBoundary
	regionConstruction
)

// state is the scanning state of the multiplexer.
type state int

const (
	stateStart state = iota
	stateScanningInit
	stateFoundBoundary
	stateScanningConstruction
)

// Multiplex classifies the instructions, locals and handlers of ctor.
func Multiplex(ctor *il.MethodDefinition) (*Result, error) {
	m, err := locate(ctor)
	if err != nil {
		return nil, err
	}

	if err := m.checkBranches(); err != nil {
		return nil, err
	}

	if err := m.classifyVariables(); err != nil {
		return nil, err
	}

	if err := m.classifyHandlers(); err != nil {
		return nil, err
	}

	return m.result, nil
}

// Locate finds the role, the leading load of this and the boundary call of
// ctor without classifying its locals and handlers. Constructors that only
// receive code are located, never split, so their control flow may cross
// the boundary freely.
func Locate(ctor *il.MethodDefinition) (*Result, error) {
	m, err := locate(ctor)
	if err != nil {
		return nil, err
	}

	return m.result, nil
}

func locate(ctor *il.MethodDefinition) (*multiplexer, error) {
	if ctor == nil || !ctor.IsConstructor() || ctor.DeclaringType == nil {
		return nil, diagnostic.Internal("ctor_not_constructor", "%v is not an instance constructor", ctor)
	}

	if !ctor.HasBody() || common.IsEmpty(ctor.Body.Instructions) {
		return nil, diagnostic.Configuration("ctor_no_body", "constructor %s has no body", ctor)
	}

	m := &multiplexer{
		ctor:   ctor,
		body:   ctor.Body,
		result: &Result{Constructor: ctor, Boundary: -1},
	}

	if err := m.scan(); err != nil {
		return nil, err
	}

	return m, nil
}

type multiplexer struct {
	ctor   *il.MethodDefinition
	body   *il.MethodBody
	result *Result
}

func (m *multiplexer) scan() error {
	name := m.ctor.String()
	st := stateStart

	for i, ins := range m.body.Instructions {
		switch st {
		case stateStart:
			if !il.IsLoadThis(m.body, ins) {
				return diagnostic.Configuration("ctor_first_not_this",
					"constructor %s must start by loading this, found %s", name, ins.OpCode)
			}

			st = stateScanningInit

		case stateScanningInit:
			if role := m.boundaryRole(ins); role != 0 {
				m.result.Role = role
				m.result.Boundary = i
				st = stateFoundBoundary

				continue
			}

			m.result.InitInstructions = append(m.result.InitInstructions, ins)

		case stateFoundBoundary, stateScanningConstruction:
			m.result.ConstructionInstructions = append(m.result.ConstructionInstructions, ins)
			st = stateScanningConstruction
		}
	}

	if m.result.Boundary < 0 {
		return diagnostic.Configuration("ctor_no_boundary",
			"constructor %s never calls a base or sibling constructor", name)
	}

	return nil
}

// boundaryRole returns the role a call to a base or own constructor gives,
// or zero for any other instruction.
func (m *multiplexer) boundaryRole(ins *il.Instruction) Role {
	if ins.OpCode != il.Call {
		return 0
	}

	callee, ok := ins.Operand.(il.Method)
	if !ok || callee.MemberName() != ".ctor" || !callee.Instance() || callee.Owner() == nil {
		return 0
	}

	calleeKey, ok := il.KeyOf(il.ElementType(callee.Owner()))
	if !ok {
		return 0
	}

	if own, _ := il.KeyOf(m.ctor.DeclaringType); own == calleeKey {
		return RoleForwarding
	}

	if base := m.ctor.DeclaringType.BaseType; base != nil {
		if baseKey, _ := il.KeyOf(il.ElementType(base)); baseKey == calleeKey {
			return RoleInitializing
		}
	}

	return 0
}

func (m *multiplexer) regionOf(index int) region {
	switch {
	case index < 0:
		return regionOutside
	case index == 0:
		return regionLeading
	case index < m.result.Boundary:
		return regionInit
	case index == m.result.Boundary:
		return regionBoundary
	default:
		return regionConstruction
	}
}

// checkBranches rejects jumps between the two regions.
func (m *multiplexer) checkBranches() error {
	for i, ins := range m.body.Instructions {
		var targets []*il.Instruction

		switch op := ins.Operand.(type) {
		case *il.Instruction:
			targets = []*il.Instruction{op}
		case il.Labels:
			targets = op
		default:
			continue
		}

		from := m.regionOf(i)
		for _, target := range targets {
			to := m.regionOf(m.body.IndexOf(target))
			if to == regionOutside {
				return diagnostic.Internal("branch_target_missing",
					"constructor %s branches to an instruction outside its body at %s", m.ctor, ins)
			}

			if to != from {
				return diagnostic.Configuration("ctor_branch_crosses_boundary",
					"constructor %s branches across its base constructor call at %s", m.ctor, ins)
			}
		}
	}

	return nil
}

// classifyVariables puts every local used before the boundary in the
// initialization set and the rest in the construction set.
func (m *multiplexer) classifyVariables() error {
	init := make(map[*il.VariableDefinition]struct{})
	construction := make(map[*il.VariableDefinition]struct{})

	for i, ins := range m.body.Instructions {
		v := il.VariableOperand(m.body, ins)
		if v == nil {
			continue
		}

		switch m.regionOf(i) {
		case regionInit:
			init[v] = struct{}{}
		case regionConstruction:
			construction[v] = struct{}{}
		}
	}

	for _, v := range m.body.Variables {
		_, inInit := init[v]
		_, inConstruction := construction[v]

		switch {
		case inInit && inConstruction:
			return diagnostic.Configuration("ctor_variable_crosses_boundary",
				"constructor %s uses local %s on both sides of its base constructor call", m.ctor, v)
		case inInit:
			m.result.InitVariables = append(m.result.InitVariables, v)
		default:
			m.result.ConstructionVariables = append(m.result.ConstructionVariables, v)
		}
	}

	return nil
}

// classifyHandlers assigns each protected region to the partition holding it.
// Exclusive ends may sit on the first instruction of the next region.
func (m *multiplexer) classifyHandlers() error {
	for _, h := range m.body.ExceptionHandlers {
		start := m.regionOf(m.body.IndexOf(h.TryStart))
		if start != regionInit && start != regionConstruction {
			return diagnostic.Configuration("ctor_handler_crosses_boundary",
				"constructor %s protects its base constructor call", m.ctor)
		}

		for _, boundary := range []*il.Instruction{h.TryEnd, h.FilterStart, h.HandlerStart, h.HandlerEnd} {
			if boundary == nil {
				if start == regionInit {
					return diagnostic.Configuration("ctor_handler_crosses_boundary",
						"constructor %s has a handler running past its base constructor call", m.ctor)
				}

				continue
			}

			idx := m.body.IndexOf(boundary)
			within := m.regionOf(idx) == start
			endsAtBoundary := start == regionInit && idx == m.result.Boundary &&
				slices.Contains([]*il.Instruction{h.TryEnd, h.HandlerEnd}, boundary)

			if !within && !endsAtBoundary {
				return diagnostic.Configuration("ctor_handler_crosses_boundary",
					"constructor %s has a handler crossing its base constructor call", m.ctor)
			}
		}

		if start == regionInit {
			m.result.InitHandlers = append(m.result.InitHandlers, h)
		} else {
			m.result.ConstructionHandlers = append(m.result.ConstructionHandlers, h)
		}
	}

	return nil
}
