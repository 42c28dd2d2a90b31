package cloning

import (
	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
)

// ID is the stable arena index of a cloner inside its registry.
type ID int

// noParent marks cloners whose target is attached to nothing that is cloned.
const noParent ID = -1

// Stage is the invocation slot of a cloner. Every cloner of a stage may rely
// on the targets of earlier stages being complete.
type Stage int

const (
	_ Stage = iota // skip zero value, use it as the invalid stage

	StageGenericParameter
	StageType
	StageVariable
	StageField
	StageSignature
	StageParameter
	StageOverride
	StageProperty
	StageEvent
	StageBody
	StageInstruction
	StageExceptionHandler
	StageCustomAttribute

	// stageTotal is the number of stages plus one.
	stageTotal
)

var stageNames = [...]string{
	StageGenericParameter: "generic-parameter",
	StageType:             "type",
	StageVariable:         "variable",
	StageField:            "field",
	StageSignature:        "signature",
	StageParameter:        "parameter",
	StageOverride:         "override",
	StageProperty:         "property",
	StageEvent:            "event",
	StageBody:             "body",
	StageInstruction:      "instruction",
	StageExceptionHandler: "exception-handler",
	StageCustomAttribute:  "custom-attribute",
}

// String returns the stage name.
func (s Stage) String() string {
	if s <= 0 || s >= stageTotal {
		return "Stage(?)"
	}

	return stageNames[s]
}

// Cloner pairs one source item with the target reconstructed from it.
//
// Materialize creates the bare target and attaches it to its owner; it runs
// at most once and first materializes the parent. Clone copies the rest of
// the source data into the target; it runs once, after Materialize.
type Cloner interface {
	ID() ID
	Parent() ID
	Kind() il.ItemKind
	Stage() Stage
	Source() il.Item
	// Target returns the materialized target, or an internal error before that.
	Target() (il.Item, error)
	IsMaterialized() bool
	IsCloned() bool

	Materialize(r *Registry) error
	Clone(r *Registry) error

	bind(id ID)
}

// core holds the state every cloner shares.
type core[S il.Item, T il.Item] struct {
	id     ID
	parent ID
	source S
	target T

	materialized bool
	cloned       bool
}

func newCore[S il.Item, T il.Item](source S, parent ID) core[S, T] {
	return core[S, T]{id: noParent, parent: parent, source: source}
}

func (c *core[S, T]) ID() ID               { return c.id }
func (c *core[S, T]) Parent() ID           { return c.parent }
func (c *core[S, T]) Source() il.Item      { return c.source }
func (c *core[S, T]) IsMaterialized() bool { return c.materialized }
func (c *core[S, T]) IsCloned() bool       { return c.cloned }
func (c *core[S, T]) bind(id ID)           { c.id = id }

// Target returns the materialized target.
func (c *core[S, T]) Target() (il.Item, error) {
	t, err := c.typedTarget()
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (c *core[S, T]) typedTarget() (T, error) {
	if !c.materialized {
		var zero T
		return zero, diagnostic.Internal("target_not_materialized",
			"target of cloner %d (%T) read before it was created", c.id, c.source)
	}

	return c.target, nil
}

// materialize creates the target once, after the parent's target exists.
func (c *core[S, T]) materialize(r *Registry, create func() (T, error)) error {
	if c.materialized {
		return nil
	}

	if c.parent != noParent {
		if err := r.materialize(c.parent); err != nil {
			return err
		}
	}

	target, err := create()
	if err != nil {
		return err
	}

	c.target = target
	c.materialized = true

	return nil
}

// begin guards Clone: the target must exist and cloning happens once.
func (c *core[S, T]) begin() error {
	if !c.materialized {
		return diagnostic.Internal("clone_before_materialize",
			"cloner %d (%T) invoked before its target exists", c.id, c.source)
	}

	if c.cloned {
		return diagnostic.Internal("clone_twice", "cloner %d (%T) invoked twice", c.id, c.source)
	}

	return nil
}

func (c *core[S, T]) done() { c.cloned = true }
