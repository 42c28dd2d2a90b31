package cloning

import (
	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
)

// variableCloner clones a local into the target body of its scope.
type variableCloner struct {
	core[*il.VariableDefinition, *il.VariableDefinition]
	scope    *Scope
	importer *RootImporter
}

func newVariableCloner(source *il.VariableDefinition, scope *Scope, importer *RootImporter) *variableCloner {
	return &variableCloner{
		core:     newCore[*il.VariableDefinition, *il.VariableDefinition](source, scope.body),
		scope:    scope,
		importer: importer,
	}
}

func (c *variableCloner) Kind() il.ItemKind { return il.KindVariable }
func (c *variableCloner) Stage() Stage      { return StageVariable }

func (c *variableCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.VariableDefinition, error) {
		body, err := c.scope.Body(r)
		if err != nil {
			return nil, err
		}

		v := il.NewVariableDefinition(nil)
		v.Pinned = c.source.Pinned
		body.AddVariable(v)

		return v, nil
	})
}

func (c *variableCloner) Clone(_ *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	varType, err := c.importer.ImportType(c.source.Type)
	if err != nil {
		return err
	}

	c.target.Type = varType
	c.done()

	return nil
}

// instructionCloner clones an instruction into the target body of its scope.
// Targets are placed in source order: appended to a new body, or inserted
// after anchor when the scope splices into an existing body.
type instructionCloner struct {
	core[*il.Instruction, *il.Instruction]
	scope    *Scope
	importer *RootImporter

	// previous is the cloner of the preceding instruction of the region.
	previous ID
	anchor   *il.Instruction
}

func newInstructionCloner(source *il.Instruction, scope *Scope, previous ID, anchor *il.Instruction, importer *RootImporter) *instructionCloner {
	return &instructionCloner{
		core:     newCore[*il.Instruction, *il.Instruction](source, scope.body),
		scope:    scope,
		importer: importer,
		previous: previous,
		anchor:   anchor,
	}
}

func (c *instructionCloner) Kind() il.ItemKind { return il.KindInstruction }
func (c *instructionCloner) Stage() Stage      { return StageInstruction }

func (c *instructionCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.Instruction, error) {
		anchor := c.anchor

		if c.previous != noParent {
			prev, err := targetOfID[*il.Instruction](r, c.previous)
			if err != nil {
				return nil, err
			}

			anchor = prev
		}

		body, err := c.scope.Body(r)
		if err != nil {
			return nil, err
		}

		ins := il.Create(c.source.OpCode, nil)

		if !c.scope.spliced {
			body.Append(ins)
			return ins, nil
		}

		if anchor == nil {
			return nil, diagnostic.Internal("splice_without_anchor",
				"instruction %s of scope %s has no anchor", c.source, c.scope.name)
		}

		if err := body.InsertAfter(anchor, ins); err != nil {
			return nil, diagnostic.Internal("splice_anchor_missing", "scope %s: %v", c.scope.name, err)
		}

		return ins, nil
	})
}

func (c *instructionCloner) Clone(r *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	src := c.source

	if access, _, ok := il.VariableSlot(src); ok {
		v := il.VariableOperand(c.scope.source, src)
		if v == nil {
			return diagnostic.Internal("variable_slot_out_of_range",
				"%s addresses a local that does not exist", src)
		}

		target, err := c.scope.Variable(r, v)
		if err != nil {
			return err
		}

		c.target.OpCode, c.target.Operand = il.EncodeVariable(access, target)
		c.done()

		return nil
	}

	operand, err := c.operand(r, src.Operand)
	if err != nil {
		return err
	}

	c.target.Operand = operand
	c.done()

	return nil
}

// operand rewrites one source operand. Every operand kind is handled
// explicitly; anything else is rejected.
func (c *instructionCloner) operand(r *Registry, op il.Operand) (il.Operand, error) {
	switch kind := il.Classify(op); kind {
	case il.OperandNone, il.OperandByte, il.OperandSByte, il.OperandInt32, il.OperandInt64,
		il.OperandFloat32, il.OperandFloat64, il.OperandString:
		return op, nil

	case il.OperandInstruction:
		return c.scope.Instruction(r, op.(*il.Instruction))

	case il.OperandInstructions:
		labels := op.(il.Labels)
		out := make(il.Labels, len(labels))

		for i, label := range labels {
			target, err := c.scope.Instruction(r, label)
			if err != nil {
				return nil, err
			}

			out[i] = target
		}

		return out, nil

	case il.OperandField:
		return c.importer.ImportField(op.(il.Field))

	case il.OperandMethod:
		return c.importer.ImportMethod(op.(il.Method))

	case il.OperandType:
		return c.importer.ImportType(op.(il.Type))

	case il.OperandParameter:
		p := op.(*il.ParameterDefinition)
		if p.IsThis() {
			return c.scope.This(r)
		}

		target, ok, err := r.TargetParameter(p)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, diagnostic.Internal("parameter_not_cloned",
				"parameter %s used in scope %s has no clone", p.Name, c.scope.name)
		}

		return target, nil

	case il.OperandVariable:
		return c.scope.Variable(r, op.(*il.VariableDefinition))

	case il.OperandCallSite:
		return nil, diagnostic.UnsupportedOperand("callsite_operand",
			"%s: native call sites cannot be cloned", c.source.OpCode)

	default:
		return nil, diagnostic.UnsupportedOperand("unknown_operand",
			"%s: operand of type %T (%s) is not supported", c.source.OpCode, op, kind)
	}
}

// exceptionHandlerCloner clones a handler with its boundaries mapped into
// the same scope.
type exceptionHandlerCloner struct {
	core[*il.ExceptionHandler, *il.ExceptionHandler]
	scope    *Scope
	importer *RootImporter
}

func newExceptionHandlerCloner(source *il.ExceptionHandler, scope *Scope, importer *RootImporter) *exceptionHandlerCloner {
	return &exceptionHandlerCloner{
		core:     newCore[*il.ExceptionHandler, *il.ExceptionHandler](source, scope.body),
		scope:    scope,
		importer: importer,
	}
}

func (c *exceptionHandlerCloner) Kind() il.ItemKind { return il.KindExceptionHandler }
func (c *exceptionHandlerCloner) Stage() Stage      { return StageExceptionHandler }

func (c *exceptionHandlerCloner) Materialize(r *Registry) error {
	return c.materialize(r, func() (*il.ExceptionHandler, error) {
		body, err := c.scope.Body(r)
		if err != nil {
			return nil, err
		}

		h := &il.ExceptionHandler{HandlerType: c.source.HandlerType}
		body.ExceptionHandlers = append(body.ExceptionHandlers, h)

		return h, nil
	})
}

func (c *exceptionHandlerCloner) Clone(r *Registry) error {
	if err := c.begin(); err != nil {
		return err
	}

	src, dst := c.source, c.target

	boundaries := []struct {
		from *il.Instruction
		to   **il.Instruction
	}{
		{src.TryStart, &dst.TryStart},
		{src.TryEnd, &dst.TryEnd},
		{src.FilterStart, &dst.FilterStart},
		{src.HandlerStart, &dst.HandlerStart},
		{src.HandlerEnd, &dst.HandlerEnd},
	}

	for _, b := range boundaries {
		if b.from == nil {
			continue
		}

		target, err := c.scope.Instruction(r, b.from)
		if err != nil {
			return err
		}

		*b.to = target
	}

	catchType, err := c.importer.ImportType(src.CatchType)
	if err != nil {
		return err
	}

	dst.CatchType = catchType
	c.done()

	return nil
}
