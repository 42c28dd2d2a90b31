package il

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInstructionNotInBody is returned when an anchor instruction is not part of a body.
var ErrInstructionNotInBody = errors.New("instruction is not part of the method body")

// MethodBody holds the locals, instruction stream and exception handlers of a method.
type MethodBody struct {
	Method            *MethodDefinition
	MaxStack          int
	InitLocals        bool
	This              *ParameterDefinition
	Variables         []*VariableDefinition
	Instructions      []*Instruction
	ExceptionHandlers []*ExceptionHandler
}

// NewMethodBody creates an empty body and attaches it to m.
// Instance methods get an implicit this parameter typed as the declaring type.
func NewMethodBody(m *MethodDefinition) *MethodBody {
	body := &MethodBody{Method: m, MaxStack: 8, InitLocals: true}
	if m.Instance() {
		var thisType Type
		if m.DeclaringType != nil {
			thisType = m.DeclaringType
			if m.DeclaringType.ValueType {
				thisType = &ByRefType{Element: m.DeclaringType}
			}
		}

		body.This = &ParameterDefinition{Name: "this", Index: -1, Type: thisType, Method: m}
	}

	m.Body = body

	return body
}

// AddVariable appends a local at the next slot.
func (b *MethodBody) AddVariable(v *VariableDefinition) {
	v.Index = len(b.Variables)
	b.Variables = append(b.Variables, v)
}

// Append appends instructions at the end of the stream.
func (b *MethodBody) Append(ins ...*Instruction) {
	b.Instructions = append(b.Instructions, ins...)
}

// IndexOf returns the position of ins in the stream, or -1.
func (b *MethodBody) IndexOf(ins *Instruction) int {
	return slices.Index(b.Instructions, ins)
}

// InsertAfter inserts ins immediately after anchor.
func (b *MethodBody) InsertAfter(anchor, ins *Instruction) error {
	i := b.IndexOf(anchor)
	if i < 0 {
		return fmt.Errorf("insert after %s: %w", anchor, ErrInstructionNotInBody)
	}

	b.Instructions = slices.Insert(b.Instructions, i+1, ins)

	return nil
}

// InsertBefore inserts ins immediately before anchor.
func (b *MethodBody) InsertBefore(anchor, ins *Instruction) error {
	i := b.IndexOf(anchor)
	if i < 0 {
		return fmt.Errorf("insert before %s: %w", anchor, ErrInstructionNotInBody)
	}

	b.Instructions = slices.Insert(b.Instructions, i, ins)

	return nil
}

// ComputeOffsets assigns byte offsets to every instruction.
func (b *MethodBody) ComputeOffsets() {
	offset := 0
	for _, ins := range b.Instructions {
		ins.Offset = offset
		offset += ins.Size()
	}
}

// ExpandShortBranches rewrites short branch forms to their long forms so that
// inserted instructions cannot push a target out of short-branch range.
func (b *MethodBody) ExpandShortBranches() {
	for _, ins := range b.Instructions {
		if long, ok := longBranch[ins.OpCode.Code]; ok {
			ins.OpCode = long
		}
	}

	b.ComputeOffsets()
}

// VariableDefinition is a local variable slot.
type VariableDefinition struct {
	Index  int
	Type   Type
	Pinned bool
}

// NewVariableDefinition creates a detached local of the given type.
func NewVariableDefinition(varType Type) *VariableDefinition {
	return &VariableDefinition{Type: varType}
}

func (v *VariableDefinition) ItemKind() ItemKind { return KindVariable }
func (v *VariableDefinition) operand()           {}

// String renders the variable as V_n.
func (v *VariableDefinition) String() string { return fmt.Sprintf("V_%d", v.Index) }

// Instruction is one opcode with its optional operand.
type Instruction struct {
	OpCode  OpCode
	Operand Operand
	Offset  int
}

// Create builds an instruction.
func Create(op OpCode, operand Operand) *Instruction {
	return &Instruction{OpCode: op, Operand: operand}
}

func (i *Instruction) ItemKind() ItemKind { return KindInstruction }
func (i *Instruction) operand()           {}

// Size returns the encoded size of the instruction in bytes.
func (i *Instruction) Size() int {
	size := i.OpCode.Size()

	switch i.OpCode.Encoding {
	case InlineNone:
	case ShortInlineBrTarget, ShortInlineI, ShortInlineVar, ShortInlineArg:
		size++
	case InlineVar, InlineArg:
		size += 2
	case InlineI8, InlineR:
		size += 8
	case InlineSwitch:
		labels, _ := i.Operand.(Labels)
		size += 4 + 4*len(labels)
	default:
		size += 4
	}

	return size
}

// String renders the instruction as IL_xxxx: opcode operand.
func (i *Instruction) String() string {
	s := fmt.Sprintf("IL_%04x: %s", i.Offset, i.OpCode.Name)
	if i.Operand == nil {
		return s
	}

	switch op := i.Operand.(type) {
	case *Instruction:
		return fmt.Sprintf("%s IL_%04x", s, op.Offset)
	case Labels:
		return fmt.Sprintf("%s (%d labels)", s, len(op))
	case String:
		return fmt.Sprintf("%s %q", s, string(op))
	case Type:
		return s + " " + op.FullName()
	case Member:
		return s + " " + MemberFullName(op)
	default:
		return fmt.Sprintf("%s %v", s, op)
	}
}

// ExceptionHandler is a protected region with its handler block.
// End boundaries are exclusive; a nil end means the end of the body.
type ExceptionHandler struct {
	HandlerType  ExceptionHandlerType
	TryStart     *Instruction
	TryEnd       *Instruction
	FilterStart  *Instruction
	HandlerStart *Instruction
	HandlerEnd   *Instruction
	CatchType    Type
}

func (h *ExceptionHandler) ItemKind() ItemKind { return KindExceptionHandler }

// Boundaries returns every instruction boundary of the handler, nil entries included.
func (h *ExceptionHandler) Boundaries() []*Instruction {
	return []*Instruction{h.TryStart, h.TryEnd, h.FilterStart, h.HandlerStart, h.HandlerEnd}
}
