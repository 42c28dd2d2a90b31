package il

import "mixin-cloner/internal/common"

// Access is the way an instruction touches a local variable or an argument.
type Access int

const (
	AccessLoad Access = iota
	AccessLoadAddress
	AccessStore
)

// The largest slot index the embedded and short-inline forms can encode.
const (
	maxEmbeddedSlot    = 3
	maxShortInlineSlot = 255
)

var implicitLocals = map[Code]struct {
	access Access
	index  int
}{
	Ldloc_0.Code: {AccessLoad, 0},
	Ldloc_1.Code: {AccessLoad, 1},
	Ldloc_2.Code: {AccessLoad, 2},
	Ldloc_3.Code: {AccessLoad, 3},
	Stloc_0.Code: {AccessStore, 0},
	Stloc_1.Code: {AccessStore, 1},
	Stloc_2.Code: {AccessStore, 2},
	Stloc_3.Code: {AccessStore, 3},
}

var explicitLocals = map[Code]Access{
	Ldloc_S.Code:  AccessLoad,
	Ldloc.Code:    AccessLoad,
	Ldloca_S.Code: AccessLoadAddress,
	Ldloca.Code:   AccessLoadAddress,
	Stloc_S.Code:  AccessStore,
	Stloc.Code:    AccessStore,
}

var implicitArgs = map[Code]int{
	Ldarg_0.Code: 0,
	Ldarg_1.Code: 1,
	Ldarg_2.Code: 2,
	Ldarg_3.Code: 3,
}

var explicitArgs = map[Code]Access{
	Ldarg_S.Code:  AccessLoad,
	Ldarg.Code:    AccessLoad,
	Ldarga_S.Code: AccessLoadAddress,
	Ldarga.Code:   AccessLoadAddress,
	Starg_S.Code:  AccessStore,
	Starg.Code:    AccessStore,
}

// VariableSlot reports how ins accesses a local and which slot it addresses.
// Embedded forms (ldloc.0 … stloc.3) carry no operand; their slot comes from the opcode.
func VariableSlot(ins *Instruction) (access Access, index int, ok bool) {
	if implicit, found := implicitLocals[ins.OpCode.Code]; found {
		return implicit.access, implicit.index, true
	}

	if access, found := explicitLocals[ins.OpCode.Code]; found {
		if v, isVar := ins.Operand.(*VariableDefinition); isVar {
			return access, v.Index, true
		}
	}

	return 0, 0, false
}

// VariableOperand returns the local ins addresses in body, or nil.
func VariableOperand(body *MethodBody, ins *Instruction) *VariableDefinition {
	if v, isVar := ins.Operand.(*VariableDefinition); isVar {
		return v
	}

	_, index, ok := VariableSlot(ins)
	if !ok || index >= len(body.Variables) {
		return nil
	}

	return body.Variables[index]
}

// EncodeVariable picks the shortest encoding that addresses v with the given access.
// Slots 0–3 use the embedded forms, slots up to 255 the short-inline forms,
// anything above the long forms.
func EncodeVariable(access Access, v *VariableDefinition) (OpCode, Operand) {
	index := v.Index

	switch access {
	case AccessLoad:
		switch {
		case common.IsInRange(0, index, maxEmbeddedSlot):
			return [...]OpCode{Ldloc_0, Ldloc_1, Ldloc_2, Ldloc_3}[index], nil
		case common.IsInRange(0, index, maxShortInlineSlot):
			return Ldloc_S, v
		default:
			return Ldloc, v
		}

	case AccessStore:
		switch {
		case common.IsInRange(0, index, maxEmbeddedSlot):
			return [...]OpCode{Stloc_0, Stloc_1, Stloc_2, Stloc_3}[index], nil
		case common.IsInRange(0, index, maxShortInlineSlot):
			return Stloc_S, v
		default:
			return Stloc, v
		}

	default:
		if common.IsInRange(0, index, maxShortInlineSlot) {
			return Ldloca_S, v
		}

		return Ldloca, v
	}
}

// ArgumentSlot reports how ins accesses an argument and which slot it addresses.
// Slot 0 of an instance method is this.
func ArgumentSlot(body *MethodBody, ins *Instruction) (access Access, index int, ok bool) {
	if index, found := implicitArgs[ins.OpCode.Code]; found {
		return AccessLoad, index, true
	}

	access, found := explicitArgs[ins.OpCode.Code]
	if !found {
		return 0, 0, false
	}

	p, isParam := ins.Operand.(*ParameterDefinition)
	if !isParam {
		return 0, 0, false
	}

	if p.IsThis() {
		return access, 0, true
	}

	if body != nil && body.This != nil {
		return access, p.Index + 1, true
	}

	return access, p.Index, true
}

// ArgumentOperand returns the parameter ins addresses in body, or nil.
func ArgumentOperand(body *MethodBody, ins *Instruction) *ParameterDefinition {
	if p, isParam := ins.Operand.(*ParameterDefinition); isParam {
		return p
	}

	_, index, ok := ArgumentSlot(body, ins)
	if !ok {
		return nil
	}

	if body.This != nil {
		if index == 0 {
			return body.This
		}

		index--
	}

	if body.Method == nil || index >= len(body.Method.Parameters) {
		return nil
	}

	return body.Method.Parameters[index]
}

// IsLoadThis reports whether ins pushes the this pointer of body.
func IsLoadThis(body *MethodBody, ins *Instruction) bool {
	if body == nil || body.This == nil {
		return false
	}

	access, _, ok := ArgumentSlot(body, ins)

	return ok && access == AccessLoad && ArgumentOperand(body, ins) == body.This
}
