package il_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixin-cloner/il"
)

func TestEncodeVariable(t *testing.T) {
	tests := []struct {
		name        string
		access      il.Access
		index       int
		wantOp      il.OpCode
		wantOperand bool
	}{
		{"embedded load", il.AccessLoad, 2, il.Ldloc_2, false},
		{"embedded store", il.AccessStore, 3, il.Stloc_3, false},
		{"short load", il.AccessLoad, 4, il.Ldloc_S, true},
		{"short store", il.AccessStore, 255, il.Stloc_S, true},
		{"long load", il.AccessLoad, 256, il.Ldloc, true},
		{"long store", il.AccessStore, 300, il.Stloc, true},
		{"short address", il.AccessLoadAddress, 0, il.Ldloca_S, true},
		{"long address", il.AccessLoadAddress, 1000, il.Ldloca, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &il.VariableDefinition{Index: tt.index}

			op, operand := il.EncodeVariable(tt.access, v)
			assert.Equal(t, tt.wantOp, op)

			if tt.wantOperand {
				assert.Same(t, v, operand)
			} else {
				assert.Nil(t, operand)
			}
		})
	}
}

func TestVariableSlot(t *testing.T) {
	v := &il.VariableDefinition{Index: 7}

	access, index, ok := il.VariableSlot(il.Create(il.Stloc_1, nil))
	require.True(t, ok)
	assert.Equal(t, il.AccessStore, access)
	assert.Equal(t, 1, index)

	access, index, ok = il.VariableSlot(il.Create(il.Ldloca_S, v))
	require.True(t, ok)
	assert.Equal(t, il.AccessLoadAddress, access)
	assert.Equal(t, 7, index)

	_, _, ok = il.VariableSlot(il.Create(il.Ldarg_0, nil))
	assert.False(t, ok)
}

func TestVariableOperand(t *testing.T) {
	lib := il.NewCoreLibrary()
	m := il.NewMethodDefinition("M", il.MethodStatic, lib.Void)
	body := il.NewMethodBody(m)
	first := il.NewVariableDefinition(lib.Int32)
	second := il.NewVariableDefinition(lib.String)
	body.AddVariable(first)
	body.AddVariable(second)

	assert.Same(t, second, il.VariableOperand(body, il.Create(il.Ldloc_1, nil)))
	assert.Same(t, first, il.VariableOperand(body, il.Create(il.Stloc_S, first)))
	assert.Nil(t, il.VariableOperand(body, il.Create(il.Ldloc_3, nil)))
}

func TestArgumentOperand(t *testing.T) {
	lib := il.NewCoreLibrary()
	owner := il.NewTypeDefinition("N", "T", il.TypePublic, lib.Object)
	lib.Module.AddType(owner)

	instance := il.NewMethodDefinition("I", il.MethodPublic, lib.Void)
	owner.AddMethod(instance)
	instance.AddParameter(il.NewParameterDefinition("a", il.ParamNone, lib.Int32))
	body := il.NewMethodBody(instance)

	require.NotNil(t, body.This)
	assert.Same(t, owner, body.This.Type)
	assert.Same(t, body.This, il.ArgumentOperand(body, il.Create(il.Ldarg_0, nil)))
	assert.Same(t, instance.Parameters[0], il.ArgumentOperand(body, il.Create(il.Ldarg_1, nil)))
	assert.Nil(t, il.ArgumentOperand(body, il.Create(il.Ldarg_2, nil)))
	assert.True(t, il.IsLoadThis(body, il.Create(il.Ldarg_0, nil)))
	assert.True(t, il.IsLoadThis(body, il.Create(il.Ldarg_S, body.This)))
	assert.False(t, il.IsLoadThis(body, il.Create(il.Ldarg_1, nil)))

	static := il.NewMethodDefinition("S", il.MethodPublic|il.MethodStatic, lib.Void)
	owner.AddMethod(static)
	static.AddParameter(il.NewParameterDefinition("a", il.ParamNone, lib.Int32))
	staticBody := il.NewMethodBody(static)

	assert.Nil(t, staticBody.This)
	assert.Same(t, static.Parameters[0], il.ArgumentOperand(staticBody, il.Create(il.Ldarg_0, nil)))
	assert.False(t, il.IsLoadThis(staticBody, il.Create(il.Ldarg_0, nil)))
}

func TestValueTypeThisIsByRef(t *testing.T) {
	lib := il.NewCoreLibrary()
	point := il.NewTypeDefinition("N", "Point", il.TypePublic|il.TypeSealed, lib.ValueType)
	point.ValueType = true
	lib.Module.AddType(point)

	m := il.NewMethodDefinition("Get", il.MethodPublic, lib.Int32)
	point.AddMethod(m)
	body := il.NewMethodBody(m)

	byRef, ok := body.This.Type.(*il.ByRefType)
	require.True(t, ok)
	assert.Same(t, point, byRef.Element)
}

func TestBodyLayout(t *testing.T) {
	lib := il.NewCoreLibrary()
	m := il.NewMethodDefinition("M", il.MethodStatic, lib.Void)
	body := il.NewMethodBody(m)

	ret := il.Create(il.Ret, nil)
	load := il.Create(il.Ldc_I4_1, nil)
	branch := il.Create(il.Brtrue_S, ret)
	body.Append(load, branch, ret)

	body.ComputeOffsets()
	assert.Equal(t, []int{0, 1, 3}, offsets(body))

	require.NoError(t, body.InsertAfter(load, il.Create(il.Nop, nil)))
	require.NoError(t, body.InsertBefore(load, il.Create(il.Nop, nil)))
	assert.Equal(t, 1, body.IndexOf(load))

	body.ExpandShortBranches()
	assert.Equal(t, il.Brtrue, branch.OpCode)
	assert.Same(t, ret, branch.Operand)
	assert.Equal(t, []int{0, 1, 2, 3, 8}, offsets(body))

	err := body.InsertAfter(il.Create(il.Nop, nil), il.Create(il.Nop, nil))
	require.ErrorIs(t, err, il.ErrInstructionNotInBody)
}

func TestInstructionSize(t *testing.T) {
	a, b := il.Create(il.Nop, nil), il.Create(il.Nop, nil)

	assert.Equal(t, 1, il.Create(il.Ret, nil).Size())
	assert.Equal(t, 2, il.Create(il.Ldc_I4_S, il.SByte(5)).Size())
	assert.Equal(t, 5, il.Create(il.Ldc_I4, il.Int32(500)).Size())
	assert.Equal(t, 9, il.Create(il.Ldc_I8, il.Int64(1)).Size())
	assert.Equal(t, 4, il.Create(il.Ldloc, &il.VariableDefinition{Index: 300}).Size())
	assert.Equal(t, 13, il.Create(il.Switch, il.Labels{a, b}).Size())
}

func TestOpCodeEncoding(t *testing.T) {
	tests := []struct {
		op       il.OpCode
		encoding il.OperandEncoding
		branch   bool
		size     int
	}{
		{il.Ldarg_S, il.ShortInlineArg, false, 2},
		{il.Br_S, il.ShortInlineBrTarget, true, 2},
		{il.Brtrue, il.InlineBrTarget, true, 5},
		{il.Switch, il.InlineSwitch, true, 5},
		{il.Ret, il.InlineNone, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.op.Name, func(t *testing.T) {
			assert.Equal(t, tt.encoding, tt.op.Encoding)
			assert.Equal(t, tt.branch, tt.op.IsBranch())

			var operand il.Operand
			switch tt.op.Encoding {
			case il.ShortInlineArg:
				operand = &il.ParameterDefinition{}
			case il.ShortInlineBrTarget, il.InlineBrTarget:
				operand = il.Create(il.Nop, nil)
			case il.InlineSwitch:
				operand = il.Labels{}
			}

			assert.Equal(t, tt.size, il.Create(tt.op, operand).Size())
		})
	}
}

func offsets(body *il.MethodBody) []int {
	out := make([]int, len(body.Instructions))
	for i, ins := range body.Instructions {
		out[i] = ins.Offset
	}

	return out
}

func ExampleEncodeVariable() {
	for _, index := range []int{1, 4, 256} {
		op, _ := il.EncodeVariable(il.AccessLoad, &il.VariableDefinition{Index: index})
		fmt.Println(op)
	}

	// Output:
	// ldloc.1
	// ldloc.s
	// ldloc
}
