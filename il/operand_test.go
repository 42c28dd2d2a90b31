package il

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type foreignOperand struct{}

func (foreignOperand) operand() {}

func TestClassify(t *testing.T) {
	lib := NewCoreLibrary()
	m := NewMethodDefinition("M", MethodStatic, lib.Void)

	tests := []struct {
		operand Operand
		want    OperandKind
	}{
		{nil, OperandNone},
		{Byte(1), OperandByte},
		{SByte(-1), OperandSByte},
		{Int32(5), OperandInt32},
		{Int64(5), OperandInt64},
		{Float32(1.5), OperandFloat32},
		{Float64(1.5), OperandFloat64},
		{String("s"), OperandString},
		{Create(Nop, nil), OperandInstruction},
		{Labels{Create(Nop, nil)}, OperandInstructions},
		{NewFieldDefinition("f", FieldPrivate, lib.Int32), OperandField},
		{&FieldRef{Name: "f"}, OperandField},
		{m, OperandMethod},
		{&MethodRef{Name: "M"}, OperandMethod},
		{&GenericInstanceMethod{Element: m}, OperandMethod},
		{lib.Int32, OperandType},
		{&ArrayType{Element: lib.Int32}, OperandType},
		{&GenericParameter{Name: "T"}, OperandType},
		{NewParameterDefinition("p", ParamNone, lib.Int32), OperandParameter},
		{NewVariableDefinition(lib.Int32), OperandVariable},
		{&CallSite{Return: lib.Void}, OperandCallSite},
		{foreignOperand{}, OperandUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.operand))
		})
	}
}
