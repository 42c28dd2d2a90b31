package il

// Primitive operand values.
type (
	Byte    uint8
	SByte   int8
	Int32   int32
	Int64   int64
	Float32 float32
	Float64 float64
	String  string
	// Labels is the jump table of a switch instruction.
	Labels []*Instruction
)

func (Byte) operand()    {}
func (SByte) operand()   {}
func (Int32) operand()   {}
func (Int64) operand()   {}
func (Float32) operand() {}
func (Float64) operand() {}
func (String) operand()  {}
func (Labels) operand()  {}

// Classify returns the kind of an operand. Unrecognized implementations
// classify as OperandUnknown so callers can reject them explicitly.
func Classify(op Operand) OperandKind {
	switch op.(type) {
	case nil:
		return OperandNone
	case Byte:
		return OperandByte
	case SByte:
		return OperandSByte
	case Int32:
		return OperandInt32
	case Int64:
		return OperandInt64
	case Float32:
		return OperandFloat32
	case Float64:
		return OperandFloat64
	case String:
		return OperandString
	case *Instruction:
		return OperandInstruction
	case Labels:
		return OperandInstructions
	case *FieldDefinition, *FieldRef:
		return OperandField
	case *MethodDefinition, *MethodRef, *GenericInstanceMethod:
		return OperandMethod
	case *TypeDefinition, *TypeRef, *ArrayType, *ByRefType, *PointerType,
		*GenericInstanceType, *GenericParameter:
		return OperandType
	case *ParameterDefinition:
		return OperandParameter
	case *VariableDefinition:
		return OperandVariable
	case *CallSite:
		return OperandCallSite
	default:
		return OperandUnknown
	}
}
