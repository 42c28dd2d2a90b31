package il

//go:generate go tool stringer -type=ItemKind,OperandKind -output=kind_string.go

// ItemKind is the closed set of item kinds the cloning engine works with.
type ItemKind int

const (
	_ ItemKind = iota // skip zero value, use it as the invalid kind

	KindType
	KindField
	KindMethod
	KindParameter
	KindVariable
	KindInstruction
	KindGenericParameter
	KindProperty
	KindEvent
	KindCustomAttribute
	KindExceptionHandler

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// OperandKind classifies instruction operands.
type OperandKind int

const (
	OperandUnknown OperandKind = iota // operand implementation not recognized
	OperandNone
	OperandByte
	OperandSByte
	OperandInt32
	OperandInt64
	OperandFloat32
	OperandFloat64
	OperandString
	OperandInstruction
	OperandInstructions
	OperandField
	OperandMethod
	OperandType
	OperandParameter
	OperandVariable
	OperandCallSite

	// OperandTotal is a constant that represents the total number of operand kinds defined
	OperandTotal = int(iota)
)
