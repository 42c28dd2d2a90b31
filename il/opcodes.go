package il

// Code is the numeric value of an opcode; two-byte opcodes carry the 0xFE prefix.
type Code uint16

// OperandEncoding is the inline operand encoding of an opcode.
type OperandEncoding int

const (
	InlineNone OperandEncoding = iota
	ShortInlineBrTarget
	InlineBrTarget
	InlineSwitch
	ShortInlineI
	InlineI
	InlineI8
	ShortInlineR
	InlineR
	InlineString
	InlineField
	InlineMethod
	InlineType
	InlineTok
	InlineSig
	ShortInlineVar
	InlineVar
	ShortInlineArg
	InlineArg
)

// FlowControl describes how an opcode affects control flow.
type FlowControl int

const (
	FlowNext FlowControl = iota
	FlowBranch
	FlowCondBranch
	FlowCall
	FlowReturn
	FlowThrow
	FlowMeta
	FlowBreak
)

// OpCode describes one instruction opcode.
type OpCode struct {
	Name     string
	Code     Code
	Encoding OperandEncoding
	Flow     FlowControl
}

// Size returns the encoded size of the opcode itself.
func (o OpCode) Size() int {
	if o.Code > 0xFF {
		return 2
	}

	return 1
}

// String implements fmt.Stringer.
func (o OpCode) String() string { return o.Name }

// IsBranch reports whether the opcode carries branch targets.
func (o OpCode) IsBranch() bool {
	switch o.Encoding {
	case ShortInlineBrTarget, InlineBrTarget, InlineSwitch:
		return true
	default:
		return false
	}
}

var opcodes = map[Code]OpCode{}

func op(name string, code Code, operand OperandEncoding, flow FlowControl) OpCode {
	o := OpCode{Name: name, Code: code, Encoding: operand, Flow: flow}
	opcodes[code] = o

	return o
}

// Lookup returns the opcode with the given code.
func Lookup(code Code) (OpCode, bool) {
	o, ok := opcodes[code]
	return o, ok
}

var (
	Nop         = op("nop", 0x00, InlineNone, FlowNext)
	Break       = op("break", 0x01, InlineNone, FlowBreak)
	Ldarg_0     = op("ldarg.0", 0x02, InlineNone, FlowNext)
	Ldarg_1     = op("ldarg.1", 0x03, InlineNone, FlowNext)
	Ldarg_2     = op("ldarg.2", 0x04, InlineNone, FlowNext)
	Ldarg_3     = op("ldarg.3", 0x05, InlineNone, FlowNext)
	Ldloc_0     = op("ldloc.0", 0x06, InlineNone, FlowNext)
	Ldloc_1     = op("ldloc.1", 0x07, InlineNone, FlowNext)
	Ldloc_2     = op("ldloc.2", 0x08, InlineNone, FlowNext)
	Ldloc_3     = op("ldloc.3", 0x09, InlineNone, FlowNext)
	Stloc_0     = op("stloc.0", 0x0A, InlineNone, FlowNext)
	Stloc_1     = op("stloc.1", 0x0B, InlineNone, FlowNext)
	Stloc_2     = op("stloc.2", 0x0C, InlineNone, FlowNext)
	Stloc_3     = op("stloc.3", 0x0D, InlineNone, FlowNext)
	Ldarg_S     = op("ldarg.s", 0x0E, ShortInlineArg, FlowNext)
	Ldarga_S    = op("ldarga.s", 0x0F, ShortInlineArg, FlowNext)
	Starg_S     = op("starg.s", 0x10, ShortInlineArg, FlowNext)
	Ldloc_S     = op("ldloc.s", 0x11, ShortInlineVar, FlowNext)
	Ldloca_S    = op("ldloca.s", 0x12, ShortInlineVar, FlowNext)
	Stloc_S     = op("stloc.s", 0x13, ShortInlineVar, FlowNext)
	Ldnull      = op("ldnull", 0x14, InlineNone, FlowNext)
	Ldc_I4_M1   = op("ldc.i4.m1", 0x15, InlineNone, FlowNext)
	Ldc_I4_0    = op("ldc.i4.0", 0x16, InlineNone, FlowNext)
	Ldc_I4_1    = op("ldc.i4.1", 0x17, InlineNone, FlowNext)
	Ldc_I4_2    = op("ldc.i4.2", 0x18, InlineNone, FlowNext)
	Ldc_I4_3    = op("ldc.i4.3", 0x19, InlineNone, FlowNext)
	Ldc_I4_4    = op("ldc.i4.4", 0x1A, InlineNone, FlowNext)
	Ldc_I4_5    = op("ldc.i4.5", 0x1B, InlineNone, FlowNext)
	Ldc_I4_6    = op("ldc.i4.6", 0x1C, InlineNone, FlowNext)
	Ldc_I4_7    = op("ldc.i4.7", 0x1D, InlineNone, FlowNext)
	Ldc_I4_8    = op("ldc.i4.8", 0x1E, InlineNone, FlowNext)
	Ldc_I4_S    = op("ldc.i4.s", 0x1F, ShortInlineI, FlowNext)
	Ldc_I4      = op("ldc.i4", 0x20, InlineI, FlowNext)
	Ldc_I8      = op("ldc.i8", 0x21, InlineI8, FlowNext)
	Ldc_R4      = op("ldc.r4", 0x22, ShortInlineR, FlowNext)
	Ldc_R8      = op("ldc.r8", 0x23, InlineR, FlowNext)
	Dup         = op("dup", 0x25, InlineNone, FlowNext)
	Pop         = op("pop", 0x26, InlineNone, FlowNext)
	Jmp         = op("jmp", 0x27, InlineMethod, FlowCall)
	Call        = op("call", 0x28, InlineMethod, FlowCall)
	Calli       = op("calli", 0x29, InlineSig, FlowCall)
	Ret         = op("ret", 0x2A, InlineNone, FlowReturn)
	Br_S        = op("br.s", 0x2B, ShortInlineBrTarget, FlowBranch)
	Brfalse_S   = op("brfalse.s", 0x2C, ShortInlineBrTarget, FlowCondBranch)
	Brtrue_S    = op("brtrue.s", 0x2D, ShortInlineBrTarget, FlowCondBranch)
	Beq_S       = op("beq.s", 0x2E, ShortInlineBrTarget, FlowCondBranch)
	Bge_S       = op("bge.s", 0x2F, ShortInlineBrTarget, FlowCondBranch)
	Bgt_S       = op("bgt.s", 0x30, ShortInlineBrTarget, FlowCondBranch)
	Ble_S       = op("ble.s", 0x31, ShortInlineBrTarget, FlowCondBranch)
	Blt_S       = op("blt.s", 0x32, ShortInlineBrTarget, FlowCondBranch)
	Bne_Un_S    = op("bne.un.s", 0x33, ShortInlineBrTarget, FlowCondBranch)
	Bge_Un_S    = op("bge.un.s", 0x34, ShortInlineBrTarget, FlowCondBranch)
	Bgt_Un_S    = op("bgt.un.s", 0x35, ShortInlineBrTarget, FlowCondBranch)
	Ble_Un_S    = op("ble.un.s", 0x36, ShortInlineBrTarget, FlowCondBranch)
	Blt_Un_S    = op("blt.un.s", 0x37, ShortInlineBrTarget, FlowCondBranch)
	Br          = op("br", 0x38, InlineBrTarget, FlowBranch)
	Brfalse     = op("brfalse", 0x39, InlineBrTarget, FlowCondBranch)
	Brtrue      = op("brtrue", 0x3A, InlineBrTarget, FlowCondBranch)
	Beq         = op("beq", 0x3B, InlineBrTarget, FlowCondBranch)
	Bge         = op("bge", 0x3C, InlineBrTarget, FlowCondBranch)
	Bgt         = op("bgt", 0x3D, InlineBrTarget, FlowCondBranch)
	Ble         = op("ble", 0x3E, InlineBrTarget, FlowCondBranch)
	Blt         = op("blt", 0x3F, InlineBrTarget, FlowCondBranch)
	Bne_Un      = op("bne.un", 0x40, InlineBrTarget, FlowCondBranch)
	Bge_Un      = op("bge.un", 0x41, InlineBrTarget, FlowCondBranch)
	Bgt_Un      = op("bgt.un", 0x42, InlineBrTarget, FlowCondBranch)
	Ble_Un      = op("ble.un", 0x43, InlineBrTarget, FlowCondBranch)
	Blt_Un      = op("blt.un", 0x44, InlineBrTarget, FlowCondBranch)
	Switch      = op("switch", 0x45, InlineSwitch, FlowCondBranch)
	Ldind_I1    = op("ldind.i1", 0x46, InlineNone, FlowNext)
	Ldind_U1    = op("ldind.u1", 0x47, InlineNone, FlowNext)
	Ldind_I2    = op("ldind.i2", 0x48, InlineNone, FlowNext)
	Ldind_U2    = op("ldind.u2", 0x49, InlineNone, FlowNext)
	Ldind_I4    = op("ldind.i4", 0x4A, InlineNone, FlowNext)
	Ldind_U4    = op("ldind.u4", 0x4B, InlineNone, FlowNext)
	Ldind_I8    = op("ldind.i8", 0x4C, InlineNone, FlowNext)
	Ldind_I     = op("ldind.i", 0x4D, InlineNone, FlowNext)
	Ldind_R4    = op("ldind.r4", 0x4E, InlineNone, FlowNext)
	Ldind_R8    = op("ldind.r8", 0x4F, InlineNone, FlowNext)
	Ldind_Ref   = op("ldind.ref", 0x50, InlineNone, FlowNext)
	Stind_Ref   = op("stind.ref", 0x51, InlineNone, FlowNext)
	Stind_I1    = op("stind.i1", 0x52, InlineNone, FlowNext)
	Stind_I2    = op("stind.i2", 0x53, InlineNone, FlowNext)
	Stind_I4    = op("stind.i4", 0x54, InlineNone, FlowNext)
	Stind_I8    = op("stind.i8", 0x55, InlineNone, FlowNext)
	Stind_R4    = op("stind.r4", 0x56, InlineNone, FlowNext)
	Stind_R8    = op("stind.r8", 0x57, InlineNone, FlowNext)
	Add         = op("add", 0x58, InlineNone, FlowNext)
	Sub         = op("sub", 0x59, InlineNone, FlowNext)
	Mul         = op("mul", 0x5A, InlineNone, FlowNext)
	Div         = op("div", 0x5B, InlineNone, FlowNext)
	Div_Un      = op("div.un", 0x5C, InlineNone, FlowNext)
	Rem         = op("rem", 0x5D, InlineNone, FlowNext)
	Rem_Un      = op("rem.un", 0x5E, InlineNone, FlowNext)
	And         = op("and", 0x5F, InlineNone, FlowNext)
	Or          = op("or", 0x60, InlineNone, FlowNext)
	Xor         = op("xor", 0x61, InlineNone, FlowNext)
	Shl         = op("shl", 0x62, InlineNone, FlowNext)
	Shr         = op("shr", 0x63, InlineNone, FlowNext)
	Shr_Un      = op("shr.un", 0x64, InlineNone, FlowNext)
	Neg         = op("neg", 0x65, InlineNone, FlowNext)
	Not         = op("not", 0x66, InlineNone, FlowNext)
	Conv_I1     = op("conv.i1", 0x67, InlineNone, FlowNext)
	Conv_I2     = op("conv.i2", 0x68, InlineNone, FlowNext)
	Conv_I4     = op("conv.i4", 0x69, InlineNone, FlowNext)
	Conv_I8     = op("conv.i8", 0x6A, InlineNone, FlowNext)
	Conv_R4     = op("conv.r4", 0x6B, InlineNone, FlowNext)
	Conv_R8     = op("conv.r8", 0x6C, InlineNone, FlowNext)
	Conv_U4     = op("conv.u4", 0x6D, InlineNone, FlowNext)
	Conv_U8     = op("conv.u8", 0x6E, InlineNone, FlowNext)
	Callvirt    = op("callvirt", 0x6F, InlineMethod, FlowCall)
	Cpobj       = op("cpobj", 0x70, InlineType, FlowNext)
	Ldobj       = op("ldobj", 0x71, InlineType, FlowNext)
	Ldstr       = op("ldstr", 0x72, InlineString, FlowNext)
	Newobj      = op("newobj", 0x73, InlineMethod, FlowCall)
	Castclass   = op("castclass", 0x74, InlineType, FlowNext)
	Isinst      = op("isinst", 0x75, InlineType, FlowNext)
	Conv_R_Un   = op("conv.r.un", 0x76, InlineNone, FlowNext)
	Unbox       = op("unbox", 0x79, InlineType, FlowNext)
	Throw       = op("throw", 0x7A, InlineNone, FlowThrow)
	Ldfld       = op("ldfld", 0x7B, InlineField, FlowNext)
	Ldflda      = op("ldflda", 0x7C, InlineField, FlowNext)
	Stfld       = op("stfld", 0x7D, InlineField, FlowNext)
	Ldsfld      = op("ldsfld", 0x7E, InlineField, FlowNext)
	Ldsflda     = op("ldsflda", 0x7F, InlineField, FlowNext)
	Stsfld      = op("stsfld", 0x80, InlineField, FlowNext)
	Stobj       = op("stobj", 0x81, InlineType, FlowNext)
	Box         = op("box", 0x8C, InlineType, FlowNext)
	Newarr      = op("newarr", 0x8D, InlineType, FlowNext)
	Ldlen       = op("ldlen", 0x8E, InlineNone, FlowNext)
	Ldelema     = op("ldelema", 0x8F, InlineType, FlowNext)
	Ldelem_I1   = op("ldelem.i1", 0x90, InlineNone, FlowNext)
	Ldelem_U1   = op("ldelem.u1", 0x91, InlineNone, FlowNext)
	Ldelem_I2   = op("ldelem.i2", 0x92, InlineNone, FlowNext)
	Ldelem_U2   = op("ldelem.u2", 0x93, InlineNone, FlowNext)
	Ldelem_I4   = op("ldelem.i4", 0x94, InlineNone, FlowNext)
	Ldelem_U4   = op("ldelem.u4", 0x95, InlineNone, FlowNext)
	Ldelem_I8   = op("ldelem.i8", 0x96, InlineNone, FlowNext)
	Ldelem_I    = op("ldelem.i", 0x97, InlineNone, FlowNext)
	Ldelem_R4   = op("ldelem.r4", 0x98, InlineNone, FlowNext)
	Ldelem_R8   = op("ldelem.r8", 0x99, InlineNone, FlowNext)
	Ldelem_Ref  = op("ldelem.ref", 0x9A, InlineNone, FlowNext)
	Stelem_I    = op("stelem.i", 0x9B, InlineNone, FlowNext)
	Stelem_I1   = op("stelem.i1", 0x9C, InlineNone, FlowNext)
	Stelem_I2   = op("stelem.i2", 0x9D, InlineNone, FlowNext)
	Stelem_I4   = op("stelem.i4", 0x9E, InlineNone, FlowNext)
	Stelem_I8   = op("stelem.i8", 0x9F, InlineNone, FlowNext)
	Stelem_R4   = op("stelem.r4", 0xA0, InlineNone, FlowNext)
	Stelem_R8   = op("stelem.r8", 0xA1, InlineNone, FlowNext)
	Stelem_Ref  = op("stelem.ref", 0xA2, InlineNone, FlowNext)
	Ldelem      = op("ldelem", 0xA3, InlineType, FlowNext)
	Stelem      = op("stelem", 0xA4, InlineType, FlowNext)
	Unbox_Any   = op("unbox.any", 0xA5, InlineType, FlowNext)
	Ldtoken     = op("ldtoken", 0xD0, InlineTok, FlowNext)
	Conv_U2     = op("conv.u2", 0xD1, InlineNone, FlowNext)
	Conv_U1     = op("conv.u1", 0xD2, InlineNone, FlowNext)
	Conv_I      = op("conv.i", 0xD3, InlineNone, FlowNext)
	Endfinally  = op("endfinally", 0xDC, InlineNone, FlowReturn)
	Leave       = op("leave", 0xDD, InlineBrTarget, FlowBranch)
	Leave_S     = op("leave.s", 0xDE, ShortInlineBrTarget, FlowBranch)
	Stind_I     = op("stind.i", 0xDF, InlineNone, FlowNext)
	Conv_U      = op("conv.u", 0xE0, InlineNone, FlowNext)
	Arglist     = op("arglist", 0xFE00, InlineNone, FlowNext)
	Ceq         = op("ceq", 0xFE01, InlineNone, FlowNext)
	Cgt         = op("cgt", 0xFE02, InlineNone, FlowNext)
	Cgt_Un      = op("cgt.un", 0xFE03, InlineNone, FlowNext)
	Clt         = op("clt", 0xFE04, InlineNone, FlowNext)
	Clt_Un      = op("clt.un", 0xFE05, InlineNone, FlowNext)
	Ldftn       = op("ldftn", 0xFE06, InlineMethod, FlowNext)
	Ldvirtftn   = op("ldvirtftn", 0xFE07, InlineMethod, FlowNext)
	Ldarg       = op("ldarg", 0xFE09, InlineArg, FlowNext)
	Ldarga      = op("ldarga", 0xFE0A, InlineArg, FlowNext)
	Starg       = op("starg", 0xFE0B, InlineArg, FlowNext)
	Ldloc       = op("ldloc", 0xFE0C, InlineVar, FlowNext)
	Ldloca      = op("ldloca", 0xFE0D, InlineVar, FlowNext)
	Stloc       = op("stloc", 0xFE0E, InlineVar, FlowNext)
	Localloc    = op("localloc", 0xFE0F, InlineNone, FlowNext)
	Endfilter   = op("endfilter", 0xFE11, InlineNone, FlowReturn)
	Unaligned   = op("unaligned.", 0xFE12, ShortInlineI, FlowMeta)
	Volatile    = op("volatile.", 0xFE13, InlineNone, FlowMeta)
	Tail        = op("tail.", 0xFE14, InlineNone, FlowMeta)
	Initobj     = op("initobj", 0xFE15, InlineType, FlowNext)
	Constrained = op("constrained.", 0xFE16, InlineType, FlowMeta)
	Cpblk       = op("cpblk", 0xFE17, InlineNone, FlowNext)
	Initblk     = op("initblk", 0xFE18, InlineNone, FlowNext)
	Rethrow     = op("rethrow", 0xFE1A, InlineNone, FlowThrow)
	Sizeof      = op("sizeof", 0xFE1C, InlineType, FlowNext)
	Readonly    = op("readonly.", 0xFE1E, InlineNone, FlowMeta)
)

var longBranch = map[Code]OpCode{
	Br_S.Code:      Br,
	Brfalse_S.Code: Brfalse,
	Brtrue_S.Code:  Brtrue,
	Beq_S.Code:     Beq,
	Bge_S.Code:     Bge,
	Bgt_S.Code:     Bgt,
	Ble_S.Code:     Ble,
	Blt_S.Code:     Blt,
	Bne_Un_S.Code:  Bne_Un,
	Bge_Un_S.Code:  Bge_Un,
	Bgt_Un_S.Code:  Bgt_Un,
	Ble_Un_S.Code:  Ble_Un,
	Blt_Un_S.Code:  Blt_Un,
	Leave_S.Code:   Leave,
}
