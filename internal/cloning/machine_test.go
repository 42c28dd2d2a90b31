package cloning_test

import (
	"errors"
	"fmt"

	"mixin-cloner/il"
)

// machine interprets the subset of IL the cloning tests emit.
type machine struct {
	modules *il.ModuleSet
	statics map[*il.FieldDefinition]any
	steps   int
}

type object struct {
	class  *il.TypeDefinition
	fields map[*il.FieldDefinition]any
}

const maxSteps = 10_000

var errMachine = errors.New("machine")

func newMachine(modules *il.ModuleSet) *machine {
	return &machine{modules: modules, statics: make(map[*il.FieldDefinition]any)}
}

// construct runs newobj on ctor.
func (m *machine) construct(ctor *il.MethodDefinition, args ...any) (*object, error) {
	obj := &object{class: ctor.DeclaringType, fields: make(map[*il.FieldDefinition]any)}
	if _, err := m.invoke(ctor, append([]any{obj}, args...)); err != nil {
		return nil, err
	}

	return obj, nil
}

// call invokes method; instance methods take this as the first argument.
func (m *machine) call(method *il.MethodDefinition, args ...any) (any, error) {
	return m.invoke(method, args)
}

func (m *machine) method(op il.Operand) (*il.MethodDefinition, error) {
	ref, ok := op.(il.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a method", errMachine, op)
	}

	def := m.modules.ResolveMethod(ref)
	if def == nil || !def.HasBody() {
		return nil, fmt.Errorf("%w: cannot run %s", errMachine, ref)
	}

	return def, nil
}

func (m *machine) field(op il.Operand) (*il.FieldDefinition, error) {
	ref, ok := op.(il.Field)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a field", errMachine, op)
	}

	def := m.modules.ResolveField(ref)
	if def == nil {
		return nil, fmt.Errorf("%w: cannot resolve %s", errMachine, il.MemberFullName(ref))
	}

	return def, nil
}

func zero(t il.Type) any {
	if t != nil && t.IsValueType() {
		return int32(0)
	}

	return nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case int32:
		return x != 0
	case nil:
		return false
	default:
		return true
	}
}

func boolean(b bool) int32 {
	if b {
		return 1
	}

	return 0
}

func (m *machine) invoke(method *il.MethodDefinition, args []any) (any, error) {
	body := method.Body
	locals := make([]any, len(body.Variables))

	for i, v := range body.Variables {
		locals[i] = zero(v.Type)
	}

	var stack []any

	push := func(v any) { stack = append(stack, v) }
	pop := func() any {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return v
	}

	argIndex := func(p *il.ParameterDefinition) int {
		if p.IsThis() {
			return 0
		}

		if body.This != nil {
			return p.Index + 1
		}

		return p.Index
	}

	pc := 0
	for pc < len(body.Instructions) {
		m.steps++
		if m.steps > maxSteps {
			return nil, fmt.Errorf("%w: step limit reached in %s", errMachine, method)
		}

		ins := body.Instructions[pc]
		pc++

		if access, index, ok := il.VariableSlot(ins); ok {
			switch access {
			case il.AccessLoad:
				push(locals[index])
			case il.AccessStore:
				locals[index] = pop()
			default:
				return nil, fmt.Errorf("%w: %s", errMachine, ins.OpCode)
			}

			continue
		}

		jump := func(target il.Operand) error {
			to := body.IndexOf(target.(*il.Instruction))
			if to < 0 {
				return fmt.Errorf("%w: %s jumps outside %s", errMachine, ins.OpCode, method)
			}

			pc = to

			return nil
		}

		switch ins.OpCode {
		case il.Nop:
		case il.Ldarg_0, il.Ldarg_1, il.Ldarg_2, il.Ldarg_3:
			push(args[int(ins.OpCode.Code-il.Ldarg_0.Code)])
		case il.Ldarg_S, il.Ldarg:
			push(args[argIndex(ins.Operand.(*il.ParameterDefinition))])
		case il.Starg_S, il.Starg:
			args[argIndex(ins.Operand.(*il.ParameterDefinition))] = pop()
		case il.Ldc_I4_M1, il.Ldc_I4_0, il.Ldc_I4_1, il.Ldc_I4_2, il.Ldc_I4_3,
			il.Ldc_I4_4, il.Ldc_I4_5, il.Ldc_I4_6, il.Ldc_I4_7, il.Ldc_I4_8:
			push(int32(ins.OpCode.Code) - int32(il.Ldc_I4_0.Code))
		case il.Ldc_I4_S:
			push(int32(ins.Operand.(il.SByte)))
		case il.Ldc_I4:
			push(int32(ins.Operand.(il.Int32)))
		case il.Ldstr:
			push(string(ins.Operand.(il.String)))
		case il.Ldnull:
			push(nil)
		case il.Dup:
			v := pop()
			push(v)
			push(v)
		case il.Pop:
			pop()
		case il.Add, il.Sub, il.Mul, il.Ceq, il.Clt, il.Cgt:
			b, a := pop().(int32), pop().(int32)

			switch ins.OpCode {
			case il.Add:
				push(a + b)
			case il.Sub:
				push(a - b)
			case il.Mul:
				push(a * b)
			case il.Ceq:
				push(boolean(a == b))
			case il.Clt:
				push(boolean(a < b))
			default:
				push(boolean(a > b))
			}
		case il.Br, il.Br_S, il.Leave, il.Leave_S:
			if err := jump(ins.Operand); err != nil {
				return nil, err
			}
		case il.Brtrue, il.Brtrue_S, il.Brfalse, il.Brfalse_S:
			want := ins.OpCode == il.Brtrue || ins.OpCode == il.Brtrue_S
			if truthy(pop()) == want {
				if err := jump(ins.Operand); err != nil {
					return nil, err
				}
			}
		case il.Ldfld, il.Stfld:
			f, err := m.field(ins.Operand)
			if err != nil {
				return nil, err
			}

			if ins.OpCode == il.Stfld {
				v := pop()
				pop().(*object).fields[f] = v

				continue
			}

			obj := pop().(*object)

			v, ok := obj.fields[f]
			if !ok {
				v = zero(f.Type)
			}

			push(v)
		case il.Ldsfld, il.Stsfld:
			f, err := m.field(ins.Operand)
			if err != nil {
				return nil, err
			}

			if ins.OpCode == il.Stsfld {
				m.statics[f] = pop()
				continue
			}

			v, ok := m.statics[f]
			if !ok {
				v = zero(f.Type)
			}

			push(v)
		case il.Call, il.Callvirt, il.Newobj:
			callee, err := m.method(ins.Operand)
			if err != nil {
				return nil, err
			}

			n := len(callee.Parameters)
			if callee.Instance() && ins.OpCode != il.Newobj {
				n++
			}

			callArgs := make([]any, n)
			for i := n - 1; i >= 0; i-- {
				callArgs[i] = pop()
			}

			if ins.OpCode == il.Newobj {
				obj, err := m.construct(callee, callArgs...)
				if err != nil {
					return nil, err
				}

				push(obj)

				continue
			}

			result, err := m.invoke(callee, callArgs)
			if err != nil {
				return nil, err
			}

			if returns(callee) {
				push(result)
			}
		case il.Ret:
			if returns(method) {
				return pop(), nil
			}

			return nil, nil
		default:
			return nil, fmt.Errorf("%w: unsupported opcode %s", errMachine, ins.OpCode)
		}
	}

	return nil, fmt.Errorf("%w: %s ran off its end", errMachine, method)
}

func returns(m *il.MethodDefinition) bool {
	return m.Return != nil && m.Return.FullName() != "System.Void"
}
