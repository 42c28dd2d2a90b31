package cloning_test

import (
	"fmt"
	"strings"

	"mixin-cloner/il"
	"mixin-cloner/internal/cloning"
)

func ExampleExecute() {
	w := newWorld()

	impl := w.mixin("Counter")
	count := il.NewFieldDefinition("count", il.FieldPrivate, w.lib.Int32)
	impl.AddField(count)
	w.ctor(impl, w.lib.ObjectCtor, []*il.Instruction{
		il.Create(il.Ldc_I4_1, nil),
		il.Create(il.Stfld, count),
	}, nil)
	w.method(impl, "Count", w.lib.Int32,
		il.Create(il.Ldarg_0, nil),
		il.Create(il.Ldfld, count),
		il.Create(il.Ret, nil),
	)

	target := w.class("Widget", w.lib.Object, w.lib.ObjectCtor)

	result, err := cloning.Execute(impl, target)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, m := range target.Methods {
		fmt.Printf("%s: %s\n", m, strings.Join(opcodes(m), " "))
	}

	fmt.Println("fields:", len(target.Fields), "instructions:", result.Cloners[cloning.StageInstruction])

	// Output:
	// System.Void App.Widget::.ctor(): ldarg.0 ldc.i4.1 stfld ldarg.0 call ret
	// System.Int32 App.Widget::Count(): ldarg.0 ldfld ret
	// fields: 1 instructions: 6
}
