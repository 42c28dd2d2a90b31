package cloning_test

import (
	"fmt"

	"mixin-cloner/internal/cloning"
)

func ExampleStem() {
	st := cloning.NewStem("Init", nil)
	fmt.Println(st.Next(), st.Next(), st.Next())

	st = cloning.NewStem("MixinConstruct", map[string]struct{}{"MixinConstruct2": {}})
	fmt.Println(st.Next(), st.Next(), st.Next())

	// Output:
	// Init1 Init2 Init3
	// MixinConstruct1 MixinConstruct3 MixinConstruct4
}
