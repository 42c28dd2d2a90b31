// Package ctormux splits an instance constructor around its call into the
// base or a sibling constructor.
//
// The instructions before that call (after the leading load of this) are the
// initialization region: compiler-emitted field initializers that must run in
// every constructor. The instructions after it are the construction region:
// the user-written constructor logic. Multiplex classifies instructions, local
// variables and exception handlers into the two regions and rejects
// constructors whose control flow or locals cross the boundary.
package ctormux
