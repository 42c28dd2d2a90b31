// Package diagnostic provides the failure taxonomy of a cloning operation
// and the non-fatal notes collected along the way.
//
// Key capabilities:
//   - Typed errors with a category, a machine code and the offending root type
//   - One sentinel per category for errors.Is
//   - Info and warning collection for skipped members and merged initializers
package diagnostic
