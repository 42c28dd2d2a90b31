// Package cloning reconstructs the members of a source type inside a target
// type living in another module.
//
// A cloning operation runs in three steps. The gatherer walks the source type
// and registers one cloner per clonable item, or one per target body for
// constructor code that is broadcast. The registry is then sealed. Finally
// the registry materializes every target (bare objects attached to their
// owners) in creation order and invokes the cloners stage by stage. Each
// cloner copies scalar data verbatim and routes every reference through the
// root importer, which redirects references into the cloned region and
// imports everything else into the target module.
//
// The instance default constructor of the source is not cloned as a method:
// it is multiplexed around its base constructor call and broadcast into
// every initializing constructor of the target.
//
// A Registry is not safe for concurrent use.
package cloning
