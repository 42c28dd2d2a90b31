package cloning

import (
	"fmt"

	"go.uber.org/zap"

	"mixin-cloner/il"
	"mixin-cloner/internal/common"
	"mixin-cloner/internal/ctormux"
	"mixin-cloner/internal/diagnostic"
	"mixin-cloner/options"
)

// recipient is a target constructor receiving broadcast code. Its anchors
// are captured before any instruction is inserted.
type recipient struct {
	ctor     *il.MethodDefinition
	leading  *il.Instruction
	boundary *il.Instruction
}

// broadcastConstructor splits the root default constructor around its base
// constructor call. The initialization region is duplicated into every
// initializing target constructor; the construction region is cloned once
// into a helper called from each of them.
func (g *gatherer) broadcastConstructor(src *il.MethodDefinition) error {
	res, err := ctormux.Multiplex(src)
	if err != nil {
		return err
	}

	if res.Role == ctormux.RoleForwarding {
		return diagnostic.Configuration("root_ctor_forwards",
			"constructor %s forwards to another constructor of its type", src)
	}

	construct := res.HasConstructionLogic()

	if construct && g.cfg.ConstructorStrategy == options.ConstructorStrategyConstrained {
		return diagnostic.Configuration("ctor_construction_logic",
			"constructor %s has logic after its base constructor call, which the %s strategy cannot clone",
			src, g.cfg.ConstructorStrategy)
	}

	if !res.HasInitialization() && !construct {
		g.logger.Debug("nothing to broadcast", zap.String("ctor", src.String()))
		return nil
	}

	recipients, err := g.recipients()
	if err != nil {
		return err
	}

	g.logger.Debug("broadcasting constructor",
		zap.String("ctor", src.String()),
		zap.Int("recipients", len(recipients)),
		zap.Int("init", len(res.InitInstructions)),
		zap.Int("construction", len(res.ConstructionInstructions)),
	)

	if res.HasInitialization() {
		for _, rc := range recipients {
			scope := g.registry.newScope(newScope(fmt.Sprintf("%s into %s", src, rc.ctor), src.Body, noParent, rc.ctor))
			// handlers of the region may end on the base call
			scope.pin(res.BoundaryCall(), rc.boundary)

			if err := g.region(scope, res.InitVariables, res.InitInstructions, res.InitHandlers, rc.leading); err != nil {
				return err
			}
		}
	}

	if !construct {
		return nil
	}

	name := NewStem(g.cfg.ConstructorHelper, g.takenNames()).Next()

	helper, err := g.helper(src, name, il.MethodPrivate|il.MethodHideBySig,
		res.ConstructionVariables, res.ConstructionInstructions, res.ConstructionHandlers)
	if err != nil {
		return err
	}

	g.registry.afterInvoke(func() error {
		target, err := targetOfID[*il.MethodDefinition](g.registry, helper)
		if err != nil {
			return err
		}

		for _, rc := range recipients {
			load := il.Create(il.Ldarg_0, nil)
			call := il.Create(il.Call, target)

			if err := rc.ctor.Body.InsertAfter(rc.boundary, load); err != nil {
				return diagnostic.Internal("boundary_missing", "constructor %s: %v", rc.ctor, err)
			}

			if err := rc.ctor.Body.InsertAfter(load, call); err != nil {
				return diagnostic.Internal("boundary_missing", "constructor %s: %v", rc.ctor, err)
			}

			rc.ctor.Body.ExpandShortBranches()
		}

		return nil
	})

	return nil
}

// recipients locates the boundary of every target constructor and keeps
// those calling into the base type.
func (g *gatherer) recipients() ([]recipient, error) {
	var out []recipient

	for _, ctor := range g.targetRoot.Constructors() {
		res, err := ctormux.Locate(ctor)
		if err != nil {
			return nil, err
		}

		if res.Role != ctormux.RoleInitializing {
			continue
		}

		out = append(out, recipient{ctor: ctor, leading: res.Leading(), boundary: res.BoundaryCall()})
	}

	if common.IsEmpty(out) {
		return nil, diagnostic.Configuration("target_no_initializing_ctor",
			"target %s has no constructor calling its base constructor", g.targetRoot)
	}

	return out, nil
}

// mergeTypeInitializer clones the root type initializer. When the target
// already has one, the source body goes into a private static helper called
// first thing from the existing initializer.
func (g *gatherer) mergeTypeInitializer(src *il.MethodDefinition) error {
	existing := g.targetRoot.TypeInitializer()
	if existing == nil {
		if err := checkMethod(src); err != nil {
			return err
		}

		id, err := g.add(newMethodCloner(src, g.rootID, g.importer))
		if err != nil {
			return err
		}

		return g.gatherMethod(src, id)
	}

	if !g.cfg.MergeStaticConstructors {
		return diagnostic.Configuration("static_ctor_not_mergeable",
			"both %s and %s have a type initializer and merging is disabled", g.sourceRoot, g.targetRoot)
	}

	var first *il.Instruction
	if existing.HasBody() {
		first, _ = common.First(existing.Body.Instructions)
	}

	if first == nil {
		return diagnostic.Configuration("target_cctor_no_body", "type initializer %s has no body", existing)
	}

	if !src.HasBody() {
		return nil
	}

	name := NewStem(g.cfg.StaticHelperPrefix, g.takenNames()).Next()

	helper, err := g.helper(src, name, il.MethodPrivate|il.MethodStatic|il.MethodHideBySig,
		src.Body.Variables, src.Body.Instructions, src.Body.ExceptionHandlers)
	if err != nil {
		return err
	}

	g.registry.afterInvoke(func() error {
		target, err := targetOfID[*il.MethodDefinition](g.registry, helper)
		if err != nil {
			return err
		}

		if err := existing.Body.InsertBefore(first, il.Create(il.Call, target)); err != nil {
			return diagnostic.Internal("cctor_anchor_missing", "type initializer %s: %v", existing, err)
		}

		existing.Body.ExpandShortBranches()

		return nil
	})

	g.diags.AddInfo("static_ctor_merged", "type initializer delegated to "+name, g.sourceRoot.FullName(), existing.String())
	g.logger.Debug("merging type initializer", zap.String("helper", name), zap.String("target", g.targetRoot.FullName()))

	return nil
}

// helper registers a synthesized method on the target root whose body is one
// region of src.
func (g *gatherer) helper(src *il.MethodDefinition, name string, attrs il.MethodAttributes,
	variables []*il.VariableDefinition, instructions []*il.Instruction, handlers []*il.ExceptionHandler,
) (ID, error) {
	id, err := g.registry.Add(newHelperCloner(src, g.rootID, name, attrs, g.importer))
	if err != nil {
		return noParent, err
	}

	bodyID, err := g.registry.Add(newBodyCloner(src, id))
	if err != nil {
		return noParent, err
	}

	scope := g.registry.newScope(newScope(name, src.Body, bodyID, nil))
	if err := g.region(scope, variables, instructions, handlers, nil); err != nil {
		return noParent, err
	}

	return id, nil
}

// takenNames returns the method names present on either root, plus every
// helper name handed out so far. The set is shared by all helpers of the
// operation.
func (g *gatherer) takenNames() map[string]struct{} {
	if g.taken != nil {
		return g.taken
	}

	g.taken = make(map[string]struct{})

	for _, t := range []*il.TypeDefinition{g.sourceRoot, g.targetRoot} {
		for _, m := range t.Methods {
			g.taken[m.Name] = struct{}{}
		}
	}

	return g.taken
}
