package cloning

import (
	"errors"
	"strings"

	"mixin-cloner/il"
	"mixin-cloner/internal/diagnostic"
)

// hasAttribute reports whether item carries an attribute of the given type.
func hasAttribute(item il.AttributeProvider, fullName string) bool {
	if fullName == "" {
		return false
	}

	for _, ca := range item.CustomAttributeList() {
		if t := ca.AttributeType(); t != nil && t.FullName() == fullName {
			return true
		}
	}

	return false
}

// precheck verifies that no member of source that would be cloned already
// exists on target. It runs before anything is registered.
func precheck(source, target *il.TypeDefinition, skip string) error {
	var errs []error

	collide := func(kind, name string) {
		errs = append(errs, diagnostic.Configuration("member_collision",
			"target %s already declares %s %s", target, kind, name))
	}

	for _, n := range source.NestedTypes {
		if !hasAttribute(n, skip) && target.FindNestedType(n.Name) != nil {
			collide("nested type", n.Name)
		}
	}

	for _, f := range source.Fields {
		if !hasAttribute(f, skip) && target.FindField(f.Name) != nil {
			collide("field", f.Name)
		}
	}

	rename := func(t il.Type) string {
		name := t.FullName()
		if rest, ok := strings.CutPrefix(name, source.FullName()); ok && (rest == "" || rest[0] == '/') {
			return target.FullName() + rest
		}

		return name
	}

	for _, m := range source.Methods {
		if hasAttribute(m, skip) || m.IsConstructor() || m.IsTypeInitializer() {
			continue
		}

		want := il.SignatureWith(m, rename)
		for _, existing := range target.FindMethods(m.Name) {
			if il.SignatureWith(existing, rename) == want {
				collide("method", m.String())
			}
		}
	}

	for _, p := range source.Properties {
		if !hasAttribute(p, skip) && target.FindProperty(p.Name) != nil {
			collide("property", p.Name)
		}
	}

	for _, e := range source.Events {
		if !hasAttribute(e, skip) && target.FindEvent(e.Name) != nil {
			collide("event", e.Name)
		}
	}

	return errors.Join(errs...)
}
