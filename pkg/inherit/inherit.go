// Package inherit implements prototype inheritance between catalog objects:
// deriving a child from a parent, re-synchronizing a child's shadow
// properties after the parent changed, and flattening an object into a
// single local namespace.
//
// Inheritance is one level deep. Rescan looks at the immediate parent only;
// a shadow the parent itself inherited is re-copied from the parent's shadow
// value, never from the grandparent.
package inherit

import "github.com/mesh-intelligence/objcat/pkg/types"

// DeriveChild returns a new object whose properties shadow every property of
// parent except the parent reference, in parent order. Local and shadow
// parent properties both become shadow properties of the child, so there is
// never more than one level of marking. When parent holds both a local and a
// shadow property of the same name, the child gets one shadow at the first
// one's position with the later one's value.
//
// A nil parent yields an empty object. DeriveChild never sets the child's own
// parent reference; the caller does.
func DeriveChild(parent *types.Object) *types.Object {
	child := types.NewObject()
	if parent == nil {
		return child
	}
	for _, p := range parent.Properties() {
		if p.Key == types.ParentKey {
			continue
		}
		child.Set(types.ShadowKey(p.Name), p.Value)
	}
	return child
}

// Rescan re-synchronizes obj's shadow properties with parent's current
// properties. It is a no-op when either object is nil.
//
// Shadow properties whose name is not a local property of parent are
// removed; the others take the parent's current value. Then every parent
// property obj does not shadow yet is appended as a shadow: parent locals
// first, then parent shadows, each group in parent order. The parent's own
// parent reference is shadowed like any other local, so a grandchild
// records its grandparent as "*parent". A shadow whose name the parent only
// shadows itself is therefore dropped and re-appended with the parent's
// value, and two rescans against an unchanged parent leave obj identical.
func Rescan(obj, parent *types.Object) {
	if obj == nil || parent == nil {
		return
	}

	for _, p := range obj.Properties() {
		if p.Kind != types.Shadow {
			continue
		}
		v, ok := parent.Get(types.LocalKey(p.Name))
		if !ok {
			obj.Remove(p.Key)
			continue
		}
		obj.Set(p.Key, v)
	}

	props := parent.Properties()
	for _, kind := range []types.Kind{types.Local, types.Shadow} {
		for _, p := range props {
			if p.Kind != kind {
				continue
			}
			k := types.ShadowKey(p.Name)
			if !obj.Has(k) {
				obj.Set(k, p.Value)
			}
		}
	}
}

// Flatten returns a copy of obj with every property turned local, merging
// shadow and local namespaces. When a shadow and a local property share a
// name, the later one in obj's order supplies the value and the earlier one
// keeps the position. A nil obj yields an empty object.
func Flatten(obj *types.Object) *types.Object {
	flat := types.NewObject()
	if obj == nil {
		return flat
	}
	for _, p := range obj.Properties() {
		flat.Set(types.LocalKey(p.Name), p.Value)
	}
	return flat
}
