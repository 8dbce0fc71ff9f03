package types

import "strings"

// Kind tells whether a property was authored on an object or copied from
// its parent.
type Kind uint8

const (
	// Local properties are authored directly on the object.
	Local Kind = iota
	// Shadow properties are copied from the parent and re-synchronized by a
	// rescan.
	Shadow
)

// String returns "local" or "shadow".
func (k Kind) String() string {
	if k == Shadow {
		return "shadow"
	}
	return "local"
}

// Text rendering of keys. ShadowMarker prefixes shadow names; EscapeMarker
// prefixes local names that would otherwise read as shadow or escaped.
const (
	ShadowMarker = "*"
	EscapeMarker = `\`
)

// ParentName is the reserved local property holding the parent object's
// name. The reference is by name only and may dangle.
const ParentName = "parent"

// Key identifies a property within an object. Local "speed" and Shadow
// "speed" are different keys.
type Key struct {
	Name string
	Kind Kind
}

// ParentKey is the key of the reserved parent reference.
var ParentKey = Key{Name: ParentName, Kind: Local}

// LocalKey returns the local key for name.
func LocalKey(name string) Key {
	return Key{Name: name, Kind: Local}
}

// ShadowKey returns the shadow key for name.
func ShadowKey(name string) Key {
	return Key{Name: name, Kind: Shadow}
}

// IsShadow reports whether the key names a shadow property.
func (k Key) IsShadow() bool {
	return k.Kind == Shadow
}

// String renders the key as text: shadow keys get the "*" marker, and local
// names starting with "*" or "\", as well as the local name "free", get a
// leading "\" so ParseKey can recover the key exactly and the inspector
// never mistakes the key for an unused row.
func (k Key) String() string {
	if k.Kind == Shadow {
		return ShadowMarker + k.Name
	}
	if k.Name == FreeRowName ||
		strings.HasPrefix(k.Name, ShadowMarker) ||
		strings.HasPrefix(k.Name, EscapeMarker) {
		return EscapeMarker + k.Name
	}
	return k.Name
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) Key {
	switch {
	case strings.HasPrefix(s, EscapeMarker):
		return LocalKey(s[len(EscapeMarker):])
	case strings.HasPrefix(s, ShadowMarker):
		return ShadowKey(s[len(ShadowMarker):])
	}
	return LocalKey(s)
}

// Property is one entry of an object.
type Property struct {
	Key
	Value string
}
