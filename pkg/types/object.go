package types

// Object is an ordered set of properties, the unit of inheritance.
// The zero value is an empty object ready to use.
type Object struct {
	props ordered[Key, string]
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{}
}

// Get returns the value stored under k.
func (o *Object) Get(k Key) (string, bool) {
	return o.props.get(k)
}

// Set stores value under k. An existing key keeps its position.
func (o *Object) Set(k Key, value string) {
	o.props.set(k, value)
}

// Has reports whether k is present.
func (o *Object) Has(k Key) bool {
	return o.props.has(k)
}

// Remove deletes k and reports whether it was present.
func (o *Object) Remove(k Key) bool {
	return o.props.remove(k)
}

// Len returns the number of properties, the parent reference included.
func (o *Object) Len() int {
	return o.props.len()
}

// Keys returns the property keys in insertion order.
func (o *Object) Keys() []Key {
	return o.props.orderedKeys()
}

// Properties returns a snapshot of the properties in insertion order.
// Mutating the object while ranging over the snapshot is safe.
func (o *Object) Properties() []Property {
	keys := o.props.orderedKeys()
	out := make([]Property, 0, len(keys))
	for _, k := range keys {
		v, _ := o.props.get(k)
		out = append(out, Property{Key: k, Value: v})
	}
	return out
}

// Clear removes every property.
func (o *Object) Clear() {
	o.props.clear()
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	c := NewObject()
	for _, p := range o.Properties() {
		c.Set(p.Key, p.Value)
	}
	return c
}

// Parent returns the name held by the reserved parent property.
func (o *Object) Parent() (string, bool) {
	return o.Get(ParentKey)
}

// SetParent stores name in the reserved parent property.
func (o *Object) SetParent(name string) {
	o.Set(ParentKey, name)
}

// Equal reports whether both objects hold the same properties in the same
// order.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	a, b := o.Properties(), other.Properties()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
