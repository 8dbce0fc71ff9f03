package types

// Catalog is an ordered collection of named objects. A parent reference
// resolves only within the catalog holding the child.
type Catalog struct {
	objects ordered[string, *Object]
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Get returns the object stored under name.
func (c *Catalog) Get(name string) (*Object, bool) {
	return c.objects.get(name)
}

// Set stores obj under name, replacing any previous object in place.
// A nil obj stores an empty object.
func (c *Catalog) Set(name string, obj *Object) {
	if obj == nil {
		obj = NewObject()
	}
	c.objects.set(name, obj)
}

// Has reports whether an object named name exists.
func (c *Catalog) Has(name string) bool {
	return c.objects.has(name)
}

// Remove deletes the named object and reports whether it existed. Objects
// naming it as their parent keep the now dangling reference.
func (c *Catalog) Remove(name string) bool {
	return c.objects.remove(name)
}

// Len returns the number of objects.
func (c *Catalog) Len() int {
	return c.objects.len()
}

// Names returns the object names in insertion order.
func (c *Catalog) Names() []string {
	return c.objects.orderedKeys()
}

// Clear removes every object.
func (c *Catalog) Clear() {
	c.objects.clear()
}

// ParentOf resolves obj's parent reference within the catalog. It returns
// nil when obj has no parent property or the name dangles.
func (c *Catalog) ParentOf(obj *Object) *Object {
	if obj == nil {
		return nil
	}
	name, ok := obj.Parent()
	if !ok {
		return nil
	}
	parent, ok := c.Get(name)
	if !ok {
		return nil
	}
	return parent
}
