// Package types defines the catalog data model (Object, Catalog, Index),
// the tagged property keys objects are built from, the collaborator
// interfaces the session drives (TextStore, Grid, List, TextField), and the
// standard errors shared by every objcat package.
//
// An Object is an ordered set of properties. A property is Local when it was
// authored on the object and Shadow when it was copied from the object's
// parent. The kind is carried in the Key itself; the "*" marker only appears
// when a key is rendered as text by Key.String.
package types
