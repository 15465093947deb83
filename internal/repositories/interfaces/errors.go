package interfaces

import "errors"

// ErrNotFound is returned by repositories when a lookup matches no
// document. Services translate it into the domain error taxonomy.
var ErrNotFound = errors.New("document not found")
