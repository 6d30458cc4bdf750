// Package dom models the element tree that interactive terminal components are
// laid out in.
//
// A Document holds top-level elements. Any element can host an encapsulated
// sub-tree (a ShadowRoot); elements inside it are children of the shadow root,
// not of the host, so walking parents stops at the boundary unless the walk is
// explicitly composed.
//
// Events are dispatched along the composed path of their target, innermost
// first: capturing listeners run outermost to innermost, then bubbling
// listeners run innermost to outermost. Non-composed events do not escape the
// shadow root their target lives in.
//
// Everything in this package is meant to be used from a single goroutine (the
// UI loop). Work produced elsewhere, such as timer callbacks, is handed to the
// loop through Document.Post.
package dom
