// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package asset models a hierarchical asset as a tree of identified
// elements. Leaf properties hold values; collections hold ordered child
// elements. An element's value is either stored statically or computed
// on demand by an installed delegate, and path-based access resolves
// through either transparently.
package asset

// Element is an addressable node in an asset model.
type Element interface {
	// ID identifies the element uniquely among its siblings.
	ID() string
}

// ValueDelegate computes an element's value at access time, replacing
// static storage. The connection package installs implementations of
// this on properties and collections; the tree dispatches every read
// and write of a delegated element through it.
type ValueDelegate interface {
	// GetValue computes the element's current value.
	GetValue() (any, error)

	// SetValue accepts a new value for the element.
	SetValue(value any) error
}
