// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package asset

import (
	"github.com/juju/collections/transform"
	"github.com/juju/errors"
)

// Collection is a container element holding an ordered list of child
// elements with unique ids. The tree's computed-value form of a
// collection is a map keyed by child id; a delegate installed on a
// collection produces and consumes that keyed form.
type Collection struct {
	id       string
	children []Element
	delegate ValueDelegate
}

// NewCollection returns an empty collection with the given id.
func NewCollection(id string) *Collection {
	return &Collection{id: id}
}

// ID is part of the Element interface.
func (c *Collection) ID() string {
	return c.id
}

// Add appends child elements, preserving insertion order. Adding an
// element whose id is already present fails.
func (c *Collection) Add(children ...Element) error {
	for _, e := range children {
		if _, err := c.Child(e.ID()); err == nil {
			return errors.AlreadyExistsf("element %q in collection %q", e.ID(), c.id)
		}
		c.children = append(c.children, e)
	}
	return nil
}

// Child returns the statically stored child with the given id.
func (c *Collection) Child(id string) (Element, error) {
	for _, e := range c.children {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, errors.NotFoundf("element %q in collection %q", id, c.id)
}

// Children returns a copy of the statically stored child list in
// insertion order.
func (c *Collection) Children() []Element {
	out := make([]Element, len(c.children))
	copy(out, c.children)
	return out
}

// InstallDelegate replaces the collection's static children with a
// delegate computing the keyed-map form on demand.
func (c *Collection) InstallDelegate(d ValueDelegate) {
	c.delegate = d
}

// Delegated reports whether a delegate is installed.
func (c *Collection) Delegated() bool {
	return c.delegate != nil
}

// Value returns the collection's contents keyed by child id, computed
// by the delegate when one is installed.
func (c *Collection) Value() (map[string]Element, error) {
	if c.delegate != nil {
		v, err := c.delegate.GetValue()
		if err != nil {
			return nil, errors.Trace(err)
		}
		m, ok := v.(map[string]Element)
		if !ok {
			return nil, errors.Errorf(
				"delegate for collection %q returned %T, expected map[string]asset.Element", c.id, v)
		}
		return m, nil
	}
	return transform.SliceToMap(c.children, func(e Element) (string, Element) {
		return e.ID(), e
	}), nil
}

// SetValue replaces the collection's contents from the keyed-map form,
// dispatching to the delegate when one is installed. The ordering of
// the resulting children is unspecified: the keyed form carries none.
func (c *Collection) SetValue(value map[string]Element) error {
	if c.delegate != nil {
		return errors.Trace(c.delegate.SetValue(value))
	}
	children := make([]Element, 0, len(value))
	for _, e := range value {
		children = append(children, e)
	}
	c.children = children
	return nil
}
