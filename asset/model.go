// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package asset

import (
	"github.com/juju/errors"
)

// Model is the named root of an asset's element tree.
type Model struct {
	id       string
	elements []Element
}

// NewModel returns an empty model with the given id.
func NewModel(id string) *Model {
	return &Model{id: id}
}

// ID returns the model's id.
func (m *Model) ID() string {
	return m.id
}

// AddElement appends root-level elements, preserving insertion order.
// Adding an element whose id is already present fails.
func (m *Model) AddElement(elements ...Element) error {
	for _, e := range elements {
		if _, err := m.Element(e.ID()); err == nil {
			return errors.AlreadyExistsf("element %q in model %q", e.ID(), m.id)
		}
		m.elements = append(m.elements, e)
	}
	return nil
}

// Element returns the root-level element with the given id.
func (m *Model) Element(id string) (Element, error) {
	for _, e := range m.elements {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, errors.NotFoundf("element %q in model %q", id, m.id)
}

// Elements returns a copy of the root-level element list in insertion
// order.
func (m *Model) Elements() []Element {
	out := make([]Element, len(m.elements))
	copy(out, m.elements)
	return out
}
