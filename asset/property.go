// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package asset

import (
	"github.com/juju/errors"
)

// Property is a leaf element holding a single value. The value is
// stored statically until a delegate is installed, after which every
// read and write is dispatched to the delegate instead.
type Property struct {
	id       string
	value    any
	delegate ValueDelegate
}

// NewProperty returns a property with the given id and initial static
// value.
func NewProperty(id string, value any) *Property {
	return &Property{id: id, value: value}
}

// ID is part of the Element interface.
func (p *Property) ID() string {
	return p.id
}

// InstallDelegate replaces the property's static storage with the given
// delegate. Installation is permanent for the life of the property.
func (p *Property) InstallDelegate(d ValueDelegate) {
	p.delegate = d
}

// Delegated reports whether a delegate is installed.
func (p *Property) Delegated() bool {
	return p.delegate != nil
}

// Value returns the property's current value, computed by the delegate
// when one is installed.
func (p *Property) Value() (any, error) {
	if p.delegate != nil {
		v, err := p.delegate.GetValue()
		return v, errors.Trace(err)
	}
	return p.value, nil
}

// SetValue updates the property's value, dispatching to the delegate
// when one is installed.
func (p *Property) SetValue(value any) error {
	if p.delegate != nil {
		return errors.Trace(p.delegate.SetValue(value))
	}
	p.value = value
	return nil
}
