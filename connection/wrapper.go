// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package connection

import (
	"github.com/juju/errors"

	"github.com/juju/assetlink/asset"
)

// ModelWrapper reads and writes element values through their path in
// the model, uniformly whether an element is delegate-backed or holds a
// static value. Accessing a delegated element's value directly on the
// element works too, but the wrapper saves callers from building value
// paths by hand.
//
// The ids arguments are the element ids on the walk from the model root
// to the element: for an element directly in the root, just its id; for
// one nested in collections, each enclosing collection's id first.
type ModelWrapper struct {
	model    *asset.Model
	provider *asset.ValueProvider
}

// WrapModel returns a wrapper around the given model.
func WrapModel(model *asset.Model) *ModelWrapper {
	return &ModelWrapper{
		model:    model,
		provider: asset.NewValueProvider(model),
	}
}

// Model returns the wrapped model, bypassing the wrapper.
func (w *ModelWrapper) Model() *asset.Model {
	return w.model
}

// Element returns the element reached by ids. The returned element does
// not benefit from the wrapper: reading a delegated element's value
// through it is the caller's problem again.
func (w *ModelWrapper) Element(ids ...string) (asset.Element, error) {
	el, err := w.provider.Element(asset.ElementPath(ids...))
	return el, errors.Trace(err)
}

// GetValue returns the value of the element reached by ids.
func (w *ModelWrapper) GetValue(ids ...string) (any, error) {
	v, err := w.provider.GetValue(asset.ValuePath(ids...))
	return v, errors.Trace(err)
}

// SetValue sets the value of the element reached by ids.
func (w *ModelWrapper) SetValue(value any, ids ...string) error {
	return errors.Trace(w.provider.SetValue(asset.ValuePath(ids...), value))
}
