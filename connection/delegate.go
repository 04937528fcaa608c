// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package connection

import (
	"reflect"

	"github.com/juju/collections/transform"
	"github.com/juju/errors"

	"github.com/juju/assetlink/asset"
	"github.com/juju/assetlink/remote"
)

// Delegate attaches computed get/set handlers to a property in place of
// static value storage. Until replaced, both handlers fail with a
// not-supported error.
//
// Replacing a handler takes effect immediately and is deliberately not
// synchronized: callers must not swap handlers concurrently with
// in-flight reads or writes.
type Delegate[T any] struct {
	id  string
	get func() (T, error)
	set func(T) error
}

// InstallOn creates a delegate and installs it on the property in one
// step, so the tree dispatches the property's reads and writes through
// it from then on.
func InstallOn[T any](p *asset.Property) *Delegate[T] {
	d := &Delegate[T]{id: p.ID()}
	d.get = func() (T, error) {
		var zero T
		return zero, errors.NotSupportedf("reading property %q", d.id)
	}
	d.set = func(T) error {
		return errors.NotSupportedf("writing property %q", d.id)
	}
	p.InstallDelegate(d)
	return d
}

// SetGetHandler replaces the read handler.
func (d *Delegate[T]) SetGetHandler(get func() (T, error)) {
	d.get = get
}

// SetSetHandler replaces the write handler.
func (d *Delegate[T]) SetSetHandler(set func(T) error) {
	d.set = set
}

// GetValue is part of the asset.ValueDelegate interface.
func (d *Delegate[T]) GetValue() (any, error) {
	v, err := d.get()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return v, nil
}

// SetValue is part of the asset.ValueDelegate interface.
func (d *Delegate[T]) SetValue(value any) error {
	v, ok := value.(T)
	if !ok {
		return errors.WithType(errors.Errorf(
			"property %q expects values of %s, got %T",
			d.id, reflect.TypeOf((*T)(nil)).Elem(), value,
		), remote.ErrTypeMismatch)
	}
	return errors.Trace(d.set(v))
}

// CollectionDelegate attaches computed get/set handlers to a
// collection. Handlers exchange plain element lists; the delegate
// converts to and from the keyed-map form the tree's computed
// collection mechanism understands. Rebuilding the list from the keyed
// form on write loses the original ordering; this is a documented
// limitation of the keyed form, not corrected here.
type CollectionDelegate struct {
	id  string
	get func() ([]asset.Element, error)
	set func([]asset.Element) error
}

// InstallOnCollection creates a collection delegate and installs it on
// the collection in one step.
func InstallOnCollection(c *asset.Collection) *CollectionDelegate {
	d := &CollectionDelegate{id: c.ID()}
	d.get = func() ([]asset.Element, error) {
		return nil, errors.NotSupportedf("reading collection %q", d.id)
	}
	d.set = func([]asset.Element) error {
		return errors.NotSupportedf("writing collection %q", d.id)
	}
	c.InstallDelegate(d)
	return d
}

// SetGetHandler replaces the read handler.
func (d *CollectionDelegate) SetGetHandler(get func() ([]asset.Element, error)) {
	d.get = get
}

// SetSetHandler replaces the write handler.
func (d *CollectionDelegate) SetSetHandler(set func([]asset.Element) error) {
	d.set = set
}

// GetValue is part of the asset.ValueDelegate interface. The handler's
// element list is returned keyed by element id.
func (d *CollectionDelegate) GetValue() (any, error) {
	elements, err := d.get()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return transform.SliceToMap(elements, func(e asset.Element) (string, asset.Element) {
		return e.ID(), e
	}), nil
}

// SetValue is part of the asset.ValueDelegate interface. The keyed
// map's values are handed to the handler as a list in unspecified
// order.
func (d *CollectionDelegate) SetValue(value any) error {
	m, ok := value.(map[string]asset.Element)
	if !ok {
		return errors.WithType(errors.Errorf(
			"collection %q expects values of map[string]asset.Element, got %T", d.id, value,
		), remote.ErrTypeMismatch)
	}
	elements := make([]asset.Element, 0, len(m))
	for _, e := range m {
		elements = append(elements, e)
	}
	return errors.Trace(d.set(elements))
}
