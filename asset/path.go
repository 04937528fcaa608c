// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package asset

import (
	"strings"

	"github.com/juju/errors"
)

const (
	// Separator joins element ids in a path.
	Separator = "/"

	// ElementsPrefix marks a path as addressing into the model's
	// element tree.
	ElementsPrefix = "elements"

	// ValueSuffix marks a path as addressing an element's value
	// rather than the element itself.
	ValueSuffix = "value"
)

// ValuePath builds the value path for the element reached by the given
// sequence of ids from the model root.
func ValuePath(ids ...string) string {
	return ElementsPrefix + Separator + strings.Join(ids, Separator) + Separator + ValueSuffix
}

// ElementPath builds the element path for the given sequence of ids.
func ElementPath(ids ...string) string {
	return strings.Join(ids, Separator)
}

// ValueProvider resolves paths against a model and reads or writes the
// addressed values, dispatching through installed delegates at any
// depth of the tree.
type ValueProvider struct {
	model *Model
}

// NewValueProvider returns a provider over the given model.
func NewValueProvider(model *Model) *ValueProvider {
	return &ValueProvider{model: model}
}

// Element resolves an element path ("a/b/c") to the element it names.
func (p *ValueProvider) Element(path string) (Element, error) {
	ids, err := splitPath(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	el, err := p.resolve(ids)
	return el, errors.Trace(err)
}

// GetValue resolves a value path ("elements/a/b/c/value") and returns
// the addressed element's value. Properties yield their value;
// collections yield their contents keyed by child id.
func (p *ValueProvider) GetValue(path string) (any, error) {
	ids, err := splitValuePath(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	el, err := p.resolve(ids)
	if err != nil {
		return nil, errors.Trace(err)
	}
	switch el := el.(type) {
	case *Property:
		v, err := el.Value()
		return v, errors.Trace(err)
	case *Collection:
		v, err := el.Value()
		return v, errors.Trace(err)
	}
	return nil, errors.NotSupportedf("reading value of element %q", el.ID())
}

// SetValue resolves a value path and writes the addressed element's
// value. Collections take their keyed-map form.
func (p *ValueProvider) SetValue(path string, value any) error {
	ids, err := splitValuePath(path)
	if err != nil {
		return errors.Trace(err)
	}
	el, err := p.resolve(ids)
	if err != nil {
		return errors.Trace(err)
	}
	switch el := el.(type) {
	case *Property:
		return errors.Trace(el.SetValue(value))
	case *Collection:
		m, ok := value.(map[string]Element)
		if !ok {
			return errors.NotValidf("collection value of type %T", value)
		}
		return errors.Trace(el.SetValue(m))
	}
	return errors.NotSupportedf("writing value of element %q", el.ID())
}

func (p *ValueProvider) resolve(ids []string) (Element, error) {
	el, err := p.model.Element(ids[0])
	if err != nil {
		return nil, errors.Trace(err)
	}
	for _, id := range ids[1:] {
		col, ok := el.(*Collection)
		if !ok {
			return nil, errors.NotFoundf("element %q under non-collection %q", id, el.ID())
		}
		el, err = childOf(col, id)
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return el, nil
}

// childOf looks a child up in the collection's computed contents when a
// delegate is installed, so that resolution sees what a reader would.
func childOf(col *Collection, id string) (Element, error) {
	if !col.Delegated() {
		e, err := col.Child(id)
		return e, errors.Trace(err)
	}
	m, err := col.Value()
	if err != nil {
		return nil, errors.Trace(err)
	}
	e, ok := m[id]
	if !ok {
		return nil, errors.NotFoundf("element %q in collection %q", id, col.ID())
	}
	return e, nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, errors.NotValidf("empty element path")
	}
	ids := strings.Split(path, Separator)
	for _, id := range ids {
		if id == "" {
			return nil, errors.NotValidf("element path %q", path)
		}
	}
	return ids, nil
}

func splitValuePath(path string) ([]string, error) {
	segments := strings.Split(path, Separator)
	if len(segments) < 3 || segments[0] != ElementsPrefix || segments[len(segments)-1] != ValueSuffix {
		return nil, errors.NotValidf("value path %q", path)
	}
	ids := segments[1 : len(segments)-1]
	for _, id := range ids {
		if id == "" {
			return nil, errors.NotValidf("value path %q", path)
		}
	}
	return ids, nil
}
