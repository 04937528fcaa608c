// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package connection

import (
	"sync"

	"github.com/juju/errors"

	"github.com/juju/assetlink/asset"
)

// ConnectedProperty is a property whose value is aggregated from one or
// more named value suppliers on read, and split across one or more
// named value consumers on write.
//
// With a single supplier its value is returned as-is; with several, a
// supply filter must reconcile them. Writes mirror this with consumers
// and a consume filter. Get and Set are serialized on a per-instance
// lock so concurrent callers never interleave during fan-out.
type ConnectedProperty struct {
	*asset.Property

	mu            sync.Mutex
	suppliers     map[string]ValueSupplier
	supplierOrder []string
	consumers     map[string]ValueConsumer
	consumerOrder []string
	supplyFilter  SupplyFilter
	consumeFilter ConsumeFilter
}

// NewConnectedProperty returns a connected property with the given id.
// Its delegate is installed on construction, so reads and writes
// dispatched by the tree reach Get and Set immediately.
func NewConnectedProperty(id string) *ConnectedProperty {
	p := &ConnectedProperty{
		Property:  asset.NewProperty(id, nil),
		suppliers: make(map[string]ValueSupplier),
		consumers: make(map[string]ValueConsumer),
	}
	d := InstallOn[any](p.Property)
	d.SetGetHandler(p.Get)
	d.SetSetHandler(p.Set)
	return p
}

// AddSupplier registers a value supplier under a name unique among this
// property's suppliers. At least one supplier must be registered before
// the property can be read.
func (p *ConnectedProperty) AddSupplier(name string, supplier ValueSupplier) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name == "" {
		return errors.NotValidf("empty supplier name")
	}
	if _, ok := p.suppliers[name]; ok {
		return errors.AlreadyExistsf("value supplier %q on property %q", name, p.ID())
	}
	p.suppliers[name] = supplier
	p.supplierOrder = append(p.supplierOrder, name)
	return nil
}

// AddConsumer registers a value consumer under a name unique among this
// property's consumers. At least one consumer must be registered before
// the property can be written.
func (p *ConnectedProperty) AddConsumer(name string, consumer ValueConsumer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name == "" {
		return errors.NotValidf("empty consumer name")
	}
	if _, ok := p.consumers[name]; ok {
		return errors.AlreadyExistsf("value consumer %q on property %q", name, p.ID())
	}
	p.consumers[name] = consumer
	p.consumerOrder = append(p.consumerOrder, name)
	return nil
}

// SetSupplyFilter sets the function reconciling supplier values into
// the property's value. Required once more than one supplier is
// registered.
func (p *ConnectedProperty) SetSupplyFilter(filter SupplyFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.supplyFilter = filter
}

// SetConsumeFilter sets the function splitting the property's value
// across consumers. Required once more than one consumer is registered.
func (p *ConnectedProperty) SetConsumeFilter(filter ConsumeFilter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consumeFilter = filter
}

// Get fetches a value from every registered supplier and reconciles
// them into the property's value. With a single registered supplier its
// value is returned directly and no filter runs. Configuration is
// checked before any supplier is contacted.
func (p *ConnectedProperty) Get() (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.suppliers) == 0 {
		return nil, errors.WithType(errors.Errorf(
			"property %q has no value supplier", p.ID()), ErrNotConfigured)
	}
	if len(p.suppliers) > 1 && p.supplyFilter == nil {
		return nil, errors.WithType(errors.Errorf(
			"property %q has %d value suppliers but no supply filter",
			p.ID(), len(p.suppliers)), ErrNotConfigured)
	}

	values := make(map[string]any, len(p.suppliers))
	for _, name := range p.supplierOrder {
		v, err := p.suppliers[name].GetValue()
		if err != nil {
			return nil, errors.Annotatef(err, "reading value supplier %q of property %q", name, p.ID())
		}
		values[name] = v
	}

	if len(p.suppliers) == 1 {
		return values[p.supplierOrder[0]], nil
	}
	v, err := p.supplyFilter(values)
	return v, errors.Trace(err)
}

// Set splits value across the registered consumers. With a single
// registered consumer the value is dispatched directly and no filter
// runs; otherwise the consume filter decides which consumers receive
// what. Configuration is checked before any consumer is contacted.
func (p *ConnectedProperty) Set(value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.consumers) == 0 {
		return errors.WithType(errors.Errorf(
			"property %q has no value consumer", p.ID()), ErrNotConfigured)
	}
	if len(p.consumers) > 1 && p.consumeFilter == nil {
		return errors.WithType(errors.Errorf(
			"property %q has %d value consumers but no consume filter",
			p.ID(), len(p.consumers)), ErrNotConfigured)
	}

	if len(p.consumers) == 1 {
		name := p.consumerOrder[0]
		return errors.Annotatef(
			p.consumers[name].ApplyValue(value),
			"writing value consumer %q of property %q", name, p.ID())
	}

	valuesByConsumer := make(map[string]any, len(p.consumers))
	if err := p.consumeFilter(value, valuesByConsumer); err != nil {
		return errors.Trace(err)
	}
	for name, v := range valuesByConsumer {
		consumer, ok := p.consumers[name]
		if !ok {
			return errors.WithType(errors.Errorf(
				"%q is not a registered value consumer of property %q",
				name, p.ID()), ErrUnknownParticipant)
		}
		if err := consumer.ApplyValue(v); err != nil {
			return errors.Annotatef(err, "writing value consumer %q of property %q", name, p.ID())
		}
	}
	return nil
}
