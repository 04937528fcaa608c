// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package connection

import (
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/assetlink/remote"
)

var logger = loggo.GetLogger("assetlink.connection")

// VariableConfig holds the dependencies and settings of a cached
// variable.
type VariableConfig struct {
	// Client is the connection the variable reads and writes over.
	Client remote.Client

	// Node addresses the variable on the remote endpoint.
	Node remote.NodeID

	// Type is the variable's declared data type. Every value
	// crossing the remote boundary must match it exactly.
	Type remote.DataType

	// CacheDuration is the maximum age of a cached value before the
	// next read refetches it. Zero disables caching entirely.
	CacheDuration time.Duration

	// Clock supplies the wall clock for cache expiry. Defaults to
	// clock.WallClock when nil.
	Clock clock.Clock
}

// Validate returns an error if the config is unusable.
func (config VariableConfig) Validate() error {
	if config.Client == nil {
		return errors.NotValidf("nil Client")
	}
	if config.Node == (remote.NodeID{}) {
		return errors.NotValidf("empty Node")
	}
	if !config.Type.IsValid() {
		return errors.NotValidf("data type %q", string(config.Type))
	}
	if config.CacheDuration < 0 {
		return errors.NotValidf("negative CacheDuration")
	}
	return nil
}

// CachedVariable supplies and consumes the value of a single remote
// node, caching reads for the configured duration and converting
// values between wire and host representations at the boundary.
//
// A successful write refreshes the cache optimistically with the
// written value; there is no read-back verification, so a write the
// endpoint silently drops leaves the cache stale until expiry.
type CachedVariable struct {
	client        remote.Client
	node          remote.NodeID
	dtype         remote.DataType
	cacheDuration time.Duration
	clock         clock.Clock

	mu        sync.Mutex
	cached    any
	fetchedAt time.Time
}

var (
	_ ValueSupplier = (*CachedVariable)(nil)
	_ ValueConsumer = (*CachedVariable)(nil)
)

// NewCachedVariable returns a cached variable for the given config.
func NewCachedVariable(config VariableConfig) (*CachedVariable, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.Clock == nil {
		config.Clock = clock.WallClock
	}
	return &CachedVariable{
		client:        config.Client,
		node:          config.Node,
		dtype:         config.Type,
		cacheDuration: config.CacheDuration,
		clock:         config.Clock,
	}, nil
}

// NodeID returns the address of the node this variable reads and
// writes.
func (v *CachedVariable) NodeID() remote.NodeID {
	return v.node
}

// GetValue is part of the ValueSupplier interface. It returns the
// cached value while it remains fresh; otherwise it reads the node,
// checks the received value against the declared type, converts it to
// the host representation and caches it.
func (v *CachedVariable) GetValue() (any, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cacheValid() {
		logger.Debugf("variable %q read from cache", v.node)
		return v.cached, nil
	}

	logger.Debugf("reading %q from %s", v.node, v.client.Endpoint())
	raw, err := v.client.ReadValue(v.node)
	if err != nil {
		return nil, errors.Trace(err)
	}
	value, err := v.dtype.FromWire(raw)
	if err != nil {
		return nil, errors.Annotatef(err, "value received for %q", v.node)
	}
	v.cached = value
	v.fetchedAt = v.clock.Now()
	return value, nil
}

// ApplyValue is part of the ValueConsumer interface. It checks the
// value against the declared type before any remote call, converts it
// to the wire representation and writes it. On success the cache is
// refreshed with the written value; a failed write leaves the cache
// untouched.
func (v *CachedVariable) ApplyValue(value any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	wire, err := v.dtype.ToWire(value)
	if err != nil {
		return errors.Annotatef(err, "value to write to %q", v.node)
	}

	logger.Debugf("writing %v to %q on %s", value, v.node, v.client.Endpoint())
	if err := v.client.WriteValue(v.node, wire); err != nil {
		return errors.Trace(err)
	}
	v.cached = value
	v.fetchedAt = v.clock.Now()
	return nil
}

// cacheValid holds while now < fetchedAt + cacheDuration. The zero
// fetchedAt is infinitely stale, and a zero duration never validates.
func (v *CachedVariable) cacheValid() bool {
	return v.clock.Now().Before(v.fetchedAt.Add(v.cacheDuration))
}
