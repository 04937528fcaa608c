// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package connection

import (
	"sync"

	"github.com/juju/errors"

	"github.com/juju/assetlink/remote"
)

// VariableRegistry memoizes cached variables by (client, node), so that
// every part of a process addressing the same remote node shares one
// variable and therefore one cache. Entries persist for the life of the
// registry; there is no eviction.
type VariableRegistry struct {
	mu   sync.Mutex
	vars map[registryKey]*CachedVariable
}

type registryKey struct {
	client remote.Client
	node   remote.NodeID
}

// NewVariableRegistry returns an empty registry.
func NewVariableRegistry() *VariableRegistry {
	return &VariableRegistry{vars: make(map[registryKey]*CachedVariable)}
}

// GetOrCreate returns the registered variable for the config's client
// and node, creating and registering one on first use.
//
// Only the client and node key the lookup: a hit returns the existing
// variable even when the requested type or cache duration differ from
// those it was first registered with. First registration wins.
func (r *VariableRegistry) GetOrCreate(config VariableConfig) (*CachedVariable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{client: config.Client, node: config.Node}
	if v, ok := r.vars[key]; ok {
		return v, nil
	}
	v, err := NewCachedVariable(config)
	if err != nil {
		return nil, errors.Trace(err)
	}
	r.vars[key] = v
	return v, nil
}

// Create returns a fresh variable for the config, neither consulting
// nor populating the registry.
func (r *VariableRegistry) Create(config VariableConfig) (*CachedVariable, error) {
	v, err := NewCachedVariable(config)
	return v, errors.Trace(err)
}

// The process-wide registry backing the package-level functions.
var defaultRegistry = NewVariableRegistry()

// GetOrCreateVariable calls GetOrCreate on the process-wide registry.
func GetOrCreateVariable(config VariableConfig) (*CachedVariable, error) {
	v, err := defaultRegistry.GetOrCreate(config)
	return v, errors.Trace(err)
}

// CreateVariable calls Create on the process-wide registry.
func CreateVariable(config VariableConfig) (*CachedVariable, error) {
	v, err := defaultRegistry.Create(config)
	return v, errors.Trace(err)
}
