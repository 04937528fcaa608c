// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package connection computes asset model property values from live
// external data sources. A delegate installed on a property replaces
// its static storage with get/set handlers; a connected property fans
// reads and writes out to named suppliers and consumers, reconciled by
// filter functions; a cached variable supplies and consumes the value
// of a single remote protocol node with TTL caching and type-safe
// boundary conversion.
package connection

import (
	"github.com/juju/errors"
)

const (
	// ErrNotConfigured is the error category for operations on a
	// connected property that is missing a required supplier,
	// consumer, or filter. It always fails the call before any
	// source is contacted.
	ErrNotConfigured = errors.ConstError("connection not configured")

	// ErrUnknownParticipant is the error category for a consume
	// filter populating a value for a consumer name that was never
	// registered.
	ErrUnknownParticipant = errors.ConstError("unknown participant")
)

// ValueSupplier gets the current value of some property from an
// external data source. Implementations may cache previously fetched
// values; see their documentation for specifics.
type ValueSupplier interface {
	// GetValue returns the latest value. Failures to reach the
	// source are remote.ErrCommunication errors.
	GetValue() (any, error)
}

// ValueConsumer applies an updated property value to an external data
// source.
type ValueConsumer interface {
	// ApplyValue writes the value. Failures to reach the source are
	// remote.ErrCommunication errors.
	ApplyValue(value any) error
}

// SupplyFilter reconciles the values fetched from every registered
// supplier, keyed by supplier name, into the single value of the
// property.
type SupplyFilter func(values map[string]any) (any, error)

// ConsumeFilter splits an updated property value across consumers: it
// receives the value and an empty map, and populates one entry per
// consumer it intends to update, keyed by consumer name.
type ConsumeFilter func(value any, valuesByConsumer map[string]any) error
