// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package remote defines the contracts this library consumes from an
// industrial protocol client, along with the data type system used to
// move values across the protocol boundary.
package remote

import (
	"fmt"

	"github.com/juju/errors"
)

// ErrCommunication is the error category for any failure while talking
// to a remote endpoint: timeouts, connection loss, protocol faults.
// Client implementations attach it to their errors with errors.WithType;
// layers above propagate such errors to the caller unchanged.
const ErrCommunication = errors.ConstError("remote communication failed")

// NodeID addresses a single value node on a remote endpoint. It is
// comparable and may be used as a map key.
type NodeID struct {
	// Namespace qualifies the identifier within the endpoint's
	// address space.
	Namespace uint16

	// Identifier names the node within its namespace.
	Identifier string
}

// NewNodeID returns a NodeID for the given namespace and identifier.
func NewNodeID(namespace uint16, identifier string) NodeID {
	return NodeID{Namespace: namespace, Identifier: identifier}
}

// String is the canonical rendering of a node address.
func (n NodeID) String() string {
	return fmt.Sprintf("ns=%d;s=%s", n.Namespace, n.Identifier)
}

// Client reads and writes addressable values on one remote endpoint.
// An implementation represents a single established connection;
// cancellation and timeouts are its own concern and surface only as
// returned errors.
type Client interface {
	// ReadValue returns the current value of the given node in its
	// wire representation. Failures are ErrCommunication errors.
	ReadValue(node NodeID) (any, error)

	// WriteValue writes a wire-representation value to the given
	// node. Failures are ErrCommunication errors.
	WriteValue(node NodeID, value any) error

	// Endpoint describes the remote endpoint, for logging.
	Endpoint() string
}
