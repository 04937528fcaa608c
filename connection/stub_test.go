// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package connection_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"

	"github.com/juju/assetlink/remote"
)

// stubClient is an in-memory remote.Client that echoes back whatever
// was last written to a node. Calls and queued errors go through the
// embedded Stub.
type stubClient struct {
	*testing.Stub

	endpoint string
	values   map[remote.NodeID]any
}

func newStubClient() *stubClient {
	return &stubClient{
		Stub:     &testing.Stub{},
		endpoint: "opc.tcp://stub:4840",
		values:   make(map[remote.NodeID]any),
	}
}

func (c *stubClient) ReadValue(node remote.NodeID) (any, error) {
	c.AddCall("ReadValue", node)
	if err := c.NextErr(); err != nil {
		return nil, err
	}
	v, ok := c.values[node]
	if !ok {
		return nil, errors.WithType(
			errors.Errorf("no value at %q", node), remote.ErrCommunication)
	}
	return v, nil
}

func (c *stubClient) WriteValue(node remote.NodeID, value any) error {
	c.AddCall("WriteValue", node, value)
	if err := c.NextErr(); err != nil {
		return err
	}
	c.values[node] = value
	return nil
}

func (c *stubClient) Endpoint() string {
	return c.endpoint
}

// stubSupplier returns a fixed value or error, counting calls.
type stubSupplier struct {
	value any
	err   error
	calls int
}

func (s *stubSupplier) GetValue() (any, error) {
	s.calls++
	return s.value, s.err
}

// stubConsumer records applied values.
type stubConsumer struct {
	applied []any
	err     error
}

func (s *stubConsumer) ApplyValue(value any) error {
	if s.err != nil {
		return s.err
	}
	s.applied = append(s.applied, value)
	return nil
}
