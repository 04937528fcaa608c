// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package connection_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/assetlink/asset"
	"github.com/juju/assetlink/connection"
	"github.com/juju/assetlink/remote"
)

type DelegateSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&DelegateSuite{})

func (*DelegateSuite) TestDefaultHandlersNotSupported(c *gc.C) {
	p := asset.NewProperty("speed", nil)
	connection.InstallOn[int32](p)

	_, err := p.Value()
	c.Check(err, jc.ErrorIs, errors.NotSupported)
	c.Check(p.SetValue(int32(1)), jc.ErrorIs, errors.NotSupported)
}

func (*DelegateSuite) TestHandlersDispatchThroughTree(c *gc.C) {
	p := asset.NewProperty("speed", nil)
	d := connection.InstallOn[int32](p)

	var written []int32
	d.SetGetHandler(func() (int32, error) { return 7, nil })
	d.SetSetHandler(func(v int32) error {
		written = append(written, v)
		return nil
	})

	v, err := p.Value()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(v, gc.Equals, int32(7))

	c.Assert(p.SetValue(int32(9)), jc.ErrorIsNil)
	c.Check(written, jc.DeepEquals, []int32{9})
}

func (*DelegateSuite) TestHandlerReplacementTakesEffect(c *gc.C) {
	p := asset.NewProperty("speed", nil)
	d := connection.InstallOn[int32](p)

	d.SetGetHandler(func() (int32, error) { return 1, nil })
	d.SetGetHandler(func() (int32, error) { return 2, nil })

	v, err := p.Value()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(v, gc.Equals, int32(2))
}

func (*DelegateSuite) TestSetValueWrongTypeRejected(c *gc.C) {
	p := asset.NewProperty("speed", nil)
	d := connection.InstallOn[int32](p)
	d.SetSetHandler(func(int32) error { return nil })

	err := p.SetValue("not an int32")
	c.Check(err, jc.ErrorIs, remote.ErrTypeMismatch)
}

func (*DelegateSuite) TestGetHandlerErrorPropagates(c *gc.C) {
	p := asset.NewProperty("speed", nil)
	d := connection.InstallOn[int32](p)
	boom := errors.New("boom")
	d.SetGetHandler(func() (int32, error) { return 0, boom })

	_, err := p.Value()
	c.Check(err, jc.ErrorIs, boom)
}

func (*DelegateSuite) TestCollectionDefaultHandlersNotSupported(c *gc.C) {
	col := asset.NewCollection("motors")
	connection.InstallOnCollection(col)

	_, err := col.Value()
	c.Check(err, jc.ErrorIs, errors.NotSupported)
}

func (*DelegateSuite) TestCollectionGetKeyedByID(c *gc.C) {
	col := asset.NewCollection("motors")
	d := connection.InstallOnCollection(col)

	a := asset.NewProperty("a", 1)
	b := asset.NewProperty("b", 2)
	d.SetGetHandler(func() ([]asset.Element, error) {
		return []asset.Element{a, b}, nil
	})

	m, err := col.Value()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(m, jc.DeepEquals, map[string]asset.Element{"a": a, "b": b})
}

func (*DelegateSuite) TestCollectionSetRebuildsFromMap(c *gc.C) {
	col := asset.NewCollection("motors")
	d := connection.InstallOnCollection(col)

	var received []asset.Element
	d.SetSetHandler(func(elements []asset.Element) error {
		received = elements
		return nil
	})

	a := asset.NewProperty("a", 1)
	b := asset.NewProperty("b", 2)
	err := col.SetValue(map[string]asset.Element{"a": a, "b": b})
	c.Assert(err, jc.ErrorIsNil)

	// Ordering is not preserved through the keyed form.
	c.Check(received, gc.HasLen, 2)
	c.Check(hasElement(received, a), jc.IsTrue)
	c.Check(hasElement(received, b), jc.IsTrue)
}

func hasElement(elements []asset.Element, want asset.Element) bool {
	for _, e := range elements {
		if e == want {
			return true
		}
	}
	return false
}
