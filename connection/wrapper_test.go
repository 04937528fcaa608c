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
)

type WrapperSuite struct {
	testing.IsolationSuite

	wrapper *connection.ModelWrapper
	sensor  *stubSupplier
	output  *stubConsumer
}

var _ = gc.Suite(&WrapperSuite{})

// SetUpTest builds a model holding a static property and a collection
// containing a connected property.
func (s *WrapperSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)

	s.sensor = &stubSupplier{value: int32(21)}
	s.output = &stubConsumer{}

	temperature := connection.NewConnectedProperty("temperature")
	c.Assert(temperature.AddSupplier("sensor", s.sensor), jc.ErrorIsNil)
	c.Assert(temperature.AddConsumer("output", s.output), jc.ErrorIsNil)

	line := asset.NewCollection("line1")
	c.Assert(line.Add(temperature.Property), jc.ErrorIsNil)

	model := asset.NewModel("plant")
	c.Assert(model.AddElement(line, asset.NewProperty("name", "Plant A")), jc.ErrorIsNil)
	s.wrapper = connection.WrapModel(model)
}

func (s *WrapperSuite) TestGetStaticValue(c *gc.C) {
	v, err := s.wrapper.GetValue("name")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(v, gc.Equals, "Plant A")
}

func (s *WrapperSuite) TestSetStaticValue(c *gc.C) {
	c.Assert(s.wrapper.SetValue("Plant B", "name"), jc.ErrorIsNil)
	v, err := s.wrapper.GetValue("name")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(v, gc.Equals, "Plant B")
}

func (s *WrapperSuite) TestGetConnectedValue(c *gc.C) {
	v, err := s.wrapper.GetValue("line1", "temperature")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(v, gc.Equals, int32(21))
	c.Check(s.sensor.calls, gc.Equals, 1)
}

func (s *WrapperSuite) TestSetConnectedValue(c *gc.C) {
	c.Assert(s.wrapper.SetValue(int32(25), "line1", "temperature"), jc.ErrorIsNil)
	c.Check(s.output.applied, jc.DeepEquals, []any{int32(25)})
}

func (s *WrapperSuite) TestElement(c *gc.C) {
	el, err := s.wrapper.Element("line1", "temperature")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(el.ID(), gc.Equals, "temperature")
}

func (s *WrapperSuite) TestUnknownElement(c *gc.C) {
	_, err := s.wrapper.GetValue("line1", "pressure")
	c.Check(err, jc.ErrorIs, errors.NotFound)
}

func (s *WrapperSuite) TestModelBypass(c *gc.C) {
	c.Check(s.wrapper.Model().ID(), gc.Equals, "plant")
}
