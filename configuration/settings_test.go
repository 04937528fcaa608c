// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package configuration_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/assetlink/configuration"
)

type SettingsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&SettingsSuite{})

func (s *SettingsSuite) writeSettings(c *gc.C, content string) string {
	path := filepath.Join(c.MkDir(), "assetlink.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	c.Assert(err, jc.ErrorIsNil)
	return path
}

func (*SettingsSuite) TestDefault(c *gc.C) {
	s, err := configuration.Default()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(s.ModelName, gc.Equals, "AssetModel")
	c.Check(s.Hostname, gc.Equals, "localhost")
	c.Check(s.Port, gc.Equals, 4000)
	c.Check(s.RemoteEndpoint, gc.Equals, "opc.tcp://localhost:4840")
	c.Check(s.CacheTTL, gc.Equals, time.Duration(0))
}

func (s *SettingsSuite) TestLoadMissingFileYieldsDefaults(c *gc.C) {
	loaded, err := configuration.Load(filepath.Join(c.MkDir(), "absent.yaml"))
	c.Assert(err, jc.ErrorIsNil)

	expected, err := configuration.Default()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(loaded, jc.DeepEquals, expected)
}

func (s *SettingsSuite) TestLoadOverridesDefaults(c *gc.C) {
	path := s.writeSettings(c, `
model-name: Press17
model-uri: urn:example:press17
port: 8080
remote-endpoint: opc.tcp://plc17:4840
cache-ttl: 5s
`)
	loaded, err := configuration.Load(path)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(loaded.ModelName, gc.Equals, "Press17")
	c.Check(loaded.ModelURI, gc.Equals, "urn:example:press17")
	c.Check(loaded.Port, gc.Equals, 8080)
	c.Check(loaded.RemoteEndpoint, gc.Equals, "opc.tcp://plc17:4840")
	c.Check(loaded.CacheTTL, gc.Equals, 5*time.Second)
	// Untouched keys keep their defaults.
	c.Check(loaded.AssetName, gc.Equals, "Asset")
}

func (s *SettingsSuite) TestLoadRejectsBadModelName(c *gc.C) {
	path := s.writeSettings(c, "model-name: 2fast\n")
	_, err := configuration.Load(path)
	c.Check(err, jc.ErrorIs, errors.NotValid)
	c.Check(err, gc.ErrorMatches, `model-name: element id "2fast" not valid`)
}

func (s *SettingsSuite) TestLoadRejectsBadPort(c *gc.C) {
	path := s.writeSettings(c, "port: -1\n")
	_, err := configuration.Load(path)
	c.Check(err, jc.ErrorIs, errors.NotValid)
}

func (s *SettingsSuite) TestLoadRejectsBadEndpoint(c *gc.C) {
	path := s.writeSettings(c, "remote-endpoint: not-a-url\n")
	_, err := configuration.Load(path)
	c.Check(err, jc.ErrorIs, errors.NotValid)
}

func (s *SettingsSuite) TestLoadRejectsBadDuration(c *gc.C) {
	path := s.writeSettings(c, "cache-ttl: fast\n")
	_, err := configuration.Load(path)
	c.Check(err, gc.NotNil)
}

func (s *SettingsSuite) TestLoadRejectsMalformedYAML(c *gc.C) {
	path := s.writeSettings(c, "port: [unclosed\n")
	_, err := configuration.Load(path)
	c.Check(err, gc.ErrorMatches, `parsing settings file .*`)
}
