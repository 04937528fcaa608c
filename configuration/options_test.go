// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package configuration_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/assetlink/configuration"
)

type OptionsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&OptionsSuite{})

func (*OptionsSuite) TestDefaults(c *gc.C) {
	opts, err := configuration.ParseOptions(nil)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(opts.SettingsPath, gc.Equals, configuration.DefaultSettingsPath)
	c.Check(opts.LogConfig, gc.Equals, "")
}

func (*OptionsSuite) TestShortOptions(c *gc.C) {
	opts, err := configuration.ParseOptions([]string{"-p", "custom.yaml", "-l", "<root>=DEBUG"})
	c.Assert(err, jc.ErrorIsNil)
	c.Check(opts.SettingsPath, gc.Equals, "custom.yaml")
	c.Check(opts.LogConfig, gc.Equals, "<root>=DEBUG")
}

func (*OptionsSuite) TestLongOptions(c *gc.C) {
	opts, err := configuration.ParseOptions([]string{
		"--settings-file", "custom.yaml",
		"--log-config", "assetlink=TRACE",
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Check(opts.SettingsPath, gc.Equals, "custom.yaml")
	c.Check(opts.LogConfig, gc.Equals, "assetlink=TRACE")
}

func (*OptionsSuite) TestUnknownFlag(c *gc.C) {
	_, err := configuration.ParseOptions([]string{"--frobnicate"})
	c.Check(err, gc.NotNil)
}

func (*OptionsSuite) TestUnexpectedArguments(c *gc.C) {
	_, err := configuration.ParseOptions([]string{"stray"})
	c.Check(err, jc.ErrorIs, errors.NotValid)
}

func (*OptionsSuite) TestInvalidLogConfig(c *gc.C) {
	_, err := configuration.ParseOptions([]string{"-l", "===nope"})
	c.Check(err, gc.ErrorMatches, "invalid log config: .*")
}

func (*OptionsSuite) TestApplyLogConfigNoop(c *gc.C) {
	opts, err := configuration.ParseOptions(nil)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(opts.ApplyLogConfig(), jc.ErrorIsNil)
}
