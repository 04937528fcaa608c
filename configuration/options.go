// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package configuration

import (
	"io"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
)

// DefaultSettingsPath is where Load looks for the settings file when no
// command-line option overrides it.
const DefaultSettingsPath = "assetlink.yaml"

// Options are the command-line options of a service embedding this
// library.
type Options struct {
	// SettingsPath is the path of the YAML settings file.
	SettingsPath string

	// LogConfig is a loggo specification applied to the process-wide
	// logging configuration, e.g. "<root>=INFO;assetlink=DEBUG".
	LogConfig string
}

// ParseOptions parses command-line arguments (excluding the program
// name). Unknown flags are an error.
func ParseOptions(args []string) (*Options, error) {
	opts := &Options{SettingsPath: DefaultSettingsPath}

	f := gnuflag.NewFlagSet("assetlink", gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.StringVar(&opts.SettingsPath, "p", DefaultSettingsPath, "path of the settings file")
	f.StringVar(&opts.SettingsPath, "settings-file", DefaultSettingsPath, "")
	f.StringVar(&opts.LogConfig, "l", "", "loggo configuration to apply")
	f.StringVar(&opts.LogConfig, "log-config", "", "")

	if err := f.Parse(true, args); err != nil {
		return nil, errors.Trace(err)
	}
	if extra := f.Args(); len(extra) > 0 {
		return nil, errors.NotValidf("unexpected arguments %q", extra)
	}
	if opts.LogConfig != "" {
		// Fail parsing rather than surprising the caller later.
		if _, err := loggo.ParseConfigString(opts.LogConfig); err != nil {
			return nil, errors.Annotate(err, "invalid log config")
		}
	}
	return opts, nil
}

// ApplyLogConfig applies the parsed log configuration to the
// process-wide loggo context. A no-op when none was given.
func (o *Options) ApplyLogConfig() error {
	if o.LogConfig == "" {
		return nil
	}
	return errors.Trace(loggo.ConfigureLoggers(o.LogConfig))
}
