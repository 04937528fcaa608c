// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package configuration loads the application settings and command-line
// options of a service embedding this library.
package configuration

import (
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/schema"
	"gopkg.in/yaml.v3"

	"github.com/juju/assetlink/validation"
)

var logger = loggo.GetLogger("assetlink.configuration")

// Settings are the application settings of a service exposing an asset
// model. Values come from a YAML settings file merged over built-in
// defaults.
type Settings struct {
	// ModelName is the id of the exposed asset model. Element id
	// formatting rules apply.
	ModelName string

	// ModelURI globally identifies the model. It is an identifier
	// only and need not be resolvable.
	ModelURI string

	// AssetName is the id of the represented asset. Element id
	// formatting rules apply.
	AssetName string

	// AssetURI globally identifies the asset.
	AssetURI string

	// Hostname and Port are where the service listens.
	Hostname string
	Port     int

	// RemoteEndpoint is the URL of the remote protocol endpoint
	// supplying live values.
	RemoteEndpoint string

	// CacheTTL is the default cache duration for remote variables.
	// Zero disables caching.
	CacheTTL time.Duration
}

var fields = schema.Fields{
	"model-name":      schema.String(),
	"model-uri":       schema.String(),
	"asset-name":      schema.String(),
	"asset-uri":       schema.String(),
	"hostname":        schema.String(),
	"port":            schema.ForceInt(),
	"remote-endpoint": schema.String(),
	"cache-ttl":       schema.TimeDuration(),
}

var defaults = schema.Defaults{
	"model-name":      "AssetModel",
	"model-uri":       "urn:assetlink:model",
	"asset-name":      "Asset",
	"asset-uri":       "urn:assetlink:asset",
	"hostname":        "localhost",
	"port":            4000,
	"remote-endpoint": "opc.tcp://localhost:4840",
	"cache-ttl":       "0s",
}

// Default returns settings with every value at its built-in default.
func Default() (*Settings, error) {
	s, err := fromRaw(map[string]any{})
	return s, errors.Trace(err)
}

// Load reads settings from the YAML file at path, merged over the
// built-in defaults. A missing file is not an error: the defaults are
// returned, matching a fresh deployment with no settings written yet.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Infof("no settings file at %q, continuing with defaults", path)
		s, err := Default()
		return s, errors.Trace(err)
	} else if err != nil {
		return nil, errors.Annotatef(err, "reading settings file %q", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Annotatef(err, "parsing settings file %q", path)
	}
	s, err := fromRaw(raw)
	return s, errors.Trace(err)
}

func fromRaw(raw map[string]any) (*Settings, error) {
	coerced, err := schema.FieldMap(fields, defaults).Coerce(raw, nil)
	if err != nil {
		return nil, errors.Annotate(err, "invalid settings")
	}
	m := coerced.(map[string]any)
	s := &Settings{
		ModelName:      m["model-name"].(string),
		ModelURI:       m["model-uri"].(string),
		AssetName:      m["asset-name"].(string),
		AssetURI:       m["asset-uri"].(string),
		Hostname:       m["hostname"].(string),
		Port:           m["port"].(int),
		RemoteEndpoint: m["remote-endpoint"].(string),
		CacheTTL:       m["cache-ttl"].(time.Duration),
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return s, nil
}

// Validate returns an error if any setting is out of bounds.
func (s *Settings) Validate() error {
	if err := validation.ElementID(s.ModelName); err != nil {
		return errors.Annotate(err, "model-name")
	}
	if err := validation.URI(s.ModelURI); err != nil {
		return errors.Annotate(err, "model-uri")
	}
	if err := validation.ElementID(s.AssetName); err != nil {
		return errors.Annotate(err, "asset-name")
	}
	if err := validation.URI(s.AssetURI); err != nil {
		return errors.Annotate(err, "asset-uri")
	}
	if err := validation.PositiveInt(s.Port); err != nil {
		return errors.Annotate(err, "port")
	}
	if err := validation.URL(s.RemoteEndpoint); err != nil {
		return errors.Annotate(err, "remote-endpoint")
	}
	if s.CacheTTL < 0 {
		return errors.NotValidf("negative cache-ttl")
	}
	return nil
}
