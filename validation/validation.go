// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package validation holds the small input validators shared by the
// configuration layer and model builders.
package validation

import (
	"net/url"
	"regexp"

	"github.com/juju/errors"
)

var elementIDPattern = regexp.MustCompile(`^[a-zA-Z]\w*$`)

// ElementID checks that id is usable as an element id: a letter from
// the English alphabet first, then letters, digits and underscores.
func ElementID(id string) error {
	if !elementIDPattern.MatchString(id) {
		return errors.NotValidf("element id %q", id)
	}
	return nil
}

// URI checks that raw parses as an absolute URI. Any scheme is
// accepted; the URI need not be resolvable anywhere.
func URI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return errors.NotValidf("URI %q", raw)
	}
	return nil
}

// URL checks that raw parses as a URL with a scheme and a host.
func URL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NotValidf("URL %q", raw)
	}
	return nil
}

// PositiveInt checks that value is strictly positive.
func PositiveInt(value int) error {
	if value <= 0 {
		return errors.NotValidf("non-positive value %d", value)
	}
	return nil
}
