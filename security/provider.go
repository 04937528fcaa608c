// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package security supplies the TLS certificates used to secure
// sessions with remote endpoints. Providers hand out a certificate
// and key pair on demand, generating or loading material as needed.
package security

import (
	"crypto/tls"
)

// CertificateProvider supplies the certificate presented during the
// TLS handshake with a remote endpoint.
type CertificateProvider interface {
	// Certificate returns the certificate and private key pair.
	Certificate() (tls.Certificate, error)
}

// DirectProvider is a CertificateProvider wrapping an already
// constructed certificate.
type DirectProvider struct {
	cert tls.Certificate
}

// NewDirectProvider returns a provider that always hands out the
// supplied certificate.
func NewDirectProvider(cert tls.Certificate) *DirectProvider {
	return &DirectProvider{cert: cert}
}

// Certificate implements CertificateProvider.
func (p *DirectProvider) Certificate() (tls.Certificate, error) {
	return p.cert, nil
}
