// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
)

const (
	// DefaultCommonName is the subject common name used when the
	// configuration does not supply one.
	DefaultCommonName = "assetlink"

	// DefaultLifetime is the validity period used when the
	// configuration does not supply one.
	DefaultLifetime = 365 * 24 * time.Hour
)

// SelfSignedConfig holds the attributes of a generated certificate.
type SelfSignedConfig struct {
	// CommonName is the certificate subject common name. Defaults
	// to DefaultCommonName.
	CommonName string

	// Lifetime is the validity period of the certificate. Defaults
	// to DefaultLifetime.
	Lifetime time.Duration

	// Clock supplies the time the validity period starts at.
	// Defaults to clock.WallClock.
	Clock clock.Clock
}

// Validate checks the configuration for nonsensical values.
func (cfg SelfSignedConfig) Validate() error {
	if cfg.Lifetime < 0 {
		return errors.NotValidf("negative lifetime %v", cfg.Lifetime)
	}
	return nil
}

// SelfSignedProvider generates a self signed ECDSA P-256 certificate
// on first use and hands out the same certificate afterwards. Safe
// for concurrent use.
type SelfSignedProvider struct {
	cfg SelfSignedConfig

	mu   sync.Mutex
	cert *tls.Certificate
}

// NewSelfSignedProvider returns a provider generating certificates
// with the supplied attributes.
func NewSelfSignedProvider(cfg SelfSignedConfig) (*SelfSignedProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if cfg.CommonName == "" {
		cfg.CommonName = DefaultCommonName
	}
	if cfg.Lifetime == 0 {
		cfg.Lifetime = DefaultLifetime
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	return &SelfSignedProvider{cfg: cfg}, nil
}

// Certificate implements CertificateProvider. The certificate is
// generated on the first call and memoized.
func (p *SelfSignedProvider) Certificate() (tls.Certificate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cert != nil {
		return *p.cert, nil
	}
	cert, err := p.generate()
	if err != nil {
		return tls.Certificate{}, errors.Trace(err)
	}
	p.cert = &cert
	return cert, nil
}

func (p *SelfSignedProvider) generate() (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, errors.Annotate(err, "generating private key")
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, errors.Annotate(err, "generating serial number")
	}

	now := p.cfg.Clock.Now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: p.cfg.CommonName},
		NotBefore:             now,
		NotAfter:              now.Add(p.cfg.Lifetime),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, errors.Annotate(err, "creating certificate")
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return tls.Certificate{}, errors.Trace(err)
	}

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
		Leaf:        leaf,
	}, nil
}
