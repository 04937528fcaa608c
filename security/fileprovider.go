// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package security

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"sync"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("assetlink.security")

// FileProvider loads a certificate and key pair from PEM files,
// generating and persisting a pair through the fallback provider
// when the files are absent. Safe for concurrent use.
type FileProvider struct {
	certPath string
	keyPath  string
	fallback CertificateProvider

	mu   sync.Mutex
	cert *tls.Certificate
}

// NewFileProvider returns a provider backed by the supplied PEM file
// paths. The fallback provider is consulted once when neither file
// exists, and the material it produces is written back to disk.
func NewFileProvider(certPath, keyPath string, fallback CertificateProvider) (*FileProvider, error) {
	if certPath == "" || keyPath == "" {
		return nil, errors.NotValidf("empty certificate or key path")
	}
	if fallback == nil {
		return nil, errors.NotValidf("nil fallback provider")
	}
	return &FileProvider{
		certPath: certPath,
		keyPath:  keyPath,
		fallback: fallback,
	}, nil
}

// Certificate implements CertificateProvider.
func (p *FileProvider) Certificate() (tls.Certificate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cert != nil {
		return *p.cert, nil
	}

	cert, err := p.load()
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("no certificate at %q, generating a new pair", p.certPath)
		cert, err = p.generateAndPersist()
	}
	if err != nil {
		return tls.Certificate{}, errors.Trace(err)
	}
	p.cert = &cert
	return cert, nil
}

func (p *FileProvider) load() (tls.Certificate, error) {
	if _, err := os.Stat(p.certPath); err != nil {
		return tls.Certificate{}, errors.Trace(err)
	}
	if _, err := os.Stat(p.keyPath); err != nil {
		return tls.Certificate{}, errors.Trace(err)
	}
	cert, err := tls.LoadX509KeyPair(p.certPath, p.keyPath)
	if err != nil {
		return tls.Certificate{}, errors.Annotatef(err, "loading key pair from %q", p.certPath)
	}
	return cert, nil
}

func (p *FileProvider) generateAndPersist() (tls.Certificate, error) {
	cert, err := p.fallback.Certificate()
	if err != nil {
		return tls.Certificate{}, errors.Trace(err)
	}
	certPem, keyPem, err := encodePem(cert)
	if err != nil {
		return tls.Certificate{}, errors.Trace(err)
	}
	if err := os.WriteFile(p.certPath, certPem, 0644); err != nil {
		return tls.Certificate{}, errors.Annotate(err, "writing certificate file")
	}
	if err := os.WriteFile(p.keyPath, keyPem, 0600); err != nil {
		return tls.Certificate{}, errors.Annotate(err, "writing key file")
	}
	return cert, nil
}

func encodePem(cert tls.Certificate) (certPem, keyPem []byte, err error) {
	for _, der := range cert.Certificate {
		certPem = append(certPem, pem.EncodeToMemory(&pem.Block{
			Type:  "CERTIFICATE",
			Bytes: der,
		})...)
	}

	keyDer, err := x509.MarshalPKCS8PrivateKey(cert.PrivateKey)
	if err != nil {
		return nil, nil, errors.Annotate(err, "marshalling private key")
	}
	keyPem = pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyDer,
	})
	return certPem, keyPem, nil
}
