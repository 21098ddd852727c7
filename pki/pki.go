// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package pki provides the CA root key material from local storage.
package pki

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/errors"
)

const (
	caCertName    = "ca.crt"
	caKeyName     = "ca.key"
	privateDir    = "private"
	defKeyBits    = 4096
	defValidYears = 30
	defCommonName = "SimpleCA Root Certificate Authority"
)

var (
	ErrCAExists       = errors.New("CA material already exists")
	errLoadCert       = errors.New("failed to load CA certificate")
	errLoadKey        = errors.New("failed to load CA private key")
	errWriteMaterial  = errors.New("failed to write CA material")
	errGenerateRootCA = errors.New("failed to generate root CA")
)

type provider struct {
	path   string
	cert   *x509.Certificate
	key    *rsa.PrivateKey
	logger *slog.Logger
}

var _ simpleca.KeyProvider = (*provider)(nil)

// New loads an existing CA from the storage path.
func New(storagePath string, logger *slog.Logger) (simpleca.KeyProvider, error) {
	cert, err := loadCert(certPath(storagePath))
	if err != nil {
		return nil, errors.Wrap(errLoadCert, err)
	}
	key, err := loadKey(keyPath(storagePath))
	if err != nil {
		return nil, errors.Wrap(errLoadKey, err)
	}

	return &provider{path: storagePath, cert: cert, key: key, logger: logger}, nil
}

// Bootstrap generates the root key pair and a self-signed CA certificate
// under the storage path. It refuses to overwrite existing material.
func Bootstrap(storagePath string, cfg simpleca.CAConfig, logger *slog.Logger) (simpleca.KeyProvider, error) {
	if _, err := os.Stat(certPath(storagePath)); err == nil {
		return nil, errors.Wrap(ErrCAExists, errors.New(certPath(storagePath)))
	}

	if cfg.KeyBits == 0 {
		cfg.KeyBits = defKeyBits
	}
	if cfg.ValidityYears == 0 {
		cfg.ValidityYears = defValidYears
	}
	if cfg.CommonName == "" {
		cfg.CommonName = defCommonName
	}

	key, err := rsa.GenerateKey(rand.Reader, cfg.KeyBits)
	if err != nil {
		return nil, errors.Wrap(errGenerateRootCA, err)
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, errors.Wrap(errGenerateRootCA, err)
	}

	now := time.Now().UTC()
	template := &x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName:         cfg.CommonName,
			Organization:       cfg.Organization,
			OrganizationalUnit: cfg.OrganizationalUnit,
			Country:            cfg.Country,
			Province:           cfg.Province,
			Locality:           cfg.Locality,
			StreetAddress:      cfg.StreetAddress,
			PostalCode:         cfg.PostalCode,
		},
		NotBefore:             now,
		NotAfter:              now.AddDate(cfg.ValidityYears, 0, 0),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLenZero:        true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, errors.Wrap(errGenerateRootCA, err)
	}
	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return nil, errors.Wrap(errGenerateRootCA, err)
	}

	if err := writeMaterial(storagePath, cert, key); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("bootstrapped root CA",
			slog.String("common_name", cfg.CommonName),
			slog.String("path", storagePath),
			slog.Time("not_after", cert.NotAfter),
		)
	}

	return &provider{path: storagePath, cert: cert, key: key, logger: logger}, nil
}

// Setup loads the CA from the storage path, bootstrapping it first if no
// material exists yet.
func Setup(storagePath string, cfg simpleca.CAConfig, logger *slog.Logger) (simpleca.KeyProvider, error) {
	if _, err := os.Stat(certPath(storagePath)); os.IsNotExist(err) {
		return Bootstrap(storagePath, cfg, logger)
	}
	return New(storagePath, logger)
}

func (p *provider) RootCertificate() (*x509.Certificate, error) {
	if p.cert == nil {
		return nil, errLoadCert
	}
	return p.cert, nil
}

func (p *provider) Signer() (crypto.Signer, error) {
	if p.key == nil {
		return nil, errLoadKey
	}
	return p.key, nil
}

func (p *provider) GenerateKeyPair(bits int) (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, bits)
}

func certPath(base string) string {
	return filepath.Join(base, caCertName)
}

func keyPath(base string) string {
	return filepath.Join(base, privateDir, caKeyName)
}

func writeMaterial(base string, cert *x509.Certificate, key *rsa.PrivateKey) error {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return errors.Wrap(errWriteMaterial, err)
	}
	if err := os.MkdirAll(filepath.Join(base, privateDir), 0o700); err != nil {
		return errors.Wrap(errWriteMaterial, err)
	}

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	if err := os.WriteFile(keyPath(base), keyPEM, 0o600); err != nil {
		return errors.Wrap(errWriteMaterial, err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	if err := os.WriteFile(certPath(base), certPEM, 0o644); err != nil {
		return errors.Wrap(errWriteMaterial, err)
	}

	return nil
}

func loadCert(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, errors.New("no certificate found in " + path)
	}
	return x509.ParseCertificate(block.Bytes)
}

func loadKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no private key found in " + path)
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}
