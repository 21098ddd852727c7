// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package pki_test

import (
	"crypto/rsa"
	"crypto/x509"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/errors"
	"github.com/absmach/simpleca/pki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = simpleca.CAConfig{KeyBits: 2048, ValidityYears: 5}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()

	provider, err := pki.Bootstrap(dir, simpleca.CAConfig{
		KeyBits:       2048,
		ValidityYears: 5,
		CommonName:    "Test Root CA",
		Organization:  []string{"Test Org"},
	}, nil)
	require.NoError(t, err)

	cert, err := provider.RootCertificate()
	require.NoError(t, err)
	assert.Equal(t, "Test Root CA", cert.Subject.CommonName)
	assert.Equal(t, []string{"Test Org"}, cert.Subject.Organization)
	assert.True(t, cert.IsCA)
	assert.True(t, cert.MaxPathLenZero)
	assert.True(t, cert.BasicConstraintsValid)
	assert.NotZero(t, cert.KeyUsage&x509.KeyUsageCertSign)
	assert.NotZero(t, cert.KeyUsage&x509.KeyUsageCRLSign)
	assert.NoError(t, cert.CheckSignatureFrom(cert))

	signer, err := provider.Signer()
	require.NoError(t, err)
	key, ok := signer.(*rsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, 2048, key.N.BitLen())
	assert.Equal(t, &key.PublicKey, cert.PublicKey)

	certInfo, err := os.Stat(filepath.Join(dir, "ca.crt"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), certInfo.Mode().Perm())

	keyInfo, err := os.Stat(filepath.Join(dir, "private", "ca.key"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), keyInfo.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Join(dir, "private"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestBootstrapRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	_, err := pki.Bootstrap(dir, testCfg, nil)
	require.NoError(t, err)

	_, err = pki.Bootstrap(dir, testCfg, nil)
	assert.True(t, errors.Contains(err, pki.ErrCAExists), "expected %v, got %v", pki.ErrCAExists, err)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	bootstrapped, err := pki.Bootstrap(dir, testCfg, nil)
	require.NoError(t, err)
	original, err := bootstrapped.RootCertificate()
	require.NoError(t, err)

	loaded, err := pki.New(dir, nil)
	require.NoError(t, err)
	cert, err := loaded.RootCertificate()
	require.NoError(t, err)
	assert.True(t, cert.Equal(original))

	signer, err := loaded.Signer()
	require.NoError(t, err)
	assert.Equal(t, cert.PublicKey, signer.Public())

	_, err = pki.New(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()

	// First call bootstraps.
	first, err := pki.Setup(dir, testCfg, nil)
	require.NoError(t, err)
	firstCert, err := first.RootCertificate()
	require.NoError(t, err)

	// Second call loads the same material instead of regenerating.
	second, err := pki.Setup(dir, testCfg, nil)
	require.NoError(t, err)
	secondCert, err := second.RootCertificate()
	require.NoError(t, err)
	assert.Equal(t, firstCert.SerialNumber, secondCert.SerialNumber)
	assert.True(t, secondCert.Equal(firstCert))
}

func TestGenerateKeyPair(t *testing.T) {
	provider, err := pki.Bootstrap(t.TempDir(), testCfg, nil)
	require.NoError(t, err)

	key, err := provider.GenerateKeyPair(2048)
	require.NoError(t, err)
	assert.Equal(t, 2048, key.N.BitLen())
	assert.NoError(t, key.Validate())
}
