// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package simpleca

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"net"
	"sort"
	"time"

	"github.com/absmach/simpleca/errors"
	"golang.org/x/crypto/ocsp"
)

const (
	// SubjectKeyBytes is the RSA size for subject keys generated by the CA.
	SubjectKeyBytes = 2048

	day = 24 * time.Hour
)

var (
	// ErrInvalidRequest indicates malformed input that the caller must correct.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound indicates the referenced serial or subject is absent.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateSerial indicates a serial collision. The allocator makes
	// this impossible in correct operation, so seeing it means a bug.
	ErrDuplicateSerial = errors.New("serial number already exists")

	// ErrAlreadyRevoked rejects a second revocation of the same certificate.
	ErrAlreadyRevoked = errors.New("certificate has already been revoked")

	// ErrPolicyViolation indicates the requested validity or attributes
	// exceed the configured or cryptographic policy bounds.
	ErrPolicyViolation = errors.New("request violates CA policy")

	// ErrSigningFailure indicates the underlying signing operation failed.
	// It is fatal for the call and never retried automatically.
	ErrSigningFailure = errors.New("signing operation failed")

	// ErrRootCANotFound indicates missing CA root material.
	ErrRootCANotFound = errors.New("root CA not found")

	ErrCreateEntity = errors.New("failed to create entity")
	ErrViewEntity   = errors.New("view entity failed")
	ErrUpdateEntity = errors.New("update entity failed")
)

type service struct {
	repo       Repository
	provider   KeyProvider
	cfg        Config
	rootCACert *x509.Certificate
}

var _ Service = (*service)(nil)

// NewService returns the CA lifecycle service. The root certificate is
// loaded once; signing keys are fetched from the provider per operation.
func NewService(repo Repository, provider KeyProvider, cfg Config) (Service, error) {
	rootCA, err := provider.RootCertificate()
	if err != nil {
		return nil, errors.Wrap(ErrRootCANotFound, err)
	}
	if cfg.DefaultValidity == 0 {
		cfg.DefaultValidity = 365 * day
	}
	if cfg.MaxValidity == 0 {
		cfg.MaxValidity = 825 * day
	}
	if cfg.CRLValidity == 0 {
		cfg.CRLValidity = 30 * day
	}

	return &service{
		repo:       repo,
		provider:   provider,
		cfg:        cfg,
		rootCACert: rootCA,
	}, nil
}

func (s *service) IssueCert(ctx context.Context, req IssueRequest) (Certificate, error) {
	return s.issue(ctx, req, nil, nil)
}

// issue allocates a serial, builds and signs the certificate and records
// it. The serial advance is durable before signing, so a failed signing
// burns the serial; uniqueness matters more than density.
func (s *service) issue(ctx context.Context, req IssueRequest, keyPEM []byte, predecessor *string) (Certificate, error) {
	validity, err := s.checkPolicy(req)
	if err != nil {
		return Certificate{}, err
	}

	pub, generatedKey, err := s.subjectKey(req.PublicKey)
	if err != nil {
		return Certificate{}, err
	}
	if generatedKey != nil {
		keyPEM = generatedKey
	}

	serial, err := s.repo.NextSerial(ctx)
	if err != nil {
		return Certificate{}, errors.Wrap(ErrCreateEntity, err)
	}
	serialNumber, err := parseSerial(serial)
	if err != nil {
		return Certificate{}, errors.Wrap(ErrCreateEntity, err)
	}

	now := time.Now().UTC()
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName:         req.Subject,
			Organization:       req.Options.Organization,
			OrganizationalUnit: req.Options.OrganizationalUnit,
			Country:            req.Options.Country,
			Province:           req.Options.Province,
			Locality:           req.Options.Locality,
			StreetAddress:      req.Options.StreetAddress,
			PostalCode:         req.Options.PostalCode,
		},
		NotBefore:             now,
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              req.DNSNames,
		IPAddresses:           parseIPs(req.IPAddrs),
	}

	signer, err := s.provider.Signer()
	if err != nil {
		return Certificate{}, errors.Wrap(ErrSigningFailure, err)
	}
	certBytes, err := x509.CreateCertificate(rand.Reader, &template, s.rootCACert, pub, signer)
	if err != nil {
		return Certificate{}, errors.Wrap(ErrSigningFailure, err)
	}

	fingerprint, err := publicKeyFingerprint(pub)
	if err != nil {
		return Certificate{}, errors.Wrap(ErrCreateEntity, err)
	}

	cert := Certificate{
		SerialNumber:      serial,
		Subject:           req.Subject,
		Certificate:       pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certBytes}),
		Key:               keyPEM,
		Fingerprint:       fingerprint,
		NotBefore:         template.NotBefore,
		NotAfter:          template.NotAfter,
		PredecessorSerial: predecessor,
		CreatedAt:         now,
	}
	if err := s.repo.CreateCert(ctx, cert); err != nil {
		return Certificate{}, errors.Wrap(ErrCreateEntity, err)
	}

	return cert, nil
}

func (s *service) RenewCert(ctx context.Context, serialNumber string, req RenewRequest) (Certificate, error) {
	existing, err := s.repo.RetrieveCert(ctx, serialNumber)
	if err != nil {
		return Certificate{}, errors.Wrap(ErrViewEntity, err)
	}
	if existing.Revoked {
		return Certificate{}, errors.Wrap(ErrAlreadyRevoked, errors.New("cannot renew serial "+serialNumber))
	}

	issueReq := IssueRequest{
		Subject:   existing.Subject,
		PublicKey: req.PublicKey,
		Validity:  req.Validity,
	}
	var keyPEM []byte
	if len(req.PublicKey) == 0 {
		pub, err := certificatePublicKey(existing.Certificate)
		if err != nil {
			return Certificate{}, errors.Wrap(ErrViewEntity, err)
		}
		issueReq.PublicKey = pub
		// Same key pair, so the stored private key still matches.
		keyPEM = existing.Key
	}

	renewed, err := s.issue(ctx, issueReq, keyPEM, &existing.SerialNumber)
	if err != nil {
		return Certificate{}, err
	}

	if req.RevokePredecessor {
		if err := s.RevokeCert(ctx, existing.SerialNumber, ReasonSuperseded); err != nil {
			return Certificate{}, errors.Wrap(ErrUpdateEntity, err)
		}
	}

	return renewed, nil
}

func (s *service) RevokeCert(ctx context.Context, serialNumber string, reason RevocationReason) error {
	if !reason.Valid() {
		return errors.Wrap(ErrInvalidRequest, errors.New("unsupported revocation reason"))
	}
	if err := s.repo.MarkRevoked(ctx, serialNumber, reason, time.Now().UTC()); err != nil {
		return errors.Wrap(ErrUpdateEntity, err)
	}
	return nil
}

func (s *service) GenerateCRL(ctx context.Context, validity time.Duration) (CRL, error) {
	if validity < 0 {
		return CRL{}, errors.Wrap(ErrInvalidRequest, errors.New("negative CRL validity"))
	}
	if validity == 0 {
		validity = s.cfg.CRLValidity
	}

	revoked, err := s.repo.ListRevoked(ctx)
	if err != nil {
		return CRL{}, errors.Wrap(ErrViewEntity, err)
	}

	entries := make([]x509.RevocationListEntry, 0, len(revoked))
	crlEntries := make([]CRLEntry, 0, len(revoked))
	for _, cert := range revoked {
		serial, err := parseSerial(cert.SerialNumber)
		if err != nil {
			return CRL{}, errors.Wrap(ErrViewEntity, err)
		}
		reason := ReasonUnspecified
		if cert.RevocationReason != nil {
			reason = *cert.RevocationReason
		}
		var at time.Time
		if cert.RevokedAt != nil {
			at = cert.RevokedAt.UTC()
		}
		entries = append(entries, x509.RevocationListEntry{
			SerialNumber:   serial,
			RevocationTime: at,
			ReasonCode:     int(reason),
		})
		crlEntries = append(crlEntries, CRLEntry{
			SerialNumber: cert.SerialNumber,
			RevokedAt:    at,
			Reason:       reason,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SerialNumber.Cmp(entries[j].SerialNumber) < 0
	})
	sort.Slice(crlEntries, func(i, j int) bool {
		return serialLess(crlEntries[i].SerialNumber, crlEntries[j].SerialNumber)
	})

	number, err := s.repo.NextCRLNumber(ctx)
	if err != nil {
		return CRL{}, errors.Wrap(ErrCreateEntity, err)
	}
	crlNumber, err := parseSerial(number)
	if err != nil {
		return CRL{}, errors.Wrap(ErrCreateEntity, err)
	}

	now := time.Now().UTC()
	template := x509.RevocationList{
		RevokedCertificateEntries: entries,
		Number:                    crlNumber,
		ThisUpdate:                now,
		NextUpdate:                now.Add(validity),
	}
	signer, err := s.provider.Signer()
	if err != nil {
		return CRL{}, errors.Wrap(ErrSigningFailure, err)
	}
	crlDER, err := x509.CreateRevocationList(rand.Reader, &template, s.rootCACert, signer)
	if err != nil {
		return CRL{}, errors.Wrap(ErrSigningFailure, err)
	}

	return CRL{
		Number:     number,
		IssuedAt:   now,
		NextUpdate: template.NextUpdate,
		Entries:    crlEntries,
		Raw:        crlDER,
	}, nil
}

func (s *service) ViewCert(ctx context.Context, serialNumber string) (Certificate, error) {
	cert, err := s.repo.RetrieveCert(ctx, serialNumber)
	if err != nil {
		return Certificate{}, errors.Wrap(ErrViewEntity, err)
	}
	return cert, nil
}

func (s *service) ListCerts(ctx context.Context, pm PageMetadata) (CertificatePage, error) {
	page, err := s.repo.ListCerts(ctx, pm)
	if err != nil {
		return CertificatePage{}, errors.Wrap(ErrViewEntity, err)
	}
	return page, nil
}

func (s *service) ViewCA(ctx context.Context) ([]byte, error) {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: s.rootCACert.Raw}), nil
}

func (s *service) OCSP(ctx context.Context, serialNumber string) ([]byte, error) {
	serial, err := parseSerial(serialNumber)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidRequest, err)
	}

	now := time.Now().UTC()
	template := ocsp.Response{
		SerialNumber: serial,
		ThisUpdate:   now,
		NextUpdate:   now.Add(s.cfg.CRLValidity),
	}

	cert, err := s.repo.RetrieveCert(ctx, serialNumber)
	switch {
	case err == nil && cert.Revoked:
		template.Status = ocsp.Revoked
		if cert.RevokedAt != nil {
			template.RevokedAt = cert.RevokedAt.UTC()
		}
		if cert.RevocationReason != nil {
			template.RevocationReason = int(*cert.RevocationReason)
		}
	case err == nil:
		template.Status = ocsp.Good
	case errors.Contains(err, ErrNotFound):
		template.Status = ocsp.Unknown
	default:
		return nil, errors.Wrap(ErrViewEntity, err)
	}

	signer, err := s.provider.Signer()
	if err != nil {
		return nil, errors.Wrap(ErrSigningFailure, err)
	}
	resp, err := ocsp.CreateResponse(s.rootCACert, s.rootCACert, template, signer)
	if err != nil {
		return nil, errors.Wrap(ErrSigningFailure, err)
	}
	return resp, nil
}

func (s *service) State(ctx context.Context) (CAState, error) {
	state, err := s.repo.RetrieveState(ctx)
	if err != nil {
		return CAState{}, errors.Wrap(ErrViewEntity, err)
	}
	return state, nil
}

// checkPolicy validates the request before any serial is allocated, so a
// rejected request burns nothing.
func (s *service) checkPolicy(req IssueRequest) (time.Duration, error) {
	if req.Subject == "" {
		return 0, errors.Wrap(ErrInvalidRequest, errors.New("empty subject"))
	}
	validity := req.Validity
	if validity == 0 {
		validity = s.cfg.DefaultValidity
	}
	if validity < 0 {
		return 0, errors.Wrap(ErrInvalidRequest, errors.New("negative validity period"))
	}
	if validity > s.cfg.MaxValidity {
		return 0, errors.Wrap(ErrPolicyViolation, errors.New("validity exceeds configured maximum"))
	}
	if time.Now().UTC().Add(validity).After(s.rootCACert.NotAfter) {
		return 0, errors.Wrap(ErrPolicyViolation, errors.New("validity exceeds CA certificate expiry"))
	}
	return validity, nil
}

// subjectKey resolves the public key for a new certificate. When the
// request carries none, a fresh key pair is generated and the private key
// is returned PEM-encoded for storage with the record.
func (s *service) subjectKey(pubPEM []byte) (crypto.PublicKey, []byte, error) {
	if len(pubPEM) > 0 {
		block, _ := pem.Decode(pubPEM)
		if block == nil {
			return nil, nil, errors.Wrap(ErrInvalidRequest, errors.New("public key is not PEM encoded"))
		}
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, nil, errors.Wrap(ErrInvalidRequest, err)
		}
		return pub, nil, nil
	}

	privKey, err := s.provider.GenerateKeyPair(SubjectKeyBytes)
	if err != nil {
		return nil, nil, errors.Wrap(ErrCreateEntity, err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	return &privKey.PublicKey, keyPEM, nil
}

func certificatePublicKey(certPEM []byte) ([]byte, error) {
	block, _ := pem.Decode(certPEM)
	if block == nil {
		return nil, errors.New("stored certificate is not PEM encoded")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, err := x509.MarshalPKIXPublicKey(cert.PublicKey)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub}), nil
}

func publicKeyFingerprint(pub crypto.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:]), nil
}

func parseSerial(s string) (*big.Int, error) {
	serial, ok := new(big.Int).SetString(s, 10)
	if !ok || serial.Sign() < 0 {
		return nil, errors.New("malformed serial number " + s)
	}
	return serial, nil
}

func serialLess(a, b string) bool {
	x, errA := parseSerial(a)
	y, errB := parseSerial(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return x.Cmp(y) < 0
}

func parseIPs(ipStrings []string) []net.IP {
	var ips []net.IP
	for _, ipString := range ipStrings {
		if ip := net.ParseIP(ipString); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips
}
