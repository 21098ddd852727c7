// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package simpleca

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"strings"
	"time"

	"github.com/absmach/simpleca/errors"
)

// Status describes the certificate state as seen at read time. Revoked is
// the only persisted transition; Expired is always computed from NotAfter.
type Status string

const (
	StatusValid   Status = "valid"
	StatusRevoked Status = "revoked"
	StatusExpired Status = "expired"
)

// RevocationReason is an RFC 5280 CRL reason code. The set is closed:
// hold and removal codes are excluded because revocation is terminal.
type RevocationReason int

const (
	ReasonUnspecified          RevocationReason = 0
	ReasonKeyCompromise        RevocationReason = 1
	ReasonCACompromise         RevocationReason = 2
	ReasonAffiliationChanged   RevocationReason = 3
	ReasonSuperseded           RevocationReason = 4
	ReasonCessationOfOperation RevocationReason = 5
	ReasonPrivilegeWithdrawn   RevocationReason = 9
)

// Valid reports whether r is one of the supported reason codes.
func (r RevocationReason) Valid() bool {
	switch r {
	case ReasonUnspecified, ReasonKeyCompromise, ReasonCACompromise,
		ReasonAffiliationChanged, ReasonSuperseded,
		ReasonCessationOfOperation, ReasonPrivilegeWithdrawn:
		return true
	default:
		return false
	}
}

func (r RevocationReason) String() string {
	switch r {
	case ReasonUnspecified:
		return "unspecified"
	case ReasonKeyCompromise:
		return "keyCompromise"
	case ReasonCACompromise:
		return "caCompromise"
	case ReasonAffiliationChanged:
		return "affiliationChanged"
	case ReasonSuperseded:
		return "superseded"
	case ReasonCessationOfOperation:
		return "cessationOfOperation"
	case ReasonPrivilegeWithdrawn:
		return "privilegeWithdrawn"
	default:
		return "unknown"
	}
}

// ParseRevocationReason parses a reason name as accepted by the CLI and API.
func ParseRevocationReason(s string) (RevocationReason, error) {
	switch strings.ToLower(s) {
	case "", "unspecified":
		return ReasonUnspecified, nil
	case "keycompromise", "key-compromise":
		return ReasonKeyCompromise, nil
	case "cacompromise", "ca-compromise":
		return ReasonCACompromise, nil
	case "affiliationchanged", "affiliation-changed":
		return ReasonAffiliationChanged, nil
	case "superseded":
		return ReasonSuperseded, nil
	case "cessationofoperation", "cessation":
		return ReasonCessationOfOperation, nil
	case "privilegewithdrawn", "privilege-withdrawn":
		return ReasonPrivilegeWithdrawn, nil
	default:
		return 0, errors.Wrap(ErrInvalidRequest, errors.New("unknown revocation reason "+s))
	}
}

// Certificate is the durable record of a single issued certificate.
// SerialNumber, Subject, Fingerprint and the validity window are fixed at
// issuance; only the revocation fields may change afterwards.
type Certificate struct {
	SerialNumber      string            `db:"serial_number" json:"serial_number"`
	Subject           string            `db:"subject" json:"subject"`
	Certificate       []byte            `db:"certificate" json:"certificate,omitempty"`
	Key               []byte            `db:"key" json:"key,omitempty"`
	Fingerprint       string            `db:"fingerprint" json:"fingerprint"`
	NotBefore         time.Time         `db:"not_before" json:"not_before"`
	NotAfter          time.Time         `db:"not_after" json:"not_after"`
	Revoked           bool              `db:"revoked" json:"revoked"`
	RevokedAt         *time.Time        `db:"revoked_at" json:"revoked_at,omitempty"`
	RevocationReason  *RevocationReason `db:"revocation_reason" json:"revocation_reason,omitempty"`
	PredecessorSerial *string           `db:"predecessor_serial" json:"predecessor_serial,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}

// Status derives the certificate state at the given instant.
func (c Certificate) Status(now time.Time) Status {
	if c.Revoked {
		return StatusRevoked
	}
	if now.After(c.NotAfter) {
		return StatusExpired
	}
	return StatusValid
}

// CAState holds the process-wide counters persisted across restarts.
// Both counters only ever grow; they are never reconstructed by scanning
// the certificate records.
type CAState struct {
	LastSerial    string `db:"last_serial" json:"last_serial"`
	LastCRLNumber string `db:"last_crl_number" json:"last_crl_number"`
}

// CRLEntry is a single revoked certificate on a CRL.
type CRLEntry struct {
	SerialNumber string           `json:"serial_number"`
	RevokedAt    time.Time        `json:"revoked_at"`
	Reason       RevocationReason `json:"reason"`
}

// CRL is a signed revocation list snapshot. It is derived from the
// certificate records; only its number is a source of truth, persisted in
// CAState to stay monotonic.
type CRL struct {
	Number     string     `json:"number"`
	IssuedAt   time.Time  `json:"issued_at"`
	NextUpdate time.Time  `json:"next_update"`
	Entries    []CRLEntry `json:"entries"`
	Raw        []byte     `json:"crl"`
}

// SubjectOptions contains the optional distinguished name attributes for
// an issued certificate.
type SubjectOptions struct {
	Organization       []string `json:"organization,omitempty"`
	OrganizationalUnit []string `json:"organizational_unit,omitempty"`
	Country            []string `json:"country,omitempty"`
	Province           []string `json:"province,omitempty"`
	Locality           []string `json:"locality,omitempty"`
	StreetAddress      []string `json:"street_address,omitempty"`
	PostalCode         []string `json:"postal_code,omitempty"`
}

// IssueRequest describes the subject of a new certificate. PublicKey is a
// PEM-encoded PKIX public key; when empty the CA generates a key pair for
// the subject and returns the private key with the record.
type IssueRequest struct {
	Subject   string         `json:"subject"`
	Options   SubjectOptions `json:"options"`
	DNSNames  []string       `json:"dns_names,omitempty"`
	IPAddrs   []string       `json:"ip_addresses,omitempty"`
	PublicKey []byte         `json:"public_key,omitempty"`
	Validity  time.Duration  `json:"validity,omitempty"`
}

// RenewRequest controls re-issuance of an existing certificate. PublicKey
// optionally replaces the subject key; when empty the predecessor's key is
// carried over.
type RenewRequest struct {
	Validity          time.Duration `json:"validity,omitempty"`
	RevokePredecessor bool          `json:"revoke_predecessor"`
	PublicKey         []byte        `json:"public_key,omitempty"`
}

type CertificatePage struct {
	Certificates []Certificate `json:"certificates,omitempty"`
	PageMetadata
}

type PageMetadata struct {
	Total   uint64 `json:"total" db:"total"`
	Offset  uint64 `json:"offset,omitempty" db:"offset"`
	Limit   uint64 `json:"limit,omitempty" db:"limit"`
	Subject string `json:"subject,omitempty" db:"subject"`
}

// Config carries the CA policy knobs passed into the core at startup.
type Config struct {
	DefaultValidity time.Duration
	MaxValidity     time.Duration
	CRLValidity     time.Duration
	StoragePath     string
}

//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) Abstract Machines"
type Service interface {
	// IssueCert builds, signs and records a new certificate for the
	// requested subject.
	IssueCert(ctx context.Context, req IssueRequest) (Certificate, error)

	// RenewCert issues a replacement certificate for an existing serial,
	// preserving the subject and recording the predecessor relation.
	RenewCert(ctx context.Context, serialNumber string, req RenewRequest) (Certificate, error)

	// RevokeCert marks a certificate revoked with the given reason.
	// Revoking twice is an error, not a no-op.
	RevokeCert(ctx context.Context, serialNumber string, reason RevocationReason) error

	// GenerateCRL assembles and signs the current revocation set.
	GenerateCRL(ctx context.Context, validity time.Duration) (CRL, error)

	// ViewCert retrieves a certificate record by serial number.
	ViewCert(ctx context.Context, serialNumber string) (Certificate, error)

	// ListCerts retrieves certificate records while applying filters.
	ListCerts(ctx context.Context, pm PageMetadata) (CertificatePage, error)

	// ViewCA returns the PEM-encoded CA certificate.
	ViewCA(ctx context.Context) ([]byte, error)

	// OCSP answers a revocation status query for a serial number with a
	// signed, DER-encoded OCSP response.
	OCSP(ctx context.Context, serialNumber string) ([]byte, error)

	// State returns the persisted CA counters.
	State(ctx context.Context) (CAState, error)
}

//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) Abstract Machines"
type Repository interface {
	// CreateCert adds a certificate record. A serial collision fails with
	// ErrDuplicateSerial.
	CreateCert(ctx context.Context, cert Certificate) error

	// RetrieveCert retrieves a certificate record by serial number.
	RetrieveCert(ctx context.Context, serialNumber string) (Certificate, error)

	// RetrieveBySubject returns all records for a subject ordered by
	// issuance time.
	RetrieveBySubject(ctx context.Context, subject string) ([]Certificate, error)

	// MarkRevoked transitions a record to revoked. It fails with
	// ErrNotFound for unknown serials and ErrAlreadyRevoked for records
	// that are already revoked.
	MarkRevoked(ctx context.Context, serialNumber string, reason RevocationReason, at time.Time) error

	// ListRevoked returns all revoked records ordered by serial ascending.
	ListRevoked(ctx context.Context) ([]Certificate, error)

	// ListCerts retrieves certificate records while applying filters.
	ListCerts(ctx context.Context, pm PageMetadata) (CertificatePage, error)

	// NextSerial atomically advances and returns the serial counter.
	// Concurrent callers never observe the same value.
	NextSerial(ctx context.Context) (string, error)

	// NextCRLNumber atomically advances and returns the CRL counter.
	NextCRLNumber(ctx context.Context) (string, error)

	// RetrieveState returns the persisted counters.
	RetrieveState(ctx context.Context) (CAState, error)
}

// KeyProvider supplies the CA root material and key generation. The core
// never touches raw key bytes; signing goes through crypto.Signer.
type KeyProvider interface {
	// RootCertificate returns the CA certificate used as the issuer.
	RootCertificate() (*x509.Certificate, error)

	// Signer returns the CA private key for signing certificates, CRLs
	// and OCSP responses.
	Signer() (crypto.Signer, error)

	// GenerateKeyPair generates a subject key pair of the given size.
	GenerateKeyPair(bits int) (*rsa.PrivateKey, error)
}
