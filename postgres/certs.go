// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/errors"
	"github.com/absmach/simpleca/internal/postgres"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes:
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	errDuplicate      = "23505" // unique_violation
	errTruncation     = "22001" // string_data_right_truncation
	errFK             = "23503" // foreign_key_violation
	errInvalid        = "22P02" // invalid_text_representation
	errUntranslatable = "22P05" // untranslatable_character
	errInvalidChar    = "22021" // character_not_in_repertoire
)

var (
	ErrMalformedEntity = errors.New("malformed entity")
	ErrCreateEntity    = errors.New("failed to create entity")
)

type caRepo struct {
	db postgres.Database
}

func NewRepository(db postgres.Database) simpleca.Repository {
	return caRepo{
		db: db,
	}
}

func (repo caRepo) CreateCert(ctx context.Context, cert simpleca.Certificate) error {
	q := `INSERT INTO certs (serial_number, subject, certificate, key, fingerprint, not_before, not_after,
			revoked, revoked_at, revocation_reason, predecessor_serial, created_at)
		VALUES (:serial_number, :subject, :certificate, :key, :fingerprint, :not_before, :not_after,
			:revoked, :revoked_at, :revocation_reason, :predecessor_serial, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, toDBCert(cert)); err != nil {
		return handleError(ErrCreateEntity, err)
	}
	return nil
}

func (repo caRepo) RetrieveCert(ctx context.Context, serialNumber string) (simpleca.Certificate, error) {
	q := `SELECT serial_number, subject, certificate, key, fingerprint, not_before, not_after,
			revoked, revoked_at, revocation_reason, predecessor_serial, created_at
		FROM certs WHERE serial_number = $1`
	var dbc dbCert
	if err := repo.db.QueryRowxContext(ctx, q, serialNumber).StructScan(&dbc); err != nil {
		if err == sql.ErrNoRows {
			return simpleca.Certificate{}, errors.Wrap(simpleca.ErrNotFound, err)
		}
		return simpleca.Certificate{}, handleError(simpleca.ErrViewEntity, err)
	}
	return fromDBCert(dbc), nil
}

func (repo caRepo) RetrieveBySubject(ctx context.Context, subject string) ([]simpleca.Certificate, error) {
	q := `SELECT serial_number, subject, certificate, key, fingerprint, not_before, not_after,
			revoked, revoked_at, revocation_reason, predecessor_serial, created_at
		FROM certs WHERE subject = $1 ORDER BY created_at ASC`
	rows, err := repo.db.QueryxContext(ctx, q, subject)
	if err != nil {
		return nil, handleError(simpleca.ErrViewEntity, err)
	}
	defer rows.Close()

	var certs []simpleca.Certificate
	for rows.Next() {
		var dbc dbCert
		if err := rows.StructScan(&dbc); err != nil {
			return nil, handleError(simpleca.ErrViewEntity, err)
		}
		certs = append(certs, fromDBCert(dbc))
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(simpleca.ErrViewEntity, err)
	}

	return certs, nil
}

func (repo caRepo) MarkRevoked(ctx context.Context, serialNumber string, reason simpleca.RevocationReason, at time.Time) error {
	q := `UPDATE certs SET revoked = true, revoked_at = $2, revocation_reason = $3
		WHERE serial_number = $1 AND revoked = false`
	result, err := repo.db.ExecContext(ctx, q, serialNumber, at, int16(reason))
	if err != nil {
		return handleError(simpleca.ErrUpdateEntity, err)
	}
	if rows, _ := result.RowsAffected(); rows != 0 {
		return nil
	}

	// Nothing updated: either the serial is unknown or it was revoked before.
	var revoked bool
	if err := repo.db.QueryRowxContext(ctx, `SELECT revoked FROM certs WHERE serial_number = $1`, serialNumber).Scan(&revoked); err != nil {
		if err == sql.ErrNoRows {
			return errors.Wrap(simpleca.ErrNotFound, err)
		}
		return handleError(simpleca.ErrViewEntity, err)
	}
	return simpleca.ErrAlreadyRevoked
}

func (repo caRepo) ListRevoked(ctx context.Context) ([]simpleca.Certificate, error) {
	q := `SELECT serial_number, subject, certificate, key, fingerprint, not_before, not_after,
			revoked, revoked_at, revocation_reason, predecessor_serial, created_at
		FROM certs WHERE revoked = true ORDER BY serial_number ASC`
	rows, err := repo.db.QueryxContext(ctx, q)
	if err != nil {
		return nil, handleError(simpleca.ErrViewEntity, err)
	}
	defer rows.Close()

	var certs []simpleca.Certificate
	for rows.Next() {
		var dbc dbCert
		if err := rows.StructScan(&dbc); err != nil {
			return nil, handleError(simpleca.ErrViewEntity, err)
		}
		certs = append(certs, fromDBCert(dbc))
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(simpleca.ErrViewEntity, err)
	}

	return certs, nil
}

func (repo caRepo) ListCerts(ctx context.Context, pm simpleca.PageMetadata) (simpleca.CertificatePage, error) {
	q := `SELECT serial_number, subject, fingerprint, not_before, not_after, revoked, revoked_at,
			revocation_reason, predecessor_serial, created_at
		FROM certs %s ORDER BY created_at LIMIT :limit OFFSET :offset`
	condition := ``
	if pm.Subject != "" {
		condition = `WHERE subject = :subject`
	}
	q = applyCondition(q, condition)

	rows, err := repo.db.NamedQueryContext(ctx, q, pm)
	if err != nil {
		return simpleca.CertificatePage{}, handleError(simpleca.ErrViewEntity, err)
	}
	defer rows.Close()

	var certs []simpleca.Certificate
	for rows.Next() {
		var dbc dbCert
		if err := rows.StructScan(&dbc); err != nil {
			return simpleca.CertificatePage{}, handleError(simpleca.ErrViewEntity, err)
		}
		certs = append(certs, fromDBCert(dbc))
	}
	if err := rows.Err(); err != nil {
		return simpleca.CertificatePage{}, handleError(simpleca.ErrViewEntity, err)
	}

	cq := applyCondition(`SELECT COUNT(*) FROM certs %s`, condition)
	total, err := repo.total(ctx, cq, pm)
	if err != nil {
		return simpleca.CertificatePage{}, handleError(simpleca.ErrViewEntity, err)
	}

	return simpleca.CertificatePage{
		Certificates: certs,
		PageMetadata: simpleca.PageMetadata{
			Total:   total,
			Offset:  pm.Offset,
			Limit:   pm.Limit,
			Subject: pm.Subject,
		},
	}, nil
}

func (repo caRepo) NextSerial(ctx context.Context) (string, error) {
	q := `UPDATE ca_state SET last_serial = last_serial + 1 WHERE id = 1 RETURNING last_serial`
	var serial string
	if err := repo.db.QueryRowxContext(ctx, q).Scan(&serial); err != nil {
		return "", handleError(simpleca.ErrUpdateEntity, err)
	}
	return serial, nil
}

func (repo caRepo) NextCRLNumber(ctx context.Context) (string, error) {
	q := `UPDATE ca_state SET last_crl_number = last_crl_number + 1 WHERE id = 1 RETURNING last_crl_number`
	var number string
	if err := repo.db.QueryRowxContext(ctx, q).Scan(&number); err != nil {
		return "", handleError(simpleca.ErrUpdateEntity, err)
	}
	return number, nil
}

func (repo caRepo) RetrieveState(ctx context.Context) (simpleca.CAState, error) {
	q := `SELECT last_serial, last_crl_number FROM ca_state WHERE id = 1`
	var state simpleca.CAState
	if err := repo.db.QueryRowxContext(ctx, q).StructScan(&state); err != nil {
		return simpleca.CAState{}, handleError(simpleca.ErrViewEntity, err)
	}
	return state, nil
}

func (repo caRepo) total(ctx context.Context, query string, pm simpleca.PageMetadata) (uint64, error) {
	rows, err := repo.db.NamedQueryContext(ctx, query, pm)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var total uint64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, err
		}
	}
	return total, rows.Err()
}

func applyCondition(query, condition string) string {
	return fmt.Sprintf(query, condition)
}

// dbCert mirrors the certs table row.
type dbCert struct {
	SerialNumber      string     `db:"serial_number"`
	Subject           string     `db:"subject"`
	Certificate       []byte     `db:"certificate"`
	Key               []byte     `db:"key"`
	Fingerprint       string     `db:"fingerprint"`
	NotBefore         time.Time  `db:"not_before"`
	NotAfter          time.Time  `db:"not_after"`
	Revoked           bool       `db:"revoked"`
	RevokedAt         *time.Time `db:"revoked_at"`
	RevocationReason  *int16     `db:"revocation_reason"`
	PredecessorSerial *string    `db:"predecessor_serial"`
	CreatedAt         time.Time  `db:"created_at"`
}

func toDBCert(cert simpleca.Certificate) dbCert {
	var reason *int16
	if cert.RevocationReason != nil {
		r := int16(*cert.RevocationReason)
		reason = &r
	}
	return dbCert{
		SerialNumber:      cert.SerialNumber,
		Subject:           cert.Subject,
		Certificate:       cert.Certificate,
		Key:               cert.Key,
		Fingerprint:       cert.Fingerprint,
		NotBefore:         cert.NotBefore,
		NotAfter:          cert.NotAfter,
		Revoked:           cert.Revoked,
		RevokedAt:         cert.RevokedAt,
		RevocationReason:  reason,
		PredecessorSerial: cert.PredecessorSerial,
		CreatedAt:         cert.CreatedAt,
	}
}

func fromDBCert(dbc dbCert) simpleca.Certificate {
	var reason *simpleca.RevocationReason
	if dbc.RevocationReason != nil {
		r := simpleca.RevocationReason(*dbc.RevocationReason)
		reason = &r
	}
	return simpleca.Certificate{
		SerialNumber:      dbc.SerialNumber,
		Subject:           dbc.Subject,
		Certificate:       dbc.Certificate,
		Key:               dbc.Key,
		Fingerprint:       dbc.Fingerprint,
		NotBefore:         dbc.NotBefore,
		NotAfter:          dbc.NotAfter,
		Revoked:           dbc.Revoked,
		RevokedAt:         dbc.RevokedAt,
		RevocationReason:  reason,
		PredecessorSerial: dbc.PredecessorSerial,
		CreatedAt:         dbc.CreatedAt,
	}
}

func handleError(wrapper, err error) error {
	pqErr, ok := err.(*pgconn.PgError)
	if ok {
		switch pqErr.Code {
		case errDuplicate:
			return errors.Wrap(simpleca.ErrDuplicateSerial, err)
		case errInvalid, errInvalidChar, errTruncation, errUntranslatable:
			return errors.Wrap(ErrMalformedEntity, err)
		case errFK:
			return errors.Wrap(ErrCreateEntity, err)
		}
	}

	return errors.Wrap(wrapper, err)
}
