// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/errors"
	pgclient "github.com/absmach/simpleca/internal/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invalidSerial = "invalid"

func newTestRepo() simpleca.Repository {
	return NewRepository(pgclient.NewDatabase(db, pgclient.Config{Name: "test"}, nil))
}

func testCert(serial, subject string) simpleca.Certificate {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return simpleca.Certificate{
		SerialNumber: serial,
		Subject:      subject,
		Certificate:  []byte("cert"),
		Key:          []byte("key"),
		Fingerprint:  "fingerprint",
		NotBefore:    now,
		NotAfter:     now.Add(24 * time.Hour),
		CreatedAt:    now,
	}
}

func TestCreateCert(t *testing.T) {
	repo := newTestRepo()

	serialNumber := big.NewInt(25)

	testCases := []struct {
		desc string
		cert simpleca.Certificate
		err  error
	}{
		{
			desc: "successful save",
			cert: testCert(serialNumber.String(), "create.example.com"),
			err:  nil,
		},
		{
			desc: "save with duplicate serial",
			cert: testCert(serialNumber.String(), "create.example.com"),
			err:  simpleca.ErrDuplicateSerial,
		},
		{
			desc: "save with malformed serial",
			cert: testCert(invalidSerial, "create.example.com"),
			err:  ErrMalformedEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := repo.CreateCert(context.Background(), tc.cert)
			assert.True(t, errors.Contains(err, tc.err), "expected %v, got %v", tc.err, err)
		})
	}
}

func TestRetrieveCert(t *testing.T) {
	repo := newTestRepo()

	cert := testCert("24", "retrieve.example.com")
	err := repo.CreateCert(context.Background(), cert)
	require.NoError(t, err)

	testCases := []struct {
		desc string
		id   string
		err  error
	}{
		{
			desc: "successful view",
			id:   cert.SerialNumber,
			err:  nil,
		},
		{
			desc: "view with unknown serial",
			id:   "999999",
			err:  simpleca.ErrNotFound,
		},
		{
			desc: "view with malformed serial",
			id:   invalidSerial,
			err:  ErrMalformedEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			res, err := repo.RetrieveCert(context.Background(), tc.id)
			assert.True(t, errors.Contains(err, tc.err), "expected %v, got %v", tc.err, err)
			if tc.err == nil {
				assert.Equal(t, cert.SerialNumber, res.SerialNumber)
				assert.Equal(t, cert.Subject, res.Subject)
				assert.Equal(t, cert.Fingerprint, res.Fingerprint)
				assert.False(t, res.Revoked)
			}
		})
	}
}

func TestMarkRevoked(t *testing.T) {
	repo := newTestRepo()

	cert := testCert("23", "revoke.example.com")
	err := repo.CreateCert(context.Background(), cert)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)

	testCases := []struct {
		desc string
		id   string
		err  error
	}{
		{
			desc: "successful revoke",
			id:   cert.SerialNumber,
			err:  nil,
		},
		{
			desc: "second revoke of the same serial",
			id:   cert.SerialNumber,
			err:  simpleca.ErrAlreadyRevoked,
		},
		{
			desc: "revoke unknown serial",
			id:   "999999",
			err:  simpleca.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := repo.MarkRevoked(context.Background(), tc.id, simpleca.ReasonKeyCompromise, now)
			assert.True(t, errors.Contains(err, tc.err), "expected %v, got %v", tc.err, err)
		})
	}

	res, err := repo.RetrieveCert(context.Background(), cert.SerialNumber)
	require.NoError(t, err)
	assert.True(t, res.Revoked)
	require.NotNil(t, res.RevokedAt)
	assert.Equal(t, now, res.RevokedAt.UTC())
	require.NotNil(t, res.RevocationReason)
	assert.Equal(t, simpleca.ReasonKeyCompromise, *res.RevocationReason)
}

func TestListRevoked(t *testing.T) {
	repo := newTestRepo()

	// Insert out of numeric order to check the returned ordering.
	serials := []string{"520", "500", "510"}
	for _, serial := range serials {
		err := repo.CreateCert(context.Background(), testCert(serial, "crl.example.com"))
		require.NoError(t, err)
		err = repo.MarkRevoked(context.Background(), serial, simpleca.ReasonUnspecified, time.Now().UTC())
		require.NoError(t, err)
	}

	revoked, err := repo.ListRevoked(context.Background())
	require.NoError(t, err)

	var previous *big.Int
	for _, cert := range revoked {
		serial, ok := new(big.Int).SetString(cert.SerialNumber, 10)
		require.True(t, ok)
		if previous != nil {
			assert.True(t, previous.Cmp(serial) < 0, "revoked serials not ascending: %s before %s", previous, serial)
		}
		previous = serial
		assert.True(t, cert.Revoked)
	}
}

func TestRetrieveBySubject(t *testing.T) {
	repo := newTestRepo()

	subject := "subject.example.com"
	for i := range 3 {
		cert := testCert(strconv.Itoa(600+i), subject)
		cert.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		err := repo.CreateCert(context.Background(), cert)
		require.NoError(t, err)
	}

	certs, err := repo.RetrieveBySubject(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, certs, 3)
	for i := 1; i < len(certs); i++ {
		assert.False(t, certs[i].CreatedAt.Before(certs[i-1].CreatedAt))
	}

	certs, err = repo.RetrieveBySubject(context.Background(), "unknown.example.com")
	require.NoError(t, err)
	assert.Empty(t, certs)
}

func TestListCerts(t *testing.T) {
	repo := newTestRepo()

	subject := "list.example.com"
	for i := range 5 {
		err := repo.CreateCert(context.Background(), testCert(strconv.Itoa(700+i), subject))
		require.NoError(t, err)
	}

	testCases := []struct {
		desc  string
		pm    simpleca.PageMetadata
		total uint64
		size  int
	}{
		{
			desc:  "list all for subject",
			pm:    simpleca.PageMetadata{Limit: 10, Subject: subject},
			total: 5,
			size:  5,
		},
		{
			desc:  "list with limit",
			pm:    simpleca.PageMetadata{Limit: 2, Subject: subject},
			total: 5,
			size:  2,
		},
		{
			desc:  "list with offset beyond total",
			pm:    simpleca.PageMetadata{Offset: 10, Limit: 10, Subject: subject},
			total: 5,
			size:  0,
		},
		{
			desc:  "list unknown subject",
			pm:    simpleca.PageMetadata{Limit: 10, Subject: "missing.example.com"},
			total: 0,
			size:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			page, err := repo.ListCerts(context.Background(), tc.pm)
			require.NoError(t, err)
			assert.Equal(t, tc.total, page.Total)
			assert.Len(t, page.Certificates, tc.size)
		})
	}
}

func TestSerialAllocation(t *testing.T) {
	repo := newTestRepo()

	state, err := repo.RetrieveState(context.Background())
	require.NoError(t, err)
	baseline, ok := new(big.Int).SetString(state.LastSerial, 10)
	require.True(t, ok)

	const n = 20
	var wg sync.WaitGroup
	serials := make(chan string, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serial, err := repo.NextSerial(context.Background())
			assert.NoError(t, err)
			serials <- serial
		}()
	}
	wg.Wait()
	close(serials)

	seen := map[string]bool{}
	for serial := range serials {
		assert.False(t, seen[serial], fmt.Sprintf("serial %s allocated twice", serial))
		seen[serial] = true
	}
	assert.Len(t, seen, n)

	state, err = repo.RetrieveState(context.Background())
	require.NoError(t, err)
	final, ok := new(big.Int).SetString(state.LastSerial, 10)
	require.True(t, ok)
	assert.Equal(t, int64(n), new(big.Int).Sub(final, baseline).Int64())
}

func TestCRLNumberAllocation(t *testing.T) {
	repo := newTestRepo()

	first, err := repo.NextCRLNumber(context.Background())
	require.NoError(t, err)
	second, err := repo.NextCRLNumber(context.Background())
	require.NoError(t, err)

	x, ok := new(big.Int).SetString(first, 10)
	require.True(t, ok)
	y, ok := new(big.Int).SetString(second, 10)
	require.True(t, ok)
	assert.Equal(t, int64(1), new(big.Int).Sub(y, x).Int64())

	state, err := repo.RetrieveState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, state.LastCRLNumber)
}
