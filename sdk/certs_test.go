// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk_test

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/absmach/simpleca"
	httpapi "github.com/absmach/simpleca/api/http"
	"github.com/absmach/simpleca/errors"
	"github.com/absmach/simpleca/mocks"
	"github.com/absmach/simpleca/pkg/apiutil"
	"github.com/absmach/simpleca/pki"
	"github.com/absmach/simpleca/sdk"
	logger "github.com/absmach/simpleca/sdk/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ocsp"
)

const (
	instanceID   = "5de9b29a-feb9-11ed-be56-0242ac120002"
	serialNumber = "1000"
	commonName   = "backend.example.com"
	fingerprint  = "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae"
	ttl          = "720h"
)

var (
	notBefore = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	notAfter  = time.Date(2035, 1, 2, 15, 4, 5, 0, time.UTC)
)

func setupCerts() (*httptest.Server, *mocks.Service) {
	svc := new(mocks.Service)
	mux := chi.NewRouter()
	handler := httpapi.MakeHandler(mux, svc, logger.NewMock(), instanceID)

	return httptest.NewServer(handler), svc
}

func newSDK(url string) sdk.SDK {
	return sdk.NewSDK(sdk.Config{
		CertsURL:        url,
		MsgContentType:  sdk.CTJSON,
		TLSVerification: false,
	})
}

func validCert() simpleca.Certificate {
	return simpleca.Certificate{
		SerialNumber: serialNumber,
		Subject:      commonName,
		Fingerprint:  fingerprint,
		NotBefore:    notBefore,
		NotAfter:     notAfter,
	}
}

func validSDKCert() sdk.Certificate {
	return sdk.Certificate{
		SerialNumber: serialNumber,
		Subject:      commonName,
		Fingerprint:  fingerprint,
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		Status:       "valid",
	}
}

func TestIssueCert(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	ipAddrs := []string{"192.168.100.22"}
	dnsNames := []string{commonName}

	cases := []struct {
		desc    string
		subject string
		svcresp simpleca.Certificate
		svcerr  error
		err     errors.SDKError
		sdkCert sdk.Certificate
	}{
		{
			desc:    "issue cert successfully",
			subject: commonName,
			svcresp: validCert(),
			sdkCert: validSDKCert(),
		},
		{
			desc:    "issue cert with empty subject",
			subject: "",
			err:     errors.NewSDKErrorWithStatus(errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingSubject), http.StatusBadRequest),
		},
		{
			desc:    "issue cert failed",
			subject: commonName,
			svcerr:  simpleca.ErrCreateEntity,
			err:     errors.NewSDKErrorWithStatus(simpleca.ErrCreateEntity, http.StatusInternalServerError),
		},
		{
			desc:    "issue cert policy violation",
			subject: commonName,
			svcerr:  simpleca.ErrPolicyViolation,
			err:     errors.NewSDKErrorWithStatus(simpleca.ErrPolicyViolation, http.StatusBadRequest),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("IssueCert", mock.Anything, mock.Anything).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			cert, err := ctsdk.IssueCert(tc.subject, ttl, ipAddrs, dnsNames, sdk.Options{})
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.sdkCert, cert)
		})
	}
}

func TestRenewCert(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	renewed := validCert()
	renewed.SerialNumber = "1001"
	pred := serialNumber
	renewed.PredecessorSerial = &pred

	sdkRenewed := validSDKCert()
	sdkRenewed.SerialNumber = "1001"
	sdkRenewed.PredecessorSerial = serialNumber

	cases := []struct {
		desc    string
		serial  string
		svcresp simpleca.Certificate
		svcerr  error
		err     errors.SDKError
		sdkCert sdk.Certificate
	}{
		{
			desc:    "renew cert successfully",
			serial:  serialNumber,
			svcresp: renewed,
			sdkCert: sdkRenewed,
		},
		{
			desc:   "renew revoked cert",
			serial: serialNumber,
			svcerr: simpleca.ErrAlreadyRevoked,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrAlreadyRevoked, http.StatusConflict),
		},
		{
			desc:   "renew unknown cert",
			serial: "424242",
			svcerr: simpleca.ErrNotFound,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrNotFound, http.StatusNotFound),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("RenewCert", mock.Anything, tc.serial, mock.Anything).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			cert, err := ctsdk.RenewCert(tc.serial, ttl, true)
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.sdkCert, cert)
		})
	}
}

func TestRevokeCert(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	cases := []struct {
		desc   string
		serial string
		reason string
		svcerr error
		err    errors.SDKError
	}{
		{
			desc:   "revoke cert successfully",
			serial: serialNumber,
			reason: "keyCompromise",
		},
		{
			desc:   "revoke cert with default reason",
			serial: serialNumber,
			reason: "",
		},
		{
			desc:   "revoke cert with invalid reason",
			serial: serialNumber,
			reason: "certificateHold",
			err:    errors.NewSDKErrorWithStatus(errors.Wrap(apiutil.ErrValidation, apiutil.ErrInvalidReason), http.StatusBadRequest),
		},
		{
			desc:   "revoke already revoked cert",
			serial: serialNumber,
			reason: "superseded",
			svcerr: simpleca.ErrAlreadyRevoked,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrAlreadyRevoked, http.StatusConflict),
		},
		{
			desc:   "revoke unknown cert",
			serial: "424242",
			reason: "",
			svcerr: simpleca.ErrNotFound,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrNotFound, http.StatusNotFound),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("RevokeCert", mock.Anything, tc.serial, mock.Anything).Return(tc.svcerr)
			defer svcCall.Unset()

			err := ctsdk.RevokeCert(tc.serial, tc.reason)
			assert.Equal(t, tc.err, err)
		})
	}
}

func TestViewCert(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	revokedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reason := simpleca.ReasonKeyCompromise
	revoked := validCert()
	revoked.Revoked = true
	revoked.RevokedAt = &revokedAt
	revoked.RevocationReason = &reason

	sdkRevoked := validSDKCert()
	sdkRevoked.Status = "revoked"
	sdkRevoked.RevokedAt = &revokedAt
	sdkRevoked.RevocationReason = "keyCompromise"

	cases := []struct {
		desc    string
		serial  string
		svcresp simpleca.Certificate
		svcerr  error
		err     errors.SDKError
		sdkCert sdk.Certificate
	}{
		{
			desc:    "view cert successfully",
			serial:  serialNumber,
			svcresp: validCert(),
			sdkCert: validSDKCert(),
		},
		{
			desc:    "view revoked cert",
			serial:  serialNumber,
			svcresp: revoked,
			sdkCert: sdkRevoked,
		},
		{
			desc:   "view unknown cert",
			serial: "424242",
			svcerr: simpleca.ErrNotFound,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrNotFound, http.StatusNotFound),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("ViewCert", mock.Anything, tc.serial).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			cert, err := ctsdk.ViewCert(tc.serial)
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.sdkCert, cert)
		})
	}
}

func TestListCerts(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	cases := []struct {
		desc    string
		pm      sdk.PageMetadata
		svcresp simpleca.CertificatePage
		svcerr  error
		err     errors.SDKError
		page    sdk.CertificatePage
	}{
		{
			desc: "list certs successfully",
			pm:   sdk.PageMetadata{Limit: 10},
			svcresp: simpleca.CertificatePage{
				Certificates: []simpleca.Certificate{validCert()},
				PageMetadata: simpleca.PageMetadata{Total: 1, Limit: 10},
			},
			page: sdk.CertificatePage{
				Total:        1,
				Limit:        10,
				Certificates: []sdk.Certificate{validSDKCert()},
			},
		},
		{
			desc: "list certs filtered by subject",
			pm:   sdk.PageMetadata{Limit: 10, Subject: commonName},
			svcresp: simpleca.CertificatePage{
				Certificates: []simpleca.Certificate{validCert()},
				PageMetadata: simpleca.PageMetadata{Total: 1, Limit: 10, Subject: commonName},
			},
			page: sdk.CertificatePage{
				Total:        1,
				Limit:        10,
				Certificates: []sdk.Certificate{validSDKCert()},
			},
		},
		{
			desc:   "list certs failed",
			pm:     sdk.PageMetadata{Limit: 10},
			svcerr: simpleca.ErrViewEntity,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrViewEntity, http.StatusInternalServerError),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("ListCerts", mock.Anything, mock.Anything).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			page, err := ctsdk.ListCerts(tc.pm)
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.page, page)
		})
	}
}

func TestGenerateCRL(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svcCRL := simpleca.CRL{
		Number:     "5",
		IssuedAt:   issuedAt,
		NextUpdate: issuedAt.Add(30 * 24 * time.Hour),
		Entries: []simpleca.CRLEntry{
			{SerialNumber: serialNumber, RevokedAt: issuedAt, Reason: simpleca.ReasonKeyCompromise},
		},
		Raw: []byte("der-encoded-crl"),
	}
	sdkCRL := sdk.CRL{
		Number:     "5",
		IssuedAt:   issuedAt,
		NextUpdate: issuedAt.Add(30 * 24 * time.Hour),
		Entries: []sdk.CRLEntry{
			{SerialNumber: serialNumber, RevokedAt: issuedAt, Reason: 1},
		},
		CRL: []byte("der-encoded-crl"),
	}

	cases := []struct {
		desc    string
		svcresp simpleca.CRL
		svcerr  error
		err     errors.SDKError
		crl     sdk.CRL
	}{
		{
			desc:    "generate CRL successfully",
			svcresp: svcCRL,
			crl:     sdkCRL,
		},
		{
			desc:   "generate CRL failed",
			svcerr: simpleca.ErrSigningFailure,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrSigningFailure, http.StatusInternalServerError),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("GenerateCRL", mock.Anything, mock.Anything).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			crl, err := ctsdk.GenerateCRL()
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.crl, crl)
		})
	}
}

func TestViewCA(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	pemBytes := []byte("-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----\n")

	cases := []struct {
		desc    string
		svcresp []byte
		svcerr  error
		err     errors.SDKError
		pem     []byte
	}{
		{
			desc:    "view CA successfully",
			svcresp: pemBytes,
			pem:     pemBytes,
		},
		{
			desc:   "view CA without root material",
			svcerr: simpleca.ErrRootCANotFound,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrRootCANotFound, http.StatusNotFound),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("ViewCA", mock.Anything).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			pem, err := ctsdk.ViewCA()
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.pem, pem)
		})
	}
}

func TestOCSP(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	provider, err := pki.Bootstrap(t.TempDir(), simpleca.CAConfig{KeyBits: 2048, ValidityYears: 5}, nil)
	require.NoError(t, err)
	root, err := provider.RootCertificate()
	require.NoError(t, err)
	signer, err := provider.Signer()
	require.NoError(t, err)

	serial, ok := new(big.Int).SetString(serialNumber, 10)
	require.True(t, ok)
	now := time.Now().UTC()
	der, err := ocsp.CreateResponse(root, root, ocsp.Response{
		Status:       ocsp.Good,
		SerialNumber: serial,
		ThisUpdate:   now,
		NextUpdate:   now.Add(time.Hour),
	}, signer)
	require.NoError(t, err)

	cases := []struct {
		desc    string
		serial  string
		svcresp []byte
		svcerr  error
		err     errors.SDKError
		status  int
	}{
		{
			desc:    "OCSP good certificate",
			serial:  serialNumber,
			svcresp: der,
			status:  ocsp.Good,
		},
		{
			desc:   "OCSP with malformed serial",
			serial: "not-a-serial",
			svcerr: simpleca.ErrInvalidRequest,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrInvalidRequest, http.StatusBadRequest),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("OCSP", mock.Anything, tc.serial).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			res, err := ctsdk.OCSP(tc.serial)
			assert.Equal(t, tc.err, err)
			if tc.err == nil {
				require.NotNil(t, res)
				assert.Equal(t, tc.status, res.Status)
				assert.Equal(t, tc.serial, res.SerialNumber.String())
			}
		})
	}
}

func TestState(t *testing.T) {
	ts, svc := setupCerts()
	defer ts.Close()

	ctsdk := newSDK(ts.URL)

	cases := []struct {
		desc    string
		svcresp simpleca.CAState
		svcerr  error
		err     errors.SDKError
		state   sdk.CAState
	}{
		{
			desc:    "state successfully",
			svcresp: simpleca.CAState{LastSerial: "1042", LastCRLNumber: "7"},
			state:   sdk.CAState{LastSerial: "1042", LastCRLNumber: "7"},
		},
		{
			desc:   "state failed",
			svcerr: simpleca.ErrViewEntity,
			err:    errors.NewSDKErrorWithStatus(simpleca.ErrViewEntity, http.StatusInternalServerError),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("State", mock.Anything).Return(tc.svcresp, tc.svcerr)
			defer svcCall.Unset()

			state, err := ctsdk.State()
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.state, state)
		})
	}
}
