// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"time"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/internal/api"
)

var (
	_ api.Response = (*certRes)(nil)
	_ api.Response = (*revokeCertRes)(nil)
	_ api.Response = (*listCertsRes)(nil)
	_ api.Response = (*crlRes)(nil)
	_ api.Response = (*caRes)(nil)
	_ api.Response = (*ocspRes)(nil)
	_ api.Response = (*stateRes)(nil)
)

type certRes struct {
	SerialNumber      string     `json:"serial_number"`
	Subject           string     `json:"subject"`
	Certificate       string     `json:"certificate,omitempty"`
	Key               string     `json:"key,omitempty"`
	Fingerprint       string     `json:"fingerprint"`
	NotBefore         time.Time  `json:"not_before"`
	NotAfter          time.Time  `json:"not_after"`
	Status            string     `json:"status"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
	RevocationReason  string     `json:"revocation_reason,omitempty"`
	PredecessorSerial string     `json:"predecessor_serial,omitempty"`

	issued bool
}

func newCertRes(cert simpleca.Certificate, issued bool) certRes {
	res := certRes{
		SerialNumber: cert.SerialNumber,
		Subject:      cert.Subject,
		Certificate:  string(cert.Certificate),
		Key:          string(cert.Key),
		Fingerprint:  cert.Fingerprint,
		NotBefore:    cert.NotBefore,
		NotAfter:     cert.NotAfter,
		Status:       string(cert.Status(time.Now())),
		RevokedAt:    cert.RevokedAt,
		issued:       issued,
	}
	if cert.RevocationReason != nil {
		res.RevocationReason = cert.RevocationReason.String()
	}
	if cert.PredecessorSerial != nil {
		res.PredecessorSerial = *cert.PredecessorSerial
	}
	return res
}

func (res certRes) Code() int {
	if res.issued {
		return http.StatusCreated
	}

	return http.StatusOK
}

func (res certRes) Headers() map[string]string {
	return map[string]string{}
}

func (res certRes) Empty() bool {
	return false
}

type revokeCertRes struct {
	revoked bool
}

func (res revokeCertRes) Code() int {
	if res.revoked {
		return http.StatusNoContent
	}

	return http.StatusUnprocessableEntity
}

func (res revokeCertRes) Headers() map[string]string {
	return map[string]string{}
}

func (res revokeCertRes) Empty() bool {
	return true
}

type listCertsRes struct {
	Total        uint64    `json:"total"`
	Offset       uint64    `json:"offset"`
	Limit        uint64    `json:"limit"`
	Certificates []certRes `json:"certificates"`
}

func (res listCertsRes) Code() int {
	return http.StatusOK
}

func (res listCertsRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listCertsRes) Empty() bool {
	return false
}

type crlRes struct {
	Number     string              `json:"number"`
	IssuedAt   time.Time           `json:"issued_at"`
	NextUpdate time.Time           `json:"next_update"`
	Entries    []simpleca.CRLEntry `json:"entries"`
	CRL        []byte              `json:"crl"`
}

func (res crlRes) Code() int {
	return http.StatusCreated
}

func (res crlRes) Headers() map[string]string {
	return map[string]string{}
}

func (res crlRes) Empty() bool {
	return false
}

type caRes struct {
	pem []byte
}

func (res caRes) Code() int {
	return http.StatusOK
}

func (res caRes) Headers() map[string]string {
	return map[string]string{"Content-Type": "application/x-pem-file"}
}

func (res caRes) Empty() bool {
	return true
}

type ocspRes struct {
	data []byte
}

func (res ocspRes) Code() int {
	return http.StatusOK
}

func (res ocspRes) Headers() map[string]string {
	return map[string]string{"Content-Type": "application/ocsp-response"}
}

func (res ocspRes) Empty() bool {
	return true
}

type stateRes struct {
	simpleca.CAState
}

func (res stateRes) Code() int {
	return http.StatusOK
}

func (res stateRes) Headers() map[string]string {
	return map[string]string{}
}

func (res stateRes) Empty() bool {
	return false
}
