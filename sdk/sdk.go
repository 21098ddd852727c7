// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/absmach/simpleca/errors"
	"golang.org/x/crypto/ocsp"
	"moul.io/http2curl"
)

const certsEndpoint = "certs"

const (
	// CTJSON represents JSON content type.
	CTJSON ContentType = "application/json"

	// CTBinary represents binary content type.
	CTBinary ContentType = "application/octet-stream"
)

// ContentType represents all possible content types.
type ContentType string

type PageMetadata struct {
	Total   uint64 `json:"total,omitempty"`
	Offset  uint64 `json:"offset,omitempty"`
	Limit   uint64 `json:"limit,omitempty"`
	Subject string `json:"subject,omitempty"`
}

type Options struct {
	Organization       []string `json:"organization,omitempty"`
	OrganizationalUnit []string `json:"organizational_unit,omitempty"`
	Country            []string `json:"country,omitempty"`
	Province           []string `json:"province,omitempty"`
	Locality           []string `json:"locality,omitempty"`
	StreetAddress      []string `json:"street_address,omitempty"`
	PostalCode         []string `json:"postal_code,omitempty"`
}

type Certificate struct {
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
}

type CertificatePage struct {
	Total        uint64        `json:"total"`
	Offset       uint64        `json:"offset"`
	Limit        uint64        `json:"limit"`
	Certificates []Certificate `json:"certificates,omitempty"`
}

type CRLEntry struct {
	SerialNumber string    `json:"serial_number"`
	RevokedAt    time.Time `json:"revoked_at"`
	Reason       int       `json:"reason"`
}

type CRL struct {
	Number     string     `json:"number"`
	IssuedAt   time.Time  `json:"issued_at"`
	NextUpdate time.Time  `json:"next_update"`
	Entries    []CRLEntry `json:"entries"`
	CRL        []byte     `json:"crl"`
}

type CAState struct {
	LastSerial    string `json:"last_serial"`
	LastCRLNumber string `json:"last_crl_number"`
}

type Config struct {
	CertsURL string

	MsgContentType  ContentType
	TLSVerification bool
	CurlFlag        bool
}

type caSDK struct {
	certsURL string

	msgContentType ContentType
	client         *http.Client
	curlFlag       bool
}

type SDK interface {
	// IssueCert issues a certificate for the given subject.
	//
	// example:
	//  cert, _ := sdk.IssueCert("backend.example.com", "8760h", []string{"10.0.0.1"}, []string{"backend.example.com"}, sdk.Options{Organization: []string{"example"}})
	//  fmt.Println(cert.SerialNumber)
	IssueCert(subject, ttl string, ipAddrs, dnsNames []string, opts Options) (Certificate, errors.SDKError)

	// RenewCert issues a replacement for the certificate with the given
	// serial number, optionally revoking the predecessor.
	//
	// example:
	//  cert, _ := sdk.RenewCert("1000", "8760h", true)
	//  fmt.Println(cert.SerialNumber)
	RenewCert(serialNumber, ttl string, revokePredecessor bool) (Certificate, errors.SDKError)

	// RevokeCert revokes the certificate with the given serial number.
	//
	// example:
	//  err := sdk.RevokeCert("1000", "keyCompromise")
	//  fmt.Println(err) // nil if successful
	RevokeCert(serialNumber, reason string) errors.SDKError

	// ViewCert retrieves a certificate record by serial number.
	//
	// example:
	//  cert, _ := sdk.ViewCert("1000")
	//  fmt.Println(cert)
	ViewCert(serialNumber string) (Certificate, errors.SDKError)

	// ListCerts lists certificate records.
	//
	// example:
	//  page, _ := sdk.ListCerts(PageMetadata{Limit: 10, Offset: 0})
	//  fmt.Println(page)
	ListCerts(pm PageMetadata) (CertificatePage, errors.SDKError)

	// GenerateCRL generates and signs a fresh certificate revocation list.
	//
	// example:
	//  crl, _ := sdk.GenerateCRL()
	//  fmt.Println(crl.Number)
	GenerateCRL() (CRL, errors.SDKError)

	// ViewCA retrieves the PEM-encoded CA certificate.
	//
	// example:
	//  ca, _ := sdk.ViewCA()
	//  fmt.Println(string(ca))
	ViewCA() ([]byte, errors.SDKError)

	// OCSP checks the revocation status of a certificate.
	//
	// example:
	//  response, _ := sdk.OCSP("1000")
	//  fmt.Println(response.Status)
	OCSP(serialNumber string) (*ocsp.Response, errors.SDKError)

	// State retrieves the persisted CA counters.
	//
	// example:
	//  state, _ := sdk.State()
	//  fmt.Println(state.LastSerial)
	State() (CAState, errors.SDKError)
}

func NewSDK(conf Config) SDK {
	return &caSDK{
		certsURL: conf.CertsURL,

		msgContentType: conf.MsgContentType,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !conf.TLSVerification,
				},
			},
		},
		curlFlag: conf.CurlFlag,
	}
}

func (sdk caSDK) IssueCert(subject, ttl string, ipAddrs, dnsNames []string, opts Options) (Certificate, errors.SDKError) {
	r := issueCertReq{
		Subject:  subject,
		Options:  opts,
		DNSNames: dnsNames,
		IPAddrs:  ipAddrs,
		TTL:      ttl,
	}
	d, err := json.Marshal(r)
	if err != nil {
		return Certificate{}, errors.NewSDKError(err)
	}
	url := fmt.Sprintf("%s/%s/issue", sdk.certsURL, certsEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, d, nil, http.StatusCreated)
	if sdkerr != nil {
		return Certificate{}, sdkerr
	}
	var cert Certificate
	if err := json.Unmarshal(body, &cert); err != nil {
		return Certificate{}, errors.NewSDKError(err)
	}

	return cert, nil
}

func (sdk caSDK) RenewCert(serialNumber, ttl string, revokePredecessor bool) (Certificate, errors.SDKError) {
	r := renewCertReq{
		TTL:               ttl,
		RevokePredecessor: revokePredecessor,
	}
	d, err := json.Marshal(r)
	if err != nil {
		return Certificate{}, errors.NewSDKError(err)
	}
	url := fmt.Sprintf("%s/%s/%s/renew", sdk.certsURL, certsEndpoint, serialNumber)

	_, body, sdkerr := sdk.processRequest(http.MethodPatch, url, d, nil, http.StatusCreated)
	if sdkerr != nil {
		return Certificate{}, sdkerr
	}
	var cert Certificate
	if err := json.Unmarshal(body, &cert); err != nil {
		return Certificate{}, errors.NewSDKError(err)
	}

	return cert, nil
}

func (sdk caSDK) RevokeCert(serialNumber, reason string) errors.SDKError {
	r := revokeCertReq{
		Reason: reason,
	}
	d, err := json.Marshal(r)
	if err != nil {
		return errors.NewSDKError(err)
	}
	url := fmt.Sprintf("%s/%s/%s/revoke", sdk.certsURL, certsEndpoint, serialNumber)

	_, _, sdkerr := sdk.processRequest(http.MethodPatch, url, d, nil, http.StatusNoContent)
	return sdkerr
}

func (sdk caSDK) ViewCert(serialNumber string) (Certificate, errors.SDKError) {
	url := fmt.Sprintf("%s/%s/%s", sdk.certsURL, certsEndpoint, serialNumber)
	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return Certificate{}, sdkerr
	}

	var cert Certificate
	if err := json.Unmarshal(body, &cert); err != nil {
		return Certificate{}, errors.NewSDKError(err)
	}
	return cert, nil
}

func (sdk caSDK) ListCerts(pm PageMetadata) (CertificatePage, errors.SDKError) {
	url, err := sdk.withQueryParams(sdk.certsURL, certsEndpoint, pm)
	if err != nil {
		return CertificatePage{}, errors.NewSDKError(err)
	}
	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return CertificatePage{}, sdkerr
	}
	var cp CertificatePage
	if err := json.Unmarshal(body, &cp); err != nil {
		return CertificatePage{}, errors.NewSDKError(err)
	}
	return cp, nil
}

func (sdk caSDK) GenerateCRL() (CRL, errors.SDKError) {
	url := fmt.Sprintf("%s/%s/crl", sdk.certsURL, certsEndpoint)
	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, nil, nil, http.StatusCreated)
	if sdkerr != nil {
		return CRL{}, sdkerr
	}
	var crl CRL
	if err := json.Unmarshal(body, &crl); err != nil {
		return CRL{}, errors.NewSDKError(err)
	}
	return crl, nil
}

func (sdk caSDK) ViewCA() ([]byte, errors.SDKError) {
	url := fmt.Sprintf("%s/%s/ca", sdk.certsURL, certsEndpoint)
	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return nil, sdkerr
	}
	return body, nil
}

func (sdk caSDK) OCSP(serialNumber string) (*ocsp.Response, errors.SDKError) {
	r := ocspReq{
		SerialNumber: serialNumber,
	}
	d, err := json.Marshal(r)
	if err != nil {
		return nil, errors.NewSDKError(err)
	}
	url := fmt.Sprintf("%s/%s/ocsp", sdk.certsURL, certsEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodPost, url, d, nil, http.StatusOK)
	if sdkerr != nil {
		return nil, sdkerr
	}
	ocspResp, err := ocsp.ParseResponse(body, nil)
	if err != nil {
		return nil, errors.NewSDKError(err)
	}
	return ocspResp, nil
}

func (sdk caSDK) State() (CAState, errors.SDKError) {
	url := fmt.Sprintf("%s/%s/state", sdk.certsURL, certsEndpoint)
	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return CAState{}, sdkerr
	}
	var state CAState
	if err := json.Unmarshal(body, &state); err != nil {
		return CAState{}, errors.NewSDKError(err)
	}
	return state, nil
}

// processRequest creates and send a new HTTP request, and checks for errors in the HTTP response.
// It then returns the response headers, the response body, and the associated error(s) (if any).
func (sdk caSDK) processRequest(method, reqUrl string, data []byte, headers map[string]string, expectedRespCodes ...int) (http.Header, []byte, errors.SDKError) {
	req, err := http.NewRequest(method, reqUrl, bytes.NewReader(data))
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	// Sets a default value for the Content-Type.
	// Overridden if Content-Type is passed in the headers arguments.
	req.Header.Add("Content-Type", string(CTJSON))

	for key, value := range headers {
		req.Header.Add(key, value)
	}

	if sdk.curlFlag {
		curlCommand, err := http2curl.GetCurlCommand(req)
		if err != nil {
			return nil, nil, errors.NewSDKError(err)
		}
		log.Println(curlCommand.String())
	}

	resp, err := sdk.client.Do(req)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}
	defer resp.Body.Close()
	sdkerr := errors.CheckError(resp, expectedRespCodes...)
	if sdkerr != nil {
		return make(http.Header), []byte{}, sdkerr
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}
	return resp.Header, body, nil
}

func (sdk caSDK) withQueryParams(baseURL, endpoint string, pm PageMetadata) (string, error) {
	q, err := pm.query()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s?%s", baseURL, endpoint, q), nil
}

func (pm PageMetadata) query() (string, error) {
	q := url.Values{}
	if pm.Offset != 0 {
		q.Add("offset", strconv.FormatUint(pm.Offset, 10))
	}
	if pm.Limit != 0 {
		q.Add("limit", strconv.FormatUint(pm.Limit, 10))
	}
	if pm.Subject != "" {
		q.Add("subject", pm.Subject)
	}

	return q.Encode(), nil
}

type issueCertReq struct {
	Subject  string   `json:"subject"`
	Options  Options  `json:"options"`
	DNSNames []string `json:"dns_names,omitempty"`
	IPAddrs  []string `json:"ip_addresses,omitempty"`
	TTL      string   `json:"ttl,omitempty"`
}

type renewCertReq struct {
	TTL               string `json:"ttl,omitempty"`
	RevokePredecessor bool   `json:"revoke_predecessor"`
}

type revokeCertReq struct {
	Reason string `json:"reason,omitempty"`
}

type ocspReq struct {
	SerialNumber string `json:"serial_number"`
}
