// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/internal/api"
	"github.com/absmach/simpleca/pkg/apiutil"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/ocsp"
)

const (
	offsetKey       = "offset"
	limitKey        = "limit"
	subjectKey      = "subject"
	defOffset       = 0
	defLimit        = 10
	ocspContentType = "application/ocsp-request"
)

// MakeHandler returns a HTTP handler for API endpoints.
func MakeHandler(r *chi.Mux, svc simpleca.Service, logger *slog.Logger, instanceID string) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(loggingErrorEncoder(logger, api.EncodeError)),
	}

	r.Route("/certs", func(r chi.Router) {
		r.Post("/issue", kithttp.NewServer(
			issueCertEndpoint(svc),
			decodeIssueCert,
			api.EncodeResponse,
			opts...,
		).ServeHTTP)

		r.Patch("/{id}/renew", kithttp.NewServer(
			renewCertEndpoint(svc),
			decodeRenewCert,
			api.EncodeResponse,
			opts...,
		).ServeHTTP)

		r.Patch("/{id}/revoke", kithttp.NewServer(
			revokeCertEndpoint(svc),
			decodeRevokeCert,
			api.EncodeResponse,
			opts...,
		).ServeHTTP)

		r.Get("/ca", kithttp.NewServer(
			viewCAEndpoint(svc),
			decodeEmpty,
			encodeRawResponse,
			opts...,
		).ServeHTTP)

		r.Get("/state", kithttp.NewServer(
			stateEndpoint(svc),
			decodeEmpty,
			api.EncodeResponse,
			opts...,
		).ServeHTTP)

		r.Get("/{id}", kithttp.NewServer(
			viewCertEndpoint(svc),
			decodeView,
			api.EncodeResponse,
			opts...,
		).ServeHTTP)

		r.Get("/", kithttp.NewServer(
			listCertsEndpoint(svc),
			decodeListCerts,
			api.EncodeResponse,
			opts...,
		).ServeHTTP)

		r.Post("/crl", kithttp.NewServer(
			generateCRLEndpoint(svc),
			decodeGenerateCRL,
			api.EncodeResponse,
			opts...,
		).ServeHTTP)

		r.Post("/ocsp", kithttp.NewServer(
			ocspEndpoint(svc),
			decodeOCSPRequest,
			encodeRawResponse,
			opts...,
		).ServeHTTP)
	})

	r.Get("/health", api.Health("simpleca", instanceID))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func decodeIssueCert(_ context.Context, r *http.Request) (interface{}, error) {
	req := &issueCertReq{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return nil, err
	}

	return req, nil
}

func decodeRenewCert(_ context.Context, r *http.Request) (interface{}, error) {
	req := &renewCertReq{
		id: chi.URLParam(r, "id"),
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func decodeRevokeCert(_ context.Context, r *http.Request) (interface{}, error) {
	req := &revokeCertReq{
		id: chi.URLParam(r, "id"),
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func decodeView(_ context.Context, r *http.Request) (interface{}, error) {
	req := viewReq{
		id: chi.URLParam(r, "id"),
	}

	return req, nil
}

func decodeEmpty(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}

func decodeListCerts(_ context.Context, r *http.Request) (interface{}, error) {
	o, err := apiutil.ReadNumQuery(r, offsetKey, defOffset)
	if err != nil {
		return nil, err
	}

	l, err := apiutil.ReadNumQuery(r, limitKey, defLimit)
	if err != nil {
		return nil, err
	}

	subject, err := apiutil.ReadStringQuery(r, subjectKey, "")
	if err != nil {
		return nil, err
	}

	req := listCertsReq{
		pm: simpleca.PageMetadata{
			Offset:  o,
			Limit:   l,
			Subject: subject,
		},
	}

	return req, nil
}

func decodeGenerateCRL(_ context.Context, r *http.Request) (interface{}, error) {
	req := &crlReq{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// decodeOCSPRequest accepts both a DER-encoded OCSP request and a JSON
// body carrying the serial number.
func decodeOCSPRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if r.Header.Get("Content-Type") == ocspContentType {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		parsed, err := ocsp.ParseRequest(body)
		if err != nil {
			return nil, err
		}
		return ocspReq{serialNumber: parsed.SerialNumber.String()}, nil
	}

	var body struct {
		SerialNumber string `json:"serial_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return ocspReq{serialNumber: body.SerialNumber}, nil
}

// encodeRawResponse writes responses that carry a non-JSON payload.
func encodeRawResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	switch res := response.(type) {
	case caRes:
		for k, v := range res.Headers() {
			w.Header().Set(k, v)
		}
		w.WriteHeader(res.Code())
		_, err := w.Write(res.pem)
		return err
	case ocspRes:
		for k, v := range res.Headers() {
			w.Header().Set(k, v)
		}
		w.WriteHeader(res.Code())
		_, err := w.Write(res.data)
		return err
	default:
		return api.EncodeResponse(ctx, w, response)
	}
}

func loggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		logger.Warn(err.Error())
		enc(ctx, err, w)
	}
}
