// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"time"

	"github.com/absmach/simpleca"
	"github.com/go-kit/kit/metrics"
)

var _ simpleca.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     simpleca.Service
}

// MetricsMiddleware instruments core service by tracking request count and latency.
func MetricsMiddleware(svc simpleca.Service, counter metrics.Counter, latency metrics.Histogram) simpleca.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) IssueCert(ctx context.Context, req simpleca.IssueRequest) (simpleca.Certificate, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "issue_certificate").Add(1)
		mm.latency.With("method", "issue_certificate").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.IssueCert(ctx, req)
}

func (mm *metricsMiddleware) RenewCert(ctx context.Context, serialNumber string, req simpleca.RenewRequest) (simpleca.Certificate, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "renew_certificate").Add(1)
		mm.latency.With("method", "renew_certificate").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.RenewCert(ctx, serialNumber, req)
}

func (mm *metricsMiddleware) RevokeCert(ctx context.Context, serialNumber string, reason simpleca.RevocationReason) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "revoke_certificate").Add(1)
		mm.latency.With("method", "revoke_certificate").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.RevokeCert(ctx, serialNumber, reason)
}

func (mm *metricsMiddleware) GenerateCRL(ctx context.Context, validity time.Duration) (simpleca.CRL, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "generate_crl").Add(1)
		mm.latency.With("method", "generate_crl").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.GenerateCRL(ctx, validity)
}

func (mm *metricsMiddleware) ViewCert(ctx context.Context, serialNumber string) (simpleca.Certificate, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_certificate").Add(1)
		mm.latency.With("method", "view_certificate").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ViewCert(ctx, serialNumber)
}

func (mm *metricsMiddleware) ListCerts(ctx context.Context, pm simpleca.PageMetadata) (simpleca.CertificatePage, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list_certificates").Add(1)
		mm.latency.With("method", "list_certificates").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ListCerts(ctx, pm)
}

func (mm *metricsMiddleware) ViewCA(ctx context.Context) ([]byte, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "view_ca").Add(1)
		mm.latency.With("method", "view_ca").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ViewCA(ctx)
}

func (mm *metricsMiddleware) OCSP(ctx context.Context, serialNumber string) ([]byte, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "ocsp").Add(1)
		mm.latency.With("method", "ocsp").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.OCSP(ctx, serialNumber)
}

func (mm *metricsMiddleware) State(ctx context.Context) (simpleca.CAState, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "state").Add(1)
		mm.latency.With("method", "state").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.State(ctx)
}
