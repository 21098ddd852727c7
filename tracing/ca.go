// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"context"
	"time"

	"github.com/absmach/simpleca"
	"go.opentelemetry.io/otel/trace"
)

var _ simpleca.Service = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    simpleca.Service
}

// New returns a new CA service with tracing capabilities.
func New(svc simpleca.Service, tracer trace.Tracer) simpleca.Service {
	return &tracingMiddleware{tracer, svc}
}

func (tm *tracingMiddleware) IssueCert(ctx context.Context, req simpleca.IssueRequest) (simpleca.Certificate, error) {
	ctx, span := tm.tracer.Start(ctx, "issue_cert")
	defer span.End()
	return tm.svc.IssueCert(ctx, req)
}

func (tm *tracingMiddleware) RenewCert(ctx context.Context, serialNumber string, req simpleca.RenewRequest) (simpleca.Certificate, error) {
	ctx, span := tm.tracer.Start(ctx, "renew_cert")
	defer span.End()
	return tm.svc.RenewCert(ctx, serialNumber, req)
}

func (tm *tracingMiddleware) RevokeCert(ctx context.Context, serialNumber string, reason simpleca.RevocationReason) error {
	ctx, span := tm.tracer.Start(ctx, "revoke_cert")
	defer span.End()
	return tm.svc.RevokeCert(ctx, serialNumber, reason)
}

func (tm *tracingMiddleware) GenerateCRL(ctx context.Context, validity time.Duration) (simpleca.CRL, error) {
	ctx, span := tm.tracer.Start(ctx, "generate_crl")
	defer span.End()
	return tm.svc.GenerateCRL(ctx, validity)
}

func (tm *tracingMiddleware) ViewCert(ctx context.Context, serialNumber string) (simpleca.Certificate, error) {
	ctx, span := tm.tracer.Start(ctx, "view_cert")
	defer span.End()
	return tm.svc.ViewCert(ctx, serialNumber)
}

func (tm *tracingMiddleware) ListCerts(ctx context.Context, pm simpleca.PageMetadata) (simpleca.CertificatePage, error) {
	ctx, span := tm.tracer.Start(ctx, "list_certs")
	defer span.End()
	return tm.svc.ListCerts(ctx, pm)
}

func (tm *tracingMiddleware) ViewCA(ctx context.Context) ([]byte, error) {
	ctx, span := tm.tracer.Start(ctx, "view_ca")
	defer span.End()
	return tm.svc.ViewCA(ctx)
}

func (tm *tracingMiddleware) OCSP(ctx context.Context, serialNumber string) ([]byte, error) {
	ctx, span := tm.tracer.Start(ctx, "ocsp")
	defer span.End()
	return tm.svc.OCSP(ctx, serialNumber)
}

func (tm *tracingMiddleware) State(ctx context.Context) (simpleca.CAState, error) {
	ctx, span := tm.tracer.Start(ctx, "state")
	defer span.End()
	return tm.svc.State(ctx)
}
