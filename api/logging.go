// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absmach/simpleca"
)

var _ simpleca.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    simpleca.Service
}

// LoggingMiddleware adds logging facilities to the core service.
func LoggingMiddleware(svc simpleca.Service, logger *slog.Logger) simpleca.Service {
	return &loggingMiddleware{logger, svc}
}

func (lm *loggingMiddleware) IssueCert(ctx context.Context, req simpleca.IssueRequest) (cert simpleca.Certificate, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method issue_cert for subject %s took %s to complete", req.Subject, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.IssueCert(ctx, req)
}

func (lm *loggingMiddleware) RenewCert(ctx context.Context, serialNumber string, req simpleca.RenewRequest) (cert simpleca.Certificate, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method renew_cert for cert %s took %s to complete", serialNumber, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.RenewCert(ctx, serialNumber, req)
}

func (lm *loggingMiddleware) RevokeCert(ctx context.Context, serialNumber string, reason simpleca.RevocationReason) (err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method revoke_cert for cert %s with reason %s took %s to complete", serialNumber, reason, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.RevokeCert(ctx, serialNumber, reason)
}

func (lm *loggingMiddleware) GenerateCRL(ctx context.Context, validity time.Duration) (crl simpleca.CRL, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method generate_crl took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.GenerateCRL(ctx, validity)
}

func (lm *loggingMiddleware) ViewCert(ctx context.Context, serialNumber string) (cert simpleca.Certificate, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method view_cert for serial number %s took %s to complete", serialNumber, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.ViewCert(ctx, serialNumber)
}

func (lm *loggingMiddleware) ListCerts(ctx context.Context, pm simpleca.PageMetadata) (cp simpleca.CertificatePage, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method list_certs took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.ListCerts(ctx, pm)
}

func (lm *loggingMiddleware) ViewCA(ctx context.Context) (pem []byte, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method view_ca took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.ViewCA(ctx)
}

func (lm *loggingMiddleware) OCSP(ctx context.Context, serialNumber string) (resp []byte, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method ocsp for serial number %s took %s to complete", serialNumber, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.OCSP(ctx, serialNumber)
}

func (lm *loggingMiddleware) State(ctx context.Context) (state simpleca.CAState, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method state took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.State(ctx)
}
