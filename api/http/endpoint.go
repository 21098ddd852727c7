// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"

	"github.com/absmach/simpleca"
	"github.com/go-kit/kit/endpoint"
)

func issueCertEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(*issueCertReq)
		if err := req.validate(); err != nil {
			return certRes{}, err
		}

		cert, err := svc.IssueCert(ctx, simpleca.IssueRequest{
			Subject:   req.Subject,
			Options:   req.Options,
			DNSNames:  req.DNSNames,
			IPAddrs:   req.IPAddrs,
			PublicKey: []byte(req.PublicKey),
			Validity:  req.validity,
		})
		if err != nil {
			return certRes{}, err
		}

		return newCertRes(cert, true), nil
	}
}

func renewCertEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(*renewCertReq)
		if err := req.validate(); err != nil {
			return certRes{}, err
		}

		cert, err := svc.RenewCert(ctx, req.id, simpleca.RenewRequest{
			Validity:          req.validity,
			RevokePredecessor: req.RevokePredecessor,
			PublicKey:         []byte(req.PublicKey),
		})
		if err != nil {
			return certRes{}, err
		}

		return newCertRes(cert, true), nil
	}
}

func revokeCertEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(*revokeCertReq)
		if err := req.validate(); err != nil {
			return revokeCertRes{revoked: false}, err
		}

		if err := svc.RevokeCert(ctx, req.id, req.reason); err != nil {
			return revokeCertRes{revoked: false}, err
		}

		return revokeCertRes{revoked: true}, nil
	}
}

func viewCertEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(viewReq)
		if err := req.validate(); err != nil {
			return certRes{}, err
		}

		cert, err := svc.ViewCert(ctx, req.id)
		if err != nil {
			return certRes{}, err
		}

		return newCertRes(cert, false), nil
	}
}

func listCertsEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(listCertsReq)
		if err := req.validate(); err != nil {
			return listCertsRes{}, err
		}

		certPage, err := svc.ListCerts(ctx, req.pm)
		if err != nil {
			return listCertsRes{}, err
		}

		var crts []certRes
		for _, c := range certPage.Certificates {
			crts = append(crts, newCertRes(c, false))
		}

		return listCertsRes{
			Total:        certPage.Total,
			Offset:       certPage.Offset,
			Limit:        certPage.Limit,
			Certificates: crts,
		}, nil
	}
}

func generateCRLEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(*crlReq)
		if err := req.validate(); err != nil {
			return crlRes{}, err
		}

		crl, err := svc.GenerateCRL(ctx, req.validity)
		if err != nil {
			return crlRes{}, err
		}

		return crlRes{
			Number:     crl.Number,
			IssuedAt:   crl.IssuedAt,
			NextUpdate: crl.NextUpdate,
			Entries:    crl.Entries,
			CRL:        crl.Raw,
		}, nil
	}
}

func viewCAEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		pem, err := svc.ViewCA(ctx)
		if err != nil {
			return caRes{}, err
		}

		return caRes{pem: pem}, nil
	}
}

func ocspEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(ocspReq)
		if err := req.validate(); err != nil {
			return ocspRes{}, err
		}

		data, err := svc.OCSP(ctx, req.serialNumber)
		if err != nil {
			return ocspRes{}, err
		}

		return ocspRes{data: data}, nil
	}
}

func stateEndpoint(svc simpleca.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		state, err := svc.State(ctx)
		if err != nil {
			return stateRes{}, err
		}

		return stateRes{CAState: state}, nil
	}
}
