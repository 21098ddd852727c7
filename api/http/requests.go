// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"time"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/errors"
	"github.com/absmach/simpleca/pkg/apiutil"
)

const maxLimitSize = 1000

type issueCertReq struct {
	Subject   string                  `json:"subject"`
	Options   simpleca.SubjectOptions `json:"options"`
	DNSNames  []string                `json:"dns_names"`
	IPAddrs   []string                `json:"ip_addresses"`
	PublicKey string                  `json:"public_key"`
	TTL       string                  `json:"ttl"`

	validity time.Duration
}

func (req *issueCertReq) validate() error {
	if req.Subject == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingSubject)
	}
	if req.TTL != "" {
		v, err := time.ParseDuration(req.TTL)
		if err != nil {
			return errors.Wrap(apiutil.ErrValidation, err)
		}
		req.validity = v
	}
	return nil
}

type renewCertReq struct {
	id string

	RevokePredecessor bool   `json:"revoke_predecessor"`
	PublicKey         string `json:"public_key"`
	TTL               string `json:"ttl"`

	validity time.Duration
}

func (req *renewCertReq) validate() error {
	if req.id == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingSerial)
	}
	if req.TTL != "" {
		v, err := time.ParseDuration(req.TTL)
		if err != nil {
			return errors.Wrap(apiutil.ErrValidation, err)
		}
		req.validity = v
	}
	return nil
}

type revokeCertReq struct {
	id string

	Reason string `json:"reason"`

	reason simpleca.RevocationReason
}

func (req *revokeCertReq) validate() error {
	if req.id == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingSerial)
	}
	reason, err := simpleca.ParseRevocationReason(req.Reason)
	if err != nil {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrInvalidReason)
	}
	req.reason = reason
	return nil
}

type viewReq struct {
	id string
}

func (req viewReq) validate() error {
	if req.id == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingSerial)
	}
	return nil
}

type listCertsReq struct {
	pm simpleca.PageMetadata
}

func (req listCertsReq) validate() error {
	if req.pm.Limit > maxLimitSize {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrLimitSize)
	}
	return nil
}

type crlReq struct {
	TTL string `json:"ttl"`

	validity time.Duration
}

func (req *crlReq) validate() error {
	if req.TTL != "" {
		v, err := time.ParseDuration(req.TTL)
		if err != nil {
			return errors.Wrap(apiutil.ErrValidation, err)
		}
		req.validity = v
	}
	return nil
}

type ocspReq struct {
	serialNumber string
}

func (req ocspReq) validate() error {
	if req.serialNumber == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingSerial)
	}
	return nil
}
