// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package apiutil

import "errors"

var (
	// ErrMissingSerial indicates missing certificate serial number.
	ErrMissingSerial = errors.New("missing certificate serial number")

	// ErrMissingSubject indicates missing certificate subject.
	ErrMissingSubject = errors.New("missing certificate subject")

	// ErrInvalidReason indicates an unknown revocation reason code.
	ErrInvalidReason = errors.New("invalid revocation reason")

	// ErrLimitSize indicates that the limit query parameter is out of range.
	ErrLimitSize = errors.New("invalid limit size")

	// ErrInvalidQueryParams indicates invalid query parameters.
	ErrInvalidQueryParams = errors.New("invalid query parameters")

	// ErrUnsupportedContentType indicates unacceptable or lack of Content-Type.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrValidation indicates that an error was returned by the API.
	ErrValidation = errors.New("something went wrong with the request")
)
