// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package apiutil

import (
	"net/http"
	"strconv"
)

// ReadStringQuery reads the value of string http query parameters for a given key.
func ReadStringQuery(r *http.Request, key string, def string) (string, error) {
	vals := r.URL.Query()[key]
	if len(vals) > 1 {
		return "", ErrInvalidQueryParams
	}
	if len(vals) == 0 {
		return def, nil
	}

	return vals[0], nil
}

// ReadNumQuery reads the value of numeric http query parameters for a given key.
func ReadNumQuery(r *http.Request, key string, def uint64) (uint64, error) {
	vals := r.URL.Query()[key]
	if len(vals) > 1 {
		return 0, ErrInvalidQueryParams
	}
	if len(vals) == 0 {
		return def, nil
	}

	v, err := strconv.ParseUint(vals[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidQueryParams
	}

	return v, nil
}
