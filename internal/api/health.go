// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"net/http"
	"time"
)

const healthContentType = "application/health+json"

type healthRes struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	InstanceID string `json:"instance_id"`
	Time       string `json:"time"`
}

// Health returns a service health check handler.
func Health(service, instanceID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := healthRes{
			Status:     "pass",
			Service:    service,
			InstanceID: instanceID,
			Time:       time.Now().UTC().Format(time.RFC3339),
		}
		w.Header().Set("Content-Type", healthContentType)
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(res); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}
