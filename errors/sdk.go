// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Failed to read response body.
var errRespBody = New("failed to read response body")

// SDKError is an error type for the SDK that carries the HTTP
// status code of the failed request alongside the error chain.
type SDKError interface {
	Error
	StatusCode() int
}

var _ SDKError = (*sdkError)(nil)

type sdkError struct {
	*customError
	statusCode int
}

func (ce *sdkError) Error() string {
	if ce == nil {
		return ""
	}
	if ce.statusCode == 0 {
		return ce.customError.Error()
	}
	return fmt.Sprintf("Status: %s: %s", http.StatusText(ce.statusCode), ce.customError.Error())
}

func (ce *sdkError) StatusCode() int {
	return ce.statusCode
}

// NewSDKError returns an SDK Error that formats as the given error.
func NewSDKError(err error) SDKError {
	if err == nil {
		return nil
	}

	if e, ok := err.(*customError); ok {
		return &sdkError{
			customError: e,
			statusCode:  0,
		}
	}

	return &sdkError{
		customError: &customError{
			msg: err.Error(),
			err: nil,
		},
		statusCode: 0,
	}
}

// NewSDKErrorWithStatus returns an SDK Error setting the status code.
func NewSDKErrorWithStatus(err error, statusCode int) SDKError {
	if err == nil {
		return nil
	}

	return &sdkError{
		statusCode: statusCode,
		customError: &customError{
			msg: err.Error(),
			err: nil,
		},
	}
}

// CheckError will check the HTTP response status code against the
// expected codes and convert the response body to an SDKError if needed.
func CheckError(resp *http.Response, expectedStatusCodes ...int) SDKError {
	if resp == nil {
		return nil
	}

	for _, expectedStatusCode := range expectedStatusCodes {
		if resp.StatusCode == expectedStatusCode {
			return nil
		}
	}

	b, bErr := io.ReadAll(resp.Body)
	if bErr != nil {
		return NewSDKErrorWithStatus(Wrap(errRespBody, bErr), resp.StatusCode)
	}

	var content map[string]interface{}
	var wrapper error
	if uErr := json.Unmarshal(b, &content); uErr == nil {
		if msg, ok := content["message"]; ok {
			if v, ok := msg.(string); ok {
				wrapper = New(v)
			}
		}
		if e, ok := content["error"]; ok {
			if v, ok := e.(string); ok && v != "" {
				return NewSDKErrorWithStatus(Wrap(wrapper, New(v)), resp.StatusCode)
			}
		}
	}
	if wrapper != nil {
		return NewSDKErrorWithStatus(wrapper, resp.StatusCode)
	}

	return NewSDKErrorWithStatus(New(string(b)), resp.StatusCode)
}
