// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so all of its methods are available
// directly, while leaving room for application-specific helpers.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with JSON defaults and the
// given per-request timeout. Retries stay disabled: callers decide when to
// retry.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
