// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RetryEntry is a record that failed its last upload attempt.
type RetryEntry struct {
	Contract  Contract  `json:"contract"`
	LastError string    `json:"lastError"`
	Attempts  int       `json:"attempts"`
	FailedAt  time.Time `json:"failedAt"`
}
