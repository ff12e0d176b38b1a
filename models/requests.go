// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ContractsResponse is returned by GET /contracts.
type ContractsResponse struct {
	Contracts []Contract `json:"contracts"`
}

// BulkUpsertRequest is the body of POST /contracts/bulk-upsert.
type BulkUpsertRequest struct {
	Contracts []Contract `json:"contracts"`
}

// BulkUpsertError is the per-record failure reported by the bulk upsert.
type BulkUpsertError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkUpsertResponse is returned by POST /contracts/bulk-upsert. Records not
// listed in Errors were accepted.
type BulkUpsertResponse struct {
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Errors  []BulkUpsertError `json:"errors"`
}

// FailedIDs returns the set of record ids rejected by the server.
func (r BulkUpsertResponse) FailedIDs() map[string]string {
	failed := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		failed[e.ID] = e.Error
	}
	return failed
}
