// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Contract status values used by the business layer. The sync engine treats
// the status as an opaque field.
const (
	ContractDraft     = "draft"
	ContractActive    = "active"
	ContractCompleted = "completed"
	ContractCancelled = "cancelled"
)

// Contract is a single business record kept in the local store and, in
// sync-with-server mode, mirrored to the remote authoritative store.
type Contract struct {
	// ID is a client-generated UUID. It is assigned once on creation (also
	// offline) and never changes afterwards.
	ID string `json:"id"`

	// ContractNumber is the human-facing contract reference.
	ContractNumber string `json:"contractNumber"`

	// Title is a short description of the contract. Required by the server.
	Title string `json:"title"`

	// Customer is the counterparty of the contract.
	Customer string `json:"customer"`

	// Location is the site the contract is executed at.
	Location string `json:"location,omitempty"`

	// Status is one of the Contract* constants.
	Status string `json:"status"`

	// StartDate and EndDate bound the contract term.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	// AmountCents is the contract value in minor currency units.
	AmountCents int64 `json:"amountCents"`

	// Notes holds free-form user notes.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is the instant of the first local creation.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the instant of the last local mutation. It strictly
	// increases with every mutation and drives last-writer-wins conflict
	// resolution.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewerThan reports whether c must replace other under last-writer-wins.
// Equal timestamps are not newer.
func (c Contract) NewerThan(other Contract) bool {
	return c.UpdatedAt.After(other.UpdatedAt)
}

// TableName returns the name of the database table associated with the
// Contract model.
func (c Contract) TableName() string {
	return "contracts"
}
