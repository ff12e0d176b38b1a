// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registering a login that is
	// already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrContractNotFound is returned when a contract id is unknown to the
	// store (or, on the server, not owned by the requesting user).
	ErrContractNotFound = errors.New("contract was not found")

	// ErrContractAlreadyExists is returned by Create for an id already present.
	ErrContractAlreadyExists = errors.New("contract already exists")

	// ErrContractOwnedByAnotherUser is returned when a write targets a contract
	// id that belongs to a different account.
	ErrContractOwnedByAnotherUser = errors.New("contract is owned by another user")

	// ErrLocalSessionNotFound is returned when no session is persisted on the
	// client.
	ErrLocalSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingState is returned when a persisted JSON blob cannot be
	// encoded or decoded.
	ErrEncodingState = errors.New("failed to encode persisted state")
)
