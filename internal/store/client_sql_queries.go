// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Timestamps are stored as fixed-width UTC text so that string comparison
// in SQLite orders them chronologically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000Z"

const contractColumns = `
			id,
			contract_number,
			title,
			customer,
			location,
			status,
			start_date,
			end_date,
			amount_cents,
			notes,
			created_at,
			updated_at`

const (
	insertContract = `
		INSERT INTO contracts (` + contractColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	putContract = `
		INSERT INTO contracts (` + contractColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			contract_number = excluded.contract_number,
			title           = excluded.title,
			customer        = excluded.customer,
			location        = excluded.location,
			status          = excluded.status,
			start_date      = excluded.start_date,
			end_date        = excluded.end_date,
			amount_cents    = excluded.amount_cents,
			notes           = excluded.notes,
			created_at      = excluded.created_at,
			updated_at      = excluded.updated_at;`

	updateContract = `
		UPDATE contracts SET
			contract_number = ?,
			title           = ?,
			customer        = ?,
			location        = ?,
			status          = ?,
			start_date      = ?,
			end_date        = ?,
			amount_cents    = ?,
			notes           = ?,
			updated_at      = ?
		WHERE id = ?;`

	getContract = `
		SELECT` + contractColumns + `
		FROM contracts
		WHERE id = ?;`

	getContractUpdatedAt = `
		SELECT updated_at FROM contracts WHERE id = ?;`

	listContracts = `
		SELECT` + contractColumns + `
		FROM contracts
		ORDER BY updated_at, id;`

	listContractsUpdatedAfter = `
		SELECT` + contractColumns + `
		FROM contracts
		WHERE updated_at > ?
		ORDER BY updated_at, id;`

	deleteContract = `
		DELETE FROM contracts WHERE id = ?;`
)

const (
	appStateKeySyncConfig = "sync_config"
	appStateKeySession    = "session"

	getAppState = `
		SELECT value FROM app_state WHERE key = ?;`

	putAppState = `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at;`

	deleteAppState = `
		DELETE FROM app_state WHERE key = ?;`

	listRetryEntries = `
		SELECT contract_id, payload, last_error, attempts, failed_at
		FROM sync_retry_queue
		ORDER BY failed_at, contract_id;`

	putRetryEntry = `
		INSERT INTO sync_retry_queue (contract_id, payload, last_error, attempts, failed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (contract_id) DO UPDATE SET
			payload    = excluded.payload,
			last_error = excluded.last_error,
			attempts   = excluded.attempts,
			failed_at  = excluded.failed_at;`

	deleteRetryEntry = `
		DELETE FROM sync_retry_queue WHERE contract_id = ?;`

	clearRetryEntries = `
		DELETE FROM sync_retry_queue;`
)
