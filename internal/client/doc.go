// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the contract-sync client runtime.
//
// [NewApp] wires the local store, the remote client, the sync engine and the
// terminal UI into a single process lifecycle. [NewRootCommand] exposes the
// same application through cobra subcommands for scripted use.
package client
