// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end driven by [App.Run].
type UI interface {
	// LoginFlow asks the user to sign in. A zero user means offline work.
	LoginFlow(ctx context.Context) (models.User, error)

	// MainLoop runs the contract screen and reports whether the user logged
	// out.
	MainLoop(ctx context.Context, user models.User) (logout bool, err error)
}
