// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

var (
	errSyncFailed     = errors.New("sync failed")
	errUnknownMode    = errors.New("unknown storage mode")
	errNotLoggedIn    = errors.New("not logged in")
	errMissingSession = errors.New("login and password are required")
)

// NewRootCommand creates the root command of the client. Without a
// subcommand it starts the terminal UI.
func NewRootCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	runTUI := func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
			return app.Run(ctx)
		})
	}

	cmd := &cobra.Command{
		Use:           "contract-client",
		Short:         "Offline-first contract manager",
		Long:          "Manage contracts locally and keep them in step with the contract server.",
		Version:       buildInfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}

	config.RegisterClientFlags(cmd.PersistentFlags())

	cmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Start the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	})
	cmd.AddCommand(newLoginCommand(buildInfo))
	cmd.AddCommand(newLogoutCommand(buildInfo))
	cmd.AddCommand(newSyncCommand(buildInfo))
	cmd.AddCommand(newRetryCommand(buildInfo))
	cmd.AddCommand(newStatusCommand(buildInfo))
	cmd.AddCommand(newModeCommand(buildInfo))
	cmd.AddCommand(newSetURLCommand(buildInfo))

	return cmd
}

// withApp loads the configuration from the command flags, builds the
// application and runs fn with it.
func withApp(cmd *cobra.Command, buildInfo models.AppBuildInfo, fn func(ctx context.Context, app *App) error) error {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger("contract-client", cfg.LogFile)
	ctx := log.WithContext(cmd.Context())

	app, err := NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("close client app")
		}
	}()

	return fn(ctx, app)
}

func newLoginCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	var (
		creds    models.Credentials
		register bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the contract server and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(creds.Login) == "" || creds.Password == "" {
				return errMissingSession
			}

			return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
				auth := app.Services().AuthService

				var (
					user models.User
					err  error
				)
				if register {
					user, err = auth.Register(ctx, creds)
				} else {
					user, err = auth.Login(ctx, creds)
				}
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Login)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&creds.Login, "login", "l", "", "account login")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&creds.Name, "name", "", "display name for --register")
	cmd.Flags().BoolVar(&register, "register", false, "create the account first")

	return cmd
}

func newLogoutCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
				if err := app.Services().AuthService.Logout(ctx); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return err
			})
		},
	}
}

func newSyncCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download remote changes and upload local ones",
		Long: `Run one sync: download contracts changed on the server since the last
successful sync, then upload local changes in a single bulk request.

--force syncs in local-only mode too and downloads the full collection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
				if _, _, err := app.RestoreSession(ctx); err != nil {
					return err
				}

				result := app.Services().Engine.RequestSync(ctx, models.SyncOptions{Force: force})
				return reportResult(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "sync even in local-only mode, downloading everything")

	return cmd
}

func newRetryCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Re-upload the records that failed their last upload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
				if _, _, err := app.RestoreSession(ctx); err != nil {
					return err
				}

				result := app.Services().Engine.RetryFailed(ctx)
				return reportResult(cmd.OutOrStdout(), result)
			})
		},
	}
}

func newStatusCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync settings and the retry queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
				user, ok, err := app.RestoreSession(ctx)
				if err != nil {
					return err
				}
				return printStatus(cmd.OutOrStdout(), app, user, ok)
			})
		},
	}
}

func newModeCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:       "mode <local|server>",
		Short:     "Choose between local-only storage and syncing with the server",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"local", "server"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
				if err := app.Services().Settings.SetStorageMode(ctx, mode); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Storage mode: %s\n", mode)
				return err
			})
		},
	}
}

func newSetURLCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Set the contract API base URL; an empty value restores the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, buildInfo, func(ctx context.Context, app *App) error {
				settings := app.Services().Settings
				if err := settings.SetAPIBaseURL(ctx, args[0]); err != nil {
					return err
				}

				url := settings.Get().APIBaseURL
				if url == "" {
					url = "default"
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "API base URL: %s\n", url)
				return err
			})
		},
	}
}

func parseMode(raw string) (models.StorageMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local", "local_only", "local-only":
		return models.LocalOnly, nil
	case "server", "sync", "sync_with_server":
		return models.SyncWithServer, nil
	default:
		return "", fmt.Errorf("%w: %q (want local or server)", errUnknownMode, raw)
	}
}

// reportResult prints result and turns an ERROR status into a command error.
func reportResult(w io.Writer, result models.SyncResult) error {
	line := string(result.Status)
	if result.Detail != "" {
		line += ": " + result.Detail
	}
	if result.Reason != models.ReasonNone {
		line += fmt.Sprintf(" (%s)", result.Reason)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, recErr := range result.Errors {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", recErr.RecordID, recErr.Message); err != nil {
			return err
		}
	}

	if result.Reason == models.ReasonNotAuthenticated {
		return errNotLoggedIn
	}
	if result.Status == models.StatusError {
		return fmt.Errorf("%w: %s", errSyncFailed, result.Detail)
	}
	return nil
}

func printStatus(w io.Writer, app *App, user models.User, signedIn bool) error {
	cfg := app.Services().Settings.Get()
	engine := app.Services().Engine

	var b strings.Builder
	if signedIn {
		fmt.Fprintf(&b, "Account:       %s\n", user.Login)
	} else {
		b.WriteString("Account:       not signed in\n")
	}
	fmt.Fprintf(&b, "Storage mode:  %s\n", cfg.StorageMode)
	fmt.Fprintf(&b, "Sync on load:  %t\n", cfg.SyncOnLoad)
	fmt.Fprintf(&b, "Sync on save:  %t\n", cfg.SyncOnSave)
	if cfg.APIBaseURL != "" {
		fmt.Fprintf(&b, "API base URL:  %s\n", cfg.APIBaseURL)
	}
	if cfg.LastSyncTimestamp != nil {
		fmt.Fprintf(&b, "Last sync:     %s\n", cfg.LastSyncTimestamp.Format(time.RFC3339))
	} else {
		b.WriteString("Last sync:     never\n")
	}

	failed := engine.FailedRecords()
	fmt.Fprintf(&b, "Retry queue:   %d\n", len(failed))
	for _, entry := range failed {
		fmt.Fprintf(&b, "  %s  attempts=%d  %s\n", entry.Contract.ID, entry.Attempts, entry.LastError)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
