// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/adapter"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

type clientAuthService struct {
	remote adapter.RemoteClient
	state  store.SyncStateRepository
	now    func() time.Time
	logger *logger.Logger
}

// NewClientAuthService returns the client session manager. The session
// (token and user) is persisted so that a restarted client stays logged in.
func NewClientAuthService(remote adapter.RemoteClient, state store.SyncStateRepository, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		remote: remote,
		state:  state,
		now:    time.Now,
		logger: logger,
	}
}

func (s *clientAuthService) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	user, err := s.remote.Register(ctx, creds)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	return user, s.saveSession(ctx, user)
}

func (s *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	user, err := s.remote.Login(ctx, creds)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	return user, s.saveSession(ctx, user)
}

func (s *clientAuthService) Logout(ctx context.Context) error {
	s.remote.SetToken("")
	if err := s.state.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *clientAuthService) RestoreSession(ctx context.Context) (models.User, bool, error) {
	session, err := s.state.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("load session: %w", err)
	}

	s.remote.SetToken(session.Token)
	s.logger.Debug().Int64("user_id", session.User.UserID).Msg("session restored")
	return session.User, true, nil
}

func (s *clientAuthService) saveSession(ctx context.Context, user models.User) error {
	session := models.Session{Token: s.remote.Token(), User: user, At: s.now().UTC()}
	if err := s.state.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// mapAdapterError translates the adapter's transport error into a client
// business error.
func mapAdapterError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrWrongCredentials, err)
	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", store.ErrLoginAlreadyExists, err)
	case errors.Is(err, adapter.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	case errors.Is(err, adapter.ErrServer):
		return fmt.Errorf("%w: %w", ErrServerRejected, err)
	}
	return err
}
