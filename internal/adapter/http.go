// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/utils"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
	"github.com/go-resty/resty/v2"
)

const (
	pathRegister   = "/auth/register"
	pathLogin      = "/auth/login"
	pathMe         = "/auth/me"
	pathContracts  = "/contracts"
	pathBulkUpsert = "/contracts/bulk-upsert"
)

type httpRemoteClient struct {
	client *utils.HTTPClient

	mu      sync.RWMutex
	baseURL string
	token   string

	logger *logger.Logger
}

// NewHTTPRemoteClient constructs the resty implementation of [RemoteClient]
// for the API rooted at adapterCfg.BaseURL. Every request is bounded by
// adapterCfg.RequestTimeout.
//
// Returns an error if the base URL is empty or cannot be parsed.
func NewHTTPRemoteClient(adapterCfg config.ClientAdapter, log *logger.Logger) (RemoteClient, error) {
	baseURL, err := NormalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("remote call")
		return nil
	})

	return &httpRemoteClient{client: client, baseURL: baseURL, logger: log}, nil
}

// NormalizeBaseURL validates raw as an http(s) server address, adding the
// http scheme when none is given and dropping trailing slashes.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	if err := config.ValidateBaseURL(raw); err != nil {
		return "", err
	}

	return strings.TrimRight(raw, "/"), nil
}

// SetToken implements [RemoteClient].
func (h *httpRemoteClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteClient].
func (h *httpRemoteClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SetBaseURL implements [RemoteClient].
func (h *httpRemoteClient) SetBaseURL(raw string) error {
	baseURL, err := NormalizeBaseURL(raw)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.baseURL = baseURL
	return nil
}

// BaseURL implements [RemoteClient].
func (h *httpRemoteClient) BaseURL() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.baseURL
}

// Register implements [RemoteClient]. The bearer token is taken from the
// Authorization response header.
func (h *httpRemoteClient) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	return h.authenticate(ctx, "register", pathRegister, creds)
}

// Login implements [RemoteClient]. The bearer token is taken from the
// Authorization response header.
func (h *httpRemoteClient) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	return h.authenticate(ctx, "login", pathLogin, creds)
}

func (h *httpRemoteClient) authenticate(ctx context.Context, op, path string, creds models.Credentials) (models.User, error) {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(h.url(path))
	if err != nil {
		return models.User{}, mapTransportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %s parse bearer token: %w", ErrServer, op, err)
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, mapDecodeError(op, err)
	}

	h.SetToken(token)
	return user, nil
}

// Me implements [RemoteClient].
func (h *httpRemoteClient) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := h.getJSON(ctx, "me", h.url(pathMe), &user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ListContracts implements [RemoteClient]. updatedAfter is sent as RFC 3339
// with nanoseconds in UTC.
func (h *httpRemoteClient) ListContracts(ctx context.Context, updatedAfter *time.Time) ([]models.Contract, error) {
	target := h.url(pathContracts)
	if updatedAfter != nil {
		target += "?" + url.Values{"updatedAfter": {updatedAfter.UTC().Format(time.RFC3339Nano)}}.Encode()
	}

	var cr models.ContractsResponse
	if err := h.getJSON(ctx, "list contracts", target, &cr); err != nil {
		return nil, err
	}

	if cr.Contracts == nil {
		return []models.Contract{}, nil
	}
	return cr.Contracts, nil
}

// GetContract implements [RemoteClient].
func (h *httpRemoteClient) GetContract(ctx context.Context, id string) (models.Contract, error) {
	var contract models.Contract
	if err := h.getJSON(ctx, "get contract", h.url(pathContracts+"/"+url.PathEscape(id)), &contract); err != nil {
		return models.Contract{}, err
	}

	return contract, nil
}

// CreateContract implements [RemoteClient].
func (h *httpRemoteClient) CreateContract(ctx context.Context, contract models.Contract) (models.Contract, error) {
	var created models.Contract
	err := h.sendJSON("create contract", h.request(ctx).SetBody(contract), http.MethodPost, h.url(pathContracts), &created)
	return created, err
}

// UpdateContract implements [RemoteClient].
func (h *httpRemoteClient) UpdateContract(ctx context.Context, contract models.Contract) (models.Contract, error) {
	var updated models.Contract
	target := h.url(pathContracts + "/" + url.PathEscape(contract.ID))
	err := h.sendJSON("update contract", h.request(ctx).SetBody(contract), http.MethodPut, target, &updated)
	return updated, err
}

// BulkUpsert implements [RemoteClient].
func (h *httpRemoteClient) BulkUpsert(ctx context.Context, contracts []models.Contract) (models.BulkUpsertResponse, error) {
	var result models.BulkUpsertResponse
	body := models.BulkUpsertRequest{Contracts: contracts}
	err := h.sendJSON("bulk upsert", h.request(ctx).SetBody(body), http.MethodPost, h.url(pathBulkUpsert), &result)
	return result, err
}

func (h *httpRemoteClient) getJSON(ctx context.Context, op, target string, dst any) error {
	resp, err := h.request(ctx).Get(target)
	if err != nil {
		return mapTransportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), dst); err != nil {
		return mapDecodeError(op, err)
	}
	return nil
}

func (h *httpRemoteClient) sendJSON(op string, req *resty.Request, method, target string, dst any) error {
	resp, err := req.SetHeader("Content-Type", "application/json").Execute(method, target)
	if err != nil {
		return mapTransportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), dst); err != nil {
		return mapDecodeError(op, err)
	}
	return nil
}

// request returns a resty request bound to ctx, carrying the bearer token
// when one is set.
func (h *httpRemoteClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpRemoteClient) url(path string) string {
	return h.BaseURL() + path
}
