// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/config"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string) *httpRemoteClient {
	t.Helper()
	c, err := NewHTTPRemoteClient(config.ClientAdapter{BaseURL: serverURL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	return c.(*httpRemoteClient)
}

func TestNewHTTPRemoteClient_InvalidBaseURL(t *testing.T) {
	_, err := NewHTTPRemoteClient(config.ClientAdapter{BaseURL: ""}, logger.Nop())
	assert.Error(t, err)

	_, err = NewHTTPRemoteClient(config.ClientAdapter{BaseURL: "ftp://example.com"}, logger.Nop())
	assert.Error(t, err)
}

func TestSetBaseURL(t *testing.T) {
	c := newTestClient(t, "http://localhost:8080")

	require.NoError(t, c.SetBaseURL("example.com:9000/"))
	assert.Equal(t, "http://example.com:9000", c.BaseURL())

	assert.Error(t, c.SetBaseURL("   "))
	assert.Equal(t, "http://example.com:9000", c.BaseURL())
}

// ── auth ────────────────────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Login)

		w.Header().Set("Authorization", "Bearer tok-123")
		_ = json.NewEncoder(w).Encode(models.User{UserID: 1, Login: "alice"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	user, err := c.Login(context.Background(), models.Credentials{Login: "alice", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "tok-123", c.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("login already exists"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Register(context.Background(), models.Credentials{Login: "alice"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, c.Token())
}

func TestLogin_MissingBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Login(context.Background(), models.Credentials{Login: "alice"})
	assert.ErrorIs(t, err, ErrServer)
}

func TestMe_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":5,"login":"bob"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	c.SetToken(" good ")
	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Login)
}

// ── contracts ───────────────────────────────────────────────────────────────

func TestListContracts_UpdatedAfterQuery(t *testing.T) {
	since := time.Date(2026, 3, 1, 10, 0, 0, 123, time.FixedZone("x", 3600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contracts", r.URL.Path)
		assert.Equal(t, "2026-03-01T09:00:00.000000123Z", r.URL.Query().Get("updatedAfter"))
		_, _ = w.Write([]byte(`{"contracts":[{"id":"a","title":"A"}]}`))
	}))
	defer srv.Close()

	contracts, err := newTestClient(t, srv.URL).ListContracts(context.Background(), &since)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "a", contracts[0].ID)
}

func TestListContracts_AllWhenNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("updatedAfter"))
		_, _ = w.Write([]byte(`{"contracts":null}`))
	}))
	defer srv.Close()

	contracts, err := newTestClient(t, srv.URL).ListContracts(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, contracts)
	assert.Empty(t, contracts)
}

func TestListContracts_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ListContracts(context.Background(), nil)
	assert.ErrorIs(t, err, ErrServer)
	assert.Equal(t, KindServer, KindOf(err))
}

func TestGetContract_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contracts/abc", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).GetContract(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAndUpdateContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var c models.Contract
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/contracts", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		case http.MethodPut:
			assert.Equal(t, "/contracts/"+c.ID, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(c)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	created, err := client.CreateContract(context.Background(), models.Contract{ID: "c1", Title: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.Title)

	updated, err := client.UpdateContract(context.Background(), models.Contract{ID: "c1", Title: "changed"})
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Title)
}

func TestBulkUpsert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contracts/bulk-upsert", r.URL.Path)

		var req models.BulkUpsertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Contracts, 3)

		_, _ = w.Write([]byte(`{"created":1,"updated":1,"errors":[{"id":"c","error":"title is required"}]}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL).BulkUpsert(context.Background(), []models.Contract{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, map[string]string{"c": "title is required"}, resp.FailedIDs())
}

// ── error mapping ───────────────────────────────────────────────────────────

func TestStatusCodeKinds(t *testing.T) {
	tests := []struct {
		code int
		want error
		kind ErrorKind
	}{
		{http.StatusBadRequest, ErrValidation, KindValidation},
		{http.StatusUnprocessableEntity, ErrValidation, KindValidation},
		{http.StatusForbidden, ErrUnauthorized, KindUnauthorized},
		{http.StatusInternalServerError, ErrServer, KindServer},
		{http.StatusBadGateway, ErrServer, KindServer},
		{http.StatusTeapot, ErrServer, KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).BulkUpsert(context.Background(), nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).Me(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, srv.URL).ListContracts(ctx, nil)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestKindOf_Foreign(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindServer, KindOf(assert.AnError))
}
