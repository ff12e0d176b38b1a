// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/mock"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/service"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/store"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

const (
	testToken  = "test-token"
	testUserID = int64(7)
	contractID = "0194d6e2-7c1a-7b3e-9a55-3f1c2d4e5f60"
)

type testServer struct {
	router    http.Handler
	auth      *mock.MockAuthService
	contracts *mock.MockContractService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	contracts := mock.NewMockContractService(ctrl)

	auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: testUserID}, nil).AnyTimes()

	h := NewHandler(&service.Services{AuthService: auth, ContractService: contracts}, "1.2.3", logger.Nop())

	return &testServer{router: h.Init(), auth: auth, contracts: contracts}
}

func (s *testServer) do(t *testing.T, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func testContract() models.Contract {
	return models.Contract{
		ID:        contractID,
		Title:     "Office lease",
		Status:    models.ContractActive,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	creds := models.Credentials{Login: "anna", Password: "password1"}
	user := models.User{UserID: testUserID, Login: "anna"}

	tests := []struct {
		name        string
		body        string
		registerErr error
		wantStatus  int
		wantToken   bool
	}{
		{name: "created", body: mustJSON(t, creds), wantStatus: http.StatusCreated, wantToken: true},
		{name: "login taken", body: mustJSON(t, creds), registerErr: store.ErrLoginAlreadyExists, wantStatus: http.StatusConflict},
		{name: "invalid data", body: mustJSON(t, creds), registerErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "database down", body: mustJSON(t, creds), registerErr: store.ErrExecutingQuery, wantStatus: http.StatusInternalServerError},
		{name: "invalid json", body: "{", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			if tt.body != "{" {
				s.auth.EXPECT().RegisterUser(gomock.Any(), creds).Return(user, tt.registerErr)
			}
			if tt.wantToken {
				s.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "issued"}, nil)
			}

			rr := s.do(t, http.MethodPost, "/auth/register", tt.body, false)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantToken {
				assert.Equal(t, "Bearer issued", rr.Header().Get("Authorization"))

				var got models.User
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, user, got)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	creds := models.Credentials{Login: "anna", Password: "password1"}

	t.Run("ok", func(t *testing.T) {
		s := newTestServer(t)
		user := models.User{UserID: testUserID, Login: "anna"}
		s.auth.EXPECT().Login(gomock.Any(), creds).Return(user, nil)
		s.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: "issued"}, nil)

		rr := s.do(t, http.MethodPost, "/auth/login", mustJSON(t, creds), false)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Bearer issued", rr.Header().Get("Authorization"))
	})

	t.Run("wrong password", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.EXPECT().Login(gomock.Any(), creds).Return(models.User{}, service.ErrWrongPassword)

		rr := s.do(t, http.MethodPost, "/auth/login", mustJSON(t, creds), false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token creation fails", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.EXPECT().Login(gomock.Any(), creds).Return(models.User{UserID: 1}, nil)
		s.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(models.Token{}, service.ErrTokenCreationFailed)

		rr := s.do(t, http.MethodPost, "/auth/login", mustJSON(t, creds), false)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Empty(t, rr.Header().Get("Authorization"))
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "empty token", header: "Bearer"},
		{name: "rejected token", header: "Bearer expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid).AnyTimes()

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			s.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	token, err := getTokenFromAuthHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = getTokenFromAuthHeader("Bearer")
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = getTokenFromAuthHeader("Token abc def")
	assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	user := models.User{UserID: testUserID, Login: "anna", Name: "Anna"}
	s.auth.EXPECT().GetUser(gomock.Any(), testUserID).Return(user, nil)

	rr := s.do(t, http.MethodGet, "/auth/me", "", true)

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, user, got)
}

func TestListContracts(t *testing.T) {
	t.Run("incremental", func(t *testing.T) {
		s := newTestServer(t)
		since := time.Date(2026, 3, 1, 9, 0, 0, 123456000, time.UTC)

		s.contracts.EXPECT().ListContracts(gomock.Any(), testUserID, gomock.Any()).
			DoAndReturn(func(_ any, _ int64, updatedAfter *time.Time) ([]models.Contract, error) {
				require.NotNil(t, updatedAfter)
				assert.True(t, updatedAfter.Equal(since))
				return []models.Contract{testContract()}, nil
			})

		rr := s.do(t, http.MethodGet, "/contracts?updatedAfter="+since.Format(time.RFC3339Nano), "", true)

		require.Equal(t, http.StatusOK, rr.Code)
		var got models.ContractsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, []models.Contract{testContract()}, got.Contracts)
	})

	t.Run("all and empty", func(t *testing.T) {
		s := newTestServer(t)
		s.contracts.EXPECT().ListContracts(gomock.Any(), testUserID, gomock.Nil()).Return(nil, nil)

		rr := s.do(t, http.MethodGet, "/contracts", "", true)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"contracts":[]}`, rr.Body.String())
	})

	t.Run("bad timestamp", func(t *testing.T) {
		s := newTestServer(t)
		rr := s.do(t, http.MethodGet, "/contracts?updatedAfter=yesterday", "", true)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetContract(t *testing.T) {
	s := newTestServer(t)
	s.contracts.EXPECT().GetContract(gomock.Any(), testUserID, contractID).Return(testContract(), nil)
	s.contracts.EXPECT().GetContract(gomock.Any(), testUserID, "0194d6e2-0000-7000-8000-000000000000").
		Return(models.Contract{}, store.ErrContractNotFound)

	rr := s.do(t, http.MethodGet, "/contracts/"+contractID, "", true)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/contracts/0194d6e2-0000-7000-8000-000000000000", "", true)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateAndUpdateContract(t *testing.T) {
	s := newTestServer(t)
	c := testContract()

	s.contracts.EXPECT().CreateContract(gomock.Any(), testUserID, c).Return(c, nil)
	rr := s.do(t, http.MethodPost, "/contracts", mustJSON(t, c), true)
	assert.Equal(t, http.StatusCreated, rr.Code)

	s.contracts.EXPECT().UpdateContract(gomock.Any(), testUserID, c).Return(models.Contract{}, store.ErrContractOwnedByAnotherUser)
	rr = s.do(t, http.MethodPut, "/contracts/"+contractID, mustJSON(t, c), true)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	other := c
	other.ID = "0194d6e2-0000-7000-8000-000000000000"
	rr = s.do(t, http.MethodPut, "/contracts/"+contractID, mustJSON(t, other), true)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBulkUpsert(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s := newTestServer(t)
		c := testContract()

		s.contracts.EXPECT().BulkUpsert(gomock.Any(), testUserID, []models.Contract{c}).
			Return(models.BulkUpsertResponse{Created: 1}, nil)

		rr := s.do(t, http.MethodPost, "/contracts/bulk-upsert", mustJSON(t, models.BulkUpsertRequest{Contracts: []models.Contract{c}}), true)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"created":1,"updated":0,"errors":[]}`, rr.Body.String())
	})

	t.Run("empty batch", func(t *testing.T) {
		s := newTestServer(t)
		rr := s.do(t, http.MethodPost, "/contracts/bulk-upsert", `{"contracts":[]}`, true)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("transaction failure", func(t *testing.T) {
		s := newTestServer(t)
		s.contracts.EXPECT().BulkUpsert(gomock.Any(), testUserID, gomock.Any()).
			Return(models.BulkUpsertResponse{}, store.ErrCommitingTransaction)

		rr := s.do(t, http.MethodPost, "/contracts/bulk-upsert", mustJSON(t, models.BulkUpsertRequest{Contracts: []models.Contract{testContract()}}), true)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "transaction")
	})

	t.Run("gzip request body", func(t *testing.T) {
		s := newTestServer(t)
		s.contracts.EXPECT().BulkUpsert(gomock.Any(), testUserID, gomock.Len(1)).
			Return(models.BulkUpsertResponse{Updated: 1}, nil)

		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(mustJSON(t, models.BulkUpsertRequest{Contracts: []models.Contract{testContract()}})))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		req := httptest.NewRequest(http.MethodPost, "/contracts/bulk-upsert", &buf)
		req.Header.Set("Authorization", "Bearer "+testToken)
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("broken gzip", func(t *testing.T) {
		s := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/contracts/bulk-upsert", strings.NewReader("not gzip"))
		req.Header.Set("Authorization", "Bearer "+testToken)
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCompressedResponse(t *testing.T) {
	s := newTestServer(t)
	s.contracts.EXPECT().ListContracts(gomock.Any(), testUserID, gomock.Nil()).Return([]models.Contract{testContract()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/contracts", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)

	var got models.ContractsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Len(t, got.Contracts, 1)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodDelete, "/contracts", "", true)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST", rr.Header().Get("Allow"))
}

func TestVersion(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/version", "", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Body.String())
}

func TestWithTraceID(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/version", "", false)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set(traceIDHeader, "trace-from-client")
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	assert.Equal(t, "trace-from-client", rr.Header().Get(traceIDHeader))
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	req := httptest.NewRequest(http.MethodPost, "/contracts", nil)
	l := logger.NewLogger("test")
	l.Logger = l.Output(&buf)
	req = req.WithContext(l.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, buf.String(), `"status":201`)
	assert.Contains(t, buf.String(), `"method":"POST"`)
	assert.Contains(t, buf.String(), `"size":7`)
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFromError(store.ErrContractNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFromError(errors.Join(service.ErrInvalidDataProvided, errors.New("title"))))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("unknown")))
}
