package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ueser-furina/noote-website/internal/entity"
)

// Stubs embed the interfaces so each test overrides only the calls it
// expects; anything else panics loudly.
type stubAuth struct {
	authUsecase
	user entity.User
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (entity.User, error) {
	if token != "valid-token" {
		return entity.User{}, fmt.Errorf("%w: bad token", entity.ErrUnauthenticated)
	}
	return s.user, nil
}

func (s *stubAuth) Register(_ context.Context, username, email, _ string) (entity.User, error) {
	if username == "taken" {
		return entity.User{}, entity.ErrUserAlreadyExists
	}
	return entity.User{ID: 1, Username: username, Email: email, CreatedAt: time.Now()}, nil
}

type stubNotes struct {
	notesUsecase
	note entity.Note
	err  error
}

func (s *stubNotes) GetNote(context.Context, int64, int64) (entity.Note, error) {
	return s.note, s.err
}

func (s *stubNotes) CreateNote(_ context.Context, userID int64, title, content, fileType string, isPublic bool) (entity.Note, error) {
	return entity.Note{ID: 1, UserID: userID, Title: title, Content: content, FileType: fileType, IsPublic: isPublic}, nil
}

type stubCollections struct {
	collectionsUsecase
}

type stubIntegration struct {
	integrationUsecase
	result   entity.IntegrationResult
	err      error
	viewerID int64
}

func (s *stubIntegration) Integrate(_ context.Context, _ int64, viewerID int64, _, _ string) (entity.IntegrationResult, error) {
	s.viewerID = viewerID
	return s.result, s.err
}

func newTestServer(t *testing.T, integration *stubIntegration, notes *stubNotes) *httptest.Server {
	t.Helper()

	if integration == nil {
		integration = &stubIntegration{}
	}
	if notes == nil {
		notes = &stubNotes{}
	}

	handler, err := New(NewOptions(
		&stubAuth{user: entity.User{ID: 42, Username: "alice"}},
		notes,
		&stubCollections{},
		integration,
	))
	require.NoError(t, err)

	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)

	return srv
}

func doRequest(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestIntegrateEndpoint_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"forbidden", entity.ErrForbidden, http.StatusForbidden},
		{"collection not found", entity.ErrCollectionNotFound, http.StatusNotFound},
		{"no integrable notes", entity.ErrNoIntegrableNotes, http.StatusBadRequest},
		{"missing api key", entity.ErrMissingAPIKey, http.StatusInternalServerError},
		{"provider failure", entity.ErrProvider, http.StatusInternalServerError},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubIntegration{err: tt.err}, nil)

			resp := doRequest(t, http.MethodPost,
				srv.URL+"/api/v1/collections/10/integrate", "", `{"api_key":"k"}`)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestIntegrateEndpoint_Success(t *testing.T) {
	integration := &stubIntegration{result: entity.IntegrationResult{
		IntegratedContent: "MERGED",
		NoteCount:         2,
		CreatedAt:         time.Now().UTC(),
	}}
	srv := newTestServer(t, integration, nil)

	resp := doRequest(t, http.MethodPost,
		srv.URL+"/api/v1/collections/10/integrate", "valid-token", `{"api_key":"k"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		IntegratedContent string `json:"integrated_content"`
		NoteCount         int    `json:"note_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MERGED", body.IntegratedContent)
	assert.Equal(t, 2, body.NoteCount)

	// Bearer token resolved to the authenticated viewer.
	assert.EqualValues(t, 42, integration.viewerID)
}

func TestIntegrateEndpoint_AnonymousViewer(t *testing.T) {
	integration := &stubIntegration{result: entity.IntegrationResult{IntegratedContent: "MERGED", NoteCount: 1}}
	srv := newTestServer(t, integration, nil)

	resp := doRequest(t, http.MethodPost,
		srv.URL+"/api/v1/collections/10/integrate", "", `{"api_key":"k"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, integration.viewerID)
}

func TestIntegrateEndpoint_BadCollectionID(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	resp := doRequest(t, http.MethodPost,
		srv.URL+"/api/v1/collections/abc/integrate", "", `{"api_key":"k"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	t.Run("missing token", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/notes", "", `{"title":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/notes", "wrong", `{"title":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/notes", "valid-token", `{"title":"x"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestAuthOptional_InvalidTokenRejected(t *testing.T) {
	srv := newTestServer(t, nil, &stubNotes{note: entity.Note{ID: 1, IsPublic: true}})

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/notes/1", "wrong", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetNote_PrivateMapsToForbidden(t *testing.T) {
	srv := newTestServer(t, nil, &stubNotes{err: entity.ErrForbidden})

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/notes/1", "", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	t.Run("created", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "",
			`{"username":"alice","email":"a@example.com","password":"secret123"}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("duplicate", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "",
			`{"username":"taken","email":"a@example.com","password":"secret123"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", `{`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
