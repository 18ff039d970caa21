package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Arnaud541/BabyFootClementine/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"tournament not found", services.ErrTournamentNotFound, http.StatusNotFound},
		{"team not found", services.ErrTeamNotFound, http.StatusNotFound},
		{"player not registered", services.ErrPlayerNotRegistered, http.StatusBadRequest},
		{"wrapped player not registered", fmt.Errorf("%w: abc", services.ErrPlayerNotRegistered), http.StatusBadRequest},
		{"no teams provided", services.ErrNoTeamsProvided, http.StatusBadRequest},
		{"player already teamed", services.ErrPlayerAlreadyTeamed, http.StatusConflict},
		{"already subscribed", services.ErrAlreadySubscribed, http.StatusConflict},
		{"email taken", services.ErrEmailConflict, http.StatusConflict},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"logo storage disabled", services.ErrLogoStorageDisabled, http.StatusServiceUnavailable},
		{"unexpected error", fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func newRequestWithURLParam(param, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetUUIDFromURL(t *testing.T) {
	req := newRequestWithURLParam("tournoiId", "f47ac10b-58cc-4372-a567-0e02b2c3d479")
	id, err := getUUIDFromURL(req, "tournoiId")
	require.NoError(t, err)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", id)

	req = newRequestWithURLParam("tournoiId", "not-a-uuid")
	_, err = getUUIDFromURL(req, "tournoiId")
	assert.Error(t, err)

	// v1 UUIDs are rejected, identifiers are always v4.
	req = newRequestWithURLParam("tournoiId", "f47ac10b-58cc-1372-a567-0e02b2c3d479")
	_, err = getUUIDFromURL(req, "tournoiId")
	assert.Error(t, err)

	req = newRequestWithURLParam("tournoiId", "")
	_, err = getUUIDFromURL(req, "tournoiId")
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"nom"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nom":"Les Invincibles"}`))
		var dst payload
		require.NoError(t, readJSON(httptest.NewRecorder(), req, &dst))
		assert.Equal(t, "Les Invincibles", dst.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var dst payload
		assert.EqualError(t, readJSON(httptest.NewRecorder(), req, &dst), "body must not be empty")
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nom":"x","bogus":1}`))
		var dst payload
		err := readJSON(httptest.NewRecorder(), req, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown key")
	})

	t.Run("multiple JSON values", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nom":"x"}{"nom":"y"}`))
		var dst payload
		assert.EqualError(t, readJSON(httptest.NewRecorder(), req, &dst), "body must only contain a single JSON value")
	})
}
