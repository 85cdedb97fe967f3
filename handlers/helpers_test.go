package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GabrielDani/futebol-palpites-backend/services"
	"github.com/stretchr/testify/assert"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := map[string]struct {
		err        error
		wantStatus int
	}{
		"match not found":     {services.ErrMatchNotFound, http.StatusNotFound},
		"group not found":     {services.ErrGroupNotFound, http.StatusNotFound},
		"nickname taken":      {services.ErrNicknameConflict, http.StatusConflict},
		"round conflict":      {services.ErrMatchRoundConflict, http.StatusConflict},
		"already a member":    {services.ErrAlreadyGroupMember, http.StatusConflict},
		"same team":           {services.ErrMatchSameTeam, http.StatusBadRequest},
		"negative score":      {services.ErrNegativeScore, http.StatusBadRequest},
		"private group":       {services.ErrGroupPrivate, http.StatusBadRequest},
		"bad credentials":     {services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		"guesses locked":      {services.ErrGuessesLocked, http.StatusForbidden},
		"not the creator":     {services.ErrOnlyCreatorCanDelete, http.StatusForbidden},
		"unexpected db error": {errors.New("connection reset"), http.StatusInternalServerError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)

			mapServiceErrorToHTTP(w, r, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestReadJSONRejectsMalformedBodies(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := map[string]string{
		"empty body":     "",
		"broken json":    `{"name":`,
		"unknown field":  `{"nome": "x"}`,
		"trailing value": `{"name": "x"}{"name": "y"}`,
		"wrong type":     `{"name": 12}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))

			var dst payload
			assert.Error(t, readJSON(w, r, &dst))
		})
	}
}

func TestReadJSONAcceptsValidBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name": "Flamengo"}`))

	var dst payload
	assert.NoError(t, readJSON(w, r, &dst))
	assert.Equal(t, "Flamengo", dst.Name)
}
