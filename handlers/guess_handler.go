package handlers

import (
	"net/http"

	"github.com/GabrielDani/futebol-palpites-backend/middleware"
	"github.com/GabrielDani/futebol-palpites-backend/services"
)

type GuessHandler struct {
	guessService services.GuessService
}

func NewGuessHandler(guessService services.GuessService) *GuessHandler {
	return &GuessHandler{guessService: guessService}
}

func (h *GuessHandler) List(w http.ResponseWriter, r *http.Request) {
	guesses, err := h.guessService.ListAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, guesses, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GuessHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.GuessInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	guess, err := h.guessService.Upsert(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, guess, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GuessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	matchID, err := urlParamInt(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.guessService.Delete(r.Context(), userID, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
