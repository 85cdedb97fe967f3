package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GabrielDani/futebol-palpites-backend/services"
)

const defaultNextMatches = 5

var errInvalidQuantity = errors.New("quantity must be a positive integer")

type MatchHandler struct {
	matchService     services.MatchService
	standingsService services.StandingsService
}

func NewMatchHandler(matchService services.MatchService, standingsService services.StandingsService) *MatchHandler {
	return &MatchHandler{
		matchService:     matchService,
		standingsService: standingsService,
	}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Next(w http.ResponseWriter, r *http.Request) {
	quantity := defaultNextMatches
	if q := r.URL.Query().Get("quantity"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, errInvalidQuantity)
			return
		}
		quantity = parsed
	}

	matches, err := h.matchService.FindNext(r.Context(), quantity)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ByRound(w http.ResponseWriter, r *http.Request) {
	round, err := urlParamInt(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.matchService.FindByRound(r.Context(), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.matchService.FindByTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.GetStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, standings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.matchService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
