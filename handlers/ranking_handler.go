package handlers

import (
	"net/http"

	"github.com/GabrielDani/futebol-palpites-backend/middleware"
	"github.com/GabrielDani/futebol-palpites-backend/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.rankingService.GetRanking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, ranking, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	performance, err := h.rankingService.GetPerformance(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, performance, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
