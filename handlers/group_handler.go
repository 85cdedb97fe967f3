package handlers

import (
	"net/http"

	"github.com/GabrielDani/futebol-palpites-backend/middleware"
	"github.com/GabrielDani/futebol-palpites-backend/services"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type createGroupInput struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input createGroupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.Create(r.Context(), userID, input.Name, input.IsPublic)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, group, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	groups, err := h.groupService.ListVisible(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, groups, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) Details(w http.ResponseWriter, r *http.Request) {
	groupID, err := urlParamInt(r, "groupId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	details, err := h.groupService.GetDetails(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, details, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	groupID, err := urlParamInt(r, "groupId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.groupService.Join(r.Context(), groupID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "joined group"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	groupID, err := urlParamInt(r, "groupId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.groupService.Leave(r.Context(), groupID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "left group"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	groupID, err := urlParamInt(r, "groupId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.groupService.Delete(r.Context(), groupID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
