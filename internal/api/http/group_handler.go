package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/service"
)

type GroupHandler struct {
	groups service.GroupService
}

func NewGroupHandler(groups service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// pathID extracts an int32 path variable.
func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, false
	}
	return int32(id), true
}

type createGroupRequest struct {
	Name         string   `json:"group_name"`
	Description  string   `json:"group_description"`
	MemberEmails []string `json:"member_emails"`
}

type groupResponse struct {
	Group   *domain.Group `json:"group"`
	Members []domain.User `json:"members,omitempty"`
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), claims.UserID, req.Name, req.Description, req.MemberEmails)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, groupResponse{Group: group})
}

func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	group, members, err := h.groups.GetGroup(r.Context(), claims.UserID, groupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupResponse{Group: group, Members: members})
}

func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	groups, err := h.groups.ListGroups(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req struct {
		Name        string `json:"group_name"`
		Description string `json:"group_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groups.UpdateGroup(r.Context(), claims.UserID, groupID, req.Name, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupResponse{Group: group})
}

func (h *GroupHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req struct {
		MemberEmails []string `json:"member_emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groups.AddMembers(r.Context(), claims.UserID, groupID, req.MemberEmails)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupResponse{Group: group})
}
