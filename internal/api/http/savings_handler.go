package http

import (
	"encoding/json"
	"net/http"

	"debtmates-backend/internal/service"
)

type SavingsHandler struct {
	savings service.SavingsService
}

func NewSavingsHandler(savings service.SavingsService) *SavingsHandler {
	return &SavingsHandler{savings: savings}
}

func (h *SavingsHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var input service.SavingPlanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.savings.CreatePlan(r.Context(), claims.UserID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, plan)
}

func (h *SavingsHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	planID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := h.savings.GetPlan(r.Context(), claims.UserID, planID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

func (h *SavingsHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	plans, err := h.savings.ListPlans(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

func (h *SavingsHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	planID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	var input service.SavingPlanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.savings.UpdatePlan(r.Context(), claims.UserID, planID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

func (h *SavingsHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	planID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	if err := h.savings.DeletePlan(r.Context(), claims.UserID, planID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *SavingsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	planID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.savings.Deposit(r.Context(), claims.UserID, planID, req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}
