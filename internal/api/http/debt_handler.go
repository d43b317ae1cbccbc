package http

import (
	"encoding/json"
	"net/http"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/service"
	"debtmates-backend/internal/settlement"
)

type DebtHandler struct {
	debts service.DebtService
}

func NewDebtHandler(debts service.DebtService) *DebtHandler {
	return &DebtHandler{debts: debts}
}

type contributionInput struct {
	MemberID int32   `json:"member_id"`
	Amount   float64 `json:"amount"`
}

type recordDebtsRequest struct {
	TotalBill     float64             `json:"total_bill"`
	Contributions []contributionInput `json:"contributions"`
}

type debtRoundResponse struct {
	Records   []domain.DebtRecord   `json:"records"`
	Transfers []domain.DebtTransfer `json:"transfers"`
}

func (h *DebtHandler) RecordDebts(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req recordDebtsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contributions := make([]settlement.Contribution, 0, len(req.Contributions))
	for _, c := range req.Contributions {
		contributions = append(contributions, settlement.Contribution{MemberID: c.MemberID, Amount: c.Amount})
	}

	records, transfers, err := h.debts.RecordDebts(r.Context(), claims.UserID, groupID, req.TotalBill, contributions)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, debtRoundResponse{Records: records, Transfers: transfers})
}

func (h *DebtHandler) GetDebts(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	records, transfers, err := h.debts.GetDebts(r.Context(), claims.UserID, groupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, debtRoundResponse{Records: records, Transfers: transfers})
}
