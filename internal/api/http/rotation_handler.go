package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/service"
)

type RotationHandler struct {
	rotations   service.RotationService
	maxSlipSize int64 // bytes
}

func NewRotationHandler(rotations service.RotationService, maxSlipSizeMB int64) *RotationHandler {
	return &RotationHandler{
		rotations:   rotations,
		maxSlipSize: maxSlipSizeMB << 20,
	}
}

type createRotationalGroupRequest struct {
	Name         string   `json:"group_name"`
	MemberEmails []string `json:"member_emails"`
}

func (h *RotationHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req createRotationalGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.rotations.CreateGroup(r.Context(), claims.UserID, req.Name, req.MemberEmails)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"group": group})
}

func (h *RotationHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	group, members, err := h.rotations.GetGroup(r.Context(), claims.UserID, groupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"group": group, "members": members})
}

func (h *RotationHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	groups, err := h.rotations.ListGroups(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *RotationHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
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

	group, err := h.rotations.AddMembers(r.Context(), claims.UserID, groupID, req.MemberEmails)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"group": group})
}

func (h *RotationHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	payments, err := h.rotations.ListPayments(r.Context(), claims.UserID, groupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"payments": payments})
}

type planEntryInput struct {
	MonthNumber int32   `json:"month_number"`
	RecipientID int32   `json:"recipient_id"`
	Amount      float64 `json:"amount"`
}

func (h *RotationHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req struct {
		Entries []planEntryInput `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries := make([]domain.PlanEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, domain.PlanEntry{
			MonthNumber: e.MonthNumber,
			RecipientID: e.RecipientID,
			Amount:      e.Amount,
		})
	}

	plan, payments, err := h.rotations.CreatePlan(r.Context(), claims.UserID, groupID, entries)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"entries": plan, "payments": payments})
}

func (h *RotationHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	groupID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	entries, payments, err := h.rotations.GetPlan(r.Context(), claims.UserID, groupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"entries": entries, "payments": payments})
}

// SubmitSlip accepts a multipart upload with the slip under the "file" field.
func (h *RotationHandler) SubmitSlip(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	paymentID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSlipSize)
	if err := r.ParseMultipartForm(h.maxSlipSize); err != nil {
		respondError(w, http.StatusBadRequest, "could not parse multipart form (file too large?)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	payment, err := h.rotations.SubmitSlip(r.Context(), claims.UserID, paymentID, header.Filename, contentType, file)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"payment": payment})
}

func (h *RotationHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	paymentID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := h.rotations.VerifyPayment(r.Context(), claims.UserID, paymentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"payment": payment})
}

func (h *RotationHandler) DownloadSlip(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	paymentID, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	rc, filename, err := h.rotations.DownloadSlip(r.Context(), claims.UserID, paymentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already out; nothing left to do but log.
		logger.Error("Failed to stream slip", "paymentID", paymentID, "error", err)
	}
}
