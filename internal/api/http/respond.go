package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository"
	"debtmates-backend/internal/rotation"
	"debtmates-backend/internal/security"
	"debtmates-backend/internal/service"
	"debtmates-backend/internal/settlement"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and validation errors onto HTTP statuses.
// Structured validation errors keep their shape in the body so clients can
// highlight the offending field, month or step.
func respondServiceError(w http.ResponseWriter, err error) {
	var mismatch *settlement.MismatchError
	var sched *rotation.ScheduleError
	var planForm *service.PlanValidationError

	switch {
	case errors.As(err, &mismatch):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":      mismatch.Error(),
			"total_bill": mismatch.TotalBill,
			"sum":        mismatch.Sum,
		})
	case errors.As(err, &sched):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid payout schedule",
			"entries": sched.Entries,
		})
	case errors.As(err, &planForm):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  planForm.Error(),
			"step":   planForm.Step,
			"fields": planForm.Fields,
		})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrNotGroupMember),
		errors.Is(err, service.ErrNotGroupCreator),
		errors.Is(err, service.ErrPermissionDenied):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrSlipMissing),
		errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPlanExists),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrPlanCompleted):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrNotAnImage),
		errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())

	default:
		logger.Error("Unhandled service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
