package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"debtmates-backend/internal/security"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Groups       *GroupHandler
	Debts        *DebtHandler
	Rotations    *RotationHandler
	Savings      *SavingsHandler
	Notes        *NotificationHandler
	Admin        *AdminHandler
	TokenManager security.TokenManager
}

// NewRouter wires all routes. Everything under /api/v1 except the auth
// endpoints requires a bearer token; /api/v1/admin additionally requires the
// admin role.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public auth endpoints.
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	// Authenticated endpoints.
	auth := api.PathPrefix("").Subrouter()
	auth.Use(AuthMiddleware(h.TokenManager))

	auth.HandleFunc("/profile", h.Auth.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/profile", h.Auth.UpdateProfile).Methods(http.MethodPut)
	auth.HandleFunc("/profile/password", h.Auth.ChangePassword).Methods(http.MethodPut)

	auth.HandleFunc("/groups", h.Groups.CreateGroup).Methods(http.MethodPost)
	auth.HandleFunc("/groups", h.Groups.ListGroups).Methods(http.MethodGet)
	auth.HandleFunc("/groups/{id:[0-9]+}", h.Groups.GetGroup).Methods(http.MethodGet)
	auth.HandleFunc("/groups/{id:[0-9]+}", h.Groups.UpdateGroup).Methods(http.MethodPut)
	auth.HandleFunc("/groups/{id:[0-9]+}/members", h.Groups.AddMembers).Methods(http.MethodPost)

	auth.HandleFunc("/groups/{id:[0-9]+}/debts", h.Debts.RecordDebts).Methods(http.MethodPost)
	auth.HandleFunc("/groups/{id:[0-9]+}/debts", h.Debts.GetDebts).Methods(http.MethodGet)

	auth.HandleFunc("/rotational/groups", h.Rotations.CreateGroup).Methods(http.MethodPost)
	auth.HandleFunc("/rotational/groups", h.Rotations.ListGroups).Methods(http.MethodGet)
	auth.HandleFunc("/rotational/groups/{id:[0-9]+}", h.Rotations.GetGroup).Methods(http.MethodGet)
	auth.HandleFunc("/rotational/groups/{id:[0-9]+}/members", h.Rotations.AddMembers).Methods(http.MethodPost)
	auth.HandleFunc("/rotational/groups/{id:[0-9]+}/plan", h.Rotations.CreatePlan).Methods(http.MethodPost)
	auth.HandleFunc("/rotational/groups/{id:[0-9]+}/plan", h.Rotations.GetPlan).Methods(http.MethodGet)
	auth.HandleFunc("/rotational/groups/{id:[0-9]+}/payments", h.Rotations.ListPayments).Methods(http.MethodGet)
	auth.HandleFunc("/rotational/payments/{id:[0-9]+}/slip", h.Rotations.SubmitSlip).Methods(http.MethodPut)
	auth.HandleFunc("/rotational/payments/{id:[0-9]+}/slip", h.Rotations.DownloadSlip).Methods(http.MethodGet)
	auth.HandleFunc("/rotational/payments/{id:[0-9]+}/verify", h.Rotations.VerifyPayment).Methods(http.MethodPost)

	auth.HandleFunc("/savings", h.Savings.CreatePlan).Methods(http.MethodPost)
	auth.HandleFunc("/savings", h.Savings.ListPlans).Methods(http.MethodGet)
	auth.HandleFunc("/savings/{id:[0-9]+}", h.Savings.GetPlan).Methods(http.MethodGet)
	auth.HandleFunc("/savings/{id:[0-9]+}", h.Savings.UpdatePlan).Methods(http.MethodPut)
	auth.HandleFunc("/savings/{id:[0-9]+}", h.Savings.DeletePlan).Methods(http.MethodDelete)
	auth.HandleFunc("/savings/{id:[0-9]+}/deposit", h.Savings.Deposit).Methods(http.MethodPost)

	auth.HandleFunc("/notifications", h.Notes.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notes.MarkAsRead).Methods(http.MethodPost)

	// Admin endpoints.
	admin := auth.PathPrefix("/admin").Subrouter()
	admin.Use(AdminOnly)
	admin.HandleFunc("/users", h.Admin.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id:[0-9]+}", h.Admin.DeleteUser).Methods(http.MethodDelete)

	return r
}
