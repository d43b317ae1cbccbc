package service

import (
	"context"
	"io"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/settlement"
	"debtmates-backend/internal/wizard"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, username, email string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error
}

type GroupService interface {
	CreateGroup(ctx context.Context, creatorID int32, name, description string, memberEmails []string) (*domain.Group, error)
	GetGroup(ctx context.Context, userID, groupID int32) (*domain.Group, []domain.User, error)
	ListGroups(ctx context.Context, userID int32) ([]domain.Group, error)
	UpdateGroup(ctx context.Context, userID, groupID int32, name, description string) (*domain.Group, error)
	AddMembers(ctx context.Context, userID, groupID int32, memberEmails []string) (*domain.Group, error)
}

type DebtService interface {
	// RecordDebts validates the split, computes the settlement, and persists
	// both as the group's current debt round.
	RecordDebts(ctx context.Context, userID, groupID int32, totalBill float64, contributions []settlement.Contribution) ([]domain.DebtRecord, []domain.DebtTransfer, error)
	GetDebts(ctx context.Context, userID, groupID int32) ([]domain.DebtRecord, []domain.DebtTransfer, error)
}

type RotationService interface {
	CreateGroup(ctx context.Context, creatorID int32, name string, memberEmails []string) (*domain.RotationalGroup, error)
	GetGroup(ctx context.Context, userID, groupID int32) (*domain.RotationalGroup, []domain.User, error)
	ListGroups(ctx context.Context, userID int32) ([]domain.RotationalGroup, error)
	AddMembers(ctx context.Context, userID, groupID int32, memberEmails []string) (*domain.RotationalGroup, error)
	CreatePlan(ctx context.Context, userID, groupID int32, entries []domain.PlanEntry) ([]domain.PlanEntry, []domain.RotationalPayment, error)
	GetPlan(ctx context.Context, userID, groupID int32) ([]domain.PlanEntry, []domain.RotationalPayment, error)
	ListPayments(ctx context.Context, userID, groupID int32) ([]domain.RotationalPayment, error)
	SubmitSlip(ctx context.Context, userID, paymentID int32, filename, contentType string, file io.Reader) (*domain.RotationalPayment, error)
	VerifyPayment(ctx context.Context, userID, paymentID int32) (*domain.RotationalPayment, error)
	DownloadSlip(ctx context.Context, userID, paymentID int32) (io.ReadCloser, string, error) // reader, original filename
}

// SavingPlanInput carries the full three-step plan form: details, goal, and
// deposit schedule.
type SavingPlanInput struct {
	PlanName         string                  `json:"plan_name"`
	PlanType         domain.PlanType         `json:"plan_type"`
	GoalAmount       float64                 `json:"goal_amount"`
	InitialDeposit   float64                 `json:"initial_deposit"`
	StartDate        string                  `json:"start_date"` // YYYY-MM-DD
	EndDate          string                  `json:"end_date"`   // YYYY-MM-DD
	DepositFrequency domain.DepositFrequency `json:"deposit_frequency"`
}

// PlanValidationError reports which wizard step failed and its field errors.
type PlanValidationError struct {
	Step   int                 `json:"step"`
	Fields []wizard.FieldError `json:"fields"`
}

func (e *PlanValidationError) Error() string {
	return "saving plan form is invalid"
}

type SavingsService interface {
	CreatePlan(ctx context.Context, ownerID int32, input SavingPlanInput) (*domain.SavingPlan, error)
	GetPlan(ctx context.Context, ownerID, planID int32) (*domain.SavingPlan, error)
	ListPlans(ctx context.Context, ownerID int32) ([]domain.SavingPlan, error)
	UpdatePlan(ctx context.Context, ownerID, planID int32, input SavingPlanInput) (*domain.SavingPlan, error)
	DeletePlan(ctx context.Context, ownerID, planID int32) error
	Deposit(ctx context.Context, ownerID, planID int32, amount float64) (*domain.SavingPlan, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, userID int32) error
}

type EmailService interface {
	SendWelcome(ctx context.Context, email, username string) error
	SendDebtRecorded(ctx context.Context, email, username, groupName string, amountOwed float64) error
	SendPaymentReminder(ctx context.Context, email, username, groupName string, monthNumber int32, amount float64) error
	SendSlipSubmitted(ctx context.Context, email, username, groupName string, monthNumber int32) error
	SendPaymentVerified(ctx context.Context, email, username, groupName string, monthNumber int32) error
	SendDepositReminder(ctx context.Context, email, username, planName string, frequency string) error
	SendGoalReached(ctx context.Context, email, username, planName string, goalAmount float64) error
}
