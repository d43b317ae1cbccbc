package repository

import (
	"context"
	"errors"

	"debtmates-backend/internal/domain"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int32) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int32) (*domain.Group, error)
	ListByMember(ctx context.Context, userID int32) ([]domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error
	AddMembers(ctx context.Context, groupID int32, memberIDs []int32) error
	GetMembers(ctx context.Context, groupID int32) ([]domain.User, error)
}

type DebtRepository interface {
	// CreateRound atomically replaces the group's debt round with the given
	// records and settlement transfers.
	CreateRound(ctx context.Context, groupID int32, records []domain.DebtRecord, transfers []domain.DebtTransfer) error
	ListRecords(ctx context.Context, groupID int32) ([]domain.DebtRecord, error)
	ListTransfers(ctx context.Context, groupID int32) ([]domain.DebtTransfer, error)
}

type RotationalRepository interface {
	CreateGroup(ctx context.Context, group *domain.RotationalGroup) error
	GetGroup(ctx context.Context, id int32) (*domain.RotationalGroup, error)
	ListGroupsByMember(ctx context.Context, userID int32) ([]domain.RotationalGroup, error)
	AddMembers(ctx context.Context, groupID int32, memberIDs []int32) error
	GetMembers(ctx context.Context, groupID int32) ([]domain.User, error)

	// CreatePlan atomically stores the payout schedule and its generated
	// payments. Fails if the group already has a plan.
	CreatePlan(ctx context.Context, groupID int32, entries []domain.PlanEntry, payments []domain.RotationalPayment) error
	GetPlan(ctx context.Context, groupID int32) ([]domain.PlanEntry, error)

	GetPayment(ctx context.Context, id int32) (*domain.RotationalPayment, error)
	UpdatePayment(ctx context.Context, payment *domain.RotationalPayment) error
	ListPaymentsByGroup(ctx context.Context, groupID int32) ([]domain.RotationalPayment, error)
	ListPaymentsByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.RotationalPayment, error)
}

type SavingPlanRepository interface {
	Create(ctx context.Context, plan *domain.SavingPlan) error
	GetByID(ctx context.Context, id int32) (*domain.SavingPlan, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.SavingPlan, error)
	ListActive(ctx context.Context) ([]domain.SavingPlan, error)
	Update(ctx context.Context, plan *domain.SavingPlan) error
	Delete(ctx context.Context, id int32) error

	// RecordDeposit atomically inserts the deposit and adds its amount to the
	// plan's current total.
	RecordDeposit(ctx context.Context, deposit *domain.Deposit) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
