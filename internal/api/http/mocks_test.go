package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/service"
	"debtmates-backend/internal/settlement"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID int32, username, email string) (*domain.User, error) {
	args := m.Called(ctx, userID, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, creatorID int32, name, description string, memberEmails []string) (*domain.Group, error) {
	args := m.Called(ctx, creatorID, name, description, memberEmails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, userID, groupID int32) (*domain.Group, []domain.User, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Group), args.Get(1).([]domain.User), args.Error(2)
}

func (m *MockGroupService) ListGroups(ctx context.Context, userID int32) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupService) UpdateGroup(ctx context.Context, userID, groupID int32, name, description string) (*domain.Group, error) {
	args := m.Called(ctx, userID, groupID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) AddMembers(ctx context.Context, userID, groupID int32, memberEmails []string) (*domain.Group, error) {
	args := m.Called(ctx, userID, groupID, memberEmails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) RecordDebts(ctx context.Context, userID, groupID int32, totalBill float64, contributions []settlement.Contribution) ([]domain.DebtRecord, []domain.DebtTransfer, error) {
	args := m.Called(ctx, userID, groupID, totalBill, contributions)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.DebtRecord), args.Get(1).([]domain.DebtTransfer), args.Error(2)
}

func (m *MockDebtService) GetDebts(ctx context.Context, userID, groupID int32) ([]domain.DebtRecord, []domain.DebtTransfer, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.DebtRecord), args.Get(1).([]domain.DebtTransfer), args.Error(2)
}

type MockRotationService struct {
	mock.Mock
}

func (m *MockRotationService) CreateGroup(ctx context.Context, creatorID int32, name string, memberEmails []string) (*domain.RotationalGroup, error) {
	args := m.Called(ctx, creatorID, name, memberEmails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RotationalGroup), args.Error(1)
}

func (m *MockRotationService) GetGroup(ctx context.Context, userID, groupID int32) (*domain.RotationalGroup, []domain.User, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.RotationalGroup), args.Get(1).([]domain.User), args.Error(2)
}

func (m *MockRotationService) ListGroups(ctx context.Context, userID int32) ([]domain.RotationalGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RotationalGroup), args.Error(1)
}

func (m *MockRotationService) AddMembers(ctx context.Context, userID, groupID int32, memberEmails []string) (*domain.RotationalGroup, error) {
	args := m.Called(ctx, userID, groupID, memberEmails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RotationalGroup), args.Error(1)
}

func (m *MockRotationService) ListPayments(ctx context.Context, userID, groupID int32) ([]domain.RotationalPayment, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RotationalPayment), args.Error(1)
}

func (m *MockRotationService) CreatePlan(ctx context.Context, userID, groupID int32, entries []domain.PlanEntry) ([]domain.PlanEntry, []domain.RotationalPayment, error) {
	args := m.Called(ctx, userID, groupID, entries)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.PlanEntry), args.Get(1).([]domain.RotationalPayment), args.Error(2)
}

func (m *MockRotationService) GetPlan(ctx context.Context, userID, groupID int32) ([]domain.PlanEntry, []domain.RotationalPayment, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.PlanEntry), args.Get(1).([]domain.RotationalPayment), args.Error(2)
}

func (m *MockRotationService) SubmitSlip(ctx context.Context, userID, paymentID int32, filename, contentType string, file io.Reader) (*domain.RotationalPayment, error) {
	args := m.Called(ctx, userID, paymentID, filename, contentType, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RotationalPayment), args.Error(1)
}

func (m *MockRotationService) VerifyPayment(ctx context.Context, userID, paymentID int32) (*domain.RotationalPayment, error) {
	args := m.Called(ctx, userID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RotationalPayment), args.Error(1)
}

func (m *MockRotationService) DownloadSlip(ctx context.Context, userID, paymentID int32) (io.ReadCloser, string, error) {
	args := m.Called(ctx, userID, paymentID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

type MockSavingsService struct {
	mock.Mock
}

func (m *MockSavingsService) CreatePlan(ctx context.Context, ownerID int32, input service.SavingPlanInput) (*domain.SavingPlan, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingPlan), args.Error(1)
}

func (m *MockSavingsService) GetPlan(ctx context.Context, ownerID, planID int32) (*domain.SavingPlan, error) {
	args := m.Called(ctx, ownerID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingPlan), args.Error(1)
}

func (m *MockSavingsService) ListPlans(ctx context.Context, ownerID int32) ([]domain.SavingPlan, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingPlan), args.Error(1)
}

func (m *MockSavingsService) UpdatePlan(ctx context.Context, ownerID, planID int32, input service.SavingPlanInput) (*domain.SavingPlan, error) {
	args := m.Called(ctx, ownerID, planID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingPlan), args.Error(1)
}

func (m *MockSavingsService) DeletePlan(ctx context.Context, ownerID, planID int32) error {
	args := m.Called(ctx, ownerID, planID)
	return args.Error(0)
}

func (m *MockSavingsService) Deposit(ctx context.Context, ownerID, planID int32, amount float64) (*domain.SavingPlan, error) {
	args := m.Called(ctx, ownerID, planID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingPlan), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockAdminService) DeleteUser(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
