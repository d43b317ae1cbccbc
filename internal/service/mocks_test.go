package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"debtmates-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGroupRepo
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) ListByMember(ctx context.Context, userID int32) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}
func (m *MockGroupRepo) Update(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) AddMembers(ctx context.Context, groupID int32, memberIDs []int32) error {
	args := m.Called(ctx, groupID, memberIDs)
	return args.Error(0)
}
func (m *MockGroupRepo) GetMembers(ctx context.Context, groupID int32) ([]domain.User, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockDebtRepo
type MockDebtRepo struct {
	mock.Mock
}

func (m *MockDebtRepo) CreateRound(ctx context.Context, groupID int32, records []domain.DebtRecord, transfers []domain.DebtTransfer) error {
	args := m.Called(ctx, groupID, records, transfers)
	return args.Error(0)
}
func (m *MockDebtRepo) ListRecords(ctx context.Context, groupID int32) ([]domain.DebtRecord, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtRecord), args.Error(1)
}
func (m *MockDebtRepo) ListTransfers(ctx context.Context, groupID int32) ([]domain.DebtTransfer, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtTransfer), args.Error(1)
}

// MockRotationalRepo
type MockRotationalRepo struct {
	mock.Mock
}

func (m *MockRotationalRepo) CreateGroup(ctx context.Context, group *domain.RotationalGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockRotationalRepo) GetGroup(ctx context.Context, id int32) (*domain.RotationalGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RotationalGroup), args.Error(1)
}
func (m *MockRotationalRepo) ListGroupsByMember(ctx context.Context, userID int32) ([]domain.RotationalGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RotationalGroup), args.Error(1)
}
func (m *MockRotationalRepo) AddMembers(ctx context.Context, groupID int32, memberIDs []int32) error {
	args := m.Called(ctx, groupID, memberIDs)
	return args.Error(0)
}
func (m *MockRotationalRepo) GetMembers(ctx context.Context, groupID int32) ([]domain.User, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockRotationalRepo) CreatePlan(ctx context.Context, groupID int32, entries []domain.PlanEntry, payments []domain.RotationalPayment) error {
	args := m.Called(ctx, groupID, entries, payments)
	return args.Error(0)
}
func (m *MockRotationalRepo) GetPlan(ctx context.Context, groupID int32) ([]domain.PlanEntry, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanEntry), args.Error(1)
}
func (m *MockRotationalRepo) GetPayment(ctx context.Context, id int32) (*domain.RotationalPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RotationalPayment), args.Error(1)
}
func (m *MockRotationalRepo) UpdatePayment(ctx context.Context, payment *domain.RotationalPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockRotationalRepo) ListPaymentsByGroup(ctx context.Context, groupID int32) ([]domain.RotationalPayment, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RotationalPayment), args.Error(1)
}
func (m *MockRotationalRepo) ListPaymentsByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.RotationalPayment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RotationalPayment), args.Error(1)
}

// MockSavingPlanRepo
type MockSavingPlanRepo struct {
	mock.Mock
}

func (m *MockSavingPlanRepo) Create(ctx context.Context, plan *domain.SavingPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}
func (m *MockSavingPlanRepo) GetByID(ctx context.Context, id int32) (*domain.SavingPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingPlan), args.Error(1)
}
func (m *MockSavingPlanRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.SavingPlan, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingPlan), args.Error(1)
}
func (m *MockSavingPlanRepo) ListActive(ctx context.Context) ([]domain.SavingPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingPlan), args.Error(1)
}
func (m *MockSavingPlanRepo) Update(ctx context.Context, plan *domain.SavingPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}
func (m *MockSavingPlanRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockSavingPlanRepo) RecordDeposit(ctx context.Context, deposit *domain.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockStorage) FileExists(key string) (bool, int64, error) {
	args := m.Called(key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(ctx context.Context, email, username string) error {
	args := m.Called(ctx, email, username)
	return args.Error(0)
}
func (m *MockEmailService) SendDebtRecorded(ctx context.Context, email, username, groupName string, amountOwed float64) error {
	args := m.Called(ctx, email, username, groupName, amountOwed)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminder(ctx context.Context, email, username, groupName string, monthNumber int32, amount float64) error {
	args := m.Called(ctx, email, username, groupName, monthNumber, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendSlipSubmitted(ctx context.Context, email, username, groupName string, monthNumber int32) error {
	args := m.Called(ctx, email, username, groupName, monthNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentVerified(ctx context.Context, email, username, groupName string, monthNumber int32) error {
	args := m.Called(ctx, email, username, groupName, monthNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendDepositReminder(ctx context.Context, email, username, planName string, frequency string) error {
	args := m.Called(ctx, email, username, planName, frequency)
	return args.Error(0)
}
func (m *MockEmailService) SendGoalReached(ctx context.Context, email, username, planName string, goalAmount float64) error {
	args := m.Called(ctx, email, username, planName, goalAmount)
	return args.Error(0)
}
