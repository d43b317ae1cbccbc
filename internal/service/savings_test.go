package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"debtmates-backend/internal/domain"
)

func validPlanInput() SavingPlanInput {
	return SavingPlanInput{
		PlanName:         "Trip to Lisbon",
		PlanType:         domain.PlanTypeVacation,
		GoalAmount:       1200,
		StartDate:        "2026-01-01",
		EndDate:          "2026-12-31",
		DepositFrequency: domain.DepositFrequencyMonthly,
	}
}

func TestSavingsService_CreatePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		planRepo := new(MockSavingPlanRepo)
		planRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.SavingPlan).ID = 3
		}).Return(nil)

		svc := NewSavingsService(planRepo, new(MockUserRepo), new(MockNotificationRepo), nil)

		plan, err := svc.CreatePlan(ctx, 1, validPlanInput())
		require.NoError(t, err)
		assert.Equal(t, int32(3), plan.ID)
		assert.Equal(t, domain.PlanStatusActive, plan.Status)
		assert.Equal(t, 0.0, plan.CurrentAmount)
	})

	t.Run("InitialDepositSeedsCurrentAmount", func(t *testing.T) {
		planRepo := new(MockSavingPlanRepo)
		planRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewSavingsService(planRepo, new(MockUserRepo), new(MockNotificationRepo), nil)

		input := validPlanInput()
		input.InitialDeposit = 200

		plan, err := svc.CreatePlan(ctx, 1, input)
		require.NoError(t, err)
		assert.InDelta(t, 200.0, plan.CurrentAmount, 0.001)
		assert.Equal(t, domain.PlanStatusActive, plan.Status)
	})

	t.Run("InitialDepositAtGoalCompletesImmediately", func(t *testing.T) {
		planRepo := new(MockSavingPlanRepo)
		planRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewSavingsService(planRepo, new(MockUserRepo), new(MockNotificationRepo), nil)

		input := validPlanInput()
		input.InitialDeposit = input.GoalAmount

		plan, err := svc.CreatePlan(ctx, 1, input)
		require.NoError(t, err)
		assert.Equal(t, domain.PlanStatusCompleted, plan.Status)
	})

	t.Run("NegativeInitialDepositRejected", func(t *testing.T) {
		svc := NewSavingsService(new(MockSavingPlanRepo), new(MockUserRepo), new(MockNotificationRepo), nil)

		input := validPlanInput()
		input.InitialDeposit = -1

		_, err := svc.CreatePlan(ctx, 1, input)
		var verr *PlanValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 2, verr.Step)
		assert.Equal(t, "initial_deposit", verr.Fields[0].Field)
	})

	t.Run("DetailsStepErrors", func(t *testing.T) {
		svc := NewSavingsService(new(MockSavingPlanRepo), new(MockUserRepo), new(MockNotificationRepo), nil)

		input := validPlanInput()
		input.PlanName = ""
		input.PlanType = "yacht"

		_, err := svc.CreatePlan(ctx, 1, input)
		var verr *PlanValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Step)
		assert.Len(t, verr.Fields, 2)
	})

	t.Run("GoalStepErrors", func(t *testing.T) {
		svc := NewSavingsService(new(MockSavingPlanRepo), new(MockUserRepo), new(MockNotificationRepo), nil)

		input := validPlanInput()
		input.GoalAmount = -5

		_, err := svc.CreatePlan(ctx, 1, input)
		var verr *PlanValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 2, verr.Step)
	})

	t.Run("ScheduleStepErrors", func(t *testing.T) {
		svc := NewSavingsService(new(MockSavingPlanRepo), new(MockUserRepo), new(MockNotificationRepo), nil)

		input := validPlanInput()
		input.EndDate = "2025-01-01" // before start
		input.DepositFrequency = "hourly"

		_, err := svc.CreatePlan(ctx, 1, input)
		var verr *PlanValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 3, verr.Step)
		assert.Len(t, verr.Fields, 2)
	})
}

func TestSavingsService_Deposit(t *testing.T) {
	ctx := context.Background()

	activePlan := func() *domain.SavingPlan {
		return &domain.SavingPlan{
			ID:            3,
			OwnerID:       1,
			PlanName:      "Trip to Lisbon",
			GoalAmount:    1200,
			CurrentAmount: 1100,
			Status:        domain.PlanStatusActive,
		}
	}

	t.Run("AddsToCurrentAmount", func(t *testing.T) {
		planRepo := new(MockSavingPlanRepo)
		planRepo.On("GetByID", ctx, int32(3)).Return(activePlan(), nil)
		planRepo.On("RecordDeposit", ctx, mock.Anything).Return(nil)

		svc := NewSavingsService(planRepo, new(MockUserRepo), new(MockNotificationRepo), nil)

		plan, err := svc.Deposit(ctx, 1, 3, 50)
		require.NoError(t, err)
		assert.InDelta(t, 1150.0, plan.CurrentAmount, 0.001)
		assert.Equal(t, domain.PlanStatusActive, plan.Status)
	})

	t.Run("ReachingGoalCompletesPlan", func(t *testing.T) {
		planRepo := new(MockSavingPlanRepo)
		noteRepo := new(MockNotificationRepo)
		planRepo.On("GetByID", ctx, int32(3)).Return(activePlan(), nil)
		planRepo.On("RecordDeposit", ctx, mock.Anything).Return(nil)
		planRepo.On("Update", ctx, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewSavingsService(planRepo, new(MockUserRepo), noteRepo, nil)

		plan, err := svc.Deposit(ctx, 1, 3, 100)
		require.NoError(t, err)
		assert.Equal(t, domain.PlanStatusCompleted, plan.Status)
		noteRepo.AssertCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("ReachingGoalEmailsOwner", func(t *testing.T) {
		planRepo := new(MockSavingPlanRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		email := new(MockEmailService)

		planRepo.On("GetByID", ctx, int32(3)).Return(activePlan(), nil)
		planRepo.On("RecordDeposit", ctx, mock.Anything).Return(nil)
		planRepo.On("Update", ctx, mock.Anything).Return(nil)
		noteRepo.On("Create", ctx, mock.Anything).Return(nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Username: "alice", Email: "alice@test.com"}, nil)
		email.On("SendGoalReached", ctx, "alice@test.com", "alice", "Trip to Lisbon", 1200.0).Return(nil)

		svc := NewSavingsService(planRepo, userRepo, noteRepo, email)

		_, err := svc.Deposit(ctx, 1, 3, 100)
		require.NoError(t, err)
		email.AssertExpectations(t)
	})

	t.Run("RejectsDepositOnCompletedPlan", func(t *testing.T) {
		done := activePlan()
		done.Status = domain.PlanStatusCompleted

		planRepo := new(MockSavingPlanRepo)
		planRepo.On("GetByID", ctx, int32(3)).Return(done, nil)

		svc := NewSavingsService(planRepo, new(MockUserRepo), new(MockNotificationRepo), nil)

		_, err := svc.Deposit(ctx, 1, 3, 10)
		assert.ErrorIs(t, err, ErrPlanCompleted)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		svc := NewSavingsService(new(MockSavingPlanRepo), new(MockUserRepo), new(MockNotificationRepo), nil)

		_, err := svc.Deposit(ctx, 1, 3, 0)
		assert.Error(t, err)
	})

	t.Run("OwnershipEnforced", func(t *testing.T) {
		planRepo := new(MockSavingPlanRepo)
		planRepo.On("GetByID", ctx, int32(3)).Return(activePlan(), nil)

		svc := NewSavingsService(planRepo, new(MockUserRepo), new(MockNotificationRepo), nil)

		_, err := svc.Deposit(ctx, 2, 3, 10)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
