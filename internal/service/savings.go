package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
	"debtmates-backend/internal/repository"
	"debtmates-backend/internal/wizard"
)

const dateLayout = "2006-01-02"

type savingsService struct {
	planRepo repository.SavingPlanRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	email    EmailService
}

func NewSavingsService(planRepo repository.SavingPlanRepository, userRepo repository.UserRepository, noteRepo repository.NotificationRepository, email EmailService) SavingsService {
	return &savingsService{
		planRepo: planRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		email:    email,
	}
}

// planFormSteps builds the three-step validation pipeline for the plan form:
// details, goal, then schedule. Each validator only looks at its own fields
// so an error always points at the step that owns it.
func planFormSteps() []wizard.StepValidator {
	details := func(input any) []wizard.FieldError {
		in := input.(SavingPlanInput)
		var errs []wizard.FieldError
		if in.PlanName == "" {
			errs = append(errs, wizard.FieldError{Field: "plan_name", Message: "is required"})
		}
		if !domain.ValidPlanType(in.PlanType) {
			errs = append(errs, wizard.FieldError{Field: "plan_type", Message: "must be one of the supported plan types"})
		}
		return errs
	}

	goal := func(input any) []wizard.FieldError {
		in := input.(SavingPlanInput)
		var errs []wizard.FieldError
		if in.GoalAmount <= 0 {
			errs = append(errs, wizard.FieldError{Field: "goal_amount", Message: "must be positive"})
		}
		if in.InitialDeposit < 0 {
			errs = append(errs, wizard.FieldError{Field: "initial_deposit", Message: "must not be negative"})
		} else if in.GoalAmount > 0 && in.InitialDeposit > in.GoalAmount {
			errs = append(errs, wizard.FieldError{Field: "initial_deposit", Message: "must not exceed goal_amount"})
		}
		return errs
	}

	schedule := func(input any) []wizard.FieldError {
		in := input.(SavingPlanInput)
		var errs []wizard.FieldError
		start, startErr := time.Parse(dateLayout, in.StartDate)
		if startErr != nil {
			errs = append(errs, wizard.FieldError{Field: "start_date", Message: "must be a date in YYYY-MM-DD form"})
		}
		end, endErr := time.Parse(dateLayout, in.EndDate)
		if endErr != nil {
			errs = append(errs, wizard.FieldError{Field: "end_date", Message: "must be a date in YYYY-MM-DD form"})
		}
		if startErr == nil && endErr == nil && !end.After(start) {
			errs = append(errs, wizard.FieldError{Field: "end_date", Message: "must be after start_date"})
		}
		if !domain.ValidDepositFrequency(in.DepositFrequency) {
			errs = append(errs, wizard.FieldError{Field: "deposit_frequency", Message: "must be daily, weekly, biweekly or monthly"})
		}
		return errs
	}

	return []wizard.StepValidator{details, goal, schedule}
}

// validatePlanForm walks the full wizard front to back and reports the first
// failing step.
func validatePlanForm(input SavingPlanInput) error {
	w, err := wizard.New(planFormSteps()...)
	if err != nil {
		return err
	}
	for w.CurrentStep() < w.StepCount() {
		step := w.CurrentStep()
		if errs := w.ValidateAndAdvance(input); len(errs) > 0 {
			return &PlanValidationError{Step: step, Fields: errs}
		}
	}
	if errs := w.ValidateAndAdvance(input); len(errs) > 0 {
		return &PlanValidationError{Step: w.CurrentStep(), Fields: errs}
	}
	return nil
}

func (s *savingsService) CreatePlan(ctx context.Context, ownerID int32, input SavingPlanInput) (*domain.SavingPlan, error) {
	logger.EnterMethod("savingsService.CreatePlan", "ownerID", ownerID, "planName", input.PlanName)

	if err := validatePlanForm(input); err != nil {
		logger.ExitMethodWithError("savingsService.CreatePlan", err, "ownerID", ownerID)
		return nil, err
	}

	start, _ := time.Parse(dateLayout, input.StartDate)
	end, _ := time.Parse(dateLayout, input.EndDate)

	plan := &domain.SavingPlan{
		OwnerID:          ownerID,
		PlanName:         input.PlanName,
		PlanType:         input.PlanType,
		GoalAmount:       input.GoalAmount,
		CurrentAmount:    input.InitialDeposit,
		StartDate:        start,
		EndDate:          end,
		DepositFrequency: input.DepositFrequency,
		Status:           domain.PlanStatusActive,
	}
	if plan.GoalReached() {
		plan.Status = domain.PlanStatusCompleted
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		logger.ExitMethodWithError("savingsService.CreatePlan", err, "ownerID", ownerID)
		return nil, err
	}

	logger.ExitMethod("savingsService.CreatePlan", "planID", plan.ID)
	return plan, nil
}

// ownedPlan loads the plan and enforces ownership.
func (s *savingsService) ownedPlan(ctx context.Context, ownerID, planID int32) (*domain.SavingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}
	return plan, nil
}

func (s *savingsService) GetPlan(ctx context.Context, ownerID, planID int32) (*domain.SavingPlan, error) {
	return s.ownedPlan(ctx, ownerID, planID)
}

func (s *savingsService) ListPlans(ctx context.Context, ownerID int32) ([]domain.SavingPlan, error) {
	return s.planRepo.ListByOwner(ctx, ownerID)
}

func (s *savingsService) UpdatePlan(ctx context.Context, ownerID, planID int32, input SavingPlanInput) (*domain.SavingPlan, error) {
	plan, err := s.ownedPlan(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != domain.PlanStatusActive {
		return nil, ErrPlanCompleted
	}

	if err := validatePlanForm(input); err != nil {
		return nil, err
	}

	start, _ := time.Parse(dateLayout, input.StartDate)
	end, _ := time.Parse(dateLayout, input.EndDate)

	plan.PlanName = input.PlanName
	plan.PlanType = input.PlanType
	plan.GoalAmount = input.GoalAmount
	plan.StartDate = start
	plan.EndDate = end
	plan.DepositFrequency = input.DepositFrequency
	if plan.GoalReached() {
		plan.Status = domain.PlanStatusCompleted
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *savingsService) DeletePlan(ctx context.Context, ownerID, planID int32) error {
	if _, err := s.ownedPlan(ctx, ownerID, planID); err != nil {
		return err
	}
	return s.planRepo.Delete(ctx, planID)
}

func (s *savingsService) Deposit(ctx context.Context, ownerID, planID int32, amount float64) (*domain.SavingPlan, error) {
	logger.EnterMethod("savingsService.Deposit", "ownerID", ownerID, "planID", planID, "amount", amount)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive, got %.2f", ErrInvalidInput, amount)
	}

	plan, err := s.ownedPlan(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != domain.PlanStatusActive {
		return nil, ErrPlanCompleted
	}

	deposit := &domain.Deposit{PlanID: planID, Amount: amount}
	if err := s.planRepo.RecordDeposit(ctx, deposit); err != nil {
		logger.ExitMethodWithError("savingsService.Deposit", err, "planID", planID)
		return nil, err
	}
	plan.CurrentAmount += amount

	if plan.GoalReached() {
		plan.Status = domain.PlanStatusCompleted
		if err := s.planRepo.Update(ctx, plan); err != nil {
			return nil, err
		}

		note := &domain.Notification{
			UserID:  ownerID,
			Title:   "Savings goal reached",
			Message: fmt.Sprintf("Congratulations! %q reached its goal of %.2f.", plan.PlanName, plan.GoalAmount),
			Attributes: map[string]string{
				"plan_id": fmt.Sprint(plan.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create goal notification", "userID", ownerID, "error", err)
		}
		if s.email != nil {
			if owner, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
				logger.Warn("Failed to load owner for goal email", "userID", ownerID, "error", err)
			} else if err := s.email.SendGoalReached(ctx, owner.Email, owner.Username, plan.PlanName, plan.GoalAmount); err != nil {
				logger.Warn("Failed to send goal email", "userID", ownerID, "error", err)
			}
		}
	}

	logger.ExitMethod("savingsService.Deposit", "planID", planID, "currentAmount", plan.CurrentAmount)
	return plan, nil
}
