package domain

import "time"

type PlanType string

const (
	PlanTypeEmergency PlanType = "emergency"
	PlanTypeVacation  PlanType = "vacation"
	PlanTypeMedical   PlanType = "medical"
	PlanTypeEducation PlanType = "education"
	PlanTypeHousing   PlanType = "housing"
	PlanTypeVehicle   PlanType = "vehicle"
)

// ValidPlanType reports whether t is one of the fixed plan categories.
func ValidPlanType(t PlanType) bool {
	switch t {
	case PlanTypeEmergency, PlanTypeVacation, PlanTypeMedical,
		PlanTypeEducation, PlanTypeHousing, PlanTypeVehicle:
		return true
	}
	return false
}

type DepositFrequency string

const (
	DepositFrequencyDaily    DepositFrequency = "daily"
	DepositFrequencyWeekly   DepositFrequency = "weekly"
	DepositFrequencyBiweekly DepositFrequency = "biweekly"
	DepositFrequencyMonthly  DepositFrequency = "monthly"
)

// ValidDepositFrequency reports whether f is a supported cadence.
func ValidDepositFrequency(f DepositFrequency) bool {
	switch f {
	case DepositFrequencyDaily, DepositFrequencyWeekly,
		DepositFrequencyBiweekly, DepositFrequencyMonthly:
		return true
	}
	return false
}

type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "ACTIVE"
	PlanStatusCompleted PlanStatus = "COMPLETED"
	PlanStatusExpired   PlanStatus = "EXPIRED"
)

// SavingPlan is a personal savings goal with a deposit schedule.
type SavingPlan struct {
	ID               int32            `json:"plan_id"`
	OwnerID          int32            `json:"owner_id"`
	PlanName         string           `json:"plan_name"`
	PlanType         PlanType         `json:"plan_type"`
	GoalAmount       float64          `json:"goal_amount"`
	CurrentAmount    float64          `json:"current_amount"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	DepositFrequency DepositFrequency `json:"deposit_frequency"`
	Status           PlanStatus       `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// GoalReached reports whether the plan has saved its goal amount.
func (p *SavingPlan) GoalReached() bool {
	return p.CurrentAmount >= p.GoalAmount
}

// Deposit is a single recorded deposit against a saving plan.
type Deposit struct {
	ID        int32     `json:"id"`
	PlanID    int32     `json:"plan_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
