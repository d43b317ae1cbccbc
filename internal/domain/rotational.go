package domain

import (
	"fmt"
	"time"
)

// RotationalGroup is a rotating-savings (susu) group. It is a distinct entity
// from Group even though the shapes are similar; the two are never
// interchangeable.
type RotationalGroup struct {
	ID         int32     `json:"group_id"`
	Name       string    `json:"group_name"`
	CreatorID  int32     `json:"creator_id"`
	NumMembers int32     `json:"num_members"`
	IsCreator  bool      `json:"is_creator"` // Derived per requesting user
	MemberIDs  []int32   `json:"member_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasMember reports whether the given user belongs to the group.
func (g *RotationalGroup) HasMember(userID int32) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// PlanEntry assigns one month of the rotation cycle to a recipient.
// MonthNumber is 1-indexed and runs to the group's member count.
type PlanEntry struct {
	ID          int32   `json:"id"`
	GroupID     int32   `json:"group_id"`
	MonthNumber int32   `json:"month_number"`
	RecipientID int32   `json:"recipient_id"`
	Amount      float64 `json:"amount"`
}

// PaymentStatus is the explicit state of a rotational payment. Transitions go
// through CanTransitionTo; unknown strings never parse into a status.
type PaymentStatus string

const (
	PaymentStatusNotStarted PaymentStatus = "NOT_STARTED"
	PaymentStatusSubmitted  PaymentStatus = "SUBMITTED"
	PaymentStatusVerified   PaymentStatus = "VERIFIED"
)

// paymentTransitions is the transition table for payment statuses.
// VERIFIED is terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusNotStarted: {PaymentStatusSubmitted},
	PaymentStatusSubmitted:  {PaymentStatusVerified},
	PaymentStatusVerified:   {},
}

// ParsePaymentStatus converts a stored string into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if _, ok := paymentTransitions[status]; !ok {
		return "", fmt.Errorf("unknown payment status: %q", s)
	}
	return status, nil
}

// CanTransitionTo reports whether the transition from s to next is allowed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s PaymentStatus) IsTerminal() bool {
	return len(paymentTransitions[s]) == 0
}

// RotationalPayment is one member's obligation to pay the month's recipient.
// Payments are generated when a plan is created, one per non-recipient member
// per month.
type RotationalPayment struct {
	ID          int32         `json:"payment_id"`
	GroupID     int32         `json:"group_id"`
	MonthNumber int32         `json:"month_number"`
	PayerID     int32         `json:"payer_id"`
	RecipientID int32         `json:"recipient_id"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	SlipKey     string        `json:"-"`
	SlipName    string        `json:"slip_name,omitempty"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty"`
	VerifiedAt  *time.Time    `json:"verified_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
