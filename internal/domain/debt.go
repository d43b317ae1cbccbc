package domain

import "time"

// DebtRecord is one member's row in a recorded debt round: what they paid in,
// what their equal share was, and (for debtors) who they should pay back.
type DebtRecord struct {
	ID          int32     `json:"id"`
	GroupID     int32     `json:"group_id"`
	MemberID    int32     `json:"member_id"`
	MemberName  string    `json:"member_name"`
	Contributed float64   `json:"contributed"`
	Expected    float64   `json:"expected"`
	ToWhoPay    string    `json:"to_who_pay,omitempty"`
	AmountToPay float64   `json:"amount_to_pay,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DebtTransfer is a single settlement instruction produced for a debt round.
// A debtor split across several creditors has one row per creditor.
type DebtTransfer struct {
	ID         int32     `json:"id"`
	GroupID    int32     `json:"group_id"`
	FromUserID int32     `json:"from_user_id"`
	ToUserID   int32     `json:"to_user_id"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
