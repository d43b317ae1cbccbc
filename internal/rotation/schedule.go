package rotation

import (
	"fmt"
	"strings"

	"debtmates-backend/internal/domain"
)

// EntryError tags a schedule violation with the month it belongs to, so the
// caller can highlight the exact row.
type EntryError struct {
	Month   int32  `json:"month"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e EntryError) Error() string {
	return fmt.Sprintf("month %d: %s %s", e.Month, e.Field, e.Message)
}

// ScheduleError collects every violation found in a payout schedule.
type ScheduleError struct {
	Entries []EntryError
}

func (e *ScheduleError) Error() string {
	msgs := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		msgs[i] = entry.Error()
	}
	return "invalid payout schedule: " + strings.Join(msgs, "; ")
}

// ValidateSchedule checks a month-indexed payout schedule against the group's
// membership. A valid schedule has exactly numMembers entries covering months
// 1..numMembers contiguously, each with a recipient who belongs to the group
// and a positive amount, and no recipient paid twice in one cycle.
func ValidateSchedule(numMembers int32, memberIDs []int32, entries []domain.PlanEntry) error {
	if int32(len(entries)) != numMembers {
		return fmt.Errorf("schedule must have exactly %d entries, got %d", numMembers, len(entries))
	}

	members := make(map[int32]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	var errs []EntryError
	seenMonths := make(map[int32]bool, len(entries))
	seenRecipients := make(map[int32]int32, len(entries)) // recipient -> first month

	for _, entry := range entries {
		if entry.MonthNumber < 1 || entry.MonthNumber > numMembers {
			errs = append(errs, EntryError{
				Month: entry.MonthNumber, Field: "month_number",
				Message: fmt.Sprintf("must be between 1 and %d", numMembers),
			})
			continue
		}
		if seenMonths[entry.MonthNumber] {
			errs = append(errs, EntryError{
				Month: entry.MonthNumber, Field: "month_number",
				Message: "assigned more than once",
			})
			continue
		}
		seenMonths[entry.MonthNumber] = true

		if entry.RecipientID == 0 {
			errs = append(errs, EntryError{
				Month: entry.MonthNumber, Field: "recipient_id",
				Message: "is required",
			})
		} else if !members[entry.RecipientID] {
			errs = append(errs, EntryError{
				Month: entry.MonthNumber, Field: "recipient_id",
				Message: "is not a member of the group",
			})
		} else if firstMonth, dup := seenRecipients[entry.RecipientID]; dup {
			errs = append(errs, EntryError{
				Month: entry.MonthNumber, Field: "recipient_id",
				Message: fmt.Sprintf("already receives in month %d", firstMonth),
			})
		} else {
			seenRecipients[entry.RecipientID] = entry.MonthNumber
		}

		if entry.Amount <= 0 {
			errs = append(errs, EntryError{
				Month: entry.MonthNumber, Field: "amount",
				Message: "must be positive",
			})
		}
	}

	if len(errs) > 0 {
		return &ScheduleError{Entries: errs}
	}
	return nil
}

// BuildPayments expands a validated schedule into the payment matrix: for
// each month, every member except the recipient owes the recipient that
// month's amount. All payments start in the NotStarted state.
func BuildPayments(groupID int32, memberIDs []int32, entries []domain.PlanEntry) []domain.RotationalPayment {
	var payments []domain.RotationalPayment
	for _, entry := range entries {
		for _, memberID := range memberIDs {
			if memberID == entry.RecipientID {
				continue
			}
			payments = append(payments, domain.RotationalPayment{
				GroupID:     groupID,
				MonthNumber: entry.MonthNumber,
				PayerID:     memberID,
				RecipientID: entry.RecipientID,
				Amount:      entry.Amount,
				Status:      domain.PaymentStatusNotStarted,
			})
		}
	}
	return payments
}
