package jobs

import (
	"context"
	"fmt"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
)

// SendPaymentReminders emails every payer who has not yet submitted a slip
// for the group's current cycle month: the earliest month that still has a
// non-verified payment. Later months stay quiet until the cycle reaches them.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		query := `
			SELECT p.id, p.month_number, p.amount, p.payer_id,
			       u.email, u.username,
			       g.name
			FROM rotational_payments p
			JOIN users u ON p.payer_id = u.id
			JOIN rotational_groups g ON p.group_id = g.id
			WHERE p.status = 'NOT_STARTED'
			  AND p.month_number = (
			      SELECT MIN(p2.month_number)
			      FROM rotational_payments p2
			      WHERE p2.group_id = p.group_id
			        AND p2.status <> 'VERIFIED')
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query open payments", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				paymentID   int32
				monthNumber int32
				amount      float64
				payerID     int32
				email       string
				username    string
				groupName   string
			)

			if err := rows.Scan(&paymentID, &monthNumber, &amount, &payerID, &email, &username, &groupName); err != nil {
				logger.Error("Failed to scan open payment", "error", err)
				continue
			}

			err := jr.services.Email.SendPaymentReminder(ctx, email, username, groupName, monthNumber, amount)
			if err != nil {
				logger.Error("Failed to send payment reminder email",
					"payment_id", paymentID,
					"payer_id", payerID,
					"email", email,
					"error", err)
				continue
			}

			note := &domain.Notification{
				UserID:  payerID,
				Title:   "Payment reminder",
				Message: fmt.Sprintf("Month %d payment of $%.2f in %s is still open. Upload your payment slip once paid.", monthNumber, amount, groupName),
				Attributes: map[string]string{
					"payment_id": fmt.Sprintf("%d", paymentID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record payment reminder notification",
					"payment_id", paymentID,
					"payer_id", payerID,
					"error", err)
			}

			count++
			logger.Debug("Sent payment reminder",
				"payment_id", paymentID,
				"payer_id", payerID,
				"email", email)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating open payments", "error", err)
			return
		}

		logger.Info("Payment reminders sent", "count", count)
	})
}
