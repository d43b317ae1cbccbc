package jobs

import (
	"context"
	"fmt"
	"time"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/logger"
)

// SendDepositReminders emails owners of active saving plans whose deposit
// cadence falls due today.
func (jr *JobRunner) SendDepositReminders() {
	jr.runWithRecovery("SendDepositReminders", func() {
		ctx := context.Background()

		query := `
			SELECT p.id, p.plan_name, p.deposit_frequency, p.start_date, p.end_date,
			       p.owner_id, u.email, u.username
			FROM saving_plans p
			JOIN users u ON p.owner_id = u.id
			WHERE p.status = 'ACTIVE'
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query active saving plans", "error", err)
			return
		}
		defer rows.Close()

		today := time.Now().UTC()
		count := 0
		for rows.Next() {
			var (
				planID    int32
				planName  string
				frequency string
				startDate time.Time
				endDate   time.Time
				ownerID   int32
				email     string
				username  string
			)

			if err := rows.Scan(&planID, &planName, &frequency, &startDate, &endDate, &ownerID, &email, &username); err != nil {
				logger.Error("Failed to scan saving plan", "error", err)
				continue
			}

			if today.Before(startDate) || today.After(endDate) {
				continue
			}
			if !depositDueToday(domain.DepositFrequency(frequency), startDate, today) {
				continue
			}

			err := jr.services.Email.SendDepositReminder(ctx, email, username, planName, frequency)
			if err != nil {
				logger.Error("Failed to send deposit reminder email",
					"plan_id", planID,
					"owner_id", ownerID,
					"email", email,
					"error", err)
				continue
			}

			note := &domain.Notification{
				UserID:  ownerID,
				Title:   "Deposit reminder",
				Message: fmt.Sprintf("Your %s deposit for %q is due today.", frequency, planName),
				Attributes: map[string]string{
					"plan_id": fmt.Sprintf("%d", planID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record deposit reminder notification",
					"plan_id", planID,
					"owner_id", ownerID,
					"error", err)
			}

			count++
			logger.Debug("Sent deposit reminder",
				"plan_id", planID,
				"owner_id", ownerID,
				"email", email)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating saving plans", "error", err)
			return
		}

		logger.Info("Deposit reminders sent", "count", count)
	})
}

// depositDueToday reports whether a deposit is due on day for the given
// cadence, anchored at the plan's start date.
func depositDueToday(frequency domain.DepositFrequency, start, day time.Time) bool {
	switch frequency {
	case domain.DepositFrequencyDaily:
		return true
	case domain.DepositFrequencyWeekly:
		return day.Weekday() == start.Weekday()
	case domain.DepositFrequencyBiweekly:
		days := int(day.Sub(start).Hours() / 24)
		return days >= 0 && days%14 == 0
	case domain.DepositFrequencyMonthly:
		if day.Day() == start.Day() {
			return true
		}
		// A plan started on the 31st still gets reminded in short months.
		lastOfMonth := time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, day.Location()).Day()
		return day.Day() == lastOfMonth && start.Day() > lastOfMonth
	}
	return false
}

// SweepCompletedPlans marks active plans whose balance has reached the goal
// as completed and congratulates their owners. Deposits normally complete a
// plan inline; the sweep catches anything that slipped through.
func (jr *JobRunner) SweepCompletedPlans() {
	jr.runWithRecovery("SweepCompletedPlans", func() {
		ctx := context.Background()

		query := `
			UPDATE saving_plans p
			SET status = 'COMPLETED',
			    updated_at = NOW()
			FROM users u
			WHERE p.owner_id = u.id
			  AND p.status = 'ACTIVE'
			  AND p.current_amount >= p.goal_amount
			RETURNING p.id, p.plan_name, p.goal_amount, p.owner_id, u.email, u.username
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to sweep completed plans", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				planID     int32
				planName   string
				goalAmount float64
				ownerID    int32
				email      string
				username   string
			)

			if err := rows.Scan(&planID, &planName, &goalAmount, &ownerID, &email, &username); err != nil {
				logger.Error("Failed to scan completed plan", "error", err)
				continue
			}

			if err := jr.services.Email.SendGoalReached(ctx, email, username, planName, goalAmount); err != nil {
				logger.Error("Failed to send goal reached email",
					"plan_id", planID,
					"owner_id", ownerID,
					"error", err)
			}

			note := &domain.Notification{
				UserID:  ownerID,
				Title:   "Goal reached",
				Message: fmt.Sprintf("Congratulations! %q reached its goal of $%.2f.", planName, goalAmount),
				Attributes: map[string]string{
					"plan_id": fmt.Sprintf("%d", planID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record goal reached notification",
					"plan_id", planID,
					"owner_id", ownerID,
					"error", err)
			}

			count++
			logger.Debug("Marked plan as completed",
				"plan_id", planID,
				"owner_id", ownerID)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating completed plans", "error", err)
			return
		}

		// Plans past their end date without reaching the goal are expired so
		// they stop generating reminders.
		expireQuery := `
			UPDATE saving_plans
			SET status = 'EXPIRED',
			    updated_at = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date < NOW()
			RETURNING id, plan_name, owner_id
		`

		expireRows, err := jr.db.QueryContext(ctx, expireQuery)
		if err != nil {
			logger.Error("Failed to expire overdue plans", "error", err)
			return
		}
		defer expireRows.Close()

		expired := 0
		for expireRows.Next() {
			var (
				planID   int32
				planName string
				ownerID  int32
			)
			if err := expireRows.Scan(&planID, &planName, &ownerID); err != nil {
				logger.Error("Failed to scan expired plan", "error", err)
				continue
			}

			note := &domain.Notification{
				UserID:  ownerID,
				Title:   "Saving plan ended",
				Message: fmt.Sprintf("%q reached its end date before hitting the goal.", planName),
				Attributes: map[string]string{
					"plan_id": fmt.Sprintf("%d", planID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record expired plan notification",
					"plan_id", planID,
					"owner_id", ownerID,
					"error", err)
			}
			expired++
		}

		if err := expireRows.Err(); err != nil {
			logger.Error("Error iterating expired plans", "error", err)
			return
		}

		logger.Info("Completed plan sweep finished", "completed", count, "expired", expired)
	})
}
