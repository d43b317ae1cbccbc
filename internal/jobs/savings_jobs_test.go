package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"debtmates-backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDepositDueToday(t *testing.T) {
	start := date(2026, time.January, 15)

	t.Run("DailyAlwaysDue", func(t *testing.T) {
		assert.True(t, depositDueToday(domain.DepositFrequencyDaily, start, date(2026, time.March, 3)))
	})

	t.Run("WeeklyOnSameWeekday", func(t *testing.T) {
		// Jan 15 2026 is a Thursday.
		assert.True(t, depositDueToday(domain.DepositFrequencyWeekly, start, date(2026, time.January, 22)))
		assert.False(t, depositDueToday(domain.DepositFrequencyWeekly, start, date(2026, time.January, 23)))
	})

	t.Run("BiweeklyEveryFourteenDays", func(t *testing.T) {
		assert.True(t, depositDueToday(domain.DepositFrequencyBiweekly, start, date(2026, time.January, 29)))
		assert.False(t, depositDueToday(domain.DepositFrequencyBiweekly, start, date(2026, time.January, 22)))
	})

	t.Run("MonthlyOnAnchorDay", func(t *testing.T) {
		assert.True(t, depositDueToday(domain.DepositFrequencyMonthly, start, date(2026, time.February, 15)))
		assert.False(t, depositDueToday(domain.DepositFrequencyMonthly, start, date(2026, time.February, 14)))
	})

	t.Run("MonthlyClampsToShortMonths", func(t *testing.T) {
		endOfMonthStart := date(2026, time.January, 31)
		// February 2026 has 28 days; the reminder lands on the 28th.
		assert.True(t, depositDueToday(domain.DepositFrequencyMonthly, endOfMonthStart, date(2026, time.February, 28)))
		assert.False(t, depositDueToday(domain.DepositFrequencyMonthly, endOfMonthStart, date(2026, time.February, 27)))
	})
}
