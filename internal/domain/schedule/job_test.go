package schedule

import (
	"testing"
	"time"

	"business_notification_service/internal/domain/rule"

	"github.com/stretchr/testify/assert"
)

func TestNextOccurrence(t *testing.T) {
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, base.AddDate(0, 0, 1), NextOccurrence(rule.FrequencyDaily, base))
	assert.Equal(t, base.AddDate(0, 0, 7), NextOccurrence(rule.FrequencyWeekly, base))
	assert.Equal(t, time.Date(2026, time.April, 10, 9, 0, 0, 0, time.UTC), NextOccurrence(rule.FrequencyMonthly, base))
}

func TestNextOccurrence_MonthlyUsesCalendarArithmetic(t *testing.T) {
	// Jan 31 + 1 month normalizes past the end of February instead of
	// landing on a fixed +30 days.
	jan31 := time.Date(2026, time.January, 31, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC), NextOccurrence(rule.FrequencyMonthly, jan31))

	// A plain 30-day increment would give Mar 2; make sure we did not do that.
	assert.NotEqual(t, jan31.Add(30*24*time.Hour), NextOccurrence(rule.FrequencyMonthly, jan31))
}

func TestJob_Due(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	past := Job{ScheduledFor: now.Add(-time.Minute)}
	assert.True(t, past.Due(now))

	exact := Job{ScheduledFor: now}
	assert.True(t, exact.Due(now))

	future := Job{ScheduledFor: now.Add(time.Minute)}
	assert.False(t, future.Due(now))

	executed := Job{ScheduledFor: now.Add(-time.Minute), Executed: true}
	assert.False(t, executed.Due(now))
}
