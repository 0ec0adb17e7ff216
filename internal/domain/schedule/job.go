// internal/domain/schedule/job.go
package schedule

import (
	"time"

	"business_notification_service/internal/domain/rule"
)

// Job is a concrete, time-stamped intent to evaluate a rule and possibly
// emit a notification. Jobs live in the durable local store as one JSON
// list; execution flips Executed rather than removing the entry so the
// retention window can be audited.
type Job struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"user_id"`
	Category     string                 `json:"category"`
	Type         string                 `json:"type"`
	ScheduledFor time.Time              `json:"scheduled_for"`
	Data         map[string]interface{} `json:"data,omitempty"`
	Recurring    bool                   `json:"recurring"`
	Frequency    rule.Frequency         `json:"frequency,omitempty"`
	Executed     bool                   `json:"executed"`
	Attempts     int                    `json:"attempts,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// Due reports whether the job should run at 'now'.
func (j *Job) Due(now time.Time) bool {
	return !j.Executed && !j.ScheduledFor.After(now)
}

// NextOccurrence advances t by one frequency period using calendar
// arithmetic, so a monthly job anchored to the 31st normalizes the way
// time.AddDate does rather than adding a fixed 30 days.
func NextOccurrence(freq rule.Frequency, t time.Time) time.Time {
	switch freq {
	case rule.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case rule.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case rule.FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}
