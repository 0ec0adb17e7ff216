// internal/domain/rule/rule.go
package rule

// Priority classifies how urgent a notification produced by a rule is.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Frequency is the calendar period between occurrences of a recurring job.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Comparison operators supported by rule conditions.
const (
	OperatorGreaterThan = "greater_than"
	OperatorLessThan    = "less_than"
	OperatorEqualTo     = "equal_to"
)

// Condition describes when a rule fires against a data record.
// An empty Field means the rule is unconditional.
type Condition struct {
	Field     string  `json:"field,omitempty"`
	Operator  string  `json:"operator,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

// Timing carries the scheduling hints attached to a rule.
type Timing struct {
	DaysBeforeDue int       `json:"days_before_due,omitempty"`
	Recurring     bool      `json:"recurring,omitempty"`
	Frequency     Frequency `json:"frequency,omitempty"`
	TimeOfDay     string    `json:"time_of_day,omitempty"` // "HH:MM", local time
}

// Message is the template block of a rule. Title, Body and ActionURL may
// contain {field} tokens interpolated against the triggering record.
type Message struct {
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	Priority       Priority `json:"priority"`
	ActionRequired bool     `json:"action_required"`
	ActionText     string   `json:"action_text,omitempty"`
	ActionURL      string   `json:"action_url,omitempty"`
}

// Rule is a static definition of when and how to notify, keyed by
// (Category, Type). Entries live in the Catalog; only the Enabled flag is
// mutable at runtime.
type Rule struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"` // e.g. "invoices", "inventory"
	Type       string    `json:"type"`     // e.g. "due_reminder", "low_stock"
	Enabled    bool      `json:"enabled"`
	Timing     Timing    `json:"timing"`
	Condition  Condition `json:"condition"`
	Recipients []string  `json:"recipients"` // recipient roles
	Message    Message   `json:"message"`
}
