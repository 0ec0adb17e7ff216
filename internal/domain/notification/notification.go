// internal/domain/notification/notification.go
package notification

import "time"

// Type is the coarse severity tag stored on a notification row, derived
// from the originating rule's priority.
type Type string

const (
	TypeInfo     Type = "info"
	TypeWarning  Type = "warning"
	TypeError    Type = "error"
	TypeCritical Type = "critical"
)

// Notification is a row in the 'notifications' table. Rows are created by
// the emitter and read/acknowledged by the UI layer, which is out of scope
// here.
type Notification struct {
	ID                string
	UserID            string
	CompanyID         string
	Category          string // rule category, e.g. "invoices"
	Type              Type
	Priority          string // originating rule priority
	Title             string
	Message           string
	ActionRequired    bool
	ActionText        string
	ActionURL         string
	RelatedEntityID   string
	RelatedEntityType string
	AutoResolve       bool
	CreatedAt         time.Time
}
