// internal/domain/business/business.go
package business

import (
	"database/sql"
	"time"
)

// Read models for the business records the scheduler assembles notification
// data from. Writes happen elsewhere in the application; this service only
// queries.

// Invoice is an issued sales invoice.
type Invoice struct {
	ID            string
	UserID        string
	CompanyID     string
	InvoiceNumber string
	ClientName    string
	Amount        float64
	Status        string // "pending", "paid", "cancelled"
	DueDate       time.Time
	CreatedAt     time.Time
}

// Unpaid reports whether the invoice still awaits payment.
func (i *Invoice) Unpaid() bool {
	return i.Status == "pending"
}

// Product is an inventory item with its stock level and reorder threshold.
type Product struct {
	ID        string
	UserID    string
	CompanyID string
	Name      string
	Stock     int
	MinStock  int
	UpdatedAt time.Time
}

// Customer aggregates a client's outstanding balance.
type Customer struct {
	ID              string
	UserID          string
	CompanyID       string
	Name            string
	Email           sql.NullString
	OverdueAmount   float64
	OverdueInvoices int
}
