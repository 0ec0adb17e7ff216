// internal/domain/business/repository.go
package business

import (
	"context"
	"time"
)

// InvoiceRepository defines the invoice queries the scheduler handlers need.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*Invoice, error)
	// ListUnpaidByUser returns pending invoices for a user, oldest due first.
	ListUnpaidByUser(ctx context.Context, userID string) ([]*Invoice, error)
	// ListOverdueByUser returns pending invoices whose due date is before 'asOf'.
	ListOverdueByUser(ctx context.Context, userID string, asOf time.Time) ([]*Invoice, error)
	// MonthlySummary aggregates sales totals for the month containing 'month'.
	MonthlySummary(ctx context.Context, userID string, month time.Time) (totalSales float64, invoiceCount int, err error)
}

// ProductRepository defines the stock queries for the daily inventory check.
type ProductRepository interface {
	// ListBelowMinStock returns products at or under their reorder threshold.
	ListBelowMinStock(ctx context.Context, userID string) ([]*Product, error)
}

// CustomerRepository defines the receivables queries for the weekly
// customer check.
type CustomerRepository interface {
	// ListWithOverdueBalance returns customers carrying overdue invoices as of 'asOf'.
	ListWithOverdueBalance(ctx context.Context, userID string, asOf time.Time) ([]*Customer, error)
}
