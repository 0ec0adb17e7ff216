// internal/infra/database/postgres_business_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"business_notification_service/internal/domain/business"
)

// Custom errors specific to business record lookups
var ErrInvoiceNotFound = fmt.Errorf("invoice not found")

// PostgresBusinessRepository serves the read-only invoice, product and
// customer queries the scheduler handlers assemble notification data from.
type PostgresBusinessRepository struct {
	db *sql.DB
}

func NewPostgresBusinessRepository(db *sql.DB) *PostgresBusinessRepository {
	return &PostgresBusinessRepository{db: db}
}

// --- Invoice queries ---

const invoiceColumns = `id, user_id, company_id, invoice_number, client_name, amount, status, due_date, created_at`

func scanInvoice(row *sql.Row) (*business.Invoice, error) {
	inv := business.Invoice{}
	err := row.Scan(&inv.ID, &inv.UserID, &inv.CompanyID, &inv.InvoiceNumber,
		&inv.ClientName, &inv.Amount, &inv.Status, &inv.DueDate, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PostgresBusinessRepository) GetByID(ctx context.Context, id string) (*business.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("error getting invoice by ID: %w", err)
	}
	return inv, nil
}

func (r *PostgresBusinessRepository) ListUnpaidByUser(ctx context.Context, userID string) ([]*business.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
               WHERE user_id = $1 AND status = 'pending'
               ORDER BY due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing unpaid invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *PostgresBusinessRepository) ListOverdueByUser(ctx context.Context, userID string, asOf time.Time) ([]*business.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
               WHERE user_id = $1 AND status = 'pending' AND due_date < $2
               ORDER BY due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error listing overdue invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows *sql.Rows) ([]*business.Invoice, error) {
	invoices := make([]*business.Invoice, 0)
	for rows.Next() {
		inv := business.Invoice{}
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.CompanyID, &inv.InvoiceNumber,
			&inv.ClientName, &inv.Amount, &inv.Status, &inv.DueDate, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning invoice row: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PostgresBusinessRepository) MonthlySummary(ctx context.Context, userID string, month time.Time) (float64, int, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)
	query := `SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM invoices
               WHERE user_id = $1 AND created_at >= $2 AND created_at < $3 AND status <> 'cancelled'`
	var total float64
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, start, end).Scan(&total, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing monthly summary: %w", err)
	}
	return total, count, nil
}

// --- Product queries ---

func (r *PostgresBusinessRepository) ListBelowMinStock(ctx context.Context, userID string) ([]*business.Product, error) {
	query := `SELECT id, user_id, company_id, name, stock, min_stock, updated_at
               FROM products
               WHERE user_id = $1 AND stock <= min_stock
               ORDER BY stock ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing low stock products: %w", err)
	}
	defer rows.Close()

	products := make([]*business.Product, 0)
	for rows.Next() {
		p := business.Product{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.CompanyID, &p.Name, &p.Stock, &p.MinStock, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning product row: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// --- Customer queries ---

func (r *PostgresBusinessRepository) ListWithOverdueBalance(ctx context.Context, userID string, asOf time.Time) ([]*business.Customer, error) {
	query := `SELECT c.id, c.user_id, c.company_id, c.name, c.email,
                     COALESCE(SUM(i.amount), 0) AS overdue_amount,
                     COUNT(i.id) AS overdue_invoices
               FROM customers c
               JOIN invoices i ON i.client_name = c.name AND i.user_id = c.user_id
               WHERE c.user_id = $1 AND i.status = 'pending' AND i.due_date < $2
               GROUP BY c.id, c.user_id, c.company_id, c.name, c.email
               HAVING COALESCE(SUM(i.amount), 0) > 0
               ORDER BY overdue_amount DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error listing customers with overdue balance: %w", err)
	}
	defer rows.Close()

	customers := make([]*business.Customer, 0)
	for rows.Next() {
		c := business.Customer{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.CompanyID, &c.Name, &c.Email,
			&c.OverdueAmount, &c.OverdueInvoices); err != nil {
			return nil, fmt.Errorf("error scanning customer row: %w", err)
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}
