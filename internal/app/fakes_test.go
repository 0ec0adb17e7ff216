package app

import (
	"context"
	"io"
	"time"

	"business_notification_service/internal/domain/business"
	"business_notification_service/internal/domain/notification"
	"business_notification_service/internal/domain/rule"
	"business_notification_service/internal/domain/schedule"
	idb "business_notification_service/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memNotificationRepo is an in-memory notification.Repository.
type memNotificationRepo struct {
	created   []*notification.Notification
	createErr error
	now       func() time.Time
}

func newMemNotificationRepo(now func() time.Time) *memNotificationRepo {
	return &memNotificationRepo{now: now}
}

func (r *memNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now()
	}
	r.created = append(r.created, n)
	return nil
}

func (r *memNotificationRepo) FindRecent(_ context.Context, userID, category, relatedEntityID string, since time.Time) (*notification.Notification, error) {
	for i := len(r.created) - 1; i >= 0; i-- {
		n := r.created[i]
		if n.UserID == userID && n.Category == category && n.RelatedEntityID == relatedEntityID && !n.CreatedAt.Before(since) {
			return n, nil
		}
	}
	return nil, idb.ErrNotificationNotFound
}

// memOverrideStore is an in-memory RuleOverrideStore.
type memOverrideStore struct {
	saved   map[string]bool
	saveErr error
}

func (s *memOverrideStore) Load(context.Context) (map[string]bool, error) {
	if s.saved == nil {
		return map[string]bool{}, nil
	}
	return s.saved, nil
}

func (s *memOverrideStore) Save(_ context.Context, overrides map[string]bool) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = overrides
	return nil
}

// memJobStore is an in-memory schedule.Store.
type memJobStore struct {
	jobs    []schedule.Job
	saveErr error
}

func (s *memJobStore) Load(context.Context) ([]schedule.Job, error) {
	out := make([]schedule.Job, len(s.jobs))
	copy(out, s.jobs)
	return out, nil
}

func (s *memJobStore) Save(_ context.Context, jobs []schedule.Job) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.jobs = make([]schedule.Job, len(jobs))
	copy(s.jobs, jobs)
	return nil
}

// fakeInvoiceRepo serves invoices from a fixed map.
type fakeInvoiceRepo struct {
	invoices map[string]*business.Invoice
	total    float64
	count    int
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*business.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, idb.ErrInvoiceNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) ListUnpaidByUser(_ context.Context, userID string) ([]*business.Invoice, error) {
	var out []*business.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID && inv.Unpaid() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListOverdueByUser(_ context.Context, userID string, asOf time.Time) ([]*business.Invoice, error) {
	var out []*business.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID && inv.Unpaid() && inv.DueDate.Before(asOf) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) MonthlySummary(context.Context, string, time.Time) (float64, int, error) {
	return r.total, r.count, nil
}

type fakeProductRepo struct {
	products []*business.Product
	err      error
}

func (r *fakeProductRepo) ListBelowMinStock(context.Context, string) ([]*business.Product, error) {
	return r.products, r.err
}

type fakeCustomerRepo struct {
	customers []*business.Customer
	err       error
}

func (r *fakeCustomerRepo) ListWithOverdueBalance(context.Context, string, time.Time) ([]*business.Customer, error) {
	return r.customers, r.err
}

// countingNotifService records emitter calls and can be made to fail.
type countingNotifService struct {
	calls      int
	categories []string
	err        error
}

func (s *countingNotifService) CreateSmartNotification(_ context.Context, category, _ string, _ map[string]interface{}, _, _ string) (bool, error) {
	s.calls++
	s.categories = append(s.categories, category)
	if s.err != nil {
		return false, s.err
	}
	return true, nil
}

func (s *countingNotifService) EnableRule(context.Context, string, string) error  { return nil }
func (s *countingNotifService) DisableRule(context.Context, string, string) error { return nil }
func (s *countingNotifService) ListRules() []rule.Rule                            { return nil }

// fakeAlerter captures admin alert messages.
type fakeAlerter struct {
	messages []string
}

func (a *fakeAlerter) SendMessage(_ int64, text string, _ *telebot.SendOptions) error {
	a.messages = append(a.messages, text)
	return nil
}
