// internal/app/schedule_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"business_notification_service/internal/domain/business"
	"business_notification_service/internal/domain/rule"
	"business_notification_service/internal/domain/schedule"
	domainTelegram "business_notification_service/internal/domain/telegram"
	idb "business_notification_service/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultRetention bounds job-list growth: executed jobs older than this
	// are pruned after a tick.
	DefaultRetention = 7 * 24 * time.Hour

	// DefaultMaxAttempts caps per-job retries. A job that keeps failing is
	// abandoned and reported instead of being retried on every tick forever.
	DefaultMaxAttempts = 5
)

// ScheduleService owns the scheduled-job list: it appends jobs, runs due
// jobs on each tick, re-enqueues recurring jobs and prunes executed ones
// past the retention window.
type ScheduleService struct {
	store        schedule.Store
	notifService NotificationService
	invoiceRepo  business.InvoiceRepository
	productRepo  business.ProductRepository
	customerRepo business.CustomerRepository
	alerter      domainTelegram.Client // optional
	adminChatID  int64
	logger       *logrus.Logger
	retention    time.Duration
	maxAttempts  int
	now          func() time.Time
}

func NewScheduleService(
	store schedule.Store,
	notifService NotificationService,
	invoiceRepo business.InvoiceRepository,
	productRepo business.ProductRepository,
	customerRepo business.CustomerRepository,
	logger *logrus.Logger,
	retention time.Duration,
	maxAttempts int,
) *ScheduleService {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &ScheduleService{
		store:        store,
		notifService: notifService,
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
		retention:    retention,
		maxAttempts:  maxAttempts,
		now:          time.Now,
	}
}

// SetAdminAlerter wires the optional Telegram channel used to report
// abandoned jobs.
func (s *ScheduleService) SetAdminAlerter(client domainTelegram.Client, chatID int64) {
	s.alerter = client
	s.adminChatID = chatID
}

// SetClock overrides the service clock. Test hook.
func (s *ScheduleService) SetClock(now func() time.Time) {
	s.now = now
}

// ScheduleNotification appends a new pending job and persists the list.
func (s *ScheduleService) ScheduleNotification(ctx context.Context, userID, category, ruleType string, at time.Time, data map[string]interface{}, recurring bool, freq rule.Frequency) (*schedule.Job, error) {
	jobs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduled jobs: %w", err)
	}

	job := schedule.Job{
		ID:           uuid.NewString(),
		UserID:       userID,
		Category:     category,
		Type:         ruleType,
		ScheduledFor: at,
		Data:         data,
		Recurring:    recurring,
		Frequency:    freq,
		CreatedAt:    s.now(),
	}
	jobs = append(jobs, job)

	if err := s.store.Save(ctx, jobs); err != nil {
		return nil, fmt.Errorf("failed to save scheduled jobs: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"job_id":        job.ID,
		"category":      category,
		"type":          ruleType,
		"scheduled_for": at,
		"recurring":     recurring,
	}).Info("Notification job scheduled")
	return &job, nil
}

// Tick runs one scheduler pass: execute due jobs, re-enqueue recurring
// successors, prune executed jobs past retention. Handler failures keep the
// job pending so the next tick retries it, up to the attempt cap.
func (s *ScheduleService) Tick(ctx context.Context) error {
	jobs, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scheduled jobs: %w", err)
	}

	now := s.now()
	changed := false
	var successors []schedule.Job

	for i := range jobs {
		job := &jobs[i]
		if !job.Due(now) {
			continue
		}

		if err := s.dispatch(ctx, job, now); err != nil {
			job.Attempts++
			changed = true
			s.logger.WithError(err).WithFields(logrus.Fields{
				"job_id":   job.ID,
				"category": job.Category,
				"type":     job.Type,
				"attempts": job.Attempts,
			}).Error("Scheduled job failed")

			if job.Attempts >= s.maxAttempts {
				// Abandon so the list stops churning on a dead job.
				job.Executed = true
				s.alertAbandonedJob(job)
			}
			continue
		}

		job.Executed = true
		changed = true

		if job.Recurring {
			next := schedule.Job{
				ID:           uuid.NewString(),
				UserID:       job.UserID,
				Category:     job.Category,
				Type:         job.Type,
				ScheduledFor: schedule.NextOccurrence(job.Frequency, job.ScheduledFor),
				Data:         job.Data,
				Recurring:    true,
				Frequency:    job.Frequency,
				CreatedAt:    now,
			}
			successors = append(successors, next)
		}
	}

	jobs = append(jobs, successors...)

	kept := jobs[:0]
	cutoff := now.Add(-s.retention)
	for _, job := range jobs {
		if job.Executed && job.ScheduledFor.Before(cutoff) {
			changed = true
			continue
		}
		kept = append(kept, job)
	}
	jobs = kept

	if !changed {
		return nil
	}
	if err := s.store.Save(ctx, jobs); err != nil {
		return fmt.Errorf("failed to save scheduled jobs: %w", err)
	}
	return nil
}

// SetupUserSchedule seeds the initial jobs for a newly onboarded user:
// due-date reminders for existing unpaid invoices, a monthly report, a
// daily stock check and a weekly customer check.
func (s *ScheduleService) SetupUserSchedule(ctx context.Context, userID string) error {
	now := s.now()
	jobs, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scheduled jobs: %w", err)
	}

	invoices, err := s.invoiceRepo.ListUnpaidByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list unpaid invoices: %w", err)
	}

	startOfToday := dayStart(now)
	for _, inv := range invoices {
		data := map[string]interface{}{
			"entity_id":   inv.ID,
			"entity_type": "invoice",
			"company_id":  inv.CompanyID,
		}
		reminderDay := dayStart(inv.DueDate).AddDate(0, 0, -3)
		if !reminderDay.Before(startOfToday) {
			jobs = append(jobs, s.newJob(userID, "invoices", "due_reminder", at(reminderDay, 10, 0), data, false, "", now))
		}
		dueDay := dayStart(inv.DueDate)
		if !dueDay.Before(startOfToday) {
			jobs = append(jobs, s.newJob(userID, "invoices", "due_reminder", at(dueDay, 9, 0), data, false, "", now))
		}
	}

	firstOfNextMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	jobs = append(jobs, s.newJob(userID, "financial", "monthly_report", at(firstOfNextMonth, 9, 0), nil, true, rule.FrequencyMonthly, now))
	jobs = append(jobs, s.newJob(userID, "inventory", "low_stock", at(startOfToday.AddDate(0, 0, 1), 8, 0), nil, true, rule.FrequencyDaily, now))
	jobs = append(jobs, s.newJob(userID, "customers", "overdue_payment", at(nextMonday(now), 10, 0), nil, true, rule.FrequencyWeekly, now))

	if err := s.store.Save(ctx, jobs); err != nil {
		return fmt.Errorf("failed to save scheduled jobs: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "unpaid_invoices": len(invoices)}).
		Info("Initial notification schedule created")
	return nil
}

func (s *ScheduleService) newJob(userID, category, ruleType string, when time.Time, data map[string]interface{}, recurring bool, freq rule.Frequency, now time.Time) schedule.Job {
	return schedule.Job{
		ID:           uuid.NewString(),
		UserID:       userID,
		Category:     category,
		Type:         ruleType,
		ScheduledFor: when,
		Data:         data,
		Recurring:    recurring,
		Frequency:    freq,
		CreatedAt:    now,
	}
}

// dispatch routes a due job to its category handler. Handlers assemble data
// from current business records so a stale payload never drives the message.
func (s *ScheduleService) dispatch(ctx context.Context, job *schedule.Job, now time.Time) error {
	switch job.Category {
	case "invoices":
		return s.handleInvoiceJob(ctx, job, now)
	case "inventory":
		return s.handleStockCheck(ctx, job)
	case "customers":
		return s.handleCustomerCheck(ctx, job, now)
	case "financial":
		return s.handleMonthlyReport(ctx, job, now)
	default:
		// Generic jobs carry their full payload.
		_, err := s.notifService.CreateSmartNotification(ctx, job.Category, job.Type, job.Data, job.UserID, stringField(job.Data, "company_id"))
		return err
	}
}

func (s *ScheduleService) handleInvoiceJob(ctx context.Context, job *schedule.Job, now time.Time) error {
	invoiceID := stringField(job.Data, "entity_id")
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if err == idb.ErrInvoiceNotFound {
			s.logger.WithField("invoice_id", invoiceID).Debug("Invoice gone, dropping reminder job")
			return nil
		}
		return fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	if !inv.Unpaid() {
		return nil
	}

	daysRemaining := daysBetween(dayStart(now), dayStart(inv.DueDate))
	data := map[string]interface{}{
		"entity_id":      inv.ID,
		"entity_type":    "invoice",
		"invoice_number": inv.InvoiceNumber,
		"client_name":    inv.ClientName,
		"amount":         inv.Amount,
		"days_remaining": daysRemaining,
	}
	ruleType := job.Type
	if daysRemaining < 0 {
		ruleType = "overdue_alert"
		data["days_overdue"] = -daysRemaining
		delete(data, "days_remaining")
	}

	_, err = s.notifService.CreateSmartNotification(ctx, "invoices", ruleType, data, job.UserID, inv.CompanyID)
	return err
}

func (s *ScheduleService) handleStockCheck(ctx context.Context, job *schedule.Job) error {
	products, err := s.productRepo.ListBelowMinStock(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to list low stock products: %w", err)
	}

	failures := 0
	for _, p := range products {
		data := map[string]interface{}{
			"entity_id":    p.ID,
			"entity_type":  "product",
			"product_name": p.Name,
			"stock":        p.Stock,
			"min_stock":    p.MinStock,
		}
		ruleType := "low_stock"
		if p.Stock == 0 {
			ruleType = "out_of_stock"
		}
		if _, err := s.notifService.CreateSmartNotification(ctx, "inventory", ruleType, data, job.UserID, p.CompanyID); err != nil {
			failures++
			s.logger.WithError(err).WithField("product_id", p.ID).Error("Stock notification failed")
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d stock notifications failed", failures, len(products))
	}
	return nil
}

func (s *ScheduleService) handleCustomerCheck(ctx context.Context, job *schedule.Job, now time.Time) error {
	customers, err := s.customerRepo.ListWithOverdueBalance(ctx, job.UserID, now)
	if err != nil {
		return fmt.Errorf("failed to list overdue customers: %w", err)
	}

	failures := 0
	for _, c := range customers {
		data := map[string]interface{}{
			"entity_id":        c.ID,
			"entity_type":      "customer",
			"customer_name":    c.Name,
			"overdue_amount":   c.OverdueAmount,
			"overdue_invoices": c.OverdueInvoices,
		}
		if _, err := s.notifService.CreateSmartNotification(ctx, "customers", "overdue_payment", data, job.UserID, c.CompanyID); err != nil {
			failures++
			s.logger.WithError(err).WithField("customer_id", c.ID).Error("Customer notification failed")
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d customer notifications failed", failures, len(customers))
	}
	return nil
}

func (s *ScheduleService) handleMonthlyReport(ctx context.Context, job *schedule.Job, now time.Time) error {
	// The report covers the month that just ended.
	reportMonth := now.AddDate(0, -1, 0)
	total, count, err := s.invoiceRepo.MonthlySummary(ctx, job.UserID, reportMonth)
	if err != nil {
		return fmt.Errorf("failed to compute monthly summary: %w", err)
	}

	period := reportMonth.Format("2006-01")
	data := map[string]interface{}{
		"entity_id":     period,
		"entity_type":   "report",
		"period":        period,
		"total_sales":   total,
		"invoice_count": count,
	}
	_, err = s.notifService.CreateSmartNotification(ctx, "financial", "monthly_report", data, job.UserID, stringField(job.Data, "company_id"))
	return err
}

func (s *ScheduleService) alertAbandonedJob(job *schedule.Job) {
	s.logger.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"category": job.Category,
		"type":     job.Type,
	}).Error("Scheduled job abandoned after exhausting retries")

	if s.alerter == nil || s.adminChatID == 0 {
		return
	}
	text := fmt.Sprintf("⚠️ Scheduled job %s (%s/%s) for user %s abandoned after %d failed attempts.",
		job.ID, job.Category, job.Type, job.UserID, job.Attempts)
	if err := s.alerter.SendMessage(s.adminChatID, text, nil); err != nil {
		s.logger.WithError(err).Error("Failed to send admin alert")
	}
}

// --- date helpers ---

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func nextMonday(now time.Time) time.Time {
	day := dayStart(now)
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}
