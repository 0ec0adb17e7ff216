// internal/app/notification_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"business_notification_service/internal/domain/notification"
	"business_notification_service/internal/domain/rule"
	idb "business_notification_service/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultDedupWindow is the lookback period used to suppress duplicate
// notifications for the same entity.
const DefaultDedupWindow = 24 * time.Hour

// NotificationService turns a satisfied rule plus a data record into a
// persisted notification.
type NotificationService interface {
	// CreateSmartNotification looks up the (category, ruleType) rule,
	// evaluates its condition against data, deduplicates within the
	// lookback window and persists a notification. It returns true only
	// when a row was created; every no-op branch returns (false, nil).
	CreateSmartNotification(ctx context.Context, category, ruleType string, data map[string]interface{}, userID, companyID string) (bool, error)

	EnableRule(ctx context.Context, category, ruleType string) error
	DisableRule(ctx context.Context, category, ruleType string) error
	ListRules() []rule.Rule
}

// RuleOverrideStore persists the catalog's enabled-flag overrides.
type RuleOverrideStore interface {
	Load(ctx context.Context) (map[string]bool, error)
	Save(ctx context.Context, overrides map[string]bool) error
}

// NotificationServiceImpl implements NotificationService.
type NotificationServiceImpl struct {
	catalog     *rule.Catalog
	notifRepo   notification.Repository
	overrides   RuleOverrideStore // optional
	logger      *logrus.Logger
	dedupWindow time.Duration
	now         func() time.Time
}

func NewNotificationService(
	catalog *rule.Catalog,
	nr notification.Repository,
	overrides RuleOverrideStore,
	logger *logrus.Logger,
	dedupWindow time.Duration,
) *NotificationServiceImpl {
	if dedupWindow <= 0 {
		dedupWindow = DefaultDedupWindow
	}
	return &NotificationServiceImpl{
		catalog:     catalog,
		notifRepo:   nr,
		overrides:   overrides,
		logger:      logger,
		dedupWindow: dedupWindow,
		now:         time.Now,
	}
}

// SetClock overrides the service clock. Test hook.
func (s *NotificationServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *NotificationServiceImpl) CreateSmartNotification(ctx context.Context, category, ruleType string, data map[string]interface{}, userID, companyID string) (bool, error) {
	r, err := s.catalog.Lookup(category, ruleType)
	if err != nil {
		// No rule registered: normal control flow, not an error.
		s.logger.WithFields(logrus.Fields{"category": category, "type": ruleType}).
			Debug("No notification rule registered, skipping")
		return false, nil
	}
	if !r.Enabled {
		return false, nil
	}

	matched, err := rule.EvaluateCondition(r.Condition, data)
	if err != nil {
		// Unknown operator in the rule table. Fail closed and make the
		// misconfiguration visible instead of firing for every record.
		s.logger.WithFields(logrus.Fields{
			"rule":     r.ID,
			"operator": r.Condition.Operator,
		}).Warn("Rule condition has an unsupported operator, treating as not matched")
		return false, nil
	}
	if !matched {
		return false, nil
	}

	entityID := stringField(data, "entity_id")
	since := s.now().Add(-s.dedupWindow)
	existing, err := s.notifRepo.FindRecent(ctx, userID, category, entityID, since)
	if err != nil && err != idb.ErrNotificationNotFound {
		return false, fmt.Errorf("failed to check for recent duplicate: %w", err)
	}
	if existing != nil {
		s.logger.WithFields(logrus.Fields{
			"rule":      r.ID,
			"user_id":   userID,
			"entity_id": entityID,
		}).Debug("Recent duplicate found, suppressing notification")
		return false, nil
	}

	n := &notification.Notification{
		ID:                uuid.NewString(),
		UserID:            userID,
		CompanyID:         companyID,
		Category:          category,
		Type:              priorityToType(r.Message.Priority),
		Priority:          string(r.Message.Priority),
		Title:             rule.Interpolate(r.Message.Title, data),
		Message:           rule.Interpolate(r.Message.Body, data),
		ActionRequired:    r.Message.ActionRequired,
		ActionText:        r.Message.ActionText,
		ActionURL:         rule.Interpolate(r.Message.ActionURL, data),
		RelatedEntityID:   entityID,
		RelatedEntityType: stringField(data, "entity_type"),
		AutoResolve:       !r.Message.ActionRequired,
	}

	if err := s.notifRepo.Create(ctx, n); err != nil {
		return false, fmt.Errorf("failed to persist notification: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"rule":            r.ID,
		"user_id":         userID,
		"type":            n.Type,
	}).Info("Notification created")
	return true, nil
}

// EnableRule re-enables a catalog rule and persists the override.
func (s *NotificationServiceImpl) EnableRule(ctx context.Context, category, ruleType string) error {
	return s.setRuleEnabled(ctx, category, ruleType, true)
}

// DisableRule disables a catalog rule and persists the override.
func (s *NotificationServiceImpl) DisableRule(ctx context.Context, category, ruleType string) error {
	return s.setRuleEnabled(ctx, category, ruleType, false)
}

func (s *NotificationServiceImpl) setRuleEnabled(ctx context.Context, category, ruleType string, enabled bool) error {
	if err := s.catalog.SetEnabled(category, ruleType, enabled); err != nil {
		return err
	}
	if s.overrides == nil {
		return nil
	}
	// Override persistence failures leave the in-memory flag in effect until
	// restart; they are logged, not propagated.
	if err := s.overrides.Save(ctx, s.catalog.Overrides()); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"category": category,
			"type":     ruleType,
		}).Error("Failed to persist rule override")
	}
	return nil
}

func (s *NotificationServiceImpl) ListRules() []rule.Rule {
	return s.catalog.List()
}

func priorityToType(p rule.Priority) notification.Type {
	switch p {
	case rule.PriorityCritical:
		return notification.TypeCritical
	case rule.PriorityHigh:
		return notification.TypeError
	case rule.PriorityMedium:
		return notification.TypeWarning
	default:
		return notification.TypeInfo
	}
}

func stringField(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
