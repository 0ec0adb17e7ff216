// internal/domain/rule/defaults.go
package rule

// DefaultRules is the static rule table covering the business domains the
// scheduler watches. Records interpolated against these templates carry an
// "entity_id" field used by the emitter for deduplication.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:       "invoices-due-reminder",
			Category: "invoices",
			Type:     "due_reminder",
			Enabled:  true,
			Timing:   Timing{DaysBeforeDue: 3, TimeOfDay: "10:00"},
			Condition: Condition{
				Field:     "days_remaining",
				Operator:  OperatorLessThan,
				Threshold: 4,
			},
			Recipients: []string{"admin", "accountant"},
			Message: Message{
				Title:          "Invoice due soon",
				Body:           "Invoice {invoice_number} for {client_name} is due in {days_remaining} days ({amount}).",
				Priority:       PriorityMedium,
				ActionRequired: true,
				ActionText:     "Review invoice",
				ActionURL:      "/invoices/{entity_id}",
			},
		},
		{
			ID:       "invoices-overdue-alert",
			Category: "invoices",
			Type:     "overdue_alert",
			Enabled:  true,
			Timing:   Timing{Recurring: true, Frequency: FrequencyDaily, TimeOfDay: "09:00"},
			Condition: Condition{
				Field:     "days_overdue",
				Operator:  OperatorGreaterThan,
				Threshold: 0,
			},
			Recipients: []string{"admin", "accountant"},
			Message: Message{
				Title:          "Invoice overdue",
				Body:           "Invoice {invoice_number} for {client_name} is {days_overdue} days overdue ({amount}).",
				Priority:       PriorityHigh,
				ActionRequired: true,
				ActionText:     "Contact client",
				ActionURL:      "/invoices/{entity_id}",
			},
		},
		{
			ID:       "inventory-low-stock",
			Category: "inventory",
			Type:     "low_stock",
			Enabled:  true,
			Timing:   Timing{Recurring: true, Frequency: FrequencyDaily, TimeOfDay: "08:00"},
			Condition: Condition{
				Field:     "stock",
				Operator:  OperatorLessThan,
				Threshold: 10,
			},
			Recipients: []string{"admin", "warehouse"},
			Message: Message{
				Title:          "Low stock alert",
				Body:           "{product_name} is down to {stock} units (minimum {min_stock}).",
				Priority:       PriorityMedium,
				ActionRequired: true,
				ActionText:     "Restock",
				ActionURL:      "/inventory/{entity_id}",
			},
		},
		{
			ID:       "inventory-out-of-stock",
			Category: "inventory",
			Type:     "out_of_stock",
			Enabled:  true,
			Condition: Condition{
				Field:     "stock",
				Operator:  OperatorEqualTo,
				Threshold: 0,
			},
			Recipients: []string{"admin", "warehouse"},
			Message: Message{
				Title:          "Product out of stock",
				Body:           "{product_name} is out of stock.",
				Priority:       PriorityCritical,
				ActionRequired: true,
				ActionText:     "Order now",
				ActionURL:      "/inventory/{entity_id}",
			},
		},
		{
			ID:       "checks-due",
			Category: "checks",
			Type:     "check_due",
			Enabled:  true,
			Timing:   Timing{DaysBeforeDue: 2, TimeOfDay: "09:00"},
			Condition: Condition{
				Field:     "days_remaining",
				Operator:  OperatorLessThan,
				Threshold: 3,
			},
			Recipients: []string{"admin", "accountant"},
			Message: Message{
				Title:          "Check about to be cashed",
				Body:           "Check {check_number} for {amount} is due in {days_remaining} days.",
				Priority:       PriorityHigh,
				ActionRequired: true,
				ActionText:     "Verify funds",
				ActionURL:      "/checks/{entity_id}",
			},
		},
		{
			ID:       "cash-flow-negative",
			Category: "cash_flow",
			Type:     "negative_balance",
			Enabled:  true,
			Condition: Condition{
				Field:     "balance",
				Operator:  OperatorLessThan,
				Threshold: 0,
			},
			Recipients: []string{"admin"},
			Message: Message{
				Title:          "Negative cash balance",
				Body:           "Projected cash balance is {balance}.",
				Priority:       PriorityCritical,
				ActionRequired: true,
				ActionText:     "Open cash flow",
				ActionURL:      "/cash-flow",
			},
		},
		{
			ID:       "financial-monthly-report",
			Category: "financial",
			Type:     "monthly_report",
			Enabled:  true,
			Timing:   Timing{Recurring: true, Frequency: FrequencyMonthly, TimeOfDay: "09:00"},
			// Unconditional: the report is produced every period.
			Recipients: []string{"admin"},
			Message: Message{
				Title:      "Monthly report ready",
				Body:       "Your report for {period} is ready: {total_sales} in sales, {invoice_count} invoices.",
				Priority:   PriorityLow,
				ActionText: "View report",
				ActionURL:  "/reports/{period}",
			},
		},
		{
			ID:       "customers-overdue-payment",
			Category: "customers",
			Type:     "overdue_payment",
			Enabled:  true,
			Timing:   Timing{Recurring: true, Frequency: FrequencyWeekly, TimeOfDay: "10:00"},
			Condition: Condition{
				Field:     "overdue_amount",
				Operator:  OperatorGreaterThan,
				Threshold: 0,
			},
			Recipients: []string{"admin", "sales"},
			Message: Message{
				Title:          "Customer payment overdue",
				Body:           "{customer_name} owes {overdue_amount} across {overdue_invoices} invoices.",
				Priority:       PriorityHigh,
				ActionRequired: true,
				ActionText:     "View customer",
				ActionURL:      "/customers/{entity_id}",
			},
		},
		{
			ID:       "security-backup-reminder",
			Category: "security",
			Type:     "backup_reminder",
			Enabled:  true,
			Timing:   Timing{Recurring: true, Frequency: FrequencyWeekly, TimeOfDay: "18:00"},
			Condition: Condition{
				Field:     "days_since_backup",
				Operator:  OperatorGreaterThan,
				Threshold: 7,
			},
			Recipients: []string{"admin"},
			Message: Message{
				Title:      "Backup overdue",
				Body:       "Last backup was {days_since_backup} days ago.",
				Priority:   PriorityMedium,
				ActionText: "Run backup",
				ActionURL:  "/settings/backups",
			},
		},
		{
			ID:       "suppliers-payment-due",
			Category: "suppliers",
			Type:     "payment_due",
			Enabled:  true,
			Timing:   Timing{DaysBeforeDue: 4, TimeOfDay: "09:00"},
			Condition: Condition{
				Field:     "days_remaining",
				Operator:  OperatorLessThan,
				Threshold: 5,
			},
			Recipients: []string{"admin", "accountant"},
			Message: Message{
				Title:          "Supplier payment due",
				Body:           "Payment of {amount} to {supplier_name} is due in {days_remaining} days.",
				Priority:       PriorityMedium,
				ActionRequired: true,
				ActionText:     "Schedule payment",
				ActionURL:      "/suppliers/{entity_id}",
			},
		},
	}
}
