// Package service orchestrates the ledger operations: taxonomy checks on
// the way in, storage transactions in the middle, threshold verdicts and
// alert events on the way out.
package service

import (
	"context"

	"ledger/internal/budget"
	"ledger/internal/export"
	"ledger/internal/log"
	"ledger/internal/storage"
	"ledger/internal/taxonomy"
)

// AlertPublisher forwards budget alerts to an external notifier. A nil
// publisher disables forwarding; the inline alert in the response is
// unaffected either way.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, alert budget.Alert) error
}

// Service is the single entry point the façade talks to.
type Service struct {
	store    *storage.Store
	tax      *taxonomy.Taxonomy
	exporter *export.Exporter
	alerts   AlertPublisher
	logger   *log.Logger
}

// New wires a Service. alerts may be nil.
func New(store *storage.Store, tax *taxonomy.Taxonomy, exporter *export.Exporter, alerts AlertPublisher, logger *log.Logger) *Service {
	return &Service{
		store:    store,
		tax:      tax,
		exporter: exporter,
		alerts:   alerts,
		logger:   logger.WithComponent(log.ComponentLedger),
	}
}

// Taxonomy exposes the injected taxonomy for the read-only categories
// resource.
func (s *Service) Taxonomy() *taxonomy.Taxonomy {
	return s.tax
}

// publishAlert forwards an alert to the external notifier without ever
// failing the originating operation.
func (s *Service) publishAlert(ctx context.Context, alert *budget.Alert) {
	if alert == nil || s.alerts == nil {
		return
	}
	if err := s.alerts.PublishBudgetAlert(ctx, *alert); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish budget alert",
			log.FieldCategory, alert.Category,
			log.FieldAlertLevel, string(alert.Level),
			log.FieldError, err)
	}
}

// checkAlert turns a spend check into a verdict-bearing alert, or nil
// when the category has no budget or spending is below the threshold.
func (s *Service) checkAlert(ctx context.Context, check storage.SpendCheck) *budget.Alert {
	if check.Budget == nil {
		return nil
	}
	alert := budget.Check(*check.Budget, check.Spent)
	if alert != nil {
		s.logger.WarnContext(ctx, "Budget threshold reached",
			log.FieldCategory, alert.Category,
			log.FieldAlertLevel, string(alert.Level),
			"spent", alert.Spent,
			"limit", alert.Limit)
		s.publishAlert(ctx, alert)
	}
	return alert
}
