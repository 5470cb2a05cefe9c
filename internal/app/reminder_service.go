package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

// ReminderService re-sends a signature request to the current role of active
// workflows that have sat untouched past the configured age. Tokens are never
// re-issued; an expired credential means the reminder link is dead too and the
// workflow has to be recreated.
type ReminderService struct {
	workflows domain.WorkflowRepository
	documents domain.DocumentRepository
	publisher NotificationPublisher
	after     time.Duration
	logger    *slog.Logger
}

func NewReminderService(
	workflows domain.WorkflowRepository,
	documents domain.DocumentRepository,
	publisher NotificationPublisher,
	after time.Duration,
	logger *slog.Logger,
) *ReminderService {
	return &ReminderService{
		workflows: workflows,
		documents: documents,
		publisher: publisher,
		after:     after,
		logger:    logger,
	}
}

func (s *ReminderService) SendPending(ctx context.Context) error {
	const limit = 100
	cutoff := time.Now().Add(-s.after)

	stale, err := s.workflows.ListAwaitingSignature(ctx, cutoff, limit)
	if err != nil {
		return err
	}

	reminded := 0
	for _, workflow := range stale {
		role := workflow.CurrentRoleEntry()
		if role == nil || role.Email == nil || role.Status == domain.RoleStatusSigned {
			continue
		}

		doc, err := s.documents.GetDocument(ctx, workflow.DocumentID)
		if err != nil || doc == nil {
			s.logger.Warn("skipping reminder, document unavailable",
				"workflow_id", workflow.ID,
				"document_id", workflow.DocumentID,
				"error", err)
			continue
		}

		s.publisher.Publish(ctx, []domain.Notification{{
			Type:          domain.NotificationSignatureRequest,
			WorkflowID:    workflow.ID,
			DocumentID:    workflow.DocumentID,
			DocumentName:  doc.OriginalName,
			RoleNumber:    role.RoleNumber,
			Email:         *role.Email,
			RecipientName: role.Name,
			AccessToken:   role.AccessToken,
		}})
		reminded++
	}

	if reminded > 0 {
		s.logger.Info("sent signing reminders", "count", reminded)
	}

	return nil
}

// ReminderRunner ticks the reminder sweep until its context is cancelled.
type ReminderRunner struct {
	service  *ReminderService
	interval time.Duration
	logger   *slog.Logger
}

func NewReminderRunner(service *ReminderService, interval time.Duration, logger *slog.Logger) *ReminderRunner {
	return &ReminderRunner{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

func (r *ReminderRunner) Start(ctx context.Context) error {
	r.logger.Info("starting reminder runner", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reminder runner shutting down")
			return nil
		case <-ticker.C:
			if err := r.service.SendPending(ctx); err != nil {
				r.logger.Error("reminder sweep failed", "error", err)
			}
		}
	}
}
