package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

// NotificationPublisher takes notifications emitted by a transition after the
// workflow row is committed. Implementations must never fail the transition:
// publish errors are logged and swallowed.
type NotificationPublisher interface {
	Publish(ctx context.Context, notifications []domain.Notification)
}

// Dispatcher turns a notification into an email. On a delivered signature
// request it records the role as notified; that bookkeeping failure is logged
// only, since the mail is already out.
type Dispatcher struct {
	notifier    domain.Notifier
	workflows   domain.WorkflowRepository
	frontendURL string
	backendURL  string
	logger      *slog.Logger
}

func NewDispatcher(notifier domain.Notifier, workflows domain.WorkflowRepository, frontendURL, backendURL string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		notifier:    notifier,
		workflows:   workflows,
		frontendURL: frontendURL,
		backendURL:  backendURL,
		logger:      logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, n *domain.Notification) error {
	switch n.Type {
	case domain.NotificationSignatureRequest:
		signingURL := fmt.Sprintf("%s/sign/%s?token=%s", d.frontendURL, n.WorkflowID, n.AccessToken)
		if err := d.notifier.SendSignatureRequest(ctx, n.Email, n.RecipientName, n.DocumentName, signingURL, n.RoleNumber); err != nil {
			return err
		}
		if err := d.workflows.MarkRoleNotified(ctx, n.WorkflowID, n.RoleNumber); err != nil {
			d.logger.Warn("failed to record notified status",
				"workflow_id", n.WorkflowID,
				"role", n.RoleNumber,
				"error", err)
		}
		return nil
	case domain.NotificationCompletion:
		downloadURL := fmt.Sprintf("%s/api/documents/%s/download", d.backendURL, n.DocumentID)
		return d.notifier.SendCompletionNotice(ctx, n.Email, n.DocumentName, downloadURL)
	default:
		return fmt.Errorf("unknown notification type %q", n.Type)
	}
}

// AsyncPublisher dispatches notifications in-process when no queue is
// configured. Delivery runs detached from the request context so the HTTP
// response never waits on SMTP.
type AsyncPublisher struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewAsyncPublisher(dispatcher *Dispatcher, logger *slog.Logger) *AsyncPublisher {
	return &AsyncPublisher{dispatcher: dispatcher, logger: logger}
}

func (p *AsyncPublisher) Publish(_ context.Context, notifications []domain.Notification) {
	for _, n := range notifications {
		n := n
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := p.dispatcher.Dispatch(ctx, &n); err != nil {
				p.logger.Error("notification delivery failed",
					"type", n.Type,
					"workflow_id", n.WorkflowID,
					"role", n.RoleNumber,
					"error", err)
			}
		}()
	}
}

// QueuePublisher hands notifications to the redis queue for the delivery
// worker. Enqueue failures are logged and dropped.
type QueuePublisher struct {
	queue  domain.NotificationQueue
	logger *slog.Logger
}

func NewQueuePublisher(queue domain.NotificationQueue, logger *slog.Logger) *QueuePublisher {
	return &QueuePublisher{queue: queue, logger: logger}
}

func (p *QueuePublisher) Publish(ctx context.Context, notifications []domain.Notification) {
	for i := range notifications {
		if err := p.queue.Enqueue(ctx, &notifications[i]); err != nil {
			p.logger.Error("failed to enqueue notification",
				"type", notifications[i].Type,
				"workflow_id", notifications[i].WorkflowID,
				"error", err)
		}
	}
}
