package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

const defaultMaxDeliveryAttempts = 3

// NotifierWorker drains the notification queue and dispatches each entry.
// Failed deliveries go back on the queue until the attempt cap, then the
// notification is dropped with a log line. Best-effort by design.
type NotifierWorker struct {
	queue       domain.NotificationQueue
	dispatcher  *Dispatcher
	maxAttempts int
	logger      *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewNotifierWorker(parent context.Context, queue domain.NotificationQueue, dispatcher *Dispatcher, logger *slog.Logger) *NotifierWorker {
	ctx, cancel := context.WithCancel(parent)
	return &NotifierWorker{
		queue:       queue,
		dispatcher:  dispatcher,
		maxAttempts: defaultMaxDeliveryAttempts,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *NotifierWorker) Run() error {
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
			pollCtx, pollCancel := context.WithTimeout(w.ctx, 30*time.Second)
			n, err := w.queue.Dequeue(pollCtx, 30*time.Second)
			pollCancel()

			if err != nil {
				if w.ctx.Err() == nil {
					w.logger.Warn("dequeue failed", "error", err)
				}
				continue
			}
			if n == nil {
				continue
			}

			deliveryCtx, deliveryCancel := context.WithTimeout(w.ctx, time.Minute)
			err = w.dispatcher.Dispatch(deliveryCtx, n)
			deliveryCancel()

			if err != nil {
				if n.Attempts+1 >= w.maxAttempts {
					w.logger.Error("dropping notification after repeated failures",
						"type", n.Type,
						"workflow_id", n.WorkflowID,
						"role", n.RoleNumber,
						"attempts", n.Attempts+1,
						"error", err)
					_ = w.queue.Ack(w.ctx, n)
					continue
				}
				w.logger.Warn("notification delivery failed, requeueing",
					"type", n.Type,
					"workflow_id", n.WorkflowID,
					"error", err)
				_ = w.queue.Nack(w.ctx, n)
				continue
			}

			_ = w.queue.Ack(w.ctx, n)
		}
	}
}

func (w *NotifierWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}
	return nil
}
