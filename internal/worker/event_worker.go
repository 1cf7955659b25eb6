// Package worker hosts the expense event consumer. It is the downstream end
// of the event stream: it acknowledges mutations and logs them so external
// tooling has a single integration point to extend.
package worker

import (
	"context"
	"log/slog"
	"sync/atomic"

	"outlay/internal/amqp"
)

// EventWorker processes expense mutation events from the queue.
type EventWorker struct {
	processed atomic.Int64
}

func NewEventWorker() *EventWorker {
	return &EventWorker{}
}

// HandleEvent processes a single expense event. Returning an error requeues
// the delivery.
func (w *EventWorker) HandleEvent(msg *amqp.ExpenseEventMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	w.processed.Add(1)
	slog.Info("Expense event received",
		"action", msg.Action,
		"id", msg.ID,
		"emitted_at", msg.Timestamp,
		"processed_total", w.processed.Load())

	return nil
}

// Processed returns how many events the worker has handled.
func (w *EventWorker) Processed() int64 {
	return w.processed.Load()
}

// Run consumes events until the context is canceled.
func (w *EventWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeExpenseEvents(ctx, w.HandleEvent)
}
