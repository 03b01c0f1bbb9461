// Package service orchestrates spending operations across the SQLite
// repository and the optional AMQP event stream.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendbot/internal/amqp"
	"spendbot/internal/core"
	"spendbot/internal/storage"
)

// EventPublisher pushes spending events to interested consumers. The AMQP
// client implements it; a nil publisher disables events entirely.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *amqp.SpendingEvent) error
}

// ExpenseTracker is the storage-facing half of the bot: every committed
// change goes through it, and event publishing never blocks or fails a
// user-visible operation.
type ExpenseTracker struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
}

func NewExpenseTracker(storage *storage.SQLiteRepository, publisher EventPublisher) *ExpenseTracker {
	return &ExpenseTracker{
		storage:   storage,
		publisher: publisher,
	}
}

// RecordEntry persists a finished draft. The entry gets its ID from
// storage; on failure nothing is recorded and the caller keeps the draft
// so the user can retry.
func (t *ExpenseTracker) RecordEntry(ctx context.Context, entry *core.Entry) error {
	if err := t.storage.InsertEntry(ctx, entry); err != nil {
		return fmt.Errorf("record entry: %w", err)
	}

	t.publish(ctx, amqp.NewEntryRecordedEvent(entry.OwnerID, entry.ID, entry.Amount.Cents, entry.Category))

	slog.InfoContext(ctx, "Entry recorded",
		"entry_id", entry.ID,
		"owner_id", entry.OwnerID,
		"category", entry.Category,
		"amount_cents", entry.Amount.Cents)

	return nil
}

// Totals returns the owner's per-category sums for the window anchored at
// now, sorted for reporting. An empty result is a valid "nothing spent".
func (t *ExpenseTracker) Totals(ctx context.Context, ownerID int64, window core.Window, now time.Time) ([]core.CategoryAmount, error) {
	totals, err := t.storage.AggregateByCategory(ctx, ownerID, window, now)
	if err != nil {
		return nil, fmt.Errorf("totals for %s window: %w", window, err)
	}
	return totals, nil
}

// SetLimit stores the owner's monthly ceiling, replacing any previous one.
// The limit is informational only; nothing compares it against spending.
func (t *ExpenseTracker) SetLimit(ctx context.Context, ownerID int64, amount core.Money) error {
	limit := core.MonthlyLimit{OwnerID: ownerID, Amount: amount}
	if err := t.storage.UpsertLimit(ctx, limit); err != nil {
		return fmt.Errorf("set limit: %w", err)
	}

	t.publish(ctx, amqp.NewLimitSetEvent(ownerID, amount.Cents))

	return nil
}

// Limit reads back the owner's stored ceiling, if any. Nothing in the
// bot compares it to spending; it exists so the stored value can be
// inspected.
func (t *ExpenseTracker) Limit(ctx context.Context, ownerID int64) (core.MonthlyLimit, bool, error) {
	return t.storage.GetLimit(ctx, ownerID)
}

// ClearData removes everything the owner has stored: all entries and the
// monthly limit.
func (t *ExpenseTracker) ClearData(ctx context.Context, ownerID int64) error {
	if err := t.storage.DeleteAllForOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}

	t.publish(ctx, amqp.NewDataClearedEvent(ownerID))

	slog.InfoContext(ctx, "Owner data cleared", "owner_id", ownerID)

	return nil
}

func (t *ExpenseTracker) publish(ctx context.Context, event *amqp.SpendingEvent) {
	if t.publisher == nil {
		slog.DebugContext(ctx, "Event publishing disabled, skipping", "kind", event.Kind)
		return
	}

	// The write already succeeded; a lost event must not fail the user.
	if err := t.publisher.PublishEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish spending event",
			"kind", event.Kind,
			"owner_id", event.OwnerID,
			"error", err)
	}
}

// Close releases the storage handle. The AMQP client has its own Close
// and is owned by main.
func (t *ExpenseTracker) Close() error {
	if t.storage != nil {
		return t.storage.Close()
	}
	return nil
}
