package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event kinds published to the spending events queue.
const (
	KindEntryRecorded = "entry_recorded"
	KindLimitSet      = "limit_set"
	KindDataCleared   = "data_cleared"
)

// SpendingEvent notifies downstream consumers about a committed change.
// It carries identifiers, not full rows: a consumer that needs more reads
// the database.
type SpendingEvent struct {
	EventID     string    `json:"event_id"`
	Kind        string    `json:"kind"`
	OwnerID     int64     `json:"owner_id"`
	EntryID     int64     `json:"entry_id,omitempty"`
	Category    string    `json:"category,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewEntryRecordedEvent(ownerID, entryID, amountCents int64, category string) *SpendingEvent {
	return &SpendingEvent{
		EventID:     uuid.New().String(),
		Kind:        KindEntryRecorded,
		OwnerID:     ownerID,
		EntryID:     entryID,
		Category:    category,
		AmountCents: amountCents,
		Timestamp:   time.Now(),
	}
}

func NewLimitSetEvent(ownerID, amountCents int64) *SpendingEvent {
	return &SpendingEvent{
		EventID:     uuid.New().String(),
		Kind:        KindLimitSet,
		OwnerID:     ownerID,
		AmountCents: amountCents,
		Timestamp:   time.Now(),
	}
}

func NewDataClearedEvent(ownerID int64) *SpendingEvent {
	return &SpendingEvent{
		EventID:   uuid.New().String(),
		Kind:      KindDataCleared,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
	}
}

func (e *SpendingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func SpendingEventFromJSON(data []byte) (*SpendingEvent, error) {
	var e SpendingEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
