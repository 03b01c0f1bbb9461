package core

import (
	"errors"
	"strings"
	"time"
)

// TimeLayout is the storage format for entry timestamps, local time.
const TimeLayout = "2006-01-02 15:04:05"

// NoNoteText replaces the note when the user declines to add one.
const NoNoteText = "Без комментария"

type (
	// Entry is a single committed spending record. Entries are immutable:
	// they are inserted once and only ever removed in bulk per owner.
	Entry struct {
		ID        int64
		OwnerID   int64
		Amount    Money
		Category  string
		Note      string
		CreatedAt time.Time
	}

	// MonthlyLimit is the budget ceiling an owner set for a month.
	// At most one per owner; a new value replaces the old one.
	MonthlyLimit struct {
		OwnerID int64
		Amount  Money
	}

	// CategoryAmount is a per-category aggregate produced by reporting
	// queries.
	CategoryAmount struct {
		Category string
		Amount   Money
	}

	// Window selects the reporting time range for aggregation.
	Window string
)

const (
	// WindowWeek covers the trailing seven days.
	WindowWeek Window = "week"
	// WindowMonth covers the current calendar month.
	WindowMonth Window = "month"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrUnknownOwner  = errors.New("unknown owner")
	ErrUnknownWindow = errors.New("unknown report window")
)

func (e Entry) Validate() error {
	if e.OwnerID == 0 {
		return ErrUnknownOwner
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return e.Amount.Validate()
}

func (l MonthlyLimit) Validate() error {
	if l.OwnerID == 0 {
		return ErrUnknownOwner
	}
	return l.Amount.Validate()
}

func (w Window) Validate() error {
	switch w {
	case WindowWeek, WindowMonth:
		return nil
	}
	return ErrUnknownWindow
}
