// Package session keeps per-owner conversation state: the single pending
// action the bot is waiting on and the draft entry being assembled. State
// lives in memory only and is dropped once a flow completes.
package session

import (
	"sync"

	"spendbot/internal/core"
)

// Action is the input the bot is waiting for from an owner.
type Action int

const (
	ActionNone Action = iota
	ActionAwaitingCost
	ActionAwaitingNotes
	ActionAwaitingLimit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAwaitingCost:
		return "awaiting_cost"
	case ActionAwaitingNotes:
		return "awaiting_notes"
	case ActionAwaitingLimit:
		return "awaiting_limit"
	}
	return "unknown"
}

// Session is one owner's conversation state. Draft is non-nil exactly
// while Action is ActionAwaitingCost or ActionAwaitingNotes.
type Session struct {
	Action Action
	Draft  *core.Entry
}

// Reset returns the session to idle, discarding any draft.
func (s *Session) Reset() {
	s.Action = ActionNone
	s.Draft = nil
}

// Store maps owner IDs to sessions. All reads and writes for an owner go
// through Update, which is a single critical section, so the action/draft
// pair can never be observed half-changed.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Update runs fn with exclusive access to the owner's session, creating
// an idle session on demand and dropping it again if fn leaves it idle.
func (s *Store) Update(ownerID int64, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[ownerID]
	if !ok {
		sess = &Session{}
		s.sessions[ownerID] = sess
	}

	fn(sess)

	if sess.Action == ActionNone {
		sess.Draft = nil
		delete(s.sessions, ownerID)
	}
}

// Peek returns a snapshot of the owner's session. The draft is copied, so
// mutating the result never touches stored state.
func (s *Store) Peek(ownerID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[ownerID]
	if !ok {
		return Session{}
	}
	snapshot := Session{Action: sess.Action}
	if sess.Draft != nil {
		draft := *sess.Draft
		snapshot.Draft = &draft
	}
	return snapshot
}

// Len reports how many owners currently have a pending action.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
