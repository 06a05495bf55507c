package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role tags one side of the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// OnboardingState tracks where the name-collection flow is. Free chat only
// starts once the state reaches StateActive.
type OnboardingState int

const (
	StateAwaitingName OnboardingState = iota
	StateAwaitingConfirmation
	StateActive
)

func (s OnboardingState) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting-name"
	case StateAwaitingConfirmation:
		return "awaiting-confirmation"
	case StateActive:
		return "active"
	}
	return "unknown"
}

// Turn is a single message in the conversation history. Turns are immutable
// once appended.
type Turn struct {
	Role Role
	Text string
}

// Session holds the state of one conversation: the onboarding progress and
// the ordered history of turns. It is owned by the orchestration engine; the
// display layer never mutates it directly.
type Session struct {
	ID          string
	State       OnboardingState
	PendingName string
	UserName    string
	History     []Turn
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// generation counts resets. A turn that started before a reset must not
	// record its outcome into the fresh session.
	generation uint64
}

// NewSession creates a fresh session awaiting the user's name.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		State:     StateAwaitingName,
		History:   []Turn{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset returns the session to its initial state, clearing the name and the
// full history. The session keeps its ID. Callers that may race with an
// in-flight turn must go through Dispatcher.Reset instead.
func (s *Session) Reset() {
	s.State = StateAwaitingName
	s.PendingName = ""
	s.UserName = ""
	s.History = s.History[:0]
	s.generation++
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) append(role Role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
	s.UpdatedAt = time.Now().UTC()
}

// ShortID returns the first 8 characters of the session ID for display.
func (s *Session) ShortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
