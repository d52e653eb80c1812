package store

import (
	"sync"
	"time"

	"placement-mentor-be/pkg/grounding"
)

const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

type ChatMessage struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Error     bool      `json:"error"`
	CreatedAt time.Time `json:"created_at"`
}

// MentorSession is the in-memory state of one open mentor panel. It owns a
// snapshot taken when the session opened; the snapshot never refreshes while
// the session lives.
type MentorSession struct {
	ID       string
	Slug     string
	Snapshot grounding.Snapshot
	Created  time.Time

	mu       sync.Mutex
	messages []ChatMessage
	awaiting bool
}

func NewMentorSession(id string, snapshot grounding.Snapshot) *MentorSession {
	return &MentorSession{
		ID:       id,
		Slug:     snapshot.Slug,
		Snapshot: snapshot,
		Created:  time.Now(),
	}
}

// TryBeginQuestion flips the awaiting flag if no question is in flight.
// At most one question per session may be awaiting a response.
func (s *MentorSession) TryBeginQuestion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.awaiting {
		return false
	}
	s.awaiting = true
	return true
}

func (s *MentorSession) EndQuestion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting = false
}

func (s *MentorSession) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

func (s *MentorSession) Append(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// History returns a copy of the message log in order.
func (s *MentorSession) History() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Rebind swaps in a fresh snapshot and clears the conversation. Used when the
// underlying story identity changes while the panel stays open.
func (s *MentorSession) Rebind(snapshot grounding.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshot = snapshot
	s.Slug = snapshot.Slug
	s.messages = nil
	s.awaiting = false
}
