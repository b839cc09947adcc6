// Package chat holds the in-memory messaging state. Conversations are
// ephemeral: the backend exposes no messaging persistence, so everything
// here lives and dies with the app session.
package chat

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrConversationNotFound is returned for an unknown conversation id.
var ErrConversationNotFound = errors.New("conversation not found")

// ErrEmptyMessage is returned for a blank message body.
var ErrEmptyMessage = errors.New("message text is required")

// Message is one chat message.
type Message struct {
	ID     string
	From   string
	Text   string
	SentAt time.Time
	Read   bool
}

// Conversation is an append-only message thread with one other user.
type Conversation struct {
	ID       string
	With     string
	Messages []Message
}

// Summary is the list-row shape of a conversation.
type Summary struct {
	ID          string
	With        string
	LastMessage string
	LastAt      time.Time
	Unread      int
}

// Hub owns every conversation for the current session.
type Hub struct {
	mu    sync.Mutex
	convs map[string]*Conversation
}

func NewHub() *Hub {
	return &Hub{convs: make(map[string]*Conversation)}
}

// Start returns the conversation with the given user, creating it if this
// is the first exchange.
func (h *Hub) Start(with string) *Conversation {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conv := range h.convs {
		if conv.With == with {
			return conv
		}
	}

	conv := &Conversation{
		ID:   uuid.NewString(),
		With: with,
	}
	h.convs[conv.ID] = conv
	return conv
}

// Send appends a message to a conversation. Messages from the viewer are
// born read.
func (h *Hub) Send(conversationID, from, text string) (Message, error) {
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conv, ok := h.convs[conversationID]
	if !ok {
		return Message{}, ErrConversationNotFound
	}

	msg := Message{
		ID:     uuid.NewString(),
		From:   from,
		Text:   text,
		SentAt: time.Now(),
		Read:   from != conv.With,
	}
	conv.Messages = append(conv.Messages, msg)
	return msg, nil
}

// MarkRead marks every message in the conversation read.
func (h *Hub) MarkRead(conversationID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conv, ok := h.convs[conversationID]
	if !ok {
		return ErrConversationNotFound
	}
	for i := range conv.Messages {
		conv.Messages[i].Read = true
	}
	return nil
}

// Messages returns a copy of a conversation's messages.
func (h *Hub) Messages(conversationID string) ([]Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conv, ok := h.convs[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	out := make([]Message, len(conv.Messages))
	copy(out, conv.Messages)
	return out, nil
}

// List returns conversation summaries, most recent activity first.
func (h *Hub) List() []Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Summary, 0, len(h.convs))
	for _, conv := range h.convs {
		s := Summary{ID: conv.ID, With: conv.With}
		for _, msg := range conv.Messages {
			if !msg.Read {
				s.Unread++
			}
		}
		if n := len(conv.Messages); n > 0 {
			s.LastMessage = conv.Messages[n-1].Text
			s.LastAt = conv.Messages[n-1].SentAt
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastAt.After(out[j].LastAt)
	})
	return out
}
