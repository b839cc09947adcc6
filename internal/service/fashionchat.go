package service

import (
	"context"
	"fmt"
	"strings"

	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// FashionChat wraps the fashion assistant endpoint. Each question is a
// single request; the conversation itself lives client-side.
type FashionChat struct {
	client  *transport.Client
	session Session
}

func NewFashionChat(client *transport.Client, sess Session) *FashionChat {
	return &FashionChat{client: client, session: sess}
}

// Ask sends one question to the assistant. When useWardrobe is set the
// reply may reference the viewer's wardrobe items by itemId. Blank messages
// are rejected before any request goes out.
func (s *FashionChat) Ask(ctx context.Context, message string, useWardrobe bool) (*model.FashionChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, model.ErrEmptyChatMessage
	}
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var reply model.FashionChatReply
	err := s.client.Post(ctx, "/api/fashion-chat", model.FashionChatRequest{
		Message:     message,
		UseWardrobe: useWardrobe,
	}, &reply)
	if err != nil {
		return nil, fmt.Errorf("fashion chat: %w", err)
	}

	if reply.Outfits == nil {
		reply.Outfits = []model.OutfitSuggestion{}
	}
	if reply.WardrobeItems == nil {
		reply.WardrobeItems = []model.ChatWardrobeItem{}
	}
	return &reply, nil
}
