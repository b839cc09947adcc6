package model

import "errors"

// FashionChatRequest is the body for POST /api/fashion-chat. UseWardrobe
// opts the viewer's wardrobe into the recommendation.
type FashionChatRequest struct {
	Message     string `json:"message"`
	UseWardrobe bool   `json:"useWardrobe"`
}

// OutfitSuggestion is one look the assistant proposes. Items references
// wardrobe items by itemId; the referenced items travel alongside in the
// reply's wardrobeItems list.
type OutfitSuggestion struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

// ChatWardrobeItem is the trimmed wardrobe item echoed with assistant
// replies. Unlike WardrobeRecord it is keyed by itemId.
type ChatWardrobeItem struct {
	ItemID   string `json:"itemId"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
}

// FashionChatReply is the assistant's answer. Outfits and wardrobeItems may
// be absent; the service degrades them to empty lists.
type FashionChatReply struct {
	Text          string             `json:"text"`
	Outfits       []OutfitSuggestion `json:"outfits"`
	WardrobeItems []ChatWardrobeItem `json:"wardrobeItems"`
}

// ErrEmptyChatMessage is raised before any network call when the assistant
// message is blank.
var ErrEmptyChatMessage = errors.New("a message is required")
