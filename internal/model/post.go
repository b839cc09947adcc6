package model

import (
	"encoding/json"
	"errors"
)

// PostRecord is the wire shape of a post. The backend is loose about two
// things this struct has to absorb:
//
//   - the id arrives as _id or id depending on the endpoint;
//   - the owner arrives as an embedded user object, a bare user-id string,
//     or pre-flattened username/userAvatar fields.
//
// Owner fields stay raw here; viewmodel.ResolveOwner decides once what they
// mean.
type PostRecord struct {
	ID         string          `json:"_id"`
	AltID      string          `json:"id,omitempty"`
	ImageURL   string          `json:"imageUrl"`
	Caption    string          `json:"caption,omitempty"`
	Location   string          `json:"location,omitempty"`
	Mentions   string          `json:"mentions,omitempty"`
	Category   string          `json:"category,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
	Likes      int             `json:"likes"`
	Comments   json.RawMessage `json:"comments,omitempty"` // count or list
	IsLiked    bool            `json:"isLiked,omitempty"`
	User       json.RawMessage `json:"user,omitempty"`   // UserSummary or id string
	UserID     json.RawMessage `json:"userId,omitempty"` // UserSummary or id string
	Username   string          `json:"username,omitempty"`
	UserAvatar string          `json:"userAvatar,omitempty"`
}

// Key returns whichever id field the backend populated.
func (p *PostRecord) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.AltID
}

// CommentRecord is the wire shape of a comment.
type CommentRecord struct {
	ID        string          `json:"_id"`
	User      json.RawMessage `json:"user,omitempty"`
	Text      string          `json:"text"`
	Timestamp string          `json:"timestamp,omitempty"`
	Likes     int             `json:"likes"`
}

// PostListResponse wraps list results under a data field.
type PostListResponse struct {
	Data []PostRecord `json:"data"`
}

// PostResponse wraps a single post. Some endpoints return the post bare;
// the service layer normalizes both forms into this envelope.
type PostResponse struct {
	Data *PostRecord `json:"data"`
}

// CommentListResponse wraps comment pages.
type CommentListResponse struct {
	Data []CommentRecord `json:"data"`
}

// CommentResponse wraps a created comment.
type CommentResponse struct {
	Data *CommentRecord `json:"data"`
}

// ToggleLikeResult is returned by PATCH /posts/:id/toggle-like. The server
// count is authoritative and overwrites any optimistic value.
type ToggleLikeResult struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

// IsLikedResult is returned by GET /posts/:id/is-liked.
type IsLikedResult struct {
	IsLiked bool `json:"isLiked"`
}

// AddCommentRequest is the body for POST /posts/:id/comments.
type AddCommentRequest struct {
	Text string `json:"text"`
}

var (
	// ErrPostNotFound is mapped from a 404 on post operations.
	ErrPostNotFound = errors.New("post not found")

	// ErrPostForbidden is mapped from a 403 on destructive post operations.
	ErrPostForbidden = errors.New("you do not have permission to modify this post")

	// ErrEmptyComment is raised before any network call for a blank comment.
	ErrEmptyComment = errors.New("comment text is required")
)
