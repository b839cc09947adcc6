package viewmodel

import (
	"encoding/json"

	"fitcheck/internal/model"
)

// Defaults used when the owner cannot supply them.
const (
	UnknownUsername      = "Unknown User"
	PlaceholderAvatarURL = "https://via.placeholder.com/40"
)

// PostView is the flattened display shape of a post.
type PostView struct {
	ID           string
	Image        string
	Caption      string
	Location     string
	Mentions     string
	Category     string
	Timestamp    string
	Likes        int
	CommentCount int
	IsLiked      bool
	Username     string
	UserAvatar   string

	// Mine gates owner-only affordances; it is advisory, not a security
	// boundary.
	Mine bool
}

// PostFromRecord flattens a wire post for display. The owner union is
// resolved here once; missing owner details default to placeholders.
func PostFromRecord(rec model.PostRecord, current *model.UserData) PostView {
	owner := resolvePostOwner(rec.User, rec.UserID)

	username := owner.Username()
	if username == "" {
		username = rec.Username
	}
	if username == "" {
		username = UnknownUsername
	}

	avatar := rec.UserAvatar
	if owner.User != nil && owner.User.ProfilePictureURL != "" {
		avatar = owner.User.ProfilePictureURL
	}
	if avatar == "" {
		avatar = PlaceholderAvatarURL
	}

	mine := IsOwner(current, owner)
	if !mine && owner.Kind == OwnerUnknown && rec.Username != "" {
		mine = IsOwnerUsername(current, rec.Username)
	}

	return PostView{
		ID:           rec.Key(),
		Image:        rec.ImageURL,
		Caption:      rec.Caption,
		Location:     rec.Location,
		Mentions:     rec.Mentions,
		Category:     rec.Category,
		Timestamp:    rec.Timestamp,
		Likes:        rec.Likes,
		CommentCount: commentCount(rec.Comments),
		IsLiked:      rec.IsLiked,
		Username:     username,
		UserAvatar:   avatar,
		Mine:         mine,
	}
}

// Posts maps a record list, degrading nil to an empty collection.
func Posts(recs []model.PostRecord, current *model.UserData) []PostView {
	views := make([]PostView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, PostFromRecord(rec, current))
	}
	return views
}

// commentCount absorbs the two wire encodings of comments: an aggregate
// number or a list of comment records/ids.
func commentCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return len(list)
	}

	return 0
}

// CommentView is the display shape of a comment.
type CommentView struct {
	ID        string
	Username  string
	Avatar    string
	Text      string
	Timestamp string
	Likes     int
}

// CommentFromRecord flattens a wire comment with the same owner resolution
// and defaults as posts.
func CommentFromRecord(rec model.CommentRecord) CommentView {
	owner := ResolveOwner(rec.User)

	username := owner.Username()
	if username == "" {
		username = UnknownUsername
	}

	avatar := ""
	if owner.User != nil {
		avatar = owner.User.ProfilePictureURL
	}
	if avatar == "" {
		avatar = PlaceholderAvatarURL
	}

	return CommentView{
		ID:        rec.ID,
		Username:  username,
		Avatar:    avatar,
		Text:      rec.Text,
		Timestamp: rec.Timestamp,
		Likes:     rec.Likes,
	}
}

// Comments maps a comment list, degrading nil to an empty collection.
func Comments(recs []model.CommentRecord) []CommentView {
	views := make([]CommentView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, CommentFromRecord(rec))
	}
	return views
}
