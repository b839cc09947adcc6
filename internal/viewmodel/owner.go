package viewmodel

import (
	"encoding/json"

	"fitcheck/internal/model"
)

// OwnerKind tags how the backend expressed a resource owner.
type OwnerKind int

const (
	// OwnerUnknown means the payload carried no usable owner information.
	OwnerUnknown OwnerKind = iota

	// OwnerByID means the owner arrived as a bare user-id string.
	OwnerByID

	// OwnerEmbedded means the owner arrived as a nested user object.
	OwnerEmbedded
)

// Owner is the tagged union resolved once at the transformer boundary.
// Call sites never re-inspect raw payload fields.
type Owner struct {
	Kind OwnerKind
	ID   string
	User *model.UserSummary
}

// ResolveOwner interprets a raw owner field that is either a JSON string
// (user id) or an object (user summary). Anything else resolves to
// OwnerUnknown.
func ResolveOwner(raw json.RawMessage) Owner {
	if len(raw) == 0 {
		return Owner{Kind: OwnerUnknown}
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		if id == "" {
			return Owner{Kind: OwnerUnknown}
		}
		return Owner{Kind: OwnerByID, ID: id}
	}

	var user model.UserSummary
	if err := json.Unmarshal(raw, &user); err == nil {
		if user.ID == "" && user.Username == "" {
			return Owner{Kind: OwnerUnknown}
		}
		return Owner{Kind: OwnerEmbedded, ID: user.ID, User: &user}
	}

	return Owner{Kind: OwnerUnknown}
}

// resolvePostOwner picks whichever raw owner field the payload populated.
// Posts use "user", daily posts use "userId"; some endpoints send both.
func resolvePostOwner(user, userID json.RawMessage) Owner {
	if owner := ResolveOwner(user); owner.Kind != OwnerUnknown {
		return owner
	}
	return ResolveOwner(userID)
}

// Username returns the embedded username, or "" when only an id is known.
func (o Owner) Username() string {
	if o.User != nil {
		return o.User.Username
	}
	return ""
}

// IsOwner reports whether current owns the resource. The comparison is
// fail-closed: any missing identity on either side yields false.
//
// The canonical rule: compare ids when both sides have one; otherwise fall
// back to usernames only when neither side has an id and both have a
// username. Mixed cases (one id, one username) cannot be decided and are
// not-owner.
func IsOwner(current *model.UserData, owner Owner) bool {
	if current == nil || owner.Kind == OwnerUnknown {
		return false
	}

	if current.ID != "" && owner.ID != "" {
		return current.ID == owner.ID
	}

	ownerName := owner.Username()
	if current.ID == "" && owner.ID == "" && current.Username != "" && ownerName != "" {
		return current.Username == ownerName
	}

	return false
}

// IsOwnerUsername is the fallback comparison used by screens that only know
// the target's username (profile headers, flattened post payloads). Empty
// on either side is not-owner.
func IsOwnerUsername(current *model.UserData, username string) bool {
	if current == nil || current.Username == "" || username == "" {
		return false
	}
	return current.Username == username
}
