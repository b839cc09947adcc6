package model

import "errors"

// ProfileRecord is the wire shape of GET /profile/:username.
// favoriteBrands and stylePreferences are comma-separated strings; followers
// and following are username lists.
type ProfileRecord struct {
	Username          string       `json:"username"`
	Bio               string       `json:"bio"`
	ProfilePictureURL string       `json:"profilePictureUrl"`
	FavoriteBrands    string       `json:"favoriteBrands"`
	StylePreferences  string       `json:"stylePreferences"`
	Followers         []string     `json:"followers"`
	Following         []string     `json:"following"`
	Posts             []PostRecord `json:"posts"`
}

// ProfileResponse wraps the profile under a data field.
type ProfileResponse struct {
	Data *ProfileRecord `json:"data"`
}

// ProfileUpdateRequest is the body for PATCH /profile. Only the owner's
// editable fields appear; follower state is never mutated this way.
// Nil fields are omitted from the body, so a partial update never clears
// the other fields. An explicit pointer to "" clears a field.
type ProfileUpdateRequest struct {
	Bio              *string `json:"bio,omitempty"`
	StylePreferences *string `json:"stylePreferences,omitempty"`
	FavoriteBrands   *string `json:"favoriteBrands,omitempty"`
}

// UploadPictureResponse is returned by POST /profile/upload-picture.
type UploadPictureResponse struct {
	ProfilePicture string `json:"profilePicture"`
}

// FollowersResponse is returned by GET /user/followers/:username.
type FollowersResponse struct {
	Followers []string `json:"followers"`
}

// FollowingResponse is returned by GET /user/following/:username.
type FollowingResponse struct {
	Following []string `json:"following"`
}

// MessageResponse carries the human-readable message some endpoints answer
// with; toggle-follow derives the new state from it.
type MessageResponse struct {
	Message string `json:"message"`
}

// IsFollowingResult is returned by GET /user/is-following/:username.
type IsFollowingResult struct {
	IsFollowing bool `json:"isFollowing"`
}

// ErrProfileNotFound is mapped from a 404 on profile lookups.
var ErrProfileNotFound = errors.New("profile not found")
