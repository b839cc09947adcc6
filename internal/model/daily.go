package model

import (
	"encoding/json"
	"errors"
)

// Rating bounds for daily posts. Zero clears an existing rating.
const (
	MinRating = 1
	MaxRating = 5
)

// DailyPostRecord is the wire shape of a daily outfit post. userId is either
// an embedded user object or a bare id string, same as posts.
type DailyPostRecord struct {
	ID            string          `json:"_id"`
	ImageURL      string          `json:"imageUrl"`
	Caption       string          `json:"caption,omitempty"`
	Timestamp     string          `json:"timestamp,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UserID        json.RawMessage `json:"userId,omitempty"`
	AverageRating float64         `json:"averageRating"`
	TotalRatings  int             `json:"totalRatings"`
	UserRating    int             `json:"userRating,omitempty"`
}

// DailyPostListResponse wraps GET /daily-posts.
type DailyPostListResponse struct {
	Data []DailyPostRecord `json:"data"`
}

// DailyPostResponse wraps a created daily post.
type DailyPostResponse struct {
	Data *DailyPostRecord `json:"data"`
}

// RateRequest is the body for POST /daily-posts/:id/rate.
type RateRequest struct {
	Rating int `json:"rating"`
}

// RateResult carries the recomputed aggregate after a rating change.
type RateResult struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
	UserRating    int     `json:"userRating"`
}

// ErrInvalidRating is raised before any network call for a rating outside
// [0, MaxRating].
var ErrInvalidRating = errors.New("rating must be between 1 and 5")
