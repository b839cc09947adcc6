package viewmodel

import (
	"fmt"
	"time"

	"fitcheck/internal/model"
)

// DailyPostView is the display shape of a daily outfit post.
type DailyPostView struct {
	ID            string
	Username      string
	UserAvatar    string
	Image         string
	Caption       string
	Timestamp     string
	AverageRating float64
	TotalRatings  int

	// UserRating is the viewer's own rating, 0 when unrated.
	UserRating int
	Rated      bool
}

// DailyPostFromRecord flattens a daily post. The owner arrives under the
// userId field; timestamp falls back to createdAt.
func DailyPostFromRecord(rec model.DailyPostRecord, current *model.UserData) DailyPostView {
	owner := ResolveOwner(rec.UserID)

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

	ts := rec.Timestamp
	if ts == "" {
		ts = rec.CreatedAt
	}

	return DailyPostView{
		ID:            rec.ID,
		Username:      username,
		UserAvatar:    avatar,
		Image:         rec.ImageURL,
		Caption:       rec.Caption,
		Timestamp:     FormatTimestamp(ts),
		AverageRating: rec.AverageRating,
		TotalRatings:  rec.TotalRatings,
		UserRating:    rec.UserRating,
		Rated:         rec.UserRating != 0,
	}
}

// DailyPosts maps a record list, degrading nil to an empty collection.
func DailyPosts(recs []model.DailyPostRecord, current *model.UserData) []DailyPostView {
	views := make([]DailyPostView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, DailyPostFromRecord(rec, current))
	}
	return views
}

// FormatTimestamp renders an RFC3339 timestamp as a relative age ("3h ago").
// Unparseable input is returned unchanged so the UI still shows something.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
