package viewmodel

import (
	"strings"

	"fitcheck/internal/model"
)

// TopPostCount is how many posts the profile header grid shows. The backend
// returns posts sorted by likes, so the first slice is the top slice.
const TopPostCount = 6

// ProfileView decorates a profile record with the derived fields the
// profile screen consumes.
type ProfileView struct {
	Username          string
	Bio               string
	ProfilePictureURL string
	FavoriteBrands    []string
	StylePreferences  []string
	Followers         []string
	Following         []string
	FollowersCount    int
	FollowingCount    int
	Posts             []PostView
	TopPosts          []PostView

	// Mine is true when the viewer owns this profile.
	Mine bool
}

// ProfileFromRecord derives counts, splits the csv preference fields and
// takes the top-posts slice.
func ProfileFromRecord(rec model.ProfileRecord, current *model.UserData) ProfileView {
	posts := Posts(rec.Posts, current)

	top := posts
	if len(top) > TopPostCount {
		top = top[:TopPostCount]
	}

	return ProfileView{
		Username:          rec.Username,
		Bio:               rec.Bio,
		ProfilePictureURL: rec.ProfilePictureURL,
		FavoriteBrands:    splitCSV(rec.FavoriteBrands),
		StylePreferences:  splitCSV(rec.StylePreferences),
		Followers:         emptyIfNil(rec.Followers),
		Following:         emptyIfNil(rec.Following),
		FollowersCount:    len(rec.Followers),
		FollowingCount:    len(rec.Following),
		Posts:             posts,
		TopPosts:          top,
		Mine:              IsOwnerUsername(current, rec.Username),
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
