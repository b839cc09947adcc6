package viewmodel

import (
	"encoding/json"
	"testing"

	"fitcheck/internal/model"
)

func TestPostFromRecord_EmbeddedOwner(t *testing.T) {
	me := &model.UserData{ID: "u1", Username: "ava"}
	rec := model.PostRecord{
		ID:       "p1",
		ImageURL: "https://media.fitcheck.test/posts/p1.jpg",
		Caption:  "thrifted",
		Likes:    3,
		Comments: json.RawMessage(`7`),
		User:     json.RawMessage(`{"_id":"u1","username":"ava","profilePictureUrl":"https://media.fitcheck.test/avatars/a.jpg"}`),
	}

	view := PostFromRecord(rec, me)

	if view.ID != "p1" {
		t.Errorf("id = %q, want p1", view.ID)
	}
	if view.Username != "ava" {
		t.Errorf("username = %q, want ava", view.Username)
	}
	if view.UserAvatar != "https://media.fitcheck.test/avatars/a.jpg" {
		t.Errorf("avatar = %q, want the embedded url", view.UserAvatar)
	}
	if view.CommentCount != 7 {
		t.Errorf("comment count = %d, want 7", view.CommentCount)
	}
	if !view.Mine {
		t.Error("expected Mine for the viewer's own post")
	}
}

func TestPostFromRecord_MissingOwnerGetsPlaceholders(t *testing.T) {
	view := PostFromRecord(model.PostRecord{ID: "p1"}, &model.UserData{ID: "u1", Username: "ava"})

	if view.Username != UnknownUsername {
		t.Errorf("username = %q, want %q", view.Username, UnknownUsername)
	}
	if view.UserAvatar != PlaceholderAvatarURL {
		t.Errorf("avatar = %q, want %q", view.UserAvatar, PlaceholderAvatarURL)
	}
	if view.Mine {
		t.Error("a post with no owner must never read as Mine")
	}
}

func TestPostFromRecord_AltIDAndIDString(t *testing.T) {
	rec := model.PostRecord{
		AltID:  "p2",
		UserID: json.RawMessage(`"u2"`),
	}
	view := PostFromRecord(rec, &model.UserData{ID: "u1"})

	if view.ID != "p2" {
		t.Errorf("id = %q, want p2 (falls back to the alternate id field)", view.ID)
	}
	// A bare id carries no username; display falls back to the placeholder.
	if view.Username != UnknownUsername {
		t.Errorf("username = %q, want %q", view.Username, UnknownUsername)
	}
	if view.Mine {
		t.Error("differing ids must not read as Mine")
	}
}

func TestPostFromRecord_FlattenedOwnerFields(t *testing.T) {
	rec := model.PostRecord{
		ID:         "p3",
		Username:   "ava",
		UserAvatar: "https://media.fitcheck.test/avatars/ava.jpg",
	}
	view := PostFromRecord(rec, &model.UserData{Username: "ava"})

	if view.Username != "ava" {
		t.Errorf("username = %q, want ava (pre-flattened field)", view.Username)
	}
	if view.UserAvatar != "https://media.fitcheck.test/avatars/ava.jpg" {
		t.Errorf("avatar = %q, want the flattened url", view.UserAvatar)
	}
	if !view.Mine {
		t.Error("expected the username fallback to identify the viewer's post")
	}
}

func TestCommentCountAbsorbsBothEncodings(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"absent", "", 0},
		{"number", "12", 12},
		{"list", `[{"_id":"c1"},{"_id":"c2"}]`, 2},
		{"garbage", `"oops"`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := model.PostRecord{ID: "p", Comments: json.RawMessage(tc.raw)}
			if got := PostFromRecord(rec, nil).CommentCount; got != tc.want {
				t.Errorf("comment count = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCommentFromRecord_Defaults(t *testing.T) {
	view := CommentFromRecord(model.CommentRecord{ID: "c1", Text: "love it"})

	if view.Username != UnknownUsername {
		t.Errorf("username = %q, want %q", view.Username, UnknownUsername)
	}
	if view.Avatar != PlaceholderAvatarURL {
		t.Errorf("avatar = %q, want %q", view.Avatar, PlaceholderAvatarURL)
	}
	if view.Text != "love it" {
		t.Errorf("text = %q, want unchanged", view.Text)
	}
}

func TestPosts_NilDegradesToEmpty(t *testing.T) {
	if views := Posts(nil, nil); views == nil || len(views) != 0 {
		t.Errorf("views = %v, want empty non-nil slice", views)
	}
}
