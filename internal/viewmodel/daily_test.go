package viewmodel

import (
	"encoding/json"
	"testing"
	"time"

	"fitcheck/internal/model"
)

func TestDailyPostFromRecord(t *testing.T) {
	rec := model.DailyPostRecord{
		ID:            "d1",
		ImageURL:      "https://media.fitcheck.test/daily/d1.jpg",
		UserID:        json.RawMessage(`{"_id":"u2","username":"bo"}`),
		AverageRating: 4.5,
		TotalRatings:  2,
		UserRating:    5,
	}

	view := DailyPostFromRecord(rec, &model.UserData{ID: "u1"})

	if view.Username != "bo" {
		t.Errorf("username = %q, want bo", view.Username)
	}
	if view.AverageRating != 4.5 || view.TotalRatings != 2 {
		t.Errorf("aggregate = %.1f/%d, want 4.5/2", view.AverageRating, view.TotalRatings)
	}
	if !view.Rated || view.UserRating != 5 {
		t.Errorf("user rating = %d rated=%v, want 5 rated", view.UserRating, view.Rated)
	}
}

func TestDailyPostFromRecord_UnratedAndTimestampFallback(t *testing.T) {
	rec := model.DailyPostRecord{
		ID:        "d1",
		CreatedAt: "not-a-timestamp",
	}

	view := DailyPostFromRecord(rec, nil)

	if view.Rated {
		t.Error("zero user rating must read as unrated")
	}
	// With timestamp absent the createdAt field is used; unparseable input
	// passes through so the screen still shows something.
	if view.Timestamp != "not-a-timestamp" {
		t.Errorf("timestamp = %q, want the raw fallback", view.Timestamp)
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name string
		ts   string
		want string
	}{
		{"empty", "", ""},
		{"seconds ago", now.Add(-30 * time.Second).Format(time.RFC3339), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute).Format(time.RFC3339), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour).Format(time.RFC3339), "3h ago"},
		{"days ago", now.Add(-49 * time.Hour).Format(time.RFC3339), "2d ago"},
		{"unparseable", "yesterday-ish", "yesterday-ish"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimestamp(tc.ts); got != tc.want {
				t.Errorf("FormatTimestamp(%q) = %q, want %q", tc.ts, got, tc.want)
			}
		})
	}

	old := now.Add(-30 * 24 * time.Hour)
	if got := FormatTimestamp(old.Format(time.RFC3339)); got != old.Format("Jan 2, 2006") {
		t.Errorf("old timestamp = %q, want the absolute date", got)
	}
}
