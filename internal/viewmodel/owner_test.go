package viewmodel

import (
	"encoding/json"
	"testing"

	"fitcheck/internal/model"
)

func TestResolveOwner(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantKind OwnerKind
		wantID   string
		wantName string
	}{
		{"absent", "", OwnerUnknown, "", ""},
		{"null", "null", OwnerUnknown, "", ""},
		{"empty string", `""`, OwnerUnknown, "", ""},
		{"id string", `"u1"`, OwnerByID, "u1", ""},
		{"embedded user", `{"_id":"u1","username":"ava"}`, OwnerEmbedded, "u1", "ava"},
		{"embedded username only", `{"username":"ava"}`, OwnerEmbedded, "", "ava"},
		{"empty object", `{}`, OwnerUnknown, "", ""},
		{"unexpected array", `[1,2]`, OwnerUnknown, "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner := ResolveOwner(json.RawMessage(tc.raw))
			if owner.Kind != tc.wantKind {
				t.Errorf("kind = %v, want %v", owner.Kind, tc.wantKind)
			}
			if owner.ID != tc.wantID {
				t.Errorf("id = %q, want %q", owner.ID, tc.wantID)
			}
			if owner.Username() != tc.wantName {
				t.Errorf("username = %q, want %q", owner.Username(), tc.wantName)
			}
		})
	}
}

func TestIsOwner(t *testing.T) {
	me := &model.UserData{ID: "u1", Username: "ava"}
	noID := &model.UserData{Username: "ava"}

	cases := []struct {
		name    string
		current *model.UserData
		owner   Owner
		want    bool
	}{
		{"nil viewer", nil, Owner{Kind: OwnerByID, ID: "u1"}, false},
		{"unknown owner", me, Owner{Kind: OwnerUnknown}, false},
		{"matching ids", me, Owner{Kind: OwnerByID, ID: "u1"}, true},
		{"differing ids", me, Owner{Kind: OwnerByID, ID: "u2"}, false},
		{
			"differing ids same username",
			me,
			Owner{Kind: OwnerEmbedded, ID: "u2", User: &model.UserSummary{ID: "u2", Username: "ava"}},
			false,
		},
		{
			"usernames when neither side has an id",
			noID,
			Owner{Kind: OwnerEmbedded, User: &model.UserSummary{Username: "ava"}},
			true,
		},
		{
			"viewer id but owner username only",
			me,
			Owner{Kind: OwnerEmbedded, User: &model.UserSummary{Username: "ava"}},
			false,
		},
		{
			"owner id but viewer username only",
			noID,
			Owner{Kind: OwnerByID, ID: "u1"},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOwner(tc.current, tc.owner); got != tc.want {
				t.Errorf("IsOwner = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsOwnerUsername(t *testing.T) {
	me := &model.UserData{ID: "u1", Username: "ava"}

	if !IsOwnerUsername(me, "ava") {
		t.Error("expected match on equal usernames")
	}
	if IsOwnerUsername(me, "") {
		t.Error("empty target username must be not-owner")
	}
	if IsOwnerUsername(nil, "ava") {
		t.Error("nil viewer must be not-owner")
	}
}

func TestOwnershipCheck_OnlySettledOwnerShowsControls(t *testing.T) {
	me := &model.UserData{ID: "u1", Username: "ava"}
	var check OwnershipCheck

	if check.ShowOwnerControls() {
		t.Error("unknown state must hide owner controls")
	}

	check.Begin()
	if check.ShowOwnerControls() {
		t.Error("checking state must hide owner controls")
	}

	check.Resolve(me, Owner{Kind: OwnerByID, ID: "u1"})
	if !check.ShowOwnerControls() {
		t.Error("settled owner state must show owner controls")
	}

	check.Begin()
	check.Fail()
	if check.ShowOwnerControls() {
		t.Error("failed check must hide owner controls")
	}
}
