package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcheck/internal/httputil"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByName(chi.URLParam(r, "username"))
	if u == nil {
		httputil.WriteNotFound(w, "Profile not found")
		return
	}

	posts := s.postsByUser(u.ID)
	postJSON := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		postJSON = append(postJSON, s.postJSON(p, viewerID(r)))
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"username":          u.Username,
			"bio":               u.Bio,
			"profilePictureUrl": u.ProfilePictureURL,
			"favoriteBrands":    u.FavoriteBrands,
			"stylePreferences":  u.StylePreferences,
			"followers":         s.followerNames(u.ID),
			"following":         s.followingNames(u.ID),
			"posts":             postJSON,
		},
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bio              *string `json:"bio"`
		StylePreferences *string `json:"stylePreferences"`
		FavoriteBrands   *string `json:"favoriteBrands"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[viewerID(r)]
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.StylePreferences != nil {
		u.StylePreferences = *req.StylePreferences
	}
	if req.FavoriteBrands != nil {
		u.FavoriteBrands = *req.FavoriteBrands
	}

	httputil.WriteMessage(w, http.StatusOK, "Profile updated")
}

func (s *Server) handleUploadPicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		httputil.WriteBadRequest(w, "An image is required")
		return
	}
	file.Close()

	url := newMediaURL("avatars")

	s.mu.Lock()
	s.users[viewerID(r)].ProfilePictureURL = url
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"profilePicture": url})
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.userByName(chi.URLParam(r, "username"))
	if target == nil {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	viewer := viewerID(r)
	if target.ID == viewer {
		httputil.WriteBadRequest(w, "You cannot follow yourself")
		return
	}

	set := s.follows[viewer]
	if set == nil {
		set = make(map[string]bool)
		s.follows[viewer] = set
	}

	if set[target.ID] {
		delete(set, target.ID)
		httputil.WriteMessage(w, http.StatusOK, "Unfollowed user")
		return
	}
	set[target.ID] = true
	httputil.WriteMessage(w, http.StatusOK, "Followed user")
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByName(chi.URLParam(r, "username"))
	if u == nil {
		httputil.WriteNotFound(w, "User not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"followers": s.followerNames(u.ID)})
}

func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByName(chi.URLParam(r, "username"))
	if u == nil {
		httputil.WriteNotFound(w, "User not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"following": s.followingNames(u.ID)})
}

func (s *Server) handleIsFollowing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.userByName(chi.URLParam(r, "username"))
	if target == nil {
		httputil.WriteNotFound(w, "User not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"isFollowing": s.follows[viewerID(r)][target.ID],
	})
}

// followerNames lists usernames following the user. Caller holds the lock.
func (s *Server) followerNames(userID string) []string {
	names := []string{}
	for followerID, set := range s.follows {
		if set[userID] {
			if u := s.users[followerID]; u != nil {
				names = append(names, u.Username)
			}
		}
	}
	return names
}

// followingNames lists usernames the user follows. Caller holds the lock.
func (s *Server) followingNames(userID string) []string {
	names := []string{}
	for followeeID := range s.follows[userID] {
		if u := s.users[followeeID]; u != nil {
			names = append(names, u.Username)
		}
	}
	return names
}
