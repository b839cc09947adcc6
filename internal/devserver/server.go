// Package devserver implements the FitCheck REST API against in-memory
// state. It exists so the client library can be developed and integration
// tested without the production backend: every endpoint the client calls
// is served here with realistic envelopes and error bodies.
package devserver

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"fitcheck/internal/httputil"
)

// mediaBaseURL is where fake uploads pretend to live. The dev server keeps
// no bytes; clients only ever see URLs.
const mediaBaseURL = "https://media.fitcheck.test"

type user struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      []byte
	Bio               string
	ProfilePictureURL string
	FavoriteBrands    string
	StylePreferences  string
}

type pendingSignup struct {
	Username     string
	Email        string
	PasswordHash []byte
}

type wardrobeItem struct {
	ID          string
	UserID      string
	ImageURL    string
	Category    string
	Description string
	CreatedAt   time.Time
}

type comment struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
	Likes     int
}

type post struct {
	ID        string
	UserID    string
	ImageURL  string
	Caption   string
	Location  string
	Mentions  string
	Category  string
	CreatedAt time.Time
	Likes     map[string]bool
	Comments  []comment
}

type dailyPost struct {
	ID        string
	UserID    string
	ImageURL  string
	Caption   string
	CreatedAt time.Time
	Ratings   map[string]int
}

// Server is the in-memory backend. A single mutex guards all state; the
// dev server favors simplicity over concurrency.
type Server struct {
	jwtSecret   string
	tokenMaxAge time.Duration

	mu         sync.Mutex
	users      map[string]*user // by id
	byEmail    map[string]string
	byUsername map[string]string
	pending    map[string]*pendingSignup // by email
	wardrobe   map[string]*wardrobeItem
	posts      map[string]*post
	daily      map[string]*dailyPost
	follows    map[string]map[string]bool // followerID -> followeeID set
}

func New(jwtSecret string, tokenMaxAge time.Duration) *Server {
	if tokenMaxAge <= 0 {
		tokenMaxAge = 24 * time.Hour
	}
	return &Server{
		jwtSecret:   jwtSecret,
		tokenMaxAge: tokenMaxAge,
		users:       make(map[string]*user),
		byEmail:     make(map[string]string),
		byUsername:  make(map[string]string),
		pending:     make(map[string]*pendingSignup),
		wardrobe:    make(map[string]*wardrobeItem),
		posts:       make(map[string]*post),
		daily:       make(map[string]*dailyPost),
		follows:     make(map[string]map[string]bool),
	}
}

// Router builds the chi router with every endpoint the client consumes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public auth endpoints
	r.Post("/signup", s.handleSignup)
	r.Post("/verify", s.handleVerify)
	r.Post("/login", s.handleLogin)

	// Everything else requires the raw-token Authorization header
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/profile/{username}", s.handleGetProfile)
		r.Patch("/profile", s.handleUpdateProfile)
		r.Post("/profile/upload-picture", s.handleUploadPicture)

		r.Get("/wardrobe/{username}", s.handleListWardrobe)
		r.Post("/wardrobe", s.handleAddWardrobe)
		r.Delete("/wardrobe/{id}", s.handleDeleteWardrobe)

		r.Get("/posts", s.handlePostsByCategory)
		r.Post("/posts", s.handleCreatePost)
		r.Get("/posts/{id}", s.handleGetPost)
		r.Delete("/posts/{id}", s.handleDeletePost)
		r.Patch("/posts/{id}/toggle-like", s.handleToggleLike)
		r.Get("/posts/{id}/is-liked", s.handleIsLiked)
		r.Get("/posts/{id}/comments", s.handleListComments)
		r.Post("/posts/{id}/comments", s.handleAddComment)
		r.Get("/posts/{id}/related", s.handleRelatedPosts)

		r.Get("/explore", s.handleExplore)

		r.Post("/user/follow/{username}", s.handleToggleFollow)
		r.Get("/user/followers/{username}", s.handleFollowers)
		r.Get("/user/following/{username}", s.handleFollowing)
		r.Get("/user/is-following/{username}", s.handleIsFollowing)

		r.Get("/daily-posts", s.handleListDaily)
		r.Post("/daily-posts", s.handleCreateDaily)
		r.Post("/daily-posts/{id}/rate", s.handleRateDaily)

		r.Post("/api/fashion-chat", s.handleFashionChat)
	})

	return r
}

// newMediaURL mints a fake public URL for an accepted upload.
func newMediaURL(folder string) string {
	return fmt.Sprintf("%s/%s/%s.jpg", mediaBaseURL, folder, uuid.NewString())
}

// userByName looks a user up by username. Caller holds the lock.
func (s *Server) userByName(username string) *user {
	id, ok := s.byUsername[username]
	if !ok {
		return nil
	}
	return s.users[id]
}

// userSummaryJSON is the embedded owner object nested in posts and
// comments.
func userSummaryJSON(u *user) map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"_id":               u.ID,
		"username":          u.Username,
		"profilePictureUrl": u.ProfilePictureURL,
	}
}

// postJSON renders a post the way the production API does: embedded user
// object, aggregate counts, viewer-relative isLiked. Caller holds the lock.
func (s *Server) postJSON(p *post, viewerID string) map[string]any {
	return map[string]any{
		"_id":       p.ID,
		"imageUrl":  p.ImageURL,
		"caption":   p.Caption,
		"location":  p.Location,
		"mentions":  p.Mentions,
		"category":  p.Category,
		"timestamp": p.CreatedAt.UTC().Format(time.RFC3339),
		"likes":     len(p.Likes),
		"comments":  len(p.Comments),
		"isLiked":   p.Likes[viewerID],
		"user":      userSummaryJSON(s.users[p.UserID]),
	}
}

// postsByUser returns a user's posts sorted by like count, most liked
// first, matching the backend's profile ordering. Caller holds the lock.
func (s *Server) postsByUser(userID string) []*post {
	var out []*post
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Likes) != len(out[j].Likes) {
			return len(out[i].Likes) > len(out[j].Likes)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
