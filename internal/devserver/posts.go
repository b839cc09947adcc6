package devserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fitcheck/internal/httputil"
)

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
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

	p := &post{
		ID:        uuid.NewString(),
		UserID:    viewerID(r),
		ImageURL:  newMediaURL("posts"),
		Caption:   r.FormValue("caption"),
		Location:  r.FormValue("location"),
		Mentions:  r.FormValue("mentions"),
		Category:  r.FormValue("category"),
		CreatedAt: time.Now(),
		Likes:     make(map[string]bool),
	}

	s.mu.Lock()
	s.posts[p.ID] = p
	body := s.postJSON(p, viewerID(r))
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"data": body})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": s.postJSON(p, viewerID(r))})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	if p.UserID != viewerID(r) {
		httputil.WriteForbidden(w, "You do not have permission to delete this post")
		return
	}

	delete(s.posts, p.ID)
	httputil.WriteMessage(w, http.StatusOK, "Post deleted")
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	viewer := viewerID(r)
	if p.Likes[viewer] {
		delete(p.Likes, viewer)
	} else {
		p.Likes[viewer] = true
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"likes":   len(p.Likes),
		"isLiked": p.Likes[viewer],
	})
}

func (s *Server) handleIsLiked(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Post not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"isLiked": p.Likes[viewerID(r)]})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, 1, 10)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	pageItems := paginate(p.Comments, page, limit)
	data := make([]map[string]any, 0, len(pageItems))
	for _, c := range pageItems {
		data = append(data, s.commentJSON(c))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		httputil.WriteBadRequest(w, "Comment text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	c := comment{
		ID:        uuid.NewString(),
		UserID:    viewerID(r),
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	p.Comments = append(p.Comments, c)

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"data": s.commentJSON(c)})
}

func (s *Server) handleRelatedPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 4
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	var related []*post
	for _, candidate := range s.posts {
		if candidate.ID == p.ID {
			continue
		}
		if p.Category != "" && candidate.Category != p.Category {
			continue
		}
		related = append(related, candidate)
	}
	sort.Slice(related, func(i, j int) bool {
		return len(related[i].Likes) > len(related[j].Likes)
	})
	if len(related) > limit {
		related = related[:limit]
	}

	data := make([]map[string]any, 0, len(related))
	for _, rp := range related {
		data = append(data, s.postJSON(rp, viewerID(r)))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *Server) handlePostsByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	page, limit := pageParams(r, 1, 10)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*post
	for _, p := range s.posts {
		if category != "" && p.Category != category {
			continue
		}
		matched = append(matched, p)
	}
	sortNewestFirst(matched)

	pageItems := paginate(matched, page, limit)
	data := make([]map[string]any, 0, len(pageItems))
	for _, p := range pageItems {
		data = append(data, s.postJSON(p, viewerID(r)))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": data})
}

// handleExplore serves the paginated explore feed: every post, newest
// first, wrapped in the {posts: [...]} envelope the mobile client expects.
func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	page, limit := pageParams(r, 1, 10)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*post
	for _, p := range s.posts {
		if category != "" && p.Category != category {
			continue
		}
		matched = append(matched, p)
	}
	sortNewestFirst(matched)

	pageItems := paginate(matched, page, limit)
	posts := make([]map[string]any, 0, len(pageItems))
	for _, p := range pageItems {
		posts = append(posts, s.postJSON(p, viewerID(r)))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (s *Server) commentJSON(c comment) map[string]any {
	return map[string]any{
		"_id":       c.ID,
		"user":      userSummaryJSON(s.users[c.UserID]),
		"text":      c.Text,
		"timestamp": c.CreatedAt.UTC().Format(time.RFC3339),
		"likes":     c.Likes,
	}
}

func sortNewestFirst(posts []*post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func pageParams(r *http.Request, defaultPage, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	return page, limit
}

// paginate slices one page out of items using 1-based page numbers.
func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
