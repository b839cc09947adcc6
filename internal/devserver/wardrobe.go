package devserver

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fitcheck/internal/httputil"
	"fitcheck/internal/model"
)

const maxMultipartMemory = 16 << 20

func (s *Server) handleListWardrobe(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	category := r.URL.Query().Get("category")

	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.userByName(username)
	if owner == nil {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	var items []*wardrobeItem
	for _, item := range s.wardrobe {
		if item.UserID != owner.ID {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	data := make([]map[string]any, 0, len(items))
	for _, item := range items {
		data = append(data, wardrobeJSON(item))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *Server) handleAddWardrobe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	category := r.FormValue("category")
	description := r.FormValue("description")

	file, _, err := r.FormFile("image")
	if err != nil {
		httputil.WriteBadRequest(w, "An image is required")
		return
	}
	file.Close()

	if category == "" {
		httputil.WriteBadRequest(w, "A category is required")
		return
	}
	if !model.ValidCategory(model.Category(category)) {
		httputil.WriteBadRequest(w, "Unknown wardrobe category")
		return
	}

	item := &wardrobeItem{
		ID:          uuid.NewString(),
		UserID:      viewerID(r),
		ImageURL:    newMediaURL("wardrobe"),
		Category:    category,
		Description: description,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.wardrobe[item.ID] = item
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"data": wardrobeJSON(item)})
}

func (s *Server) handleDeleteWardrobe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.wardrobe[id]
	if !ok {
		httputil.WriteNotFound(w, "Wardrobe item not found")
		return
	}
	if item.UserID != viewerID(r) {
		httputil.WriteForbidden(w, "You do not have permission to delete this item")
		return
	}

	delete(s.wardrobe, id)
	httputil.WriteMessage(w, http.StatusOK, "Wardrobe item deleted")
}

func wardrobeJSON(item *wardrobeItem) map[string]any {
	return map[string]any{
		"_id":         item.ID,
		"imageUrl":    item.ImageURL,
		"category":    item.Category,
		"description": item.Description,
	}
}
