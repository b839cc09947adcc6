package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"fitcheck/internal/httputil"
)

func (s *Server) handleFashionChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message     string `json:"message"`
		UseWardrobe bool   `json:"useWardrobe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httputil.WriteBadRequest(w, "A message is required")
		return
	}

	reply := map[string]any{
		"outfits":       []any{},
		"wardrobeItems": []any{},
	}

	if !req.UseWardrobe {
		reply["text"] = "Keep the silhouette simple: one statement piece, neutrals around it."
		httputil.WriteJSON(w, http.StatusOK, reply)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.wardrobeByUser(viewerID(r))
	if len(items) == 0 {
		reply["text"] = "Your wardrobe is empty. Add a few pieces and ask again."
		httputil.WriteJSON(w, http.StatusOK, reply)
		return
	}

	itemJSON := make([]map[string]any, 0, len(items))
	for _, it := range items {
		itemJSON = append(itemJSON, map[string]any{
			"itemId":   it.ID,
			"imageUrl": it.ImageURL,
			"category": it.Category,
		})
	}

	picked := items
	if len(picked) > 3 {
		picked = picked[:3]
	}
	ids := make([]string, 0, len(picked))
	for _, it := range picked {
		ids = append(ids, it.ID)
	}

	reply["text"] = fmt.Sprintf("Here is a look from your wardrobe for %q.", req.Message)
	reply["wardrobeItems"] = itemJSON
	reply["outfits"] = []map[string]any{{
		"name":        "Today's pick",
		"description": "Built from your most recent wardrobe pieces.",
		"items":       ids,
	}}
	httputil.WriteJSON(w, http.StatusOK, reply)
}

// wardrobeByUser returns a user's wardrobe items, newest first. Caller
// holds the lock.
func (s *Server) wardrobeByUser(userID string) []*wardrobeItem {
	var out []*wardrobeItem
	for _, it := range s.wardrobe {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
