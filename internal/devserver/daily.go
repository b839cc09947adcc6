package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fitcheck/internal/httputil"
	"fitcheck/internal/model"
)

func (s *Server) handleListDaily(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer := viewerID(r)
	data := make([]map[string]any, 0, len(s.daily))
	for _, dp := range s.daily {
		data = append(data, s.dailyJSON(dp, viewer))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *Server) handleCreateDaily(w http.ResponseWriter, r *http.Request) {
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

	dp := &dailyPost{
		ID:        uuid.NewString(),
		UserID:    viewerID(r),
		ImageURL:  newMediaURL("daily"),
		Caption:   r.FormValue("caption"),
		CreatedAt: time.Now(),
		Ratings:   make(map[string]int),
	}

	s.mu.Lock()
	s.daily[dp.ID] = dp
	body := s.dailyJSON(dp, viewerID(r))
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"data": body})
}

func (s *Server) handleRateDaily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Rating < 0 || req.Rating > model.MaxRating {
		httputil.WriteBadRequest(w, "Rating must be between 1 and 5")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dp, ok := s.daily[chi.URLParam(r, "id")]
	if !ok {
		httputil.WriteNotFound(w, "Daily post not found")
		return
	}

	viewer := viewerID(r)
	if req.Rating == 0 {
		delete(dp.Ratings, viewer)
	} else {
		dp.Ratings[viewer] = req.Rating
	}

	avg, total := dailyAggregate(dp)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"averageRating": avg,
		"totalRatings":  total,
		"userRating":    dp.Ratings[viewer],
	})
}

// dailyJSON renders a daily post with the embedded owner under userId, the
// shape the home screen's transformer expects. Caller holds the lock.
func (s *Server) dailyJSON(dp *dailyPost, viewer string) map[string]any {
	avg, total := dailyAggregate(dp)
	out := map[string]any{
		"_id":           dp.ID,
		"imageUrl":      dp.ImageURL,
		"caption":       dp.Caption,
		"timestamp":     dp.CreatedAt.UTC().Format(time.RFC3339),
		"userId":        userSummaryJSON(s.users[dp.UserID]),
		"averageRating": avg,
		"totalRatings":  total,
	}
	if rating, ok := dp.Ratings[viewer]; ok {
		out["userRating"] = rating
	}
	return out
}

func dailyAggregate(dp *dailyPost) (float64, int) {
	if len(dp.Ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, rating := range dp.Ratings {
		sum += rating
	}
	return float64(sum) / float64(len(dp.Ratings)), len(dp.Ratings)
}
