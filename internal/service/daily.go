package service

import (
	"context"
	"fmt"
	"net/url"

	"fitcheck/internal/media"
	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// Daily wraps the /daily-posts resource: today's outfits and their ratings.
type Daily struct {
	client  *transport.Client
	session Session
}

func NewDaily(client *transport.Client, sess Session) *Daily {
	return &Daily{client: client, session: sess}
}

// List fetches today's daily posts. Missing data degrades to an empty
// collection.
func (s *Daily) List(ctx context.Context) ([]model.DailyPostRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var resp model.DailyPostListResponse
	if err := s.client.Get(ctx, "/daily-posts", nil, &resp); err != nil {
		return nil, fmt.Errorf("list daily posts: %w", err)
	}
	if resp.Data == nil {
		return []model.DailyPostRecord{}, nil
	}
	return resp.Data, nil
}

// Create uploads today's outfit.
func (s *Daily) Create(ctx context.Context, imagePath, caption string) (*model.DailyPostRecord, error) {
	if imagePath == "" {
		return nil, model.ErrMissingImage
	}
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	upload, err := media.PrepareImage(imagePath)
	if err != nil {
		return nil, err
	}

	form := &transport.Form{}
	form.AddField("caption", caption)
	form.AddFile("image", upload.Name, upload.ContentType, upload.Data)

	var resp model.DailyPostResponse
	if err := s.client.PostMultipart(ctx, "/daily-posts", form, &resp); err != nil {
		return nil, fmt.Errorf("create daily post: %w", err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("create daily post: server returned no post")
	}
	return resp.Data, nil
}

// Rate sets the viewer's rating on a daily post. Rating 0 clears an
// existing rating (tapping the same star again). The returned aggregate is
// authoritative.
func (s *Daily) Rate(ctx context.Context, id string, rating int) (*model.RateResult, error) {
	if rating < 0 || rating > model.MaxRating {
		return nil, model.ErrInvalidRating
	}
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var result model.RateResult
	err := s.client.Post(ctx, "/daily-posts/"+url.PathEscape(id)+"/rate", model.RateRequest{Rating: rating}, &result)
	if err != nil {
		return nil, fmt.Errorf("rate daily post %s: %w", id, err)
	}
	return &result, nil
}
