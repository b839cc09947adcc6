package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"fitcheck/internal/media"
	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// TrendingFilter is the pseudo-category meaning "no category filter".
const TrendingFilter = "Trending"

// Explore wraps the explore feed and post creation.
type Explore struct {
	client  *transport.Client
	session Session
}

func NewExplore(client *transport.Client, sess Session) *Explore {
	return &Explore{client: client, session: sess}
}

// exploreResponse matches the backend's {posts: [...]} envelope, which
// differs from the data envelope the other list endpoints use.
type exploreResponse struct {
	Posts []model.PostRecord `json:"posts"`
}

// Fetch loads one page of the explore feed. Category "" or "Trending"
// means unfiltered.
func (s *Explore) Fetch(ctx context.Context, page, limit int, category string) ([]model.PostRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if category != "" && category != TrendingFilter {
		query.Set("category", category)
	}

	var resp exploreResponse
	if err := s.client.Get(ctx, "/explore", query, &resp); err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}
	if resp.Posts == nil {
		return []model.PostRecord{}, nil
	}
	return resp.Posts, nil
}

// CreatePostInput is the local input for a new post. Mentions travel as a
// JSON array string inside the form, matching the backend's expectation.
type CreatePostInput struct {
	ImagePath string
	Caption   string
	Location  string
	Category  string
	Mentions  []string
}

// CreatePost uploads a new post. The image is required; everything else is
// optional.
func (s *Explore) CreatePost(ctx context.Context, input CreatePostInput) (*model.PostRecord, error) {
	if input.ImagePath == "" {
		return nil, model.ErrMissingImage
	}
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	upload, err := media.PrepareImage(input.ImagePath)
	if err != nil {
		return nil, err
	}

	form := &transport.Form{}
	form.AddField("caption", input.Caption)
	form.AddField("location", input.Location)
	form.AddField("category", input.Category)
	if len(input.Mentions) > 0 {
		form.AddField("mentions", jsonArray(input.Mentions))
	}
	form.AddFile("image", upload.Name, upload.ContentType, upload.Data)

	var resp model.PostResponse
	if err := s.client.PostMultipart(ctx, "/posts", form, &resp); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("create post: server returned no post")
	}
	return resp.Data, nil
}

func jsonArray(items []string) string {
	out := "["
	for i, item := range items {
		if i > 0 {
			out += ","
		}
		out += strconv.Quote(item)
	}
	return out + "]"
}
