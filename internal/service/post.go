package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// Posts wraps the /posts resource.
type Posts struct {
	client  *transport.Client
	session Session
}

func NewPosts(client *transport.Client, sess Session) *Posts {
	return &Posts{client: client, session: sess}
}

// Get fetches one post. Some deployments wrap the post in a data envelope
// and some return it bare; both are normalized here.
func (s *Posts) Get(ctx context.Context, id string) (*model.PostRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := s.client.Get(ctx, "/posts/"+url.PathEscape(id), nil, &raw); err != nil {
		if transport.StatusOf(err) == 404 {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	var envelope model.PostResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var rec model.PostRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("get post %s: decode: %w", id, err)
	}
	return &rec, nil
}

// Delete removes the viewer's post. 403 and 404 map to distinguishable
// domain errors so the screens can word the alert.
func (s *Posts) Delete(ctx context.Context, id string) error {
	if err := requireAuth(ctx, s.session); err != nil {
		return err
	}

	if err := s.client.Delete(ctx, "/posts/"+url.PathEscape(id), nil); err != nil {
		switch transport.StatusOf(err) {
		case 403:
			return model.ErrPostForbidden
		case 404:
			return model.ErrPostNotFound
		}
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

// ToggleLike flips the viewer's like on a post and returns the server's
// authoritative count.
func (s *Posts) ToggleLike(ctx context.Context, id string) (*model.ToggleLikeResult, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var result model.ToggleLikeResult
	if err := s.client.Patch(ctx, "/posts/"+url.PathEscape(id)+"/toggle-like", nil, &result); err != nil {
		return nil, fmt.Errorf("toggle like on post %s: %w", id, err)
	}
	return &result, nil
}

// IsLiked reports whether the viewer has liked a post.
func (s *Posts) IsLiked(ctx context.Context, id string) (bool, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return false, err
	}

	var result model.IsLikedResult
	if err := s.client.Get(ctx, "/posts/"+url.PathEscape(id)+"/is-liked", nil, &result); err != nil {
		return false, fmt.Errorf("check like on post %s: %w", id, err)
	}
	return result.IsLiked, nil
}

// Comments fetches one page of comments for a post.
func (s *Posts) Comments(ctx context.Context, id string, page, limit int) ([]model.CommentRecord, error) {
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

	var resp model.CommentListResponse
	if err := s.client.Get(ctx, "/posts/"+url.PathEscape(id)+"/comments", query, &resp); err != nil {
		return nil, fmt.Errorf("list comments for post %s: %w", id, err)
	}
	if resp.Data == nil {
		return []model.CommentRecord{}, nil
	}
	return resp.Data, nil
}

// AddComment appends a comment to a post. Whitespace-only text is rejected
// before any request goes out.
func (s *Posts) AddComment(ctx context.Context, id, text string) (*model.CommentRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.ErrEmptyComment
	}
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var resp model.CommentResponse
	err := s.client.Post(ctx, "/posts/"+url.PathEscape(id)+"/comments", model.AddCommentRequest{Text: text}, &resp)
	if err != nil {
		return nil, fmt.Errorf("add comment to post %s: %w", id, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("add comment to post %s: server returned no comment", id)
	}
	return resp.Data, nil
}

// Related fetches posts related to the given one (same category).
func (s *Posts) Related(ctx context.Context, id string, limit int) ([]model.PostRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 4
	}

	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var resp model.PostListResponse
	if err := s.client.Get(ctx, "/posts/"+url.PathEscape(id)+"/related", query, &resp); err != nil {
		return nil, fmt.Errorf("related posts for %s: %w", id, err)
	}
	if resp.Data == nil {
		return []model.PostRecord{}, nil
	}
	return resp.Data, nil
}

// ByCategory fetches one page of posts in a category.
func (s *Posts) ByCategory(ctx context.Context, category string, page, limit int) ([]model.PostRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	query := url.Values{"category": {category}}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp model.PostListResponse
	if err := s.client.Get(ctx, "/posts", query, &resp); err != nil {
		return nil, fmt.Errorf("posts by category %s: %w", category, err)
	}
	if resp.Data == nil {
		return []model.PostRecord{}, nil
	}
	return resp.Data, nil
}
