package service

import (
	"context"
	"fmt"
	"net/url"

	"fitcheck/internal/media"
	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// Wardrobe wraps the /wardrobe resource.
type Wardrobe struct {
	client  *transport.Client
	session Session
}

func NewWardrobe(client *transport.Client, sess Session) *Wardrobe {
	return &Wardrobe{client: client, session: sess}
}

// List fetches wardrobe items, optionally filtered by category. An empty
// username targets the viewer's own wardrobe. Missing server data degrades
// to an empty collection.
func (s *Wardrobe) List(ctx context.Context, category model.Category, username string) ([]model.WardrobeRecord, error) {
	if username == "" {
		if err := requireAuth(ctx, s.session); err != nil {
			return nil, err
		}
		user, err := s.session.User(ctx)
		if err != nil {
			return nil, err
		}
		if user == nil || user.Username == "" {
			return nil, model.ErrUserDataMissing
		}
		username = user.Username
	}

	query := url.Values{}
	if category != "" {
		query.Set("category", string(category))
	}

	var resp model.WardrobeListResponse
	if err := s.client.Get(ctx, "/wardrobe/"+url.PathEscape(username), query, &resp); err != nil {
		return nil, fmt.Errorf("list wardrobe: %w", err)
	}

	if resp.Data == nil {
		return []model.WardrobeRecord{}, nil
	}
	return resp.Data, nil
}

// Add uploads a device image with its category and description. Input
// presence is the caller's job; this service only builds the request.
func (s *Wardrobe) Add(ctx context.Context, imagePath string, category model.Category, description string) (*model.WardrobeRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	upload, err := media.PrepareImage(imagePath)
	if err != nil {
		return nil, err
	}

	form := &transport.Form{}
	form.AddField("category", string(category))
	form.AddField("description", description)
	form.AddFile("image", upload.Name, upload.ContentType, upload.Data)

	var resp model.WardrobeItemResponse
	if err := s.client.PostMultipart(ctx, "/wardrobe", form, &resp); err != nil {
		return nil, fmt.Errorf("add wardrobe item: %w", err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("add wardrobe item: server returned no item")
	}
	return resp.Data, nil
}

// Delete removes an item by id. Callers update local state only after this
// returns nil.
func (s *Wardrobe) Delete(ctx context.Context, id string) error {
	if err := requireAuth(ctx, s.session); err != nil {
		return err
	}

	if err := s.client.Delete(ctx, "/wardrobe/"+url.PathEscape(id), nil); err != nil {
		if transport.StatusOf(err) == 404 {
			return model.ErrWardrobeItemNotFound
		}
		return fmt.Errorf("delete wardrobe item: %w", err)
	}
	return nil
}
