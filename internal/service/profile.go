package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fitcheck/internal/cache"
	"fitcheck/internal/media"
	"fitcheck/internal/model"
	"fitcheck/internal/transport"
)

// Profile wraps the /profile and /user resources. Profile reads go through
// a short-lived cache; every mutation invalidates the affected entries so
// the next read sees server truth.
type Profile struct {
	client  *transport.Client
	session Session
	cache   cache.Cache[*model.ProfileRecord]
}

func NewProfile(client *transport.Client, sess Session, c cache.Cache[*model.ProfileRecord]) *Profile {
	if c == nil {
		c = cache.New[*model.ProfileRecord](0, 0)
	}
	return &Profile{client: client, session: sess, cache: c}
}

// My fetches the viewer's own profile by way of the stored username.
func (s *Profile) My(ctx context.Context) (*model.ProfileRecord, error) {
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
	return s.Get(ctx, user.Username)
}

// Get fetches a profile by username, serving a fresh cached copy when one
// exists.
func (s *Profile) Get(ctx context.Context, username string) (*model.ProfileRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	if rec, ok := s.cache.Get(username); ok {
		return rec, nil
	}

	var resp model.ProfileResponse
	if err := s.client.Get(ctx, "/profile/"+url.PathEscape(username), nil, &resp); err != nil {
		if transport.StatusOf(err) == 404 {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile %s: %w", username, err)
	}
	if resp.Data == nil {
		return nil, model.ErrProfileNotFound
	}

	s.cache.Put(username, resp.Data)
	return resp.Data, nil
}

// Update patches the viewer's editable fields and returns the refreshed
// profile. Nil fields in req are left untouched server-side.
func (s *Profile) Update(ctx context.Context, req model.ProfileUpdateRequest) (*model.ProfileRecord, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	if err := s.client.Patch(ctx, "/profile", req, nil); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.invalidateSelf(ctx)
	return s.My(ctx)
}

// UploadPicture replaces the viewer's profile picture and returns the new
// URL.
func (s *Profile) UploadPicture(ctx context.Context, imagePath string) (string, error) {
	if imagePath == "" {
		return "", model.ErrMissingImage
	}
	if err := requireAuth(ctx, s.session); err != nil {
		return "", err
	}

	upload, err := media.PrepareImage(imagePath)
	if err != nil {
		return "", err
	}

	form := &transport.Form{}
	form.AddFile("image", upload.Name, upload.ContentType, upload.Data)

	var resp model.UploadPictureResponse
	if err := s.client.PostMultipart(ctx, "/profile/upload-picture", form, &resp); err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}

	s.invalidateSelf(ctx)
	return resp.ProfilePicture, nil
}

// Followers lists the usernames following the given user.
func (s *Profile) Followers(ctx context.Context, username string) ([]string, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var resp model.FollowersResponse
	if err := s.client.Get(ctx, "/user/followers/"+url.PathEscape(username), nil, &resp); err != nil {
		return nil, fmt.Errorf("followers of %s: %w", username, err)
	}
	if resp.Followers == nil {
		return []string{}, nil
	}
	return resp.Followers, nil
}

// Following lists the usernames the given user follows.
func (s *Profile) Following(ctx context.Context, username string) ([]string, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return nil, err
	}

	var resp model.FollowingResponse
	if err := s.client.Get(ctx, "/user/following/"+url.PathEscape(username), nil, &resp); err != nil {
		return nil, fmt.Errorf("following of %s: %w", username, err)
	}
	if resp.Following == nil {
		return []string{}, nil
	}
	return resp.Following, nil
}

// ToggleFollow follows or unfollows the target and reports the new state,
// derived from the server's message the way the mobile client did.
func (s *Profile) ToggleFollow(ctx context.Context, username string) (bool, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return false, err
	}

	var resp model.MessageResponse
	if err := s.client.Post(ctx, "/user/follow/"+url.PathEscape(username), nil, &resp); err != nil {
		return false, fmt.Errorf("toggle follow %s: %w", username, err)
	}

	isFollowing := strings.Contains(resp.Message, "Followed")

	s.cache.Invalidate(username)
	s.invalidateSelf(ctx)
	return isFollowing, nil
}

// IsFollowing reports whether the viewer follows the target.
func (s *Profile) IsFollowing(ctx context.Context, username string) (bool, error) {
	if err := requireAuth(ctx, s.session); err != nil {
		return false, err
	}

	var resp model.IsFollowingResult
	if err := s.client.Get(ctx, "/user/is-following/"+url.PathEscape(username), nil, &resp); err != nil {
		return false, fmt.Errorf("is-following %s: %w", username, err)
	}
	return resp.IsFollowing, nil
}

func (s *Profile) invalidateSelf(ctx context.Context) {
	user, err := s.session.User(ctx)
	if err != nil || user == nil {
		return
	}
	s.cache.Invalidate(user.Username)
}
