package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/readingclub/readingclub/internal/domain"
)

// Users lists every member.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User fetches one member.
func (c *Client) User(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/users/"+url.PathEscape(userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetProgress sets the member's absolute chapter progress.
func (c *Client) SetProgress(ctx context.Context, userID string, chapter int) (*domain.User, error) {
	var user domain.User
	path := "/users/" + url.PathEscape(userID) + "/progress/" + itoa(chapter)
	if err := c.put(ctx, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangeUsername renames the member.
func (c *Client) ChangeUsername(ctx context.Context, userID, username string) (*domain.User, error) {
	var user domain.User
	body := map[string]string{"username": username}
	if err := c.put(ctx, "/users/"+url.PathEscape(userID)+"/username", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the member's password.
func (c *Client) ChangePassword(ctx context.Context, userID, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.put(ctx, "/users/"+url.PathEscape(userID)+"/password", body, nil)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
