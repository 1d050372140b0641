package sqlite

import (
	"context"
	"errors"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/store"
)

// userColumns must match the scan order in scanUser.
const userColumns = `id, created_at, updated_at, username, email, password_hash, current_chapter, role`

func scanUser(scanner rowScanner) (*domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt string
		role                 string
	)
	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&updatedAt,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CurrentChapter,
		&role,
	)
	if err != nil {
		return nil, err
	}
	if u.CreatedAt, u.UpdatedAt, err = scanTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

// CreateUser inserts a new user.
// Returns store.ErrAlreadyExists if the id or normalised username is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, created_at, updated_at, username, username_key,
			email, password_hash, current_chapter, role
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Username,
		domain.NormalizeUsername(user.Username),
		user.Email,
		user.PasswordHash,
		user.CurrentChapter,
		string(user.Role),
	)
	return mapWriteError(err)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUserByUsername looks a user up case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username_key = ?`, domain.NormalizeUsername(username))
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ListUsers returns every user in registration order.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

// CountUsers returns the number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// UpdateUser performs a full row update.
// Returns store.ErrNotFound if the user does not exist and
// store.ErrAlreadyExists if the new username collides.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			updated_at = ?, username = ?, username_key = ?, email = ?,
			password_hash = ?, current_chapter = ?, role = ?
		WHERE id = ?`,
		formatTime(user.UpdatedAt),
		user.Username,
		domain.NormalizeUsername(user.Username),
		user.Email,
		user.PasswordHash,
		user.CurrentChapter,
		string(user.Role),
		user.ID,
	)
	if err := expectOneRow(res, err); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound.For("user")
		}
		return err
	}
	return nil
}
