package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Role represents the user's permission level in the club.
type Role string

const (
	// RoleAdmin may create books, weeks, chapters and questions.
	RoleAdmin Role = "admin"
	// RoleMember reads, comments and answers.
	RoleMember Role = "member"
)

// Username length bounds, in runes.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
)

// User is a club member. PasswordHash never leaves the server.
type User struct {
	Entity
	Username       string `json:"username"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	CurrentChapter int    `json:"currentChapter"`
	Role           Role   `json:"role"`
}

// IsAdmin reports whether the user may manage club content.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Ref returns the public reference embedded in comments and answers.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}

// UserRef is the author block attached to comments and answers.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NormalizeUsername returns the key used for uniqueness checks: NFKC
// normalised, trimmed and lower-cased. "Ａlice" and "alice" collide.
func NormalizeUsername(username string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(username)))
}

// CleanUsername trims surrounding whitespace and NFKC-normalises the
// display form without changing case.
func CleanUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}
