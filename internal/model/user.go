package model

import (
	"strings"
	"time"
)

// User is the identity created by a (mock) signup or login.
type User struct {
	// ID is the creation time in Unix milliseconds. It never changes.
	ID int64 `json:"id"`

	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Age is free text and may be empty.
	Age string `json:"age"`

	// Avatar is a data URL or empty.
	Avatar string `json:"avatar"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewUser builds a fresh User for the given credentials. The display name
// is split on its first whitespace into first and last name.
func NewUser(id int64, email, name string, now time.Time) User {
	first, last := SplitName(name)
	return User{
		ID:        id,
		Email:     email,
		Name:      name,
		FirstName: first,
		LastName:  last,
		CreatedAt: now.UTC(),
	}
}

// SplitName splits a display name into first and last name on the first
// run of whitespace. "Ada" yields ("Ada", "").
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	idx := strings.IndexFunc(name, isSpace)
	if idx < 0 {
		return name, ""
	}
	return name[:idx], strings.TrimSpace(name[idx:])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// AuthState is the authentication slice. Authenticated is true exactly
// when User is non-nil.
type AuthState struct {
	User            *User   `json:"user"`
	IsAuthenticated bool    `json:"isAuthenticated"`
	IsLoading       bool    `json:"isLoading"`
	Error           *string `json:"error"`
}
