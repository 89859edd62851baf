package user

import (
	"strconv"
	"strings"
	"time"
)

// User is the single signed-in account of a browser session.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Patch carries the editable profile fields. Nil fields are left untouched.
type Patch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// FromCredentials synthesizes the record a mocked login produces. Any input
// is accepted, including empty strings.
func FromCredentials(name, email string, now time.Time) User {
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return User{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Name:      name,
		Email:     email,
		CreatedAt: now,
	}
}

// Apply merges the patch into u and returns the result.
func (p Patch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}
