package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// User is the profile attached to an X-User-Id identity
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Initials  string    `json:"initials"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is the request body for PUT /api/me
type ProfileUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Initials returns the first letter of the first and last name, or "--"
// when either is missing.
func Initials(u *User) string {
	if u == nil || u.FirstName == "" || u.LastName == "" {
		return "--"
	}
	return firstRune(u.FirstName) + firstRune(u.LastName)
}

// AccountInitials derives upper-cased initials from a free-form display name.
// A single word yields its first two letters.
func AccountInitials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "--"
	case 1:
		r := []rune(parts[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[len(parts)-1]))
	}
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}
