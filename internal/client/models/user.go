// Package models defines the data shapes exchanged with the QMS Hub backend
// and the client-side conversation state. JSON tags mirror the backend's
// field casing.
package models

import "strings"

// User is the profile returned by GET api/user.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Role     string `json:"role"`
}

// RoleAdmin is the role claim value that routes to the admin surface.
const RoleAdmin = "admin"

// IsAdmin reports whether the user's role grants the admin view.
// The backend has been seen emitting both "admin" and "Admin".
func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

// TokenPair is the credential payload returned by sign-in and sign-up.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
