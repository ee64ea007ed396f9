// Package models holds the client-side view of server resources.
package models

import "time"

// User is the account as returned by the auth API.
type User struct {
	ID         string     `json:"_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
