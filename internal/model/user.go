// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. The password hash is carried for
// credential verification only and is never serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
