// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account of the contract server.
type User struct {
	// UserID is the internal identifier of the user.
	UserID int64 `json:"id"`

	// Login is the unique login used for authentication.
	Login string `json:"login"`

	// Name is the display name.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// Credentials is the body of the register and login endpoints.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Session is the client-side persisted authentication state.
type Session struct {
	Token string    `json:"token"`
	User  User      `json:"user"`
	At    time.Time `json:"at"`
}

// TableName returns the name of the database table associated with the User
// model.
func (u User) TableName() string {
	return "users"
}
