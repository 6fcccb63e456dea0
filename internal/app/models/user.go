package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthUser is the credential row behind a session
type AuthUser struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Profile is the public identity of a family member, keyed by the auth user id
type Profile struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	FullName  string     `json:"fullName" db:"full_name"`
	Email     string     `json:"email" db:"email"`
	AvatarURL *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	Bio       *string    `json:"bio,omitempty" db:"bio"`
	Phone     *string    `json:"phone,omitempty" db:"phone"`
	Location  *string    `json:"location,omitempty" db:"location"`
	Birthday  *time.Time `json:"birthday,omitempty" db:"birthday"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// NewAccount carries everything needed to open an account in one go
type NewAccount struct {
	Email        string
	PasswordHash string
	FullName     string
	Birthday     *time.Time
	Role         Role
}
