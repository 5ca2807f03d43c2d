package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// User is an administrator account. Passwords are stored as argon2id
// hashes; the plaintext never leaves the login request.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string       `gorm:"not null" json:"-"`
	Name         string       `gorm:"not null" json:"name"`
	Position     string       `json:"position,omitempty"`
	CreatedAt    time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Identity is the reduced view handed to clients after login. It never
// carries credential material.
type Identity struct {
	ID       snowflake.ID `json:"id"`
	Username string       `json:"username"`
	Name     string       `json:"name"`
	Position string       `json:"position,omitempty"`
	Role     string       `json:"role"`
}

type LoginRequest struct {
	Username string
	Password string
}

type LoginResult struct {
	User  Identity `json:"user"`
	Token string   `json:"token,omitempty"`
}

type UpdateAccountRequest struct {
	Name     *string
	Position *string
	Password *string
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	UpdateAccount(ctx context.Context, userID string, req UpdateAccountRequest) (Identity, error)
}

type Repository interface {
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*User, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	Update(ctx context.Context, db *gorm.DB, user *User) error
}

// ErrInvalidCredentials covers both unknown usernames and wrong
// passwords so callers cannot probe which usernames exist.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrNotFound           = errors.New("not_found")
)
