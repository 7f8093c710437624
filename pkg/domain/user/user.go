package user

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials do not match.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Role is a user's authorization level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered shopper or administrator.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Names     string    `json:"names"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// NewUser creates a new User with a hashed password and current timestamps.
func NewUser(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, domain.Invalid("username cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, domain.Invalid("invalid email %q", email)
	}
	if password == "" {
		return nil, domain.Invalid("password cannot be empty")
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Promote grants the admin role.
func (u *User) Promote() {
	u.Role = RoleAdmin
	u.UpdatedAt = time.Now().UTC()
}

// Rename sets the display names.
func (u *User) Rename(names string) {
	u.Names = strings.TrimSpace(names)
	u.UpdatedAt = time.Now().UTC()
}
