package domain

import (
	"errors"
	"strings"
)

// Role is the marketplace surface a user is allowed to act on.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

var (
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
)

// ParseRole maps a claim or stored value onto a Role. Matching is
// case-insensitive; anything outside the three known roles is rejected.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrUnknownRole
}

// User is the identity cached in a session.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Account is a user record of the mock auth directory.
type Account struct {
	User
	LoginID      string `json:"login_id"`
	PasswordHash string `json:"-"`
}

// SocialProfile is the transient record kept between an OAuth callback and
// the signup form.
type SocialProfile struct {
	Provider   string `json:"provider"    validate:"required,oneof=kakao naver google"`
	ProviderID string `json:"provider_id" validate:"required"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Name       string `json:"name"`
}
