package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
	"github.com/homeservice/marketplace/internal/core/token"
)

// AuthService is the mock identity directory: it issues signed credentials
// for seeded accounts and answers the same questions the real backend does.
type AuthService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, loginID, password string) (string, *domain.User, error) {
	if loginID == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	acc, err := s.repo.FindByLoginID(ctx, loginID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.generateToken(acc.User)
	if err != nil {
		return "", nil, err
	}

	user := acc.User
	return signed, &user, nil
}

// CheckLoginID reports whether loginID is still free.
func (s *AuthService) CheckLoginID(ctx context.Context, loginID string) (bool, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return false, domain.ErrInvalidCredentials
	}
	_, err := s.repo.FindByLoginID(ctx, loginID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return true, nil
	case err != nil:
		return false, err
	}
	return false, nil
}

// ConfirmCustomer returns the account behind a valid credential. Invalid,
// expired or orphaned credentials are a rejection, not an error.
func (s *AuthService) ConfirmCustomer(ctx context.Context, raw string) (*domain.User, error) {
	claims, err := token.Verify(raw, s.jwtSecret)
	if err != nil {
		return nil, nil
	}

	acc, err := s.repo.FindByID(ctx, claims.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user := acc.User
	return &user, nil
}

func (s *AuthService) generateToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"name": user.Name,
		"exp":  s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
