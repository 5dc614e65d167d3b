package memory

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/infrastructure/db/fixtures"
)

// AccountRepository is the mock user directory. It is read-only after
// construction.
type AccountRepository struct {
	byLoginID map[string]domain.Account
	byID      map[int64]domain.Account
}

// NewAccountRepository hashes the seed passwords with the given bcrypt cost.
func NewAccountRepository(seed []fixtures.SeedAccount, cost int) (*AccountRepository, error) {
	r := &AccountRepository{
		byLoginID: make(map[string]domain.Account, len(seed)),
		byID:      make(map[int64]domain.Account, len(seed)),
	}
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", s.LoginID, err)
		}
		acc := domain.Account{User: s.User, LoginID: s.LoginID, PasswordHash: string(hash)}
		r.byLoginID[acc.LoginID] = acc
		r.byID[acc.ID] = acc
	}
	return r, nil
}

func (r *AccountRepository) FindByLoginID(_ context.Context, loginID string) (*domain.Account, error) {
	acc, ok := r.byLoginID[loginID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &acc, nil
}

func (r *AccountRepository) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	acc, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &acc, nil
}
