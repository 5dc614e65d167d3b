package ports

import (
	"context"

	"github.com/homeservice/marketplace/internal/core/domain"
)

// AccountRepository defines lookup operations over the user directory.
type AccountRepository interface {
	FindByLoginID(ctx context.Context, loginID string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}
