package ports

import (
	"context"

	"github.com/homeservice/marketplace/internal/core/domain"
)

// AuthBackend is the identity backend the gateway talks to. It is served
// either by the external REST API or by the local mock directory.
type AuthBackend interface {
	// CheckLoginID reports whether loginID is still free for signup.
	CheckLoginID(ctx context.Context, loginID string) (bool, error)
	// ConfirmCustomer resolves the profile behind token. A rejected token
	// yields (nil, nil); only transport failures return an error.
	ConfirmCustomer(ctx context.Context, token string) (*domain.User, error)
}

// AuthService issues credentials for the mock login flow.
type AuthService interface {
	AuthBackend
	Login(ctx context.Context, loginID, password string) (string, *domain.User, error)
}
