package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/api/metrics"
	"github.com/homeservice/marketplace/internal/core/guard"
	"github.com/homeservice/marketplace/internal/core/ports"
	"github.com/homeservice/marketplace/internal/core/session"
	"github.com/homeservice/marketplace/internal/core/token"
)

const (
	visitorKey      = "visitor"
	clientCookieAge = 365 * 24 * time.Hour
)

// Visitor holds the per-request containers of one client. Everything is
// rebuilt from client storage on each request and discarded afterwards.
type Visitor struct {
	ClientID  string
	Storage   ports.Storage
	Tokens    *token.Store
	Session   *session.Store
	Validator *guard.Validator
	Tamper    *guard.TamperHandler
	Navigator *Navigator

	resolved bool
}

// Ready reports whether the session could be resolved for this request.
func (v *Visitor) Ready() bool { return v.resolved }

// CurrentVisitor returns the visitor installed by the LoadVisitor middleware.
func CurrentVisitor(c echo.Context) *Visitor {
	v, _ := c.Get(visitorKey).(*Visitor)
	return v
}

// Navigator records the redirect and alert a guard asked for so the
// middleware can turn them into a response.
type Navigator struct {
	mu     sync.Mutex
	target string
	alert  string
}

func (n *Navigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = path
}

func (n *Navigator) Alert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alert = message
}

func (n *Navigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

func (n *Navigator) AlertMessage() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.alert
}

// VisitorConfig wires the LoadVisitor middleware.
type VisitorConfig struct {
	CookieName   string
	SecureCookie bool
	Storage      ports.StorageProvider
	// Backend confirms the profile behind a stored credential when no
	// session exists yet. Nil disables the lookup.
	Backend ports.AuthBackend
	Log     zerolog.Logger
}

// LoadVisitor identifies the client by cookie, issuing a new id when needed,
// and installs its containers on the context.
func LoadVisitor(cfg VisitorConfig) echo.MiddlewareFunc {
	log := cfg.Log.With().Str("component", "visitor").Logger()
	resolver := session.NewResolver(cfg.Backend, log)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			clientID := clientIDFrom(c, cfg)

			v := newVisitor(ctx, clientID, cfg.Storage.ForClient(clientID), log)
			defer v.Session.Close()

			if v.resolved {
				before := v.Session.Snapshot().IsLoggedIn
				err := resolver.Resolve(ctx, v.Session, v.Tokens)
				switch {
				case errors.Is(err, session.ErrUnresolved):
					v.resolved = false
					metrics.SessionResolutionsTotal.WithLabelValues("unresolved").Inc()
				case err != nil:
					log.Warn().Err(err).Str("client_id", clientID).Msg("session resolution failed")
				case !before && v.Session.Snapshot().IsLoggedIn:
					metrics.SessionResolutionsTotal.WithLabelValues("confirmed").Inc()
				}
			}

			c.Set(visitorKey, v)
			return next(c)
		}
	}
}

func newVisitor(ctx context.Context, clientID string, storage ports.Storage, log zerolog.Logger) *Visitor {
	log = log.With().Str("client_id", clientID).Logger()
	storage = instrumentedStorage{storage}

	initial, err := session.Rehydrate(ctx, storage, session.StorageKey, log)
	resolved := err == nil
	if err != nil {
		log.Warn().Err(err).Msg("session rehydration failed")
	}

	tokens := token.NewStore(storage, log)
	sess := session.New(initial)
	sess.Subscribe(session.NewPersister(storage, session.StorageKey, log))

	nav := &Navigator{}
	return &Visitor{
		ClientID:  clientID,
		Storage:   storage,
		Tokens:    tokens,
		Session:   sess,
		Validator: guard.NewValidator(sess, tokens),
		Tamper:    guard.NewTamperHandler(sess, tokens, nav, log),
		Navigator: nav,
		resolved:  resolved,
	}
}

func clientIDFrom(c echo.Context, cfg VisitorConfig) string {
	if ck, err := c.Cookie(cfg.CookieName); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(clientCookieAge / time.Second),
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// instrumentedStorage counts storage failures.
type instrumentedStorage struct {
	ports.Storage
}

func (s instrumentedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.Storage.Get(ctx, key)
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("get").Inc()
	}
	return v, ok, err
}

func (s instrumentedStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := s.Storage.Set(ctx, key, value, ttl)
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("set").Inc()
	}
	return err
}

func (s instrumentedStorage) Delete(ctx context.Context, key string) error {
	err := s.Storage.Delete(ctx, key)
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("delete").Inc()
	}
	return err
}
