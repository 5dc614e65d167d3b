// Package backend talks to the marketplace REST API the gateway fronts.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/token"
)

const defaultTimeout = 10 * time.Second

// StatusError is returned for any non-2xx response that the caller does
// not translate into a domain outcome.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http %d", e.Method, e.Path, e.Code)
}

// Client implements ports.AuthBackend and ports.NotificationBackend over
// HTTP. Login id availability can be cached in Redis.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// UseRedisCache enables caching of check-id answers.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

type checkIDResponse struct {
	Available bool `json:"available"`
}

func (c *Client) CheckLoginID(ctx context.Context, loginID string) (bool, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return false, domain.ErrInvalidCredentials
	}

	cacheKey := "check-id:" + loginID
	var resp checkIDResponse
	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Available, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/auth/check-id?loginId=%s", c.baseURL, url.QueryEscape(loginID))
	if err := c.doJSON(ctx, http.MethodGet, endpoint, "", &resp); err != nil {
		return false, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.Available, nil
}

// ConfirmCustomer fails closed: a 401, 403 or 404 answer, or an empty
// profile, is a rejection. Transport failures and 5xx are errors.
func (c *Client) ConfirmCustomer(ctx context.Context, raw string) (*domain.User, error) {
	var user *domain.User
	err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/customers/confirm", raw, &user)

	var se *StatusError
	if errors.As(err, &se) && se.Code < http.StatusInternalServerError {
		c.log.Debug().Int("status", se.Code).Msg("customer confirmation rejected")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == 0 {
		return nil, nil
	}
	if _, err := domain.ParseRole(string(user.Role)); err != nil {
		return nil, nil
	}
	return user, nil
}

func (c *Client) List(ctx context.Context, raw string) ([]domain.Notification, error) {
	var list []domain.Notification
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/notifications", raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) MarkAllRead(ctx context.Context, raw string) error {
	return c.doJSON(ctx, http.MethodPatch, c.baseURL+"/notifications/read-all", raw, nil)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, credential string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", token.Normalize(credential))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: req.URL.Path, Code: resp.StatusCode}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("backend cache write failed")
	}
}
