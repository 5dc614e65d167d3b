package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/homeservice/marketplace/internal/core/domain"
)

// Reason classifies the outcome of decoding a credential.
type Reason string

const (
	ReasonOK        Reason = "ok"
	ReasonAbsent    Reason = "absent"
	ReasonMalformed Reason = "malformed"
	ReasonExpired   Reason = "expired"
)

var (
	errNoSubject = errors.New("token has no usable subject")
	errNoRole    = errors.New("token has no usable role")
)

// DecodeResult is the typed outcome of Decode. Claims are populated for
// ReasonOK and ReasonExpired.
type DecodeResult struct {
	Claims domain.Claims
	Reason Reason
	Err    error
}

// OK reports whether the credential decoded and has not expired.
func (r DecodeResult) OK() bool { return r.Reason == ReasonOK }

// Decode reads the claims of raw without verifying its signature. A
// credential that is empty after stripping its scheme counts as absent.
func Decode(raw string, now time.Time) DecodeResult {
	bare := strip(raw)
	if bare == "" {
		return DecodeResult{Reason: ReasonAbsent}
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(bare, mc); err != nil {
		return DecodeResult{Reason: ReasonMalformed, Err: fmt.Errorf("decode token: %w", err)}
	}

	claims, err := fromMap(mc)
	if err != nil {
		return DecodeResult{Reason: ReasonMalformed, Err: fmt.Errorf("decode token: %w", err)}
	}

	if !claims.ExpiresAt.IsZero() && !now.Before(claims.ExpiresAt) {
		return DecodeResult{Claims: claims, Reason: ReasonExpired}
	}
	return DecodeResult{Claims: claims, Reason: ReasonOK}
}

func fromMap(mc jwt.MapClaims) (domain.Claims, error) {
	var c domain.Claims

	sub, ok := subject(mc)
	if !ok {
		return c, errNoSubject
	}
	c.Subject = sub

	roleStr, _ := mc["role"].(string)
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return c, errNoRole
	}
	c.Role = role

	c.Name, _ = mc["name"].(string)

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return c, err
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// subject accepts "sub" or "id", encoded either as a JSON number or as a
// decimal string.
func subject(mc jwt.MapClaims) (int64, bool) {
	for _, key := range []string{"sub", "id"} {
		switch v := mc[key].(type) {
		case float64:
			if v > 0 && v == float64(int64(v)) {
				return int64(v), true
			}
		case string:
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				return id, true
			}
		}
	}
	return 0, false
}
