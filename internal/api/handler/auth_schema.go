package handler

import "github.com/homeservice/marketplace/internal/core/domain"

type loginRequest struct {
	LoginID  string `json:"loginId"  validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string         `json:"token,omitempty"`
	Session domain.Session `json:"session"`
}

type sessionResponse struct {
	Session  domain.Session `json:"session"`
	Valid    bool           `json:"valid"`
	Reason   string         `json:"reason"`
	Tampered bool           `json:"tampered,omitempty"`
}

type checkIDResponse struct {
	Available bool `json:"available"`
}
