// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"landingkit/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// ProfessionalKey is the context key of the authenticated professional.
const ProfessionalKey contextKey = "professional"

var (
	ErrNoToken      = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the identity provider claims landingkit reads.
type Claims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone_number"`
	Picture           string `json:"picture"`
}

// Professional maps the claims onto a professional record. The subject
// must be a UUID.
func (c *Claims) Professional() (*models.Professional, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}
	username := c.PreferredUsername
	if username == "" {
		username, _, _ = strings.Cut(c.Email, "@")
	}
	if username == "" {
		return nil, fmt.Errorf("%w: no username claim", ErrInvalidToken)
	}
	return &models.Professional{
		ID:          id,
		Username:    username,
		DisplayName: c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		AvatarURL:   c.Picture,
	}, nil
}

// ProfessionalUpserter mirrors verified identities into storage.
type ProfessionalUpserter interface {
	Upsert(ctx context.Context, p *models.Professional) (*models.Professional, error)
}

// Identity verifies HS256 bearer tokens issued by the external identity
// provider. Tokens are never issued here.
type Identity struct {
	secret   []byte
	issuer   string
	audience string
	pros     ProfessionalUpserter
}

// NewIdentity creates an Identity. Empty issuer or audience are not checked.
func NewIdentity(secret, issuer, audience string, pros ProfessionalUpserter) *Identity {
	return &Identity{secret: []byte(secret), issuer: issuer, audience: audience, pros: pros}
}

// Verify parses and validates a token.
func (id *Identity) Verify(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if id.issuer != "" {
		opts = append(opts, jwt.WithIssuer(id.issuer))
	}
	if id.audience != "" {
		opts = append(opts, jwt.WithAudience(id.audience))
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return id.secret, nil
	}, opts...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Require rejects requests without a valid bearer token with 401 and
// stores the professional in the request context.
func (id *Identity) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pro, err := id.authenticate(r)
		if err != nil {
			slog.Debug("authentication failed", "path", r.URL.Path, "error", err)
			w.Header().Set("WWW-Authenticate", `Bearer realm="landingkit"`)
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithProfessional(r.Context(), pro)))
	})
}

func (id *Identity) authenticate(r *http.Request) (*models.Professional, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil, ErrNoToken
	}
	claims, err := id.Verify(token)
	if err != nil {
		return nil, err
	}
	pro, err := claims.Professional()
	if err != nil {
		return nil, err
	}
	if id.pros == nil {
		return pro, nil
	}
	stored, err := id.pros.Upsert(r.Context(), pro)
	if err != nil {
		return nil, fmt.Errorf("mirror professional: %w", err)
	}
	return stored, nil
}

// WithProfessional stores the authenticated professional in ctx.
func WithProfessional(ctx context.Context, p *models.Professional) context.Context {
	return context.WithValue(ctx, ProfessionalKey, p)
}

// ProfessionalFromCtx returns the authenticated professional, or nil.
func ProfessionalFromCtx(ctx context.Context) *models.Professional {
	p, _ := ctx.Value(ProfessionalKey).(*models.Professional)
	return p
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
