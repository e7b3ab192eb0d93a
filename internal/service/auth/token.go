package auth

import (
	"context"
	"errors"
	"fmt"

	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessToken is the only token type accepted by the services.
const AccessToken = "access"

// Claims of an access token issued by the identity provider.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService verifies HS256 tokens signed with secret. An empty issuer accepts any issuer.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Validate validates the given JWT token string, returning the claims if valid.
func (s *TokenService) Validate(ctx context.Context, token string) (*Claims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, wrap.Error(ctx, ErrExpToken)
	case err != nil || !parsed.Valid:
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	if claims.TokenType != AccessToken {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: token type %q", ErrInvalidToken, claims.TokenType))
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: invalid 'user_id' in token claims", ErrInvalidToken))
	}

	return claims, nil
}
