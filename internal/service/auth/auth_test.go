package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claims(userID, role string, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":     AccessToken,
		"user_id": userID,
		"email":   "rider@example.in",
		"role":    role,
		"iss":     "cabshare-idp",
		"iat":     time.Now().Unix(),
		"exp":     exp.Unix(),
	}
}

func TestRoleCheck(t *testing.T) {
	svc := NewAuthService(NewTokenService(secret, "cabshare-idp"), logger.New(io.Discard, "auth-test", logger.LevelError))
	userID := uuid.New()
	later := time.Now().Add(time.Hour)

	t.Run("valid passenger", func(t *testing.T) {
		u, err := svc.RoleCheck(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(secret), claims(userID.String(), "passenger", later)))
		require.NoError(t, err)
		assert.Equal(t, userID, u.ID)
		assert.Equal(t, types.RolePassenger, u.Role)
		assert.Equal(t, "rider@example.in", u.Email)
	})

	wrongType := claims(userID.String(), "driver", later)
	wrongType["typ"] = "refresh"
	wrongIssuer := claims(userID.String(), "driver", later)
	wrongIssuer["iss"] = "someone-else"
	noExp := claims(userID.String(), "driver", later)
	delete(noExp, "exp")

	tests := []struct {
		name   string
		token  string
		target error
	}{
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(secret), claims(userID.String(), "driver", time.Now().Add(-time.Minute))), ErrExpToken},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), claims(userID.String(), "driver", later)), ErrInvalidToken},
		{"wrong algorithm", sign(t, jwt.SigningMethodHS512, []byte(secret), claims(userID.String(), "driver", later)), ErrInvalidToken},
		{"refresh token", sign(t, jwt.SigningMethodHS256, []byte(secret), wrongType), ErrInvalidToken},
		{"foreign issuer", sign(t, jwt.SigningMethodHS256, []byte(secret), wrongIssuer), ErrInvalidToken},
		{"no expiry", sign(t, jwt.SigningMethodHS256, []byte(secret), noExp), ErrInvalidToken},
		{"bad user id", sign(t, jwt.SigningMethodHS256, []byte(secret), claims("42", "driver", later)), ErrInvalidToken},
		{"unknown role", sign(t, jwt.SigningMethodHS256, []byte(secret), claims(userID.String(), "pilot", later)), ErrUnknownRole},
		{"garbage", "not.a.token", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RoleCheck(context.Background(), tt.token)
			require.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, types.ErrUnauthorized)
		})
	}
}
