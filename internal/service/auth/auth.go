package auth

import (
	"context"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/google/uuid"
)

// AuthService turns bearer tokens into callers. Accounts live with the identity
// provider; this service only trusts its signature.
type AuthService struct {
	tokens TokenValidator
	log    logger.Logger
}

func NewAuthService(tokens TokenValidator, log logger.Logger) *AuthService {
	return &AuthService{
		tokens: tokens,
		log:    log,
	}
}

// RoleCheck validates an access token and returns the caller it names.
func (s *AuthService) RoleCheck(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		s.log.Debug(wrap.ErrorCtx(ctx, err), "access token rejected", "reason", err.Error())
		return nil, err
	}

	role := types.UserRole(claims.Role)
	switch role {
	case types.RolePassenger, types.RoleDriver, types.RoleAdmin:
	default:
		return nil, wrap.Error(ctx, ErrUnknownRole)
	}

	return &models.User{
		ID:    uuid.MustParse(claims.UserID),
		Email: claims.Email,
		Role:  role,
	}, nil
}
