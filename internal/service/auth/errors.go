package auth

import (
	"fmt"

	"github.com/Temutjin2k/cabshare/internal/domain/types"
)

var (
	ErrInvalidToken = types.ErrInvalidToken
	ErrExpToken     = fmt.Errorf("expired token: %w", types.ErrUnauthorized)
	ErrUnknownRole  = fmt.Errorf("unknown role in token: %w", types.ErrUnauthorized)
)
