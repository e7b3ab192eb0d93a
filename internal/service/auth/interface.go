package auth

import "context"

type TokenValidator interface {
	Validate(ctx context.Context, token string) (*Claims, error)
}
