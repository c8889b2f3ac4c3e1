package auth

import "context"

// AuthVerifier verifica una credencial y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
