package iam

import (
	"context"
	"errors"
	"fmt"

	"medication-adherence/internal/ports/auth"
)

// Verifier implementa auth.AuthVerifier delegando en el proveedor de identidad.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("iam verify failed: %w", err)
	}
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("iam claims missing user id")
	}
	if claims.Role == "" {
		claims.Role = "patient"
	}
	return claims, nil
}
