package jwtauth

import (
	"context"
	"testing"
	"time"

	"medication-adherence/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	v, err := NewVerifier(Options{Secret: "s3cret", Issuer: "identity"})
	require.NoError(t, err)

	tok, err := v.Sign(auth.Claims{UserID: "c1", Email: "c@x.io", Role: "Clinician"}, time.Hour)
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "c1", Email: "c@x.io", Role: "clinician"}, c)
}

func TestVerify_DefaultsRoleToPatient(t *testing.T) {
	v, err := NewVerifier(Options{Secret: "s3cret"})
	require.NoError(t, err)

	tok, err := v.Sign(auth.Claims{UserID: "p1"}, time.Hour)
	require.NoError(t, err)

	c, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "patient", c.Role)
}

func TestVerify_Rejects(t *testing.T) {
	v, err := NewVerifier(Options{Secret: "s3cret", Issuer: "identity"})
	require.NoError(t, err)

	expired, err := v.Sign(auth.Claims{UserID: "p1"}, -time.Minute)
	require.NoError(t, err)

	other, err := NewVerifier(Options{Secret: "other", Issuer: "identity"})
	require.NoError(t, err)
	wrongKey, err := other.Sign(auth.Claims{UserID: "p1"}, time.Hour)
	require.NoError(t, err)

	wrongIss, err := (&Verifier{secret: []byte("s3cret"), issuer: "elsewhere", now: time.Now}).Sign(auth.Claims{UserID: "p1"}, time.Hour)
	require.NoError(t, err)

	noSub, err := v.Sign(auth.Claims{}, time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "p1", "iss": "identity"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"expired":   expired,
		"wrong key": wrongKey,
		"wrong iss": wrongIss,
		"no sub":    noSub,
		"no exp":    noExp,
	} {
		_, err := v.Verify(context.Background(), tok)
		assert.Error(t, err, name)
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier(Options{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
