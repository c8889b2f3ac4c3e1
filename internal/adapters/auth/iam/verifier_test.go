package iam

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "svc-key"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_ReturnsClaims(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "svc-key", r.Header.Get("X-Api-Key"))

		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		assert.Equal(t, "tok", in["token"])

		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": " u1 ", "email": "a@b.c", "role": "Clinician"})
	})

	c, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "clinician", c.Role)
}

func TestVerify_DefaultsRoleToPatient(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "u1"})
	})

	c, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "patient", c.Role)
}

func TestVerify_MapsUpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"upstream", http.StatusBadGateway, ErrUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := v.Verify(context.Background(), "tok")
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestVerify_MissingUserID(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"email": "a@b.c"})
	})
	_, err := v.Verify(context.Background(), "tok")
	assert.Error(t, err)
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "http://iam"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewVerifier(nil).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerify_EmptyToken(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("should not call upstream")
	})
	_, err := v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
