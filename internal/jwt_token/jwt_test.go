package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "idcheck/pkg/domain-errors"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-key", "idcheck")

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateAccessToken("pipeline-1", time.Hour)
		require.NoError(t, err)

		sub, err := svc.Subject(token)
		require.NoError(t, err)
		assert.Equal(t, "pipeline-1", sub)
	})

	t.Run("expired token", func(t *testing.T) {
		past := NewJWTService("test-key", "idcheck")
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.GenerateAccessToken("pipeline-1", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := NewJWTService("other-key", "idcheck").GenerateAccessToken("x", time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewJWTService("test-key", "someone-else").GenerateAccessToken("x", time.Hour)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x", Issuer: "idcheck"})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		assert.Error(t, err)
	})

	t.Run("empty subject", func(t *testing.T) {
		_, err := svc.GenerateAccessToken("", time.Hour)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
