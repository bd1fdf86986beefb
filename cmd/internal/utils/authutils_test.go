package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenVerifier(t *testing.T) {
	secret := []byte("test-secret")
	exp := time.Now().Add(time.Hour).Unix()

	sign := func(method jwt.SigningMethod, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
		require.NoError(t, err)
		return token
	}

	t.Run("ok: subject, email and expiry", func(t *testing.T) {
		v := NewSecretVerifier(secret)
		data, err := v.Verify("Bearer " + sign(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1", "email": "a@b.com", "exp": exp}))
		require.NoError(t, err)
		assert.Equal(t, &TokenData{Sub: "user-1", Email: "a@b.com", Exp: exp}, data)
	})

	t.Run("err: other signing method", func(t *testing.T) {
		v := NewSecretVerifier(secret)
		_, err := v.Verify(sign(jwt.SigningMethodHS384, jwt.MapClaims{"sub": "user-1", "exp": exp}))
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("err: wrong secret", func(t *testing.T) {
		v := NewSecretVerifier([]byte("other"))
		_, err := v.Verify(sign(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1", "exp": exp}))
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("err: missing expiry", func(t *testing.T) {
		v := NewSecretVerifier(secret)
		_, err := v.Verify(sign(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}))
		assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
	})

	t.Run("err: foreign issuer", func(t *testing.T) {
		v := newVerifier(func(*jwt.Token) (interface{}, error) {
			return secret, nil
		}, []string{"HS256"}, jwt.WithIssuer("https://cognito-idp.sa-east-1.amazonaws.com/pool-1"))

		_, err := v.Verify(sign(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1", "exp": exp, "iss": "https://evil.example"}))
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("err: no subject", func(t *testing.T) {
		v := NewSecretVerifier(secret)
		_, err := v.Verify(sign(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp}))
		assert.ErrorIs(t, err, ErrNoSubject)
	})
}
