package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie_token"})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractAccessToken(req))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		assert.Empty(t, ExtractAccessToken(req))
	})
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestVerifier_SignAndParse(t *testing.T) {
	v, err := NewVerifier("testsecret")
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {
		token, err := v.Sign("user-42", "a@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := v.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.Subject)
		assert.Equal(t, "a@example.com", claims.Email)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := v.Sign("user-42", "", -time.Minute)
		require.NoError(t, err)

		_, err = v.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, _ := NewVerifier("othersecret")
		token, err := other.Sign("user-42", "", time.Hour)
		require.NoError(t, err)

		_, err = v.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x"}).
			SignedString([]byte("testsecret"))
		require.NoError(t, err)

		_, err = v.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := v.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
