package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-signing"

func newVerifier() *auth.TokenVerifier {
	return auth.NewTokenVerifier(&config.AuthConfig{JWTSecret: testSecret})
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenVerifier_ValidToken(t *testing.T) {
	verifier := newVerifier()
	userID := uuid.New()

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "baker@example.com",
		"name":  "Jane Baker",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	userCtx, err := verifier.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.UserID)
	assert.Equal(t, "baker@example.com", userCtx.Email)
	assert.Equal(t, "Jane Baker", userCtx.DisplayName)
}

func TestTokenVerifier_ExpiredToken(t *testing.T) {
	verifier := newVerifier()

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := verifier.VerifyToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenVerifier_WrongSignature(t *testing.T) {
	verifier := newVerifier()

	tokenString := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.VerifyToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenVerifier_MissingSubject(t *testing.T) {
	verifier := newVerifier()

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"email": "baker@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.VerifyToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenVerifier_NonUUIDSubjectDerivesStableID(t *testing.T) {
	verifier := newVerifier()

	claims := jwt.MapClaims{
		"sub":   "provider|12345",
		"email": "baker@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	first, err := verifier.VerifyToken(signToken(t, testSecret, claims))
	require.NoError(t, err)
	second, err := verifier.VerifyToken(signToken(t, testSecret, claims))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.UserID)
	assert.Equal(t, first.UserID, second.UserID)
}

func TestTokenVerifier_RejectsWrongIssuer(t *testing.T) {
	verifier := auth.NewTokenVerifier(&config.AuthConfig{
		JWTSecret: testSecret,
		Issuer:    "https://id.example.com",
	})

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "https://evil.example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.VerifyToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
