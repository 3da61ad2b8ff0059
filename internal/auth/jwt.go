package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenVerifier verifies HMAC-signed session tokens issued by the
// frontend's identity provider.
type TokenVerifier struct {
	config *config.AuthConfig
}

// NewTokenVerifier creates a new token verifier
func NewTokenVerifier(cfg *config.AuthConfig) *TokenVerifier {
	return &TokenVerifier{config: cfg}
}

// VerifyToken validates a session token and returns the owner's context.
func (v *TokenVerifier) VerifyToken(tokenString string) (*UserContext, error) {
	claims := jwt.MapClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(v.config.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	userCtx := &UserContext{
		Email:       extractString(claims, "email", "upn"),
		DisplayName: extractString(claims, "name", "preferred_username"),
	}

	sub := extractString(claims, "sub", "uid")
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}
	if uid, err := uuid.Parse(sub); err == nil {
		userCtx.UserID = uid
	} else if userCtx.Email != "" {
		// Stable owner id for providers whose subject is not a UUID.
		userCtx.UserID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(userCtx.Email))
	} else {
		userCtx.UserID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(sub))
	}

	return userCtx, nil
}

func extractString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if val, ok := claims[key]; ok {
			if str, ok := val.(string); ok && str != "" {
				return str
			}
		}
	}
	return ""
}
