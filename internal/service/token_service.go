package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/studentdesk/studentdesk-backend/internal/model"
)

// Token verification errors.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenClaims extends JWT standard claims with the account identity.
type TokenClaims struct {
	jwt.RegisteredClaims
	AccountID int        `json:"account_id"`
	Role      model.Role `json:"role"`
}

// TokenService issues and verifies signed, time-limited identity tokens.
// Tokens are stateless: nothing is persisted server-side, so account
// deletion is the only revocation mechanism.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService signing with the given secret and
// validity window.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed HS256 token embedding the account id and role,
// expiring after the configured validity window.
func (s *TokenService) Issue(accountID int, role model.Role) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		AccountID: accountID,
		Role:      role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims. It fails with
// ErrTokenExpired past the validity window and ErrTokenInvalid for any
// signature, format, or claim problem. Whether the account still exists is
// the auth middleware's concern, not this service's.
func (s *TokenService) Verify(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
