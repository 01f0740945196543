// Package token mints and verifies the signed bearer tokens used for request
// authentication: short-lived access tokens and long-lived refresh tokens,
// both carrying the username as subject.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single failure surface of verification. Bad
// signature, wrong algorithm, expiry, malformed encoding and missing subject
// all collapse into it; the wrapped cause is for internal logging only.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
}

// Pair bundles a freshly minted access token with its companion refresh token.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Manager is the seam for token issuance and verification so the signing
// strategy can be replaced without touching callers.
type Manager interface {
	IssueAccess(subject string) (string, error)
	IssueRefresh(subject string) (string, error)
	Verify(tokenString string) (*Claims, error)
	Refresh(refreshToken string) (*Pair, error)
}

// JWTManager implements Manager with HMAC-SHA256 signed JWTs. The key and
// both lifetimes are fixed at construction; there is no package-level state.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

var _ Manager = (*JWTManager)(nil)

// NewJWTManager builds a manager signing with secret. Non-positive lifetimes
// fall back to 30 minutes for access and 7 days for refresh tokens.
func NewJWTManager(secret []byte, accessTTL, refreshTTL time.Duration) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTManager{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccess mints a short-lived token asserting subject.
func (m *JWTManager) IssueAccess(subject string) (string, error) {
	return m.issue(subject, m.accessTTL)
}

// IssueRefresh mints a long-lived token asserting subject. It shares the
// claim shape of an access token and differs only in lifetime.
func (m *JWTManager) IssueRefresh(subject string) (string, error) {
	return m.issue(subject, m.refreshTTL)
}

func (m *JWTManager) issue(subject string, ttl time.Duration) (string, error) {
	now := m.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString and returns its claims. The signing
// method is pinned to HS256 on the verifier side; the token's own alg header
// is never trusted. Expiry is checked with zero leeway, so a token is already
// invalid at exactly its expiry instant.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh validates refreshToken and mints a brand-new access/refresh pair
// for the same subject. Rotation is all-or-nothing: any failure yields no
// token of either kind. The old refresh token is not tracked server-side and
// stays usable until its own expiry.
func (m *JWTManager) Refresh(refreshToken string) (*Pair, error) {
	claims, err := m.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	access, err := m.IssueAccess(claims.Subject)
	if err != nil {
		return nil, err
	}
	refresh, err := m.IssueRefresh(claims.Subject)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}
