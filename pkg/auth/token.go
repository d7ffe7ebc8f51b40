package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenVerifier maps a presented bearer token to an Account.
type TokenVerifier interface {
	Verify(token string) (Account, error)
}

// claims is the JWT payload. Privilege is fixed at issuance and travels in "adm".
type claims struct {
	Username   string `json:"username"`
	Privileged bool   `json:"adm"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens. It holds no per-token state.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret. Tokens expire after ttl.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an access token for acc and returns it with its expiry.
func (s *TokenService) Issue(acc Account) (string, time.Time, error) {
	if acc.SubjectID == uuid.Nil {
		return "", time.Time{}, errors.New("issue token: empty subject")
	}
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	c := claims{
		Username:   acc.Username,
		Privileged: acc.IsPrivileged,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.SubjectID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify validates signature, algorithm, issuer and expiry and returns the Account.
// Every failure wraps ErrUnauthenticated.
func (s *TokenService) Verify(token string) (Account, error) {
	if token == "" {
		return Account{}, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if c.ExpiresAt == nil {
		return Account{}, fmt.Errorf("%w: token has no expiry", ErrUnauthenticated)
	}
	if c.Issuer != s.issuer {
		return Account{}, fmt.Errorf("%w: unexpected issuer %q", ErrUnauthenticated, c.Issuer)
	}
	subject, err := uuid.Parse(c.Subject)
	if err != nil || subject == uuid.Nil {
		return Account{}, fmt.Errorf("%w: invalid subject", ErrUnauthenticated)
	}

	return Account{
		SubjectID:    subject,
		Username:     c.Username,
		IsPrivileged: c.Privileged,
	}, nil
}
