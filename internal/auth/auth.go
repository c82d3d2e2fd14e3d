package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	AdminRole = "admin"
	issuer    = "portfolio"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticator exchanges the admin password for signed, expiring tokens.
// Nothing is kept per session: a token is valid while its signature and
// expiry check out.
type Authenticator struct {
	password []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthenticator(cfg *Config) *Authenticator {
	return &Authenticator{
		password: []byte(cfg.Password),
		secret:   []byte(cfg.Secret),
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

func (a *Authenticator) Login(password string) (Token, error) {
	if len(a.password) == 0 || subtle.ConstantTimeCompare([]byte(password), a.password) != 1 {
		return Token{}, ErrInvalidPassword
	}

	now := a.now()
	expires := now.Add(a.ttl)
	claims := Claims{
		Role: AdminRole,
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   AdminRole,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return Token{Token: signed, ExpiresAt: time.Unix(expires.Unix(), 0).UTC()}, nil
}

// Verify checks signature, expiry and role.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Role != AdminRole {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
