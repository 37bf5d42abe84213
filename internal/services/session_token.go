package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"nandighosh/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "nandighosh"

// SessionTokens signs and verifies the session cookie. The token only
// carries the session id; all session state stays on the server.
type SessionTokens struct {
	Secret []byte
	TTL    time.Duration
	Now    domain.Clock
}

func (t SessionTokens) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Issue returns a signed token for sessionID.
func (t SessionTokens) Issue(sessionID string) (string, error) {
	if len(t.Secret) == 0 {
		return "", domain.InternalError{Msg: "session secret not configured"}
	}
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:  sessionID,
		Issuer:   sessionIssuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if t.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.TTL))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns the session id it carries.
func (t SessionTokens) Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.ValidationError{Field: "session", Msg: "missing token"}
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", domain.ValidationError{Field: "session", Msg: "invalid token", Err: err}
	}
	if claims.Subject == "" {
		return "", domain.ValidationError{Field: "session", Msg: "invalid token", Err: errors.New("empty subject")}
	}
	return claims.Subject, nil
}
