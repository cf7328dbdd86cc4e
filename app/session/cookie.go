package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// cookieCodec signs the session id into the cookie value so a forged or
// tampered cookie is rejected before any store lookup. Only the opaque id
// crosses the wire; identity and flashes stay server-side.
type cookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func (c cookieCodec) encode(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c cookieCodec) decode(value string) (string, bool) {
	token, err := jwt.ParseWithClaims(value, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
