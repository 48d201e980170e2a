// Package token issues and validates the single bearer token used to
// authenticate against the run server. Unlike a typical per-user JWT, there
// is exactly one subject: holders of the shared secret the server was
// started with.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Subject is the fixed JWT subject claim for the one token this package
// issues.
const Subject = "gram-api-key"

var (
	// ErrNoTokenPresent means the request did not carry a bearer token at
	// all.
	ErrNoTokenPresent = errors.New("no bearer token is present on the request")

	// ErrInvalidToken means a bearer token was present but failed
	// validation against the configured secret.
	ErrInvalidToken = errors.New("token is invalid or does not match the server's secret")
)

type claims struct {
	jwt.RegisteredClaims
}

// Generate issues a new, non-expiring bearer token signed with secret via
// HS512. The returned string is suitable for use as an "Authorization:
// Bearer <token>" header value.
func Generate(secret []byte) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  Subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, c)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Get extracts the bearer token string from the Authorization header of
// req. It returns ErrNoTokenPresent if the header is absent or malformed.
func Get(req *http.Request) (string, error) {
	hdr := req.Header.Get("Authorization")
	if hdr == "" {
		return "", ErrNoTokenPresent
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(hdr, prefix) {
		return "", ErrNoTokenPresent
	}

	tokStr := strings.TrimSpace(strings.TrimPrefix(hdr, prefix))
	if tokStr == "" {
		return "", ErrNoTokenPresent
	}

	return tokStr, nil
}

// Validate parses tokStr and checks that it was signed by secret and
// carries the expected subject claim. It returns ErrInvalidToken wrapping
// the underlying parse error on any failure.
func Validate(tokStr string, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(tokStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject != Subject {
		return ErrInvalidToken
	}

	return nil
}

// HashSecret bcrypt-hashes secret so it can be persisted alongside run
// history without keeping the plaintext secret on disk.
func HashSecret(secret []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// VerifySecret checks secret against a hash previously produced by
// HashSecret, returning ErrInvalidToken if they do not match. The server
// uses this at startup to refuse to run against a database that was
// populated under a different secret, which would orphan any tokens
// already issued to callers.
func VerifySecret(hash string, secret []byte) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), secret); err != nil {
		return ErrInvalidToken
	}
	return nil
}
