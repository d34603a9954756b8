package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted signing secret size in bytes.
const MinSecretLength = 32

// ErrWeakSecret indicates the configured signing secret is missing or too short.
var ErrWeakSecret = errors.New("signing secret too short")

// Claims carried by issued tokens: the registered set plus a display name.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed bearer tokens. It holds no
// mutable state and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
	leeway   time.Duration
}

// NewTokenService builds a token service. The secret length is enforced here
// so a weak configuration fails at startup rather than at first use.
func NewTokenService(secret, issuer, audience string, lifetime, leeway time.Duration) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSecret, MinSecretLength, len(secret))
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", lifetime)
	}
	if leeway < 0 {
		leeway = 0
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
		leeway:   leeway,
	}, nil
}

// Issue signs a token for the given user. The subject claim is the decimal
// user id; the display name rides along for UI use only.
func (s *TokenService) Issue(userID int64, username string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate reports whether the token is authentic and current. It never
// returns an error: any parse, signature, issuer, audience, or expiry failure
// is reported as invalid.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.parse(tokenString)
	return err == nil
}

// Subject runs the same full validation as Validate and returns the user id
// from the subject claim. The id is never read out of a token that failed
// validation, and a malformed subject fails closed.
func (s *TokenService) Subject(tokenString string) (int64, bool) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
