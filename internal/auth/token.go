// Package auth implements session token minting and verification.
//
// Tokens are HS256 JWTs carrying the user's ID and email. Validity is
// determined entirely by signature and expiry; nothing is stored server-side.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Issuer identifies tokens minted by this application.
	Issuer = "inkwell-api"
	// Audience identifies the intended consumer of minted tokens.
	Audience = "inkwell-web"
	// DefaultTTL is the session lifetime applied by callers that do not
	// choose their own.
	DefaultTTL = 7 * 24 * time.Hour
)

// State classifies the outcome of verifying an inbound token. The session
// gate treats every non-valid state the same way (redirect to login), but
// callers and tests can distinguish the cause.
type State int

const (
	StateValid State = iota
	StateAbsent
	StateInvalid
	StateExpired
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateAbsent:
		return "absent"
	case StateInvalid:
		return "invalid"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Identity is the authenticated identity decoded from a valid session token.
type Identity struct {
	UserID uint
	Email  string
}

// Mint issues a signed session token for the given user.
func Mint(secret string, userID uint, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("token signing secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"email": email,
		"iss":   Issuer,
		"aud":   Audience,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify checks a token string and returns the embedded identity together
// with the verification state. The identity is only meaningful when the
// state is StateValid.
func Verify(secret, tokenString string) (Identity, State) {
	if tokenString == "" {
		return Identity{}, StateAbsent
	}

	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, StateExpired
		}
		return Identity{}, StateInvalid
	}
	if !token.Valid {
		return Identity{}, StateInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, StateInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, StateInvalid
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return Identity{}, StateInvalid
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return Identity{}, StateInvalid
	}

	return Identity{UserID: uint(userID), Email: email}, StateValid
}
