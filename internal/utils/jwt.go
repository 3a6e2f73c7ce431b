package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionToken is a signed, self-contained session credential. The Token
// field holds the serialized JWT; Exp records when it stops being valid.
// Nothing is persisted server-side: validity is entirely a function of the
// signature and the embedded expiry.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// SessionClaims is the identity a verified session token asserts.
type SessionClaims struct {
	UserID   primitive.ObjectID
	Username string
	Email    string
}

var ErrInvalidToken = errors.New("invalid token")

// NewSessionToken builds and signs an HS256 JWT asserting the given user's
// identity. Claims: sub (user id hex), username, email, iat and exp, where
// exp is issue time plus ttl. The default ttl is one hour (config.TokenTTLMin).
func NewSessionToken(secret string, userID primitive.ObjectID, username, email string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":      userID.Hex(),
		"username": username,
		"email":    email,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of a raw token and
// returns the claims it carries. Any defect (bad signature, wrong algorithm,
// expired, malformed subject) is reported as ErrInvalidToken so callers do
// not leak why verification failed.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC to avoid algorithm
		// confusion with an attacker-chosen key.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return SessionClaims{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	return SessionClaims{UserID: id, Username: username, Email: email}, nil
}
