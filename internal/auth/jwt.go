// Package auth mints and verifies the bearer tokens issued to
// authenticated users.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dkoroteev/recipecart/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenValidity is how long an issued token stays valid. There is no
// refresh mechanism; clients re-authenticate after expiry.
const TokenValidity = 7 * 24 * time.Hour

// Claims is the token payload: registered claims plus the username and
// email of the subject.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"unique_name"`
	Email    string `json:"email"`
}

// TokenIssuer signs and verifies tokens with a server-held symmetric key.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenIssuer constructs a TokenIssuer from the configured secret,
// issuer, and audience strings.
func NewTokenIssuer(secret []byte, issuer, audience string) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer, audience: audience}
}

// Issue mints a signed token for the given user. The subject is the
// decimal string form of the user id and the jti is a fresh UUID.
// Issue performs no I/O.
func (ti *TokenIssuer) Issue(userID int64, username, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
		Email:    email,
	})

	return token.SignedString(ti.secret)
}

// Verify checks the signature, issuer, audience, and expiry of the given
// token string and returns its claims. Expired tokens yield
// apperr.ErrTokenExpired; any other failure yields apperr.ErrInvalidToken.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return ti.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrInvalidToken
	}
	if !token.Valid {
		return nil, apperr.ErrInvalidToken
	}

	return claims, nil
}

// UserID returns the numeric user id encoded in the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
