// Package auth issues and verifies the bearer access tokens handed out on
// signup and signin.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed lifetime of an access token. There is no
// refresh mechanism.
const AccessTokenTTL = 15 * time.Minute

// Claims carries the account id in the registered "sub" claim plus the email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AccountID decodes the subject back into an account id.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}

// Issuer signs tokens with HS256. The same Issuer verifies them, so the
// bearer middleware can never drift from the signing key or algorithm.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret []byte) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret is empty")
	}
	return &Issuer{secret: secret, now: time.Now}, nil
}

// Issue mints a token for the given account.
func (i *Issuer) Issue(subject int64, email string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Parse verifies signature, algorithm and expiry.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
