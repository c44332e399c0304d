package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what the transport layer gets back from a bearer token: just
// enough to resolve (identity, role, authorized outlets) without touching
// the user store on every request.
type Claims struct {
	UserID    string   `json:"user_id"`
	Role      string   `json:"role"`
	OutletIDs []string `json:"outlet_ids,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewAuthenticator(secret, issuer string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

func (a *Authenticator) GenerateToken(user *domain.User) (string, error) {
	outletIDs := make([]string, 0, len(user.OutletIDs))
	for _, id := range user.OutletIDs {
		outletIDs = append(outletIDs, id.Hex())
	}

	claims := &Claims{
		UserID:    user.ID.Hex(),
		Role:      string(user.Role),
		OutletIDs: outletIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    a.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
