// Package jwttoken issues and validates the bearer tokens the transport uses
// to authenticate callers before delegating to the access controller. The
// token's subject is the caller's address; the registry core never sees the
// token itself.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"coldchain/pkg/domain"
	dErrors "coldchain/pkg/domain-errors"
)

// Claims carries the caller identity for registry requests.
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewService(signingKey, issuer, audience string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateCallerToken mints an HS256 token identifying the caller address.
func (s *Service) GenerateCallerToken(caller domain.EntityID, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Address: caller.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateCallerToken parses the token and returns the caller address.
func (s *Service) ValidateCallerToken(tokenString string) (domain.EntityID, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.signingKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.EntityID{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid caller token")
	}
	if !token.Valid {
		return domain.EntityID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid caller token")
	}

	caller, err := domain.ParseEntityID(claims.Address)
	if err != nil {
		return domain.EntityID{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "token carries no valid caller address")
	}
	return caller, nil
}
