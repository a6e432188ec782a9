package models

import (
	"fmt"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
)

// TokenClaims are the claims carried by an access token. The subject is the user ID.
type TokenClaims struct {
	UserName string          `json:"name"`
	Role     api.UserAppRole `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken issues an HS256 signed access token for the user
func (u *User) CreateToken(now time.Time) (api.AuthToken, error) {
	expiresAt := now.Add(time.Duration(domain.Env.JwtLifetimeMinutes) * time.Minute)

	claims := TokenClaims{
		UserName: u.UserName,
		Role:     u.AppRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    domain.Env.JwtIssuer,
			Audience:  jwt.ClaimStrings{domain.Env.JwtAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        domain.GetUUID().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(domain.Env.JwtSecret))
	if err != nil {
		return api.AuthToken{}, api.NewAppError(
			errors.Wrap(err, "signing access token"),
			api.ErrorCreatingAccessToken,
			api.CategoryInternal,
		)
	}

	return api.AuthToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// ParseToken verifies the signature, lifetime, issuer and audience of an access token
func ParseToken(token string) (TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(domain.Env.JwtSecret), nil
	})
	if err != nil {
		return TokenClaims{}, invalidToken(err)
	}

	if !claims.VerifyIssuer(domain.Env.JwtIssuer, true) {
		return TokenClaims{}, invalidToken(errors.New("wrong token issuer"))
	}
	if !claims.VerifyAudience(domain.Env.JwtAudience, true) {
		return TokenClaims{}, invalidToken(errors.New("wrong token audience"))
	}
	return claims, nil
}

// UserFromToken returns the user named by a valid access token. The role comes from the stored
// user, not from the token.
func UserFromToken(tx *pop.Connection, token string) (User, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return User{}, err
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return User{}, invalidToken(errors.Wrap(err, "token subject is not a user id"))
	}

	var u User
	if err := u.FindByID(tx, id); err != nil {
		var appErr *api.AppError
		if errors.As(err, &appErr) && appErr.Category == api.CategoryNotFound {
			return User{}, invalidToken(errors.Wrap(err, "token user no longer exists"))
		}
		return User{}, err
	}
	return u, nil
}

func invalidToken(err error) error {
	return api.NewAppError(err, api.ErrorInvalidAccessToken, api.CategoryUnauthorized)
}
