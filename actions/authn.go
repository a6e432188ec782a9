package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/models"
)

// AuthN resolves the bearer token to a user and puts that user in the request context
func AuthN(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		bearerToken := domain.GetBearerTokenFromRequest(c.Request())
		if bearerToken == "" {
			err := errors.New("no bearer token provided")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		user, err := models.UserFromToken(models.Tx(c), bearerToken)
		if err != nil {
			return reportError(c, err)
		}
		c.Set(domain.ContextKeyCurrentUser, user)

		domain.NewExtra(c, "user_id", user.ID)
		domain.NewExtra(c, "user_name", user.UserName)
		domain.NewExtra(c, "ip", c.Request().RemoteAddr)

		return next(c)
	}
}

// AdminOnly rejects authenticated users that are not Administrators. It must run after AuthN.
func AdminOnly(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		actor := models.CurrentUser(c)
		if actor.ID == uuid.Nil {
			err := errors.New("actor must be authenticated to proceed")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		if !actor.IsAdmin() {
			err := errors.New("actor not allowed to perform that action on this resource")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryForbidden))
		}

		return next(c)
	}
}
