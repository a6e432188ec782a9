package actions

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/log"
)

func registerCustomErrorHandlers(app *buffalo.App) {
	app.ErrorHandlers[http.StatusInternalServerError] = customErrorHandler
	app.ErrorHandlers[http.StatusNotFound] = notFoundErrorHandler
	app.ErrorHandlers[http.StatusMethodNotAllowed] = notFoundErrorHandler
}

func customErrorHandler(status int, origErr error, c buffalo.Context) error {
	log.WithContext(c).Errorf("unhandled error: %v", origErr)

	appError := api.AppError{
		HttpStatus: status,
		Key:        api.ErrorGenericInternalServer,
		Message:    "An internal system error has occurred",
	}
	if domain.Env.GoEnv != domain.EnvProduction {
		appError.DebugMsg = fmt.Sprintf("(%T) %s", origErr, origErr)
	}
	return writeErrorJSON(c, status, appError)
}

func notFoundErrorHandler(status int, origErr error, c buffalo.Context) error {
	appError := api.AppError{
		HttpStatus: status,
		Key:        api.ErrorRouteNotFound,
		Message:    fmt.Sprintf("no route for %s %s", c.Request().Method, c.Request().URL.Path),
	}
	return writeErrorJSON(c, status, appError)
}

func writeErrorJSON(c buffalo.Context, status int, appError api.AppError) error {
	c.Response().Header().Set("content-type", "application/json")
	c.Response().WriteHeader(status)
	return json.NewEncoder(c.Response()).Encode(&appError)
}
