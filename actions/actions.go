package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo/render"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/log"
)

var r = render.New(render.Options{
	DefaultContentType: "application/json",
})

// reportError logs an error with details and renders the error as JSON
func reportError(c buffalo.Context, err error) error {
	appErr := appErrorFromErr(err)
	appErr.SetHttpStatusFromCategory()

	if appErr.Extras == nil {
		appErr.Extras = map[string]any{}
	}

	appErr.Extras = domain.MergeExtras([]map[string]any{domain.GetExtras(c), appErr.Extras})
	appErr.Extras["function"] = domain.GetFunctionName(2)
	appErr.Extras["key"] = appErr.Key
	appErr.Extras["status"] = appErr.HttpStatus
	appErr.Extras["method"] = c.Request().Method
	appErr.Extras["URI"] = c.Request().RequestURI
	appErr.Extras["IP"] = c.Request().RemoteAddr

	entry := log.WithContext(c).WithFields(appErr.Extras)
	if appErr.HttpStatus >= http.StatusInternalServerError {
		entry.Error(appErr.Error())
	} else {
		entry.Warning(appErr.Error())
	}

	appErr.LoadMessage()

	// clear out debugging info if not in development or test
	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		if appErr.Err != nil {
			appErr.DebugMsg = appErr.Err.Error()
		}
	} else {
		appErr.Extras = map[string]any{}
	}

	return c.Render(appErr.HttpStatus, r.JSON(appErr))
}

func appErrorFromErr(err error) *api.AppError {
	var appErr *api.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &api.AppError{
		Err:        err,
		HttpStatus: http.StatusInternalServerError,
		Key:        api.ErrorUnknown,
		Category:   api.CategoryInternal,
	}
}

func renderOk(c buffalo.Context, v any) error {
	return c.Render(http.StatusOK, r.JSON(v))
}

// StrictBind decodes the JSON request body into v, rejecting unknown fields
func StrictBind(c buffalo.Context, v any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return api.NewAppError(
			fmt.Errorf("invalid request body, %w", err),
			api.ErrorInvalidRequestBody,
			api.CategoryUser,
		)
	}
	return nil
}
