package actions

import (
	"fmt"
	"net/http"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
)

func (as *ActionSuite) Test_HomeHandler() {
	res := as.JSON("/").Get()

	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), fmt.Sprintf("Welcome to %s API", domain.Env.AppName))
}

func (as *ActionSuite) Test_statusHandler() {
	res := as.JSON("/status").Get()

	as.Equal(http.StatusNoContent, res.Code)
}

func (as *ActionSuite) Test_RouteNotFound() {
	res := as.JSON("/no-such-route").Get()

	as.assertAppError(http.StatusNotFound, api.ErrorRouteNotFound, res.Code, res.Body.Bytes())
}
