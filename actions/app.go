// ABS Insurance API
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//     Schemes: https
//     Host: localhost
//     BasePath: /
//     Version: 0.0.1
//     License: MIT http://opensource.org/licenses/MIT
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer:
//
//     SecurityDefinitions:
//     bearer:
//         type: apiKey
//         name: Authorization
//         in: header
//
// swagger:meta
package actions

import (
	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/buffalo-pop/v3/pop/popmw"
	contenttype "github.com/gobuffalo/mw-contenttype"
	paramlogger "github.com/gobuffalo/mw-paramlogger"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/log"
	"github.com/silinternational/abs-insurance-api/models"
)

var app *buffalo.App

// App is where all routes and middleware for buffalo
// should be defined. This is the nerve center of your
// application.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware.
func App() *buffalo.App {
	if app != nil {
		return app
	}

	app = buffalo.New(buffalo.Options{
		Env:    domain.Env.GoEnv,
		Logger: log.BuffaloLogger(),
		PreWares: []buffalo.PreWare{
			cors.New(cors.Options{
				AllowCredentials: true,
				AllowedOrigins:   []string{domain.Env.UIURL},
				AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "DELETE"},
				AllowedHeaders:   []string{"*"},
			}).Handler,
		},
		SessionName:  "_abs_insurance_session",
		SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
	})

	registerCustomErrorHandlers(app)

	// Report panics and error logs to Sentry with request details
	app.Use(log.SentryMiddleware)

	// Log request parameters (filters apply).
	app.Use(paramlogger.ParameterLogger)

	// Set the request content type to JSON
	app.Use(contenttype.Set("application/json"))

	// Wraps each request in a transaction.
	app.Use(popmw.Transaction(models.DB))

	app.GET("/", HomeHandler)
	app.GET("/status", statusHandler)

	// users
	app.POST("/register", usersRegister)
	app.POST("/login", usersLogin)
	app.POST("/create-user", usersCreate)

	usersGroup := app.Group("/users")
	usersGroup.Use(AuthN)
	usersGroup.GET("/me", usersMe)

	// policies, readable by anyone
	policiesGroup := app.Group("/policies")
	policiesGroup.GET("/", policiesList)
	policiesGroup.GET("/{policy_id}", policiesView)
	policiesGroup.GET("/{policy_id}/components", policyComponentsList)
	policiesGroup.GET("/{policy_id}/components/{sequence}", policyComponentsView)

	// policies, managed by administrators
	policiesAdminGroup := app.Group("/policies")
	policiesAdminGroup.Use(AuthN, AdminOnly)
	policiesAdminGroup.POST("/", policiesCreate)
	policiesAdminGroup.PUT("/{policy_id}", policiesUpdate)
	policiesAdminGroup.DELETE("/{policy_id}", policiesDelete)

	// quotes
	app.POST("/request-quote", quoteRequest)

	return app
}
