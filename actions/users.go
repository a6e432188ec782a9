package actions

import (
	"net/http"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/models"
)

// swagger:operation POST /register Users UsersRegister
//
// UsersRegister
//
// self-service sign up. New accounts get the Subscriber role.
//
// ---
// parameters:
//   - name: registration
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/UserRegistration"
// responses:
//   '201':
//     description: the new user
//     schema:
//       "$ref": "#/definitions/User"
func usersRegister(c buffalo.Context) error {
	var input api.UserRegistration
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	user, err := models.RegisterUser(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusCreated, r.JSON(models.ConvertUser(user)))
}

// swagger:operation POST /create-user Users UsersCreate
//
// UsersCreate
//
// create an account with a chosen role, authorized by the server's user creation token
//
// ---
// parameters:
//   - name: user
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/UserCreation"
// responses:
//   '201':
//     description: the new user
//     schema:
//       "$ref": "#/definitions/User"
func usersCreate(c buffalo.Context) error {
	var input api.UserCreation
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	user, err := models.CreateUserWithToken(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusCreated, r.JSON(models.ConvertUser(user)))
}

// swagger:operation POST /login Users UsersLogin
//
// UsersLogin
//
// exchange a user name and password for an access token
//
// ---
// parameters:
//   - name: credentials
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/UserLogin"
// responses:
//   '200':
//     description: an access token
//     schema:
//       "$ref": "#/definitions/AuthToken"
func usersLogin(c buffalo.Context) error {
	var input api.UserLogin
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	_, token, err := models.Login(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, token)
}

// swagger:operation GET /users/me Users UsersMe
//
// UsersMe
//
// gets the data for authenticated User.
//
// ---
// responses:
//   '200':
//     description: authenticated user
//     schema:
//       "$ref": "#/definitions/User"
func usersMe(c buffalo.Context) error {
	return renderOk(c, models.ConvertUser(models.CurrentUser(c)))
}
