package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// UserAppRole
//
// may be one of: Subscriber, Administrator
//
// swagger:model
type UserAppRole string

const (
	AppRoleSubscriber    = UserAppRole("Subscriber")
	AppRoleAdministrator = UserAppRole("Administrator")
)

// app user
// swagger:model
type User struct {
	// unique ID
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// login name
	UserName string `json:"user_name"`

	// email address
	Email string `json:"email"`

	// role in the application ('Subscriber', 'Administrator')
	AppRole UserAppRole `json:"app_role"`

	// last login date and time (UTC)
	LastLoginUTC *time.Time `json:"last_login_utc,omitempty"`
}

// UserRegistration is the self-service sign-up payload. New accounts get the Subscriber role.
// swagger:model
type UserRegistration struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCreation creates an account with a chosen role. CreateToken must match the server's
// configured admin creation token.
// swagger:model
type UserCreation struct {
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsAdmin     bool   `json:"is_admin"`
	CreateToken string `json:"create_token"`
}

// UserLogin holds login credentials
// swagger:model
type UserLogin struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// AuthToken is returned by a successful login
// swagger:model
type AuthToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
