package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
)

const minPasswordLength = 8

var validUserAppRoles = map[api.UserAppRole]struct{}{
	api.AppRoleSubscriber:    {},
	api.AppRoleAdministrator: {},
}

// Users is a slice of User objects
type Users []User

// User model
type User struct {
	ID           uuid.UUID       `db:"id"`
	UserName     string          `db:"user_name" validate:"required,min=3,max=255"`
	Email        string          `db:"email" validate:"required,email"`
	PasswordHash string          `db:"password_hash" validate:"required"`
	AppRole      api.UserAppRole `db:"app_role" validate:"appRole"`
	LastLoginUTC nulls.Time      `db:"last_login_utc"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (u *User) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

func (u *User) Create(tx *pop.Connection) error {
	return create(tx, u)
}

func (u *User) Update(tx *pop.Connection) error {
	return update(tx, u)
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return appErrorFromDB(tx.Find(u, id), api.ErrorQueryFailure)
}

// FindByUserName loads a user by login name. Matching is case-insensitive.
func (u *User) FindByUserName(tx *pop.Connection, userName string) error {
	err := tx.Where("LOWER(user_name) = LOWER(?)", strings.TrimSpace(userName)).First(u)
	if err == nil {
		return nil
	}
	appErr := appErrorFromDB(err, api.ErrorQueryFailure).(*api.AppError)
	if appErr.Category == api.CategoryNotFound {
		appErr.Key = api.ErrorUserNotFound
	}
	return appErr
}

// FindByEmail loads a user by email address. Matching is case-insensitive.
func (u *User) FindByEmail(tx *pop.Connection, email string) error {
	err := tx.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).First(u)
	if err == nil {
		return nil
	}
	appErr := appErrorFromDB(err, api.ErrorQueryFailure).(*api.AppError)
	if appErr.Category == api.CategoryNotFound {
		appErr.Key = api.ErrorUserNotFound
	}
	return appErr
}

func (u *User) IsAdmin() bool {
	return u.AppRole == api.AppRoleAdministrator
}

// SetPassword validates the password strength and stores its bcrypt hash
func (u *User) SetPassword(password string) error {
	if err := checkPasswordStrength(password); err != nil {
		return api.NewAppError(err, api.ErrorValidation, api.CategoryUser)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return api.NewAppError(errors.Wrap(err, "hashing password"), api.ErrorCreateFailure, api.CategoryInternal)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// checkPasswordStrength requires at least eight characters, one of them a digit
func checkPasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	for _, r := range password {
		if unicode.IsDigit(r) {
			return nil
		}
	}
	return errors.New("password must contain a digit")
}

// RegisterUser creates a Subscriber account
func RegisterUser(tx *pop.Connection, input api.UserRegistration) (User, error) {
	return newUser(tx, input.UserName, input.Email, input.Password, api.AppRoleSubscriber)
}

// CreateUserWithToken creates an account with a chosen role. The token must match the configured
// admin creation token, and an empty configured token disables this path.
func CreateUserWithToken(tx *pop.Connection, input api.UserCreation) (User, error) {
	want := domain.Env.AdminCreationToken
	if want == "" || input.CreateToken != want {
		return User{}, api.NewAppError(
			errors.New("invalid user creation token"),
			api.ErrorInvalidCreateToken,
			api.CategoryUser,
		)
	}

	role := api.AppRoleSubscriber
	if input.IsAdmin {
		role = api.AppRoleAdministrator
	}
	return newUser(tx, input.UserName, input.Email, input.Password, role)
}

func newUser(tx *pop.Connection, userName, email, password string, role api.UserAppRole) (User, error) {
	userName = strings.TrimSpace(userName)

	var existing User
	err := existing.FindByUserName(tx, userName)
	if err == nil {
		return User{}, api.NewAppError(
			fmt.Errorf("user name %q is taken", userName),
			api.ErrorUserAlreadyExists,
			api.CategoryConflict,
		)
	}
	if !isNotFound(err) {
		return User{}, err
	}

	email = strings.TrimSpace(email)
	err = existing.FindByEmail(tx, email)
	if err == nil {
		return User{}, api.NewAppError(
			fmt.Errorf("email %q is already registered", email),
			api.ErrorUserEmailAlreadyExists,
			api.CategoryConflict,
		)
	}
	if !isNotFound(err) {
		return User{}, err
	}

	u := User{
		UserName: userName,
		Email:    email,
		AppRole:  role,
	}
	if err := u.SetPassword(password); err != nil {
		return User{}, err
	}
	if err := u.Create(tx); err != nil {
		return User{}, err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiUserCreated,
		Message: fmt.Sprintf("user %s created", u.UserName),
		Payload: events.Payload{domain.EventPayloadID: u.ID},
	})
	return u, nil
}

func isNotFound(err error) bool {
	var appErr *api.AppError
	return errors.As(err, &appErr) && appErr.Category == api.CategoryNotFound
}

// Login checks the credentials, records the login time and issues an access token
func Login(tx *pop.Connection, input api.UserLogin) (User, api.AuthToken, error) {
	invalid := api.NewAppError(
		errors.New("invalid user name or password"),
		api.ErrorInvalidCredentials,
		api.CategoryUnauthorized,
	)

	var u User
	if err := u.FindByUserName(tx, input.UserName); err != nil {
		if isNotFound(err) {
			return User{}, api.AuthToken{}, invalid
		}
		return User{}, api.AuthToken{}, err
	}
	if !u.CheckPassword(input.Password) {
		return User{}, api.AuthToken{}, invalid
	}

	now := time.Now().UTC()
	u.LastLoginUTC = nulls.NewTime(now)
	if err := u.Update(tx); err != nil {
		return User{}, api.AuthToken{}, err
	}

	token, err := u.CreateToken(now)
	if err != nil {
		return User{}, api.AuthToken{}, err
	}
	return u, token, nil
}

func ConvertUser(u User) api.User {
	user := api.User{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		AppRole:  u.AppRole,
	}
	if u.LastLoginUTC.Valid {
		t := u.LastLoginUTC.Time
		user.LastLoginUTC = &t
	}
	return user
}
