package models

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/log"
)

// DB is a connection to the database to be used throughout the application.
var DB *pop.Connection

type Creatable interface {
	Create(*pop.Connection) error
}

type Updatable interface {
	Update(*pop.Connection) error
}

var uuidType = reflect.TypeOf(uuid.UUID{})

func init() {
	var err error
	env := domain.Env.GoEnv
	DB, err = pop.Connect(env)
	if err != nil {
		log.Fatal(fmt.Errorf("error connecting to database ... %w", err))
	}
	pop.Debug = env == domain.EnvDevelopment

	// initialize model validation library
	mValidate = validator.New()

	// decimals are validated through their string form so bounds checks never touch float64
	mValidate.RegisterCustomTypeFunc(decimalTypeFunc, decimal.Decimal{})

	// register custom validators for custom types
	for tag, vFunc := range fieldValidators {
		if err = mValidate.RegisterValidation(tag, vFunc, false); err != nil {
			log.Fatal(fmt.Errorf("failed to register validation for %s: %s", tag, err))
		}
	}

	// register struct-level validators
	mValidate.RegisterStructValidation(policyStructLevelValidation, Policy{})
}

// CurrentUser retrieves the current user from the context.
func CurrentUser(ctx context.Context) User {
	user, _ := ctx.Value(domain.ContextKeyCurrentUser).(User)
	return user
}

// Tx retrieves the database transaction from the context
func Tx(ctx context.Context) *pop.Connection {
	tx, ok := ctx.Value(domain.ContextKeyTx).(*pop.Connection)
	if !ok {
		log.Infof("no transaction found in context, called from: %s", domain.GetFunctionName(2))
		return DB
	}
	return tx
}

// setUUID assigns a new random ID if the model has an empty uuid ID field. Integer IDs are left
// for the database to assign.
func setUUID(m any) {
	idField := reflect.ValueOf(m).Elem().FieldByName("ID")
	if !idField.IsValid() || idField.Type() != uuidType {
		return
	}
	if idField.Interface().(uuid.UUID).Version() == 0 {
		idField.Set(reflect.ValueOf(domain.GetUUID()))
	}
}

func create(tx *pop.Connection, m any) error {
	setUUID(m)

	valErrs, err := tx.ValidateAndCreate(m)
	if err != nil {
		return appErrorFromDB(err, api.ErrorCreateFailure)
	}

	if valErrs.HasAny() {
		return api.NewAppError(
			errors.New(flattenPopErrors(valErrs)),
			api.ErrorValidation,
			api.CategoryUser,
		)
	}
	return nil
}

func save(tx *pop.Connection, m any) error {
	setUUID(m)

	valErrs, err := tx.ValidateAndSave(m)
	if err != nil {
		return appErrorFromDB(err, api.ErrorSaveFailure)
	}

	if valErrs != nil && valErrs.HasAny() {
		return api.NewAppError(
			errors.New(flattenPopErrors(valErrs)),
			api.ErrorValidation,
			api.CategoryUser,
		)
	}

	return nil
}

func update(tx *pop.Connection, m any) error {
	valErrs, err := tx.ValidateAndUpdate(m)
	if err != nil {
		return appErrorFromDB(err, api.ErrorUpdateFailure)
	}

	if valErrs.HasAny() {
		return api.NewAppError(
			errors.New(flattenPopErrors(valErrs)),
			api.ErrorValidation,
			api.CategoryUser,
		)
	}
	return nil
}

func destroy(tx *pop.Connection, m any) error {
	err := tx.Destroy(m)
	return appErrorFromDB(err, api.ErrorDestroyFailure)
}

func appErrorFromDB(err error, defaultKey api.ErrorKey) error {
	if err == nil {
		return nil
	}

	appErr := api.NewAppError(err, defaultKey, api.CategoryInternal)

	if !domain.IsOtherThanNoRows(err) {
		appErr.Category = api.CategoryNotFound
		appErr.Key = api.ErrorNoRows
		return appErr
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		appErr.Err = fmt.Errorf("%w Detail: %s", err, pgError.Detail)

		switch pgError.Code {
		case pgerrcode.ForeignKeyViolation:
			appErr.Key = api.ErrorForeignKeyViolation
			appErr.Category = api.CategoryUser
		case pgerrcode.UniqueViolation:
			appErr.Key = api.ErrorUniqueKeyViolation
			appErr.Category = api.CategoryConflict
		}
	}

	return appErr
}

// This can include an event payload, which is a map[string]any
func emitEvent(e events.Event) {
	if err := events.Emit(e); err != nil {
		log.Errorf("error emitting event %s ... %v", e.Kind, err)
	}
}
