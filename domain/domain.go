package domain

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/envy"
	"github.com/gofrs/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

var extrasLock = sync.RWMutex{}

// BuffaloContextType is a custom type used as a value key passed to context.WithValue as per the recommendations
// in the function docs for that function: https://golang.org/pkg/context/#WithValue
type BuffaloContextType string

// BuffaloContext is the key for the call to context.WithValue
const BuffaloContext = BuffaloContextType("BuffaloContext")

// Context keys
const (
	ContextKeyCurrentUser = "current_user"
	ContextKeyExtras      = "extras"
	ContextKeyTx          = "tx"

	EventPayloadID         = "id"
	EventPayloadName       = "name"
	EventPayloadComponents = "components"

	TypePolicy = "policies"
	TypeUser   = "users"
)

// Event Kinds
const (
	EventApiUserCreated = "api:user:created"

	EventApiPolicyCreated = "api:policy:created"
	EventApiPolicyUpdated = "api:policy:updated"
	EventApiPolicyDeleted = "api:policy:deleted"
)

// Env holds the values of environment variables
var Env struct {
	GoEnv      string `ignored:"true"`
	ApiBaseURL string `default:"http://localhost:3000" split_words:"true"`
	AppName    string `default:"ABS Insurance" split_words:"true"`
	Port       int    `default:"3000"`

	SessionSecret string `default:"testing" split_words:"true"`
	UIURL         string `default:"http://missing.ui.url"`
	DisableTLS    bool   `default:"true" split_words:"true"`
	TLSCertFile   string `default:"" envconfig:"TLS_CERT_FILE"`
	TLSKeyFile    string `default:"" envconfig:"TLS_KEY_FILE"`
	SentryDSN     string `default:"" split_words:"true"`

	JwtSecret          string `default:"ByYM000OLlMQG6VVVp1OH7Xzyr7gHuw1qvUC5dcGt3SNM" split_words:"true"`
	JwtIssuer          string `default:"abs-insurance" split_words:"true"`
	JwtAudience        string `default:"abs-insurance" split_words:"true"`
	JwtLifetimeMinutes int    `default:"60" split_words:"true"`

	// AdminCreationToken must be presented to the create-user endpoint. Empty disables it.
	AdminCreationToken string `default:"" split_words:"true"`

	DefaultPageSize int `default:"10" split_words:"true"`
	MaxPageSize     int `default:"50" split_words:"true"`

	ListenerDelayMilliseconds int `default:"1000" split_words:"true"`
	ListenerMaxRetries        int `default:"10" split_words:"true"`
}

func init() {
	readEnv()
}

// readEnv loads environment data into `Env`
func readEnv() {
	err := envconfig.Process("", &Env)
	if err != nil {
		logrus.Fatal(errors.New("error loading env vars: " + err.Error()))
	}

	// Doing this separately to avoid needing two environment variables for the same thing
	Env.GoEnv = envy.Get("GO_ENV", EnvDevelopment)
}

// IsProduction returns true if the GO_ENV is "production"
func IsProduction() bool {
	return Env.GoEnv == EnvProduction
}

func getBuffaloContext(ctx context.Context) buffalo.Context {
	bc, ok := ctx.Value(BuffaloContext).(buffalo.Context)
	if ok {
		return bc
	}

	// Doesn't have a BuffaloContext value, so it must be the actual BuffaloContext
	return ctx.(buffalo.Context)
}

// NewExtra Sets a new key-value pair in the `extras` entry of the context
func NewExtra(ctx context.Context, key string, e any) {
	c := getBuffaloContext(ctx)
	extras := GetExtras(c)

	extrasLock.Lock()
	defer extrasLock.Unlock()
	extras[key] = e

	c.Set(ContextKeyExtras, extras)
}

// GetExtras returns the `extras` map from the context, or an empty map if there is none
func GetExtras(c buffalo.Context) map[string]any {
	extras, _ := c.Value(ContextKeyExtras).(map[string]any)
	if extras == nil {
		extras = map[string]any{}
	}

	return extras
}

// GetUUID creates a new, unique version 4 (random) UUID and returns it
// as a uuid.UUID. Errors are ignored.
func GetUUID() uuid.UUID {
	id, err := uuid.NewV4()
	if err != nil {
		logrus.Errorf("error creating new uuid ... %v", err)
	}
	return id
}

var bearerRegex = regexp.MustCompile(`^(?i)Bearer (.*)$`)

// GetBearerTokenFromRequest obtains the token from an Authorization header beginning
// with "Bearer". If not found, an empty string is returned.
func GetBearerTokenFromRequest(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return ""
	}

	matches := bearerRegex.FindStringSubmatch(authorizationHeader)
	if len(matches) < 2 {
		return ""
	}

	return strings.TrimSpace(matches[1])
}

// IsOtherThanNoRows returns false if the error is nil or is just reporting that there
// were no rows in the result set for a sql query.
func IsOtherThanNoRows(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, sql.ErrNoRows) || strings.Contains(err.Error(), sql.ErrNoRows.Error()) {
		return false
	}

	return true
}

// MergeExtras returns a single map with the all the key-values pairs of the input maps.
// Key-value pairs in later maps overwrite matching ones from earlier maps.
func MergeExtras(extras []map[string]any) map[string]any {
	allExtras := map[string]any{}

	for _, e := range extras {
		for k, v := range e {
			allExtras[k] = v
		}
	}

	return allExtras
}
