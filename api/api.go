package api

import (
	"net/http"
	"strings"
	"unicode"
)

type ErrorKey string

func (e ErrorKey) String() string {
	return string(e)
}

type ErrorCategory string

func (e ErrorCategory) String() string {
	return string(e)
}

// AppError holds information that is helpful in logging and reporting api errors
type AppError struct {
	Err error `json:"-"`

	// Don't change the value of these Key entries without making a corresponding change on the UI,
	// since these will be converted to human-friendly texts for presentation to the user
	Key ErrorKey `json:"key"`

	HttpStatus int `json:"status"`

	// detailed error message for debugging
	DebugMsg string `json:"debug_msg,omitempty"`

	Category ErrorCategory `json:"-"`

	Message string `json:"message"`

	// Extra data providing detail about the error condition, only provided in development mode
	Extras map[string]any `json:"extras,omitempty"`
}

func (a *AppError) Error() string {
	if a.Err == nil {
		return a.Key.String()
	}
	return a.Err.Error()
}

func (a *AppError) Unwrap() error {
	return a.Err
}

// NewAppError returns a new AppError with its Err, Key and Category set
func NewAppError(err error, key ErrorKey, category ErrorCategory) *AppError {
	return &AppError{
		Err:      err,
		Key:      key,
		Category: category,
	}
}

// SetHttpStatusFromCategory assigns the appropriate HTTP status based on the error category, if not
// already set.
func (a *AppError) SetHttpStatusFromCategory() {
	if a.HttpStatus != 0 {
		return
	}

	switch a.Category {
	case CategoryInternal, CategoryDatabase:
		a.HttpStatus = http.StatusInternalServerError
	case CategoryForbidden:
		a.HttpStatus = http.StatusForbidden
	case CategoryNotFound:
		a.HttpStatus = http.StatusNotFound
	case CategoryConflict:
		a.HttpStatus = http.StatusConflict
	case CategoryUnauthorized:
		a.HttpStatus = http.StatusUnauthorized
	default:
		a.HttpStatus = http.StatusBadRequest
	}
}

// LoadMessage sets a user-facing message derived from the Key, unless one was already provided.
// 500 errors always get the generic message.
func (a *AppError) LoadMessage() {
	if a.HttpStatus == http.StatusInternalServerError {
		a.Message = keyToReadableString(ErrorGenericInternalServer.String())
		return
	}
	if a.Message == "" {
		a.Message = keyToReadableString(a.Key.String())
	}
}

// keyToReadableString takes a key like ErrorSomethingSomethingOther and returns "Something something other".
// Runs of capitals are kept together as one word, so ErrorPolicyIDField reads "Policy id field". Any
// lowercase text before the first capital is dropped.
func keyToReadableString(key string) string {
	runes := []rune(strings.TrimPrefix(key, "Error"))

	var words []string
	start := -1
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			continue
		}
		boundary := start == -1 || unicode.IsLower(runes[i-1]) ||
			(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))
		if !boundary {
			continue
		}
		if start >= 0 {
			words = append(words, string(runes[start:i]))
		}
		start = i
	}

	if start == -1 {
		return key
	}
	words = append(words, string(runes[start:]))

	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]

	return strings.Join(words, " ")
}
