package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryForbidden    = ErrorCategory("Forbidden")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryConflict     = ErrorCategory("Conflict")
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorCreateFailure         = ErrorKey("ErrorCreateFailure")
	ErrorDestroyFailure        = ErrorKey("ErrorDestroyFailure")
	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorForeignKeyViolation   = ErrorKey("ErrorForeignKeyViolation")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorMustBeAValidInteger   = ErrorKey("ErrorMustBeAValidInteger")
	ErrorNoRows                = ErrorKey("ErrorNoRows")
	ErrorNotAuthorized         = ErrorKey("ErrorNotAuthorized")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorRouteNotFound         = ErrorKey("ErrorRouteNotFound")
	ErrorSaveFailure           = ErrorKey("ErrorSaveFailure")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorUpdateFailure         = ErrorKey("ErrorUpdateFailure")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// Authentication
	ErrorCreatingAccessToken    = ErrorKey("ErrorCreatingAccessToken")
	ErrorInvalidAccessToken     = ErrorKey("ErrorInvalidAccessToken")
	ErrorInvalidCredentials     = ErrorKey("ErrorInvalidCredentials")
	ErrorInvalidCreateToken     = ErrorKey("ErrorInvalidCreateToken")
	ErrorUserAlreadyExists      = ErrorKey("ErrorUserAlreadyExists")
	ErrorUserEmailAlreadyExists = ErrorKey("ErrorUserEmailAlreadyExists")
	ErrorUserNotFound           = ErrorKey("ErrorUserNotFound")

	// Policy
	ErrorPolicyAlreadyExists      = ErrorKey("ErrorPolicyAlreadyExists")
	ErrorPolicyComponentNotFound  = ErrorKey("ErrorPolicyComponentNotFound")
	ErrorPolicyFromContext        = ErrorKey("ErrorPolicyFromContext")
	ErrorPolicyInvalidComponents  = ErrorKey("ErrorPolicyInvalidComponents")
	ErrorPolicyNotFound           = ErrorKey("ErrorPolicyNotFound")
	ErrorPolicyUpdateInvalidInput = ErrorKey("ErrorPolicyUpdateInvalidInput")

	// Quote
	ErrorQuoteInvalidMarketValue = ErrorKey("ErrorQuoteInvalidMarketValue")
)
