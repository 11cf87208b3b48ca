package httputil

// Machine-readable error codes returned alongside human messages.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInternalError      = "INTERNAL_ERROR"

	// Registration / profile validation
	CodeNameRequired       = "NAME_REQUIRED"
	CodeEmailRequired      = "EMAIL_REQUIRED"
	CodeInvalidEmailFormat = "INVALID_EMAIL_FORMAT"
	CodeUsernameRequired   = "USERNAME_REQUIRED"
	CodePasswordRequired   = "PASSWORD_REQUIRED"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeBioTooLong         = "BIO_TOO_LONG"

	// Uniqueness conflicts
	CodeEmailAlreadyExists    = "EMAIL_ALREADY_EXISTS"
	CodeUsernameAlreadyExists = "USERNAME_ALREADY_EXISTS"

	// Authentication
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidAuthHeader  = "INVALID_AUTH_HEADER"
	CodeMissingAuth        = "MISSING_AUTH"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidTokenUserID = "INVALID_TOKEN_USER_ID"

	// Projects
	CodeTitleRequired       = "TITLE_REQUIRED"
	CodeDescriptionRequired = "DESCRIPTION_REQUIRED"
	CodeInvalidProjectID    = "INVALID_PROJECT_ID"
	CodeProjectNotFound     = "PROJECT_NOT_FOUND"
	CodeNotProjectOwner     = "NOT_PROJECT_OWNER"
	CodeInvalidDate         = "INVALID_DATE"

	// Media uploads
	CodeTooManyImages      = "TOO_MANY_IMAGES"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"

	// Portfolio
	CodeUserNotFound = "USER_NOT_FOUND"
)
