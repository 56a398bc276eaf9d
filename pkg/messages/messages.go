// Package messages holds the user-facing strings returned by the API.
package messages

const (
	InvalidInput                 = "The input provided is invalid."
	DatabaseError                = "There was an error connecting to the database."
	UnexpectedError              = "There was an unexpected error."
	NoFirstName                  = "First name is required."
	NoLastName                   = "Last name is required."
	NoEmail                      = "Email is required."
	NoPassword                   = "Password is required."
	NoConfPassword               = "Confirmation password is required."
	EmailAlreadyExists           = "An account with this email already exists."
	PasswordConfirmationMismatch = "Password confirmation does not match."
	PasswordTooShort             = "Password must be at least 8 characters long."
	AccessDenied                 = "You do not have permission to access this resource."
	UnexpectedRegisterError      = "An unexpected error occurred during registration."
	UnexpectedLogoutError        = "An unexpected error occurred during logout."
	AllFieldsRequired            = "All fields are required."

	NoID = "ID is required."

	NoTitle       = "Title is required."
	NoAmount      = "Amount is required."
	NoDate        = "Date is required."
	NoCategory    = "Category is required."
	NoDescription = "Description is required."
	ValueEmpty    = "This value cannot be empty."

	NoCategoryFound         = "No category found for id."
	NoName                  = "Name is required."
	UnexpectedCategoryError = "An unexpected error occurred while processing the category."
)

// Authentication and session responses.
const (
	TokenNotFound         = "JWT Token not found"
	TokenInvalid          = "Invalid JWT Token"
	TokenExpired          = "Expired JWT Token"
	RevocationUnavailable = "Token revocation status unavailable."
	InvalidCredentials    = "Invalid credentials."
	LogoutSuccessful      = "Logout successful"
	RegistrationSuccess   = "Registration successful."
	TokenRestored         = "Token restored"
	TooManyRequests       = "too many requests"
)

// fieldMessages maps a request field to the message sent when it is empty.
var fieldMessages = map[string]string{
	"id":                   NoID,
	"firstName":            NoFirstName,
	"lastName":             NoLastName,
	"email":                NoEmail,
	"password":             NoPassword,
	"passwordConfirmation": NoConfPassword,
	"title":                NoTitle,
	"amount":               NoAmount,
	"date":                 NoDate,
	"category":             NoCategory,
	"description":          NoDescription,
	"name":                 NoName,
}

// ForField returns the "required" message for field, or ValueEmpty for fields
// without a dedicated message.
func ForField(field string) string {
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return ValueEmpty
}

// HasField reports whether field has a dedicated message.
func HasField(field string) bool {
	_, ok := fieldMessages[field]
	return ok
}
