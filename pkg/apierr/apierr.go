// Package apierr defines the service error taxonomy shared by every layer.
// Each error carries a categorical name, a user-facing message and the HTTP
// status it maps to at the boundary, so handlers never hand-pick status codes.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Categorical error names.
const (
	NameServiceError         = "ServiceError"
	NameEntityAlreadyExists  = "EntityAlreadyExists"
	NameEntityDoesNotExist   = "EntityDoesNotExist"
	NameRegistrationFailed   = "RegistrationFailed"
	NameAuthenticationFailed = "AuthenticationFailed"
	NameInvalidToken         = "InvalidToken"
	NameInvalidAccount       = "InvalidAccount"
	NameValidation           = "ValidationError"
)

// Error is a service error with a user message and a categorical name. It is
// safe to write to clients as-is; internals never leak through Message.
type Error struct {
	StatusCode int    `json:"-"`
	Name       string `json:"name"`
	Message    string `json:"detail"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Write writes this error to an HTTP response writer.
func (e *Error) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// EntityAlreadyExists reports a uniqueness violation on create.
func EntityAlreadyExists(entity string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Name:       NameEntityAlreadyExists,
		Message:    fmt.Sprintf("%s already exists.", entity),
	}
}

// EntityNameTaken is the field-specific uniqueness variant used on update.
func EntityNameTaken(entity string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Name:       NameEntityAlreadyExists,
		Message:    fmt.Sprintf("%s with this name already exists.", entity),
	}
}

// EntityDoesNotExist reports a missing row or a dangling foreign key.
func EntityDoesNotExist(entity string, id int64) *Error {
	return &Error{
		StatusCode: http.StatusNotFound,
		Name:       NameEntityDoesNotExist,
		Message:    fmt.Sprintf("%s with id %d does not exist.", entity, id),
	}
}

// RegistrationFailed reports a registration-time collision.
func RegistrationFailed(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Name:       NameRegistrationFailed,
		Message:    message,
	}
}

// AuthenticationFailed is deliberately identical for unknown usernames and
// wrong passwords to avoid user enumeration.
func AuthenticationFailed() *Error {
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Name:       NameAuthenticationFailed,
		Message:    "Invalid username or password.",
	}
}

// InvalidToken covers malformed, unsigned, expired and claim-incomplete
// tokens; the message distinguishes them, the status does not.
func InvalidToken(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Name:       NameInvalidToken,
		Message:    message,
	}
}

// InvalidAccount reports a valid identity whose account is deactivated.
func InvalidAccount() *Error {
	return &Error{
		StatusCode: http.StatusForbidden,
		Name:       NameInvalidAccount,
		Message:    "Account has been disabled or deactivated.",
	}
}

// Validation reports a malformed or missing request field.
func Validation(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Name:       NameValidation,
		Message:    message,
	}
}

// ServiceError is the generic backend-fault form. The message is fixed so
// nothing about the underlying failure reaches the client.
func ServiceError() *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Name:       NameServiceError,
		Message:    "Service is unavailable.",
	}
}

// Write maps any error to an HTTP response. Taxonomy errors are written
// as-is; everything else collapses to the generic 500 form.
func Write(w http.ResponseWriter, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		apiErr.Write(w)
		return
	}
	ServiceError().Write(w)
}

// HasName reports whether err is a taxonomy error with the given name.
func HasName(err error, name string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Name == name
}
