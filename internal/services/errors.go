package services

// ValidationError reports missing or malformed required input. Controllers
// map it to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation on registration. Controllers
// map it to HTTP 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthError reports failed login credentials. The message is identical for
// an unknown identifier and a wrong password so the response does not leak
// which check failed. Controllers map it to HTTP 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func errMissingFields() *ValidationError {
	return &ValidationError{Message: "Missing required fields"}
}
