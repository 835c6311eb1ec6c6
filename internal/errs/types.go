package errs

import (
	"errors"
	"strings"
)

// FieldError is a single field-level validation failure.
//
//	{ "field": "state", "error": "must be one of: AL AK ..." }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType names an instruction for the client.
type ActionType string

const (
	ActionTypeRedirect ActionType = "redirect"
)

// Action tells the client what to do next, e.g. redirect after a delete.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error shape returned to clients, both as JSON from the
// API and as the status/message of rendered error pages.
//
// Override marks messages that are safe to show to end users verbatim.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError, regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// FieldErrorMap indexes field errors by field name for form templates.
func (e *HTTPError) FieldErrorMap() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Error
		}
	}
	return out
}

// AsHTTPError unwraps err into an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *HTTPError carrying status.
func IsStatus(err error, status int) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.Status == status
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
