package handlers

import (
	"github.com/danielgtaylor/huma/v2"
)

// apiError is the error body for every failed request: {"error": msg}.
// Missing required parameters are 400; everything else, including upstream
// auth/search failures, surfaces as 500 with the underlying message.
type apiError struct {
	status  int
	Message string `json:"error"`
}

func (e *apiError) Error() string {
	return e.Message
}

func (e *apiError) GetStatus() int {
	return e.status
}

// ContentType keeps error responses plain application/json rather than
// huma's default problem+json.
func (e *apiError) ContentType(string) string {
	return "application/json"
}

func init() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if msg == "" && len(errs) > 0 && errs[0] != nil {
			msg = errs[0].Error()
		}
		return &apiError{status: status, Message: msg}
	}
}
