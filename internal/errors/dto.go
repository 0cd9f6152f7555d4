package errors

// ErrorResponse is the body written for every failed request.
// Errors is only populated for validation failures.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
