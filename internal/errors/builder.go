package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// DetailsKeyErrors is the reportable details key of the `errors` list
// rendered for validation kinds.
const DetailsKeyErrors = "errors"

// safeDetailsPrefix tags JSON payloads among the safe details of an error
const safeDetailsPrefix = "__json__:"

// ErrorBuilder accumulates context on an error. It is not an error itself:
// every chain ends with Mark, which returns the finished error.
type ErrorBuilder struct {
	err error
}

// NewError starts a chain from a new internal message
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a chain from an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessagef prefixes the internal message. It never reaches clients.
func (b *ErrorBuilder) WithMessagef(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithMessagef(b.err, format, args...)
	return b
}

// WithHint sets the client-facing message
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches structured details that are safe to
// report, e.g. ids and counts. Read them back with SafeDetails.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	if len(details) == 0 {
		return b
	}
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, safeDetailsPrefix+"%s", errors.Safe(string(marshaled)))
	return b
}

// WithValidationErrors attaches the list rendered as `errors` in the response body
func (b *ErrorBuilder) WithValidationErrors(messages []string) *ErrorBuilder {
	if len(messages) == 0 {
		return b
	}
	return b.WithReportableDetails(map[string]any{DetailsKeyErrors: messages})
}

// Mark tags the error with its kind and ends the chain
func (b *ErrorBuilder) Mark(kind error) error {
	return errors.Mark(b.err, kind)
}
