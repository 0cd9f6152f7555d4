package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// DisplayMessage returns the first non-empty hint attached to err.
func DisplayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		// GetAllHints is post-order traversal
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				return hint
			}
		}
	}
	return "An unexpected error occurred"
}

// SafeDetails merges every reportable details payload attached to err.
func SafeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			if strings.HasPrefix(payload, safeDetailsPrefix) {
				var jsonDetails map[string]any
				if err := json.Unmarshal([]byte(strings.TrimPrefix(payload, safeDetailsPrefix)), &jsonDetails); err == nil {
					for k, v := range jsonDetails {
						details[k] = v
					}
				}
			}
		}
	}

	return details
}

// ValidationMessages extracts the list attached through WithValidationErrors.
func ValidationMessages(err error) []string {
	raw, ok := SafeDetails(err)[DetailsKeyErrors].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ToResponse builds the wire body for err.
func ToResponse(err error) ErrorResponse {
	resp := ErrorResponse{Message: DisplayMessage(err)}
	if IsValidationKind(err) {
		resp.Errors = ValidationMessages(err)
	}
	return resp
}
