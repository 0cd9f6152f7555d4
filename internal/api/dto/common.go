package dto

import (
	"time"
)

// SuccessResponse is returned by operations with no other payload
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is returned by the unauthenticated health check
type HealthResponse struct {
	Status string `json:"status"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
