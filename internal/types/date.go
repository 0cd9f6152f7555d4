package types

import (
	"strings"
	"time"

	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

// dueDateLayouts are the formats accepted for a due date
var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseDueDate parses a date as produced by the model or a client.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, ierr.NewError("invalid due date").
		WithHintf("Due date %q must be in YYYY-MM-DD format", value).
		WithValidationErrors([]string{"due_date: expected YYYY-MM-DD"}).
		Mark(ierr.ErrValidation)
}

// FormatLongDate renders a date the way invoices display it, e.g. 2 January 2006
func FormatLongDate(t time.Time) string {
	return t.Format("2 January 2006")
}
