package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_01HZX3Q7ZK5Y8J6M0N4W2R9T1C
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_TENANT            = "tenant"
	UUID_PREFIX_USER              = "user"
	UUID_PREFIX_COMPANY           = "comp"
	UUID_PREFIX_INVOICE           = "inv"
	UUID_PREFIX_INVOICE_LINE_ITEM = "inv_line"
	UUID_PREFIX_ACTIVITY          = "act"
	UUID_PREFIX_PLAN              = "plan"
	UUID_PREFIX_SUBSCRIPTION      = "subs"
)
