package testutil

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/types"
)

// SetupContext returns a background context carrying a fresh request id,
// the way RequestIDMiddleware prepares every request
func SetupContext() context.Context {
	return types.SetRequestID(context.Background(), types.GenerateUUIDWithPrefix("req"))
}
