package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextTimeout bounds every context returned by TestContext.
const ContextTimeout = time.Minute

// TestContext returns a context that expires after ContextTimeout and is
// canceled when the test ends.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ContextTimeout)
	t.Cleanup(cancel)
	return ctx
}
