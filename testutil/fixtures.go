// Package testutil provides git repository and fixture helpers for tests.
package testutil

import (
	"encoding/json"
	"testing"
)

// WriteJSON marshals v with two-space indentation and writes it to path
// under dir.
func WriteJSON(t *testing.T, dir, path string, v any) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal JSON for %s: %v", path, err)
	}
	WriteFile(t, dir, path, string(data)+"\n")
}
