package utils

import (
	"os"
	"strings"
	"testing"
)

// ClearTestEnvironment blanks every variable inherited from the host, so a developer's exported WALLET_PRIVATE_KEY or
// RPC_URL cannot leak into command tests. The values are restored when the test ends.
func ClearTestEnvironment(t *testing.T) {
	t.Helper()
	for _, env := range os.Environ() {
		key, _, found := strings.Cut(env, "=")
		if !found || key == "" {
			continue
		}
		t.Setenv(key, "")
	}
}
