package testutil

import (
	"os"
	"testing"
)

// SkipUnlessTestEnvironment skips suites that start external services
// (containers, real buckets) unless GO_ENV is "test", so a plain `go test`
// on a developer machine never touches them.
func SkipUnlessTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Skipf("Skipping: GO_ENV must be 'test' to start external services (current: %q)", env)
	}
}
