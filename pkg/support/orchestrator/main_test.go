package orchestrator

import (
	"testing"

	"go.uber.org/goleak"
)

// Timeouts must not strand completion goroutines.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
