package terminal

import (
	"os"
	"testing"

	"github.com/xyproto/env/v2"
)

// TestMain disables xyproto/env's process-wide environment cache so the
// values each test installs with t.Setenv are visible to the code under
// test instead of whatever the first env read happened to snapshot.
func TestMain(m *testing.M) {
	env.Unload()
	os.Exit(m.Run())
}
