package integration

import (
	"fmt"
	"os"
	"testing"

	"github.com/zoobzio/countz"
)

// globalStore backs the process-wide listener installed for this package.
var globalStore *countz.Store

func TestMain(m *testing.M) {
	store, listener := countz.NewCounters()
	if err := countz.SetGlobalDefault(listener); err != nil {
		fmt.Fprintln(os.Stderr, "install global subscriber:", err)
		os.Exit(1)
	}
	globalStore = store
	os.Exit(m.Run())
}
