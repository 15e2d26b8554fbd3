package cli

import (
	"io"
	"os"
	"testing"

	"github.com/ardnew/iso8601/log"
)

func TestMain(m *testing.M) {
	log.Config(log.WithOutput(io.Discard))

	// Keep configuration and cache directories out of the user's home.
	dir, err := os.MkdirTemp("", "iso8601-cli-test-")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", dir+"/config")
	os.Setenv("XDG_CACHE_HOME", dir+"/cache")

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}
