package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/idun-project/idun-defaults/internal/testutil"
)

// setupCmdTest wires a workspace with stub external binaries and points
// the configuration at it. The fake proxy appends its argv to
// proxy.calls and exits 0.
func setupCmdTest(t *testing.T) *testutil.Workspace {
	t.Helper()

	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	t.Setenv("C64_ULTIMATE_IP", "")

	viper.Set("proxy.binary", "fake-proxy")
	viper.Set("proxy.system_dir", filepath.Join(ws.Path, "sys"))
	viper.Set("cache.root", ws.Path)
	viper.Set("cache.dir", filepath.Join(ws.Path, "store"))
	viper.Set("cache.ttl", 300)
	viper.Set("tools.indexer", "fake-indexer")
	viper.Set("tools.filter", "fake-filter")
	viper.Set("ultimate.ip", "")
	t.Cleanup(viper.Reset)

	ws.StubBinary("fake-proxy", `echo "$@" >> `+ws.Path+`/proxy.calls`)
	return ws
}

// proxyCalls returns the recorded fake-proxy invocations, one per line.
func proxyCalls(ws *testutil.Workspace) string {
	data, err := os.ReadFile(filepath.Join(ws.Path, "proxy.calls"))
	if err != nil {
		return ""
	}
	return string(data)
}

// wantExitCode asserts err carries the given process exit status.
func wantExitCode(t *testing.T, err error, code int) *exitError {
	t.Helper()

	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.code != code {
		t.Fatalf("exit code = %d, want %d (msg %q)", exitErr.code, code, exitErr.msg)
	}
	return exitErr
}
