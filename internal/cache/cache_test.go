package cache

import (
	"fmt"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/idun-project/idun-defaults/internal/testutil"
)

// stubTools installs fake indexer and filter binaries. The indexer
// appends to indexer.calls on every run and emits two file paths (one
// under wd) or one directory path; the filter is a case-insensitive
// grep, which exits nonzero on no match just like the real one.
func stubTools(t *testing.T, ws *testutil.Workspace, wd string) {
	t.Helper()

	ws.StubBinary("fake-indexer", fmt.Sprintf(`echo run >> %q
if [ "$2" = "d" ]; then
  echo %q
else
  echo %q
  echo /elsewhere/beta.prg
fi
`, ws.Path+"/indexer.calls", wd+"/sub", wd+"/sub/alpha.prg"))

	ws.StubBinary("fake-filter", `grep -i -- "$2"`)
}

func newTestCache(ws *testutil.Workspace, ttl time.Duration) *Cache {
	return &Cache{
		Root:    ws.Path,
		Dir:     ws.Path + "/store",
		TTL:     ttl,
		Indexer: "fake-indexer",
		Filter:  "fake-filter",
	}
}

func indexerRuns(ws *testutil.Workspace) int {
	data, err := os.ReadFile(ws.Path + "/indexer.calls")
	if err != nil {
		return 0
	}
	return strings.Count(string(data), "\n")
}

func TestQueryReturnsBestMatch(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)
	match, ok, err := c.Query("ALPHA", Files)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if match != "sub/alpha.prg" {
		t.Errorf("path under wd must be relative, got %q", match)
	}
}

func TestQueryKeepsAbsolutePathOutsideWd(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)
	match, ok, err := c.Query("beta", Files)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !ok || match != "/elsewhere/beta.prg" {
		t.Errorf("path outside wd must stay absolute, got %q ok=%v", match, ok)
	}
}

func TestQueryDirsNotRelativized(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)
	match, ok, err := c.Query("sub", Dirs)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !ok || match != wd+"/sub" {
		t.Errorf("directory results keep the indexer's path, got %q ok=%v", match, ok)
	}
}

func TestQueryNoMatch(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)
	_, ok, err := c.Query("zzz-no-such-entry", Files)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if ok {
		t.Error("expected no match")
	}
}

func TestQueryIdempotentWithinTTL(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)

	first, ok1, err := c.Query("alpha", Files)
	if err != nil || !ok1 {
		t.Fatalf("first query failed: %v ok=%v", err, ok1)
	}
	second, ok2, err := c.Query("alpha", Files)
	if err != nil || !ok2 {
		t.Fatalf("second query failed: %v ok=%v", err, ok2)
	}

	if first != second {
		t.Errorf("results differ: %q vs %q", first, second)
	}
	if runs := indexerRuns(ws); runs != 1 {
		t.Errorf("expected exactly one regeneration, got %d", runs)
	}
}

func TestEnsureFreshRegeneratesAfterTTL(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)
	if err := c.EnsureFresh(Files); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	// Age the snapshot past the TTL.
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(c.snapshotPath(Files), old, old); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	if err := c.EnsureFresh(Files); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if runs := indexerRuns(ws); runs != 2 {
		t.Errorf("expected regeneration after TTL, got %d runs", runs)
	}
}

func TestRefreshAllIgnoresTTL(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)
	if err := c.RefreshAll(); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if err := c.RefreshAll(); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if runs := indexerRuns(ws); runs != 4 {
		t.Errorf("RefreshAll must regenerate both kinds every time, got %d runs", runs)
	}
}

func TestStatsAbsentSnapshots(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	c := newTestCache(ws, time.Hour)

	for _, info := range c.Stats() {
		if info.Entries != 0 {
			t.Errorf("%s: absent snapshot must count 0 entries", info.Kind)
		}
		if !math.IsInf(info.AgeSeconds, 1) {
			t.Errorf("%s: absent snapshot must be infinitely old", info.Kind)
		}
	}
}

func TestStatsAfterRefresh(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	wd, _ := os.Getwd()
	stubTools(t, ws, wd)

	c := newTestCache(ws, time.Hour)
	if err := c.RefreshAll(); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	for _, info := range c.Stats() {
		want := 2
		if info.Kind == "dirs" {
			want = 1
		}
		if info.Entries != want {
			t.Errorf("%s: entries = %d, want %d", info.Kind, info.Entries, want)
		}
		if info.AgeSeconds < 0 || info.AgeSeconds > 60 {
			t.Errorf("%s: implausible age %f", info.Kind, info.AgeSeconds)
		}
	}
}

func TestStatsCountsOversizedLines(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	c := newTestCache(ws, time.Hour)

	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	// A pathological path longer than any scanner line buffer must not
	// skew the count.
	long := "/deep/" + strings.Repeat("a", 2<<20)
	snapshot := long + "\n/short/path\n"
	if err := os.WriteFile(c.snapshotPath(Files), []byte(snapshot), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	for _, info := range c.Stats() {
		if info.Kind == "files" && info.Entries != 2 {
			t.Errorf("entries = %d, want 2", info.Entries)
		}
	}
}

func TestSessionLastMatchRoundTrip(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	s := &Session{Dir: ws.Path + "/store"}

	if _, ok := s.LastMatch(); ok {
		t.Error("LastMatch must be empty before any query")
	}

	if err := s.SetLastMatch("sub/alpha.prg"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	match, ok := s.LastMatch()
	if !ok || match != "sub/alpha.prg" {
		t.Errorf("round trip failed: %q ok=%v", match, ok)
	}

	// Later matches overwrite, never append.
	if err := s.SetLastMatch("/elsewhere/beta.prg"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	match, _ = s.LastMatch()
	if match != "/elsewhere/beta.prg" {
		t.Errorf("overwrite failed: %q", match)
	}
}
