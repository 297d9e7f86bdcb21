// Package cache maintains TTL-bound path snapshots backing the fuzzy
// lookup commands. Snapshots are flat newline-delimited lists produced
// by an external indexer and queried through an external fuzzy filter.
package cache

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

// Kind selects one of the two snapshots.
type Kind int

const (
	Files Kind = iota
	Dirs
)

func (k Kind) String() string {
	if k == Dirs {
		return "dirs"
	}
	return "files"
}

// Cache regenerates and queries the on-disk snapshot pair.
type Cache struct {
	Root    string        // subtree the indexer walks
	Dir     string        // snapshot storage directory
	TTL     time.Duration // maximum snapshot age
	Indexer string        // external recursive indexer, fd-compatible
	Filter  string        // external fuzzy filter, fzf-compatible
}

// Info describes one snapshot for the stats report.
type Info struct {
	Kind       string  `json:"kind"`
	Entries    int     `json:"entries"`
	AgeSeconds float64 `json:"age_seconds"`
}

func (c *Cache) snapshotPath(k Kind) string {
	return filepath.Join(c.Dir, k.String()+".list")
}

// EnsureFresh regenerates the snapshot when it is absent or its age has
// reached the TTL. Blocks until regeneration completes.
func (c *Cache) EnsureFresh(k Kind) error {
	if age, err := c.age(k); err == nil && age < c.TTL {
		return nil
	}
	return c.regenerate(k)
}

// RefreshAll regenerates both snapshots regardless of TTL.
func (c *Cache) RefreshAll() error {
	for _, k := range []Kind{Dirs, Files} {
		if err := c.regenerate(k); err != nil {
			return err
		}
	}
	return nil
}

// regenerate runs the indexer and atomically replaces the snapshot.
// A sibling flock serializes concurrent sessions; losing the race only
// means a redundant rewrite, never a torn file.
func (c *Cache) regenerate(k Kind) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	path := c.snapshotPath(k)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock snapshot: %w", err)
	}
	defer lock.Unlock()

	log.Debug("regenerating snapshot", "kind", k.String(), "root", c.Root)

	mode := "f"
	if k == Dirs {
		mode = "d"
	}
	cmd := exec.Command(c.Indexer,
		"--type", mode,
		"--hidden",
		"--exclude", ".git",
		"--absolute-path",
		".", c.Root,
	)
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("indexer failed: %w", err)
	}

	// Write to a temp file and rename so a concurrent reader never sees
	// a half-written snapshot.
	tmp, err := os.CreateTemp(c.Dir, k.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Query freshens the snapshot, ranks it against pattern through the
// fuzzy filter, and returns the best match. File results under the
// current working directory are rewritten relative to it. Returns ok
// false when the filter yields nothing.
func (c *Cache) Query(pattern string, k Kind) (string, bool, error) {
	if err := c.EnsureFresh(k); err != nil {
		return "", false, err
	}

	snapshot, err := os.Open(c.snapshotPath(k))
	if err != nil {
		return "", false, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer snapshot.Close()

	cmd := exec.Command(c.Filter, "--filter", pattern, "-i")
	cmd.Stdin = snapshot
	out, err := cmd.Output()
	if err != nil {
		// The filter exits nonzero when nothing matches.
		if _, ok := err.(*exec.ExitError); ok {
			return "", false, nil
		}
		return "", false, fmt.Errorf("fuzzy filter failed: %w", err)
	}

	match, _, _ := strings.Cut(string(out), "\n")
	if match == "" {
		return "", false, nil
	}
	if k == Files {
		match = relativize(match)
	}
	return match, true, nil
}

// relativize rewrites an absolute path relative to the working
// directory when it lies underneath it.
func relativize(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// Stats reports entry count and age for both snapshots. An absent or
// unreadable snapshot counts zero entries and is infinitely old.
func (c *Cache) Stats() []Info {
	infos := make([]Info, 0, 2)
	for _, k := range []Kind{Dirs, Files} {
		info := Info{Kind: k.String(), AgeSeconds: math.Inf(1)}
		if age, err := c.age(k); err == nil {
			info.AgeSeconds = age.Seconds()
			info.Entries = c.count(k)
		}
		infos = append(infos, info)
	}
	return infos
}

func (c *Cache) age(k Kind) (time.Duration, error) {
	stat, err := os.Stat(c.snapshotPath(k))
	if err != nil {
		return 0, err
	}
	return time.Since(stat.ModTime()), nil
}

func (c *Cache) count(k Kind) int {
	data, err := os.ReadFile(c.snapshotPath(k))
	if err != nil {
		return 0
	}
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(line) > 0 {
			n++
		}
	}
	return n
}
