// Package resolver decides whether an unrecognized shell command should
// be forwarded to the device, and how.
package resolver

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/idun-project/idun-defaults/internal/proxy"
)

// ErrNotFound means every resolution rule was exhausted.
var ErrNotFound = errors.New("command not found")

// devicePrefixRe matches names like "a:prog" that address a device drive.
var devicePrefixRe = regexp.MustCompile(`^[A-Za-z]:`)

// toolHeader is the fixed 8-byte prefix identifying a device-executable
// binary. Bytes 1 and 2 hold the load vector and are not checked.
var toolHeader = struct {
	opcode byte
	marker byte
	tail   []byte
}{0x4C, 0xCB, []byte{0x06, 0x10, 0x40, 0x00}}

// Resolver implements the shell's "unknown command" hook.
type Resolver struct {
	// SystemDir is the directory searched for device-side commands.
	SystemDir string
}

// Resolve determines how to forward name, trying each rule in order.
// Missing or unreadable candidate files silently fall through to the
// next rule. Returns ErrNotFound when no rule matches.
func (r *Resolver) Resolve(name string, args []string) (proxy.Request, error) {
	expanded := ExpandArguments(args)
	forward := proxy.Request{
		Name: "exec",
		Args: append([]string{name}, expanded...),
		Kind: proxy.Exec,
	}

	if fileExists(filepath.Join(r.SystemDir, name)) {
		return forward, nil
	}
	if devicePrefixRe.MatchString(name) {
		return forward, nil
	}
	if isTool(filepath.Join(".", name)) {
		return forward, nil
	}
	return proxy.Request{}, ErrNotFound
}

// ExpandArguments glob-expands each argument independently. Arguments
// that match at least one path are replaced by their expansion set in
// place; non-matching patterns pass through literally.
func ExpandArguments(args []string) []string {
	var out []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			out = append(out, arg)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// isTool reports whether the file begins with the device tool header.
func isTool(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var header [8]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return false
	}
	return header[0] == toolHeader.opcode &&
		header[3] == toolHeader.marker &&
		bytes.Equal(header[4:8], toolHeader.tail)
}
