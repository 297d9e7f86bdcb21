// Package mount validates drive-mount requests and picks between the
// remote mount primitives.
package mount

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/idun-project/idun-defaults/internal/proxy"
)

var driveRe = regexp.MustCompile(`^[A-Za-z]:$`)

// imageSuffixes are the disk-image formats mounted by image, matched
// case-insensitively against the target's suffix.
var imageSuffixes = []string{".d64", ".d71", ".t64"}

// primaryLetters are the drives the C64 Ultimate hardware exposes
// directly; mounting them goes through the privileged channel when the
// hardware is reachable.
const primaryLetters = "ab"

// Action is the classified outcome of a mount request.
type Action int

const (
	// ListMounts queries the active virtual drives (no target).
	ListMounts Action = iota
	// PrivilegedMount drives the C64 Ultimate REST channel directly.
	PrivilegedMount
	// ImageMount attaches a disk-image file.
	ImageMount
	// DirAssign maps a local directory onto the drive.
	DirAssign
)

// Plan describes what a mount invocation should do, without doing it.
type Plan struct {
	Action Action
	Drive  string // single lowercase letter
	Target string
}

// UsageError reports a malformed invocation; no remote call is made.
type UsageError struct{ Msg string }

func (e *UsageError) Error() string { return e.Msg }

// NotFoundError reports a target that is neither a disk image nor an
// existing directory.
type NotFoundError struct{ Target string }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("target path not found: %s", e.Target)
}

// ParseDrive validates a drive spec and returns its lowercase letter.
func ParseDrive(arg string) (string, error) {
	if !driveRe.MatchString(arg) {
		return "", &UsageError{Msg: fmt.Sprintf("invalid drive spec: %s", arg)}
	}
	return strings.ToLower(arg[:1]), nil
}

// Resolve classifies a mount invocation. hasUltimate indicates the
// device-IP capability is present.
func Resolve(args []string, hasUltimate bool) (Plan, error) {
	switch len(args) {
	case 0:
		return Plan{Action: ListMounts}, nil
	case 2:
	default:
		return Plan{}, &UsageError{Msg: "usage: mount [<drive:> <image-or-path>]"}
	}

	target := args[1]
	drive, err := ParseDrive(args[0])
	if err != nil {
		return Plan{}, err
	}

	if hasUltimate && strings.Contains(primaryLetters, drive) {
		return Plan{Action: PrivilegedMount, Drive: drive, Target: target}, nil
	}
	if isImage(target) {
		return Plan{Action: ImageMount, Drive: drive, Target: target}, nil
	}
	if isDir(target) {
		return Plan{Action: DirAssign, Drive: drive, Target: target}, nil
	}
	return Plan{}, &NotFoundError{Target: target}
}

// Request translates a plan into the proxy operation that carries it
// out. Not valid for PrivilegedMount, which bypasses the proxy.
func (p Plan) Request() proxy.Request {
	switch p.Action {
	case ListMounts:
		return proxy.Request{Name: "drives", Kind: proxy.Message}
	case DirAssign:
		return proxy.Request{Name: "assign", Args: []string{p.Drive + ":", p.Target}, Kind: proxy.Message}
	default:
		return proxy.Request{Name: "mount", Args: []string{p.Drive + ":", p.Target}, Kind: proxy.Message}
	}
}

// isImage matches recognized disk-image suffixes. Classification is by
// suffix only; an existing same-named directory never overrides it.
func isImage(target string) bool {
	ext := strings.ToLower(filepath.Ext(target))
	for _, s := range imageSuffixes {
		if ext == s {
			return true
		}
	}
	return false
}

func isDir(target string) bool {
	info, err := os.Stat(target)
	return err == nil && info.IsDir()
}
