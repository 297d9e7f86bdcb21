// Package proxy spawns the external idun proxy binary that translates
// local commands into device-shell operations.
//
// The proxy's command-line contract: a device subcommand name followed by
// its arguments, a -o flag redirecting device output back to the caller,
// and a -x option forwarding extended argument flags. Exec semantics (run
// a program and return its result) versus plain message semantics (issue a
// control command and return acknowledgement) are carried by the
// subcommand itself: exec/load/dir/catalog run things, drives/mount/
// assign/reboot/stop are control messages.
package proxy

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// ExitNotFound is the reserved "command not found" status, also used
// when the proxy itself cannot be reached.
const ExitNotFound = 127

// Kind distinguishes requests that run a program on the device from
// control messages that only expect an acknowledgement.
type Kind int

const (
	Exec Kind = iota
	Message
)

// Request is one forwarded operation. Created per invocation, never
// mutated, discarded once the proxy call returns.
type Request struct {
	Name  string
	Args  []string
	Kind  Kind
	XArgs string
}

// Tool names the program the request ultimately runs, for error
// reporting. For exec forwards that is the first argument; for device
// subcommands it is the subcommand itself.
func (r Request) Tool() string {
	if r.Name == "exec" && len(r.Args) > 0 {
		return r.Args[0]
	}
	return r.Name
}

// Proxy is the shared transport used by every device-facing command.
type Proxy struct {
	Binary  string
	Context ExecutionContext
}

func New(binary string, ctx ExecutionContext) *Proxy {
	return &Proxy{Binary: binary, Context: ctx}
}

// Invoke spawns exactly one proxy process for the request and returns
// its exit status unchanged. No retries. On spawn failure it reports
// "<tool> failed to load" and returns ExitNotFound.
func (p *Proxy) Invoke(req Request) int {
	argv := p.argv(req)
	log.Debug("invoking proxy", "binary", p.Binary, "argv", argv)

	cmd := exec.Command(p.Binary, argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "%s failed to load\n", req.Tool())
		return ExitNotFound
	}
	return 0
}

func (p *Proxy) argv(req Request) []string {
	var argv []string
	if p.Context == StandardTerminal {
		// Batch channel: device output is always redirected back here.
		argv = append(argv, "-o")
	}
	if req.XArgs != "" {
		argv = append(argv, "-x", req.XArgs)
	}
	argv = append(argv, req.Name)
	return append(argv, req.Args...)
}
