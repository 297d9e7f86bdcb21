package proxy

import (
	"fmt"
	"os"
	"strings"
)

// ExecutionContext selects the channel used to reach the device.
type ExecutionContext int

const (
	// StandardTerminal means we were started from an ordinary shell and
	// must redirect device output back to this process explicitly.
	StandardTerminal ExecutionContext = iota
	// InteractiveShell means our parent is the idun device shell itself,
	// which already owns the terminal; output streams through directly.
	InteractiveShell
)

// DetectContext resolves the execution context once at startup by
// inspecting the parent process's comm name.
func DetectContext(shellComm string) ExecutionContext {
	name, err := parentComm()
	if err != nil {
		return StandardTerminal
	}
	if name == shellComm {
		return InteractiveShell
	}
	return StandardTerminal
}

func parentComm() (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", os.Getppid()))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
