package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/config"
	"github.com/idun-project/idun-defaults/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name> [args...]",
	Short: "Shell command-not-found hook",
	Long: `Invoked by the shell's command-not-found hook with the attempted
command name and its original arguments. If the name resolves to a
device-side command, it is forwarded through the proxy; otherwise the
usual "command not found" message is printed and 127 returned.

Shell glue:
  command_not_found_handler() { idun resolve "$@"; }`,
	Hidden:             true,
	DisableFlagParsing: true,
	Args:               cobra.MinimumNArgs(1),
	RunE:               runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	r := &resolver.Resolver{SystemDir: config.GetSystemDir()}

	req, err := r.Resolve(args[0], args[1:])
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			return &exitError{code: 127, msg: fmt.Sprintf("%s: command not found", args[0])}
		}
		return err
	}
	return exitStatus(newProxy().Invoke(req))
}
