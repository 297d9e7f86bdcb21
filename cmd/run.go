package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/config"
	"github.com/idun-project/idun-defaults/internal/proxy"
	"github.com/idun-project/idun-defaults/internal/ultimate"
)

var runUltimate bool

var runCmd = &cobra.Command{
	Use:     "run [-u] <file>",
	Aliases: []string{"zload"},
	Short:   "Load and run a program on the device",
	Long: `Load a native program on the Commodore. With -u the file is sent
to the C64 Ultimate runner service instead of the idun proxy, which
also accepts CRT, SID, and MOD content.

Examples:
  run game.prg
  run -u tune.sid`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runUltimate, "ultimate", "u", false, "Use the C64 Ultimate runner to load content")
}

func runRun(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if _, err := os.Stat(filename); err != nil {
		return &exitError{code: 2, msg: filename + ": file not found"}
	}

	if runUltimate {
		ip := config.GetUltimateIP()
		if ip == "" {
			return usageError("run -u requires $C64_ULTIMATE_IP set")
		}
		return ultimate.NewClient(ip).Run(filename)
	}

	req := proxy.Request{Name: "load", Args: []string{filename}, Kind: proxy.Exec}
	return exitStatus(newProxy().Invoke(req))
}
