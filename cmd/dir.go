package cmd

import (
	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/proxy"
)

var dirCmd = &cobra.Command{
	Use:   "dir [dev]",
	Short: "List device files in short format",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDir,
}

func init() {
	rootCmd.AddCommand(dirCmd)
}

func runDir(cmd *cobra.Command, args []string) error {
	req := proxy.Request{Name: "dir", Args: args, Kind: proxy.Exec}
	return exitStatus(newProxy().Invoke(req))
}
