package cmd

import (
	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/proxy"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running program (sends the STOP key)",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	return exitStatus(newProxy().Invoke(proxy.Request{Name: "stop", Kind: proxy.Message}))
}
