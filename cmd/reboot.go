package cmd

import (
	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/proxy"
)

var rebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Fully reboot the idun cartridge and Commodore",
	Args:  cobra.NoArgs,
	RunE:  runReboot,
}

func init() {
	rootCmd.AddCommand(rebootCmd)
}

func runReboot(cmd *cobra.Command, args []string) error {
	return exitStatus(newProxy().Invoke(proxy.Request{Name: "reboot", Kind: proxy.Message}))
}
