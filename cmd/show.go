package cmd

import (
	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/viewer"
)

var showCmd = &cobra.Command{
	Use:   "show <file>...",
	Short: "Display image files on the device",
	Long: `Display one or more image files using the device viewer matching
their extension (koa, zx, vdc). Mixed or unrecognized extensions fall
back to the VDC viewer.

Example:
  show title.koa loader.koa`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	req, err := viewer.Request(args)
	if err != nil {
		return usageError("show: %v", err)
	}
	return exitStatus(newProxy().Invoke(req))
}
