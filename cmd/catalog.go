package cmd

import (
	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/proxy"
)

var catalogXArgs string

var catalogCmd = &cobra.Command{
	Use:   "catalog [-x flags] [dev]",
	Short: "List device files in long format",
	Long: `List device files using the long catalog format. Flag characters
given with -x are forwarded to the device-side catalog command.

Example:
  catalog -x fs a:`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVarP(&catalogXArgs, "xarg", "x", "", "Add flag arguments to the command")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	req := proxy.Request{Name: "catalog", Args: args, Kind: proxy.Exec, XArgs: catalogXArgs}
	return exitStatus(newProxy().Invoke(req))
}
