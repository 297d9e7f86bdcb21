package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/cache"
)

var ffCmd = &cobra.Command{
	Use:   "ff <pattern>",
	Short: "Fuzzy-find a file",
	Long: `Fuzzy-find a file from the cached index and print the best match.
Paths under the current directory are printed relative to it. The
match is remembered and offered as the completion candidate for the
next run/show invocation.`,
	Args: cobra.ExactArgs(1),
	RunE: runFf,
}

func init() {
	rootCmd.AddCommand(ffCmd)
}

func runFf(cmd *cobra.Command, args []string) error {
	match, ok, err := newCache().Query(args[0], cache.Files)
	if err != nil {
		return err
	}
	if !ok {
		return usageError("ff: no file matches %q", args[0])
	}
	if err := newSession().SetLastMatch(match); err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	fmt.Println(match)
	return nil
}
