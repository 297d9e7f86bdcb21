package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idun-project/idun-defaults/internal/cache"
)

var zcdCmd = &cobra.Command{
	Use:     "zcd <pattern>",
	Aliases: []string{"cd"},
	Short:   "Fuzzy-find a directory",
	Long: `Fuzzy-find a directory from the cached index and print the best
match. The shell glue wrapping this command performs the actual cd:

  zcd() { local d; d=$(idun zcd "$@") && cd "$d"; }`,
	Args: cobra.ExactArgs(1),
	RunE: runZcd,
}

func init() {
	rootCmd.AddCommand(zcdCmd)
}

func runZcd(cmd *cobra.Command, args []string) error {
	match, ok, err := newCache().Query(args[0], cache.Dirs)
	if err != nil {
		return err
	}
	if !ok {
		return usageError("zcd: no directory matches %q", args[0])
	}
	fmt.Println(match)
	return nil
}
