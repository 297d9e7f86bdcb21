package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:    "complete",
	Short:  "Print the last fuzzy-file match as a completion candidate",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	match, ok := newSession().LastMatch()
	if !ok {
		return &exitError{code: 1}
	}
	fmt.Println(match)
	return nil
}
