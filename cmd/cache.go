package cmd

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
)

var (
	cacheInfoJSON bool
	cacheInfoToon bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the fuzzy-lookup snapshots",
}

var cacheRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force regeneration of both snapshots",
	Args:  cobra.NoArgs,
	RunE:  runCacheRefresh,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Report snapshot entry counts and ages",
	Long: `Report, for each snapshot kind, the number of indexed entries and
the snapshot age in seconds.

Examples:
  idun cache info
  idun cache info --json
  idun cache info --toon`,
	Args: cobra.NoArgs,
	RunE: runCacheInfo,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheRefreshCmd)
	cacheCmd.AddCommand(cacheInfoCmd)

	cacheInfoCmd.Flags().BoolVar(&cacheInfoJSON, "json", false, "Output as JSON")
	cacheInfoCmd.Flags().BoolVar(&cacheInfoToon, "toon", false, "Output in LLM-friendly toon format")
}

func runCacheRefresh(cmd *cobra.Command, args []string) error {
	if err := newCache().RefreshAll(); err != nil {
		return fmt.Errorf("cache refresh failed: %w", err)
	}
	fmt.Println("✓ Snapshots regenerated")
	return nil
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	infos := newCache().Stats()

	if cacheInfoJSON || cacheInfoToon {
		// Infinity does not serialize; absent snapshots report age -1.
		for i := range infos {
			if math.IsInf(infos[i].AgeSeconds, 1) {
				infos[i].AgeSeconds = -1
			}
		}
	}

	if cacheInfoJSON {
		output, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if cacheInfoToon {
		output, err := gotoon.Encode(infos)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	for _, info := range infos {
		age := "never refreshed"
		if !math.IsInf(info.AgeSeconds, 1) {
			age = fmt.Sprintf("%.0fs old", info.AgeSeconds)
		}
		fmt.Printf("%-6s %6d entries  %s\n", info.Kind, info.Entries, age)
	}
	return nil
}
