package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/internal/gh"
)

// NewCmdCache creates the cache command with subcommands.
func NewCmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the resolved version cache",
	}

	cmd.AddCommand(newCmdCacheClear())
	cmd.AddCommand(newCmdCacheStats())

	return cmd
}

func newCmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the resolved version cache",
		RunE:  runCacheClear,
	}
}

func newCmdCacheStats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE:  runCacheStats,
	}
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cache, err := gh.NewVersionCache()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}

	if err := cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Println("Cache cleared.")
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cache, err := gh.NewVersionCache()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}

	total, valid, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to get cache stats: %w", err)
	}

	fmt.Printf("Version cache (TTL: %s):\n", gh.DefaultCacheTTL)
	fmt.Printf("  Total entries: %d\n", total)
	fmt.Printf("  Valid: %d\n", valid)
	fmt.Printf("  Expired: %d\n", total-valid)
	return nil
}
