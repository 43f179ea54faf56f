package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache size and entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cache.NewFileCache(c.cacheDir())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			stats, err := fc.Stats()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}

			printKeyValue("directory", fc.Dir())
			printKeyValue("entries", humanize.Comma(int64(stats.Entries)))
			printKeyValue("size", humanize.IBytes(uint64(stats.Bytes)))
			if stats.Expired > 0 {
				printKeyValue("expired", humanize.Comma(int64(stats.Expired)))
				printNewline()
				printNextStep("Reclaim space", "gallery cache prune")
			}
			return nil
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cache.NewFileCache(c.cacheDir())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			n, err := fc.Prune()
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			printSuccess("Removed %s expired %s", humanize.Comma(int64(n)), plural(n, "entry", "entries"))
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cache.NewFileCache(c.cacheDir())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			stats, err := fc.Stats()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			if stats.Entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %s cached %s (%s)",
				humanize.Comma(int64(stats.Entries)), plural(stats.Entries, "entry", "entries"),
				humanize.IBytes(uint64(stats.Bytes)))
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, c.cacheDir())
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
