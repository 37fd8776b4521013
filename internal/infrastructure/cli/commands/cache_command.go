package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/metekarasubasi/notiva/internal/app"
)

// NewCacheCommand creates the geocode cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the geocode cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
	)

	return cacheCmd
}

// newCacheListCommand creates the 'cache list' subcommand
func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached city coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Locations == nil {
				return fmt.Errorf(ErrCacheUnavailable)
			}
			if err := container.Locations.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgCacheCleared)
			return nil
		},
	}
}

// listCacheEntries prints every cached location, oldest first
func listCacheEntries(out io.Writer, container *app.Container) error {
	if container.Locations == nil {
		return fmt.Errorf(ErrCacheUnavailable)
	}

	entries, err := container.Locations.Entries()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedLocations)
		return nil
	}

	now := container.Clock.Now()
	for _, entry := range entries {
		fmt.Fprintf(out, "%-20s %9.4f %9.4f  %s\n",
			entry.Key,
			entry.Coordinates.Lat,
			entry.Coordinates.Lon,
			humanize.RelTime(entry.CreatedAt, now, "ago", "from now"))
	}
	return nil
}
