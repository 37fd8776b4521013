package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metekarasubasi/notiva/internal/app"
)

// NewStatusCommand creates the backend availability command
func NewStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which backends can take messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			renderStatuses(out, container.Registry.Snapshot(), container.Registry.Cooldown(), container.Clock.Now())
			fmt.Fprintf(out, "mode: %s\n", container.QueryService.Mode())
			return nil
		},
	}
}
