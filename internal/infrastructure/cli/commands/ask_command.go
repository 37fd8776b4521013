package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metekarasubasi/notiva/internal/app"
	"github.com/metekarasubasi/notiva/internal/domain"
)

// NewAskCommand creates the one-shot ask command
func NewAskCommand(container *app.Container) *cobra.Command {
	var (
		mode    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyMode(container, mode); err != nil {
				return err
			}
			exchange, err := container.QueryService.HandleUserMessage(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			renderExchange(cmd.OutOrStdout(), exchange, verbose)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Routing mode: auto|weather|encyclopedia|chat (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the routing decision before the reply")
	return cmd
}

// applyMode switches routing when a mode flag was given
func applyMode(container *app.Container, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	mode, err := domain.ParseRoutingMode(raw)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	container.QueryService.SetMode(mode)
	return nil
}
