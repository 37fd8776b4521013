package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/metekarasubasi/notiva/internal/app"
	"github.com/metekarasubasi/notiva/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The returned container must be
// closed by the caller once the command has run.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}

	askCmd := commands.NewAskCommand(container)

	root := &cobra.Command{
		Use:   "notiva [message]",
		Short: "Notiva - Turkish chat assistant",
		Long:  "Notiva answers weather, encyclopedia and general questions, routing each message to the backend that fits it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			askCmd.SetContext(cmd.Context())
			askCmd.SetOut(cmd.OutOrStdout())
			return askCmd.RunE(askCmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		askCmd,
		commands.NewChatCommand(container),
		commands.NewStatusCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewCacheCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, container, nil
}
