package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/metekarasubasi/notiva/internal/app"
	"github.com/metekarasubasi/notiva/internal/application/history"
	"github.com/metekarasubasi/notiva/internal/infrastructure/cli/helpers"
	"github.com/metekarasubasi/notiva/internal/infrastructure/transcript"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the stored conversation",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryCountCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMessages(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max messages to show (0 for all)")
	return cmd
}

// newHistoryCountCommand creates the 'history count' subcommand
func newHistoryCountCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Transcript == nil {
				return fmt.Errorf(ErrTranscriptUnavailable)
			}
			n, err := container.Transcript.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count messages: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored message",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Transcript == nil {
				return fmt.Errorf(ErrTranscriptUnavailable)
			}
			if !yes && !helpers.PromptForConfirmation(cmd.OutOrStdout(), cmd.InOrStdin(), "Delete the stored conversation?") {
				fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
				return nil
			}
			if err := container.Transcript.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			container.History.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportMessages(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	var includeCommon bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show message counts, topic and most frequent words",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.Context(), cmd.OutOrStdout(), container, !includeCommon)
		},
	}

	cmd.Flags().BoolVar(&includeCommon, "include-common", false, "Keep Turkish stop words in the word counts")
	return cmd
}

// listMessages prints the last limit messages, oldest first
func listMessages(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	if container.Transcript == nil {
		return fmt.Errorf(ErrTranscriptUnavailable)
	}

	msgs, err := container.Transcript.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve history: %w", err)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	now := container.Clock.Now()
	for _, msg := range msgs {
		renderMessage(out, msg, now)
	}
	return nil
}

// exportMessages writes the whole transcript to path
func exportMessages(ctx context.Context, out io.Writer, container *app.Container, path string) error {
	if container.Transcript == nil {
		return fmt.Errorf(ErrTranscriptUnavailable)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	n, err := transcript.Export(ctx, container.Transcript, file)
	if err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}
	fmt.Fprintf(out, "Exported %d messages to %s\n", n, path)
	return nil
}

// showHistoryStats summarizes the stored conversation
func showHistoryStats(ctx context.Context, out io.Writer, container *app.Container, excludeCommon bool) error {
	if container.Transcript == nil {
		return fmt.Errorf(ErrTranscriptUnavailable)
	}

	msgs, err := container.Transcript.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	// a tracker sized to the whole transcript gives the same analysis the
	// classifier runs over the recent window
	tracker := history.NewTracker(len(msgs))
	for _, msg := range msgs {
		tracker.Append(msg)
	}

	fmt.Fprintf(out, "Messages: %d (you %d, notiva %d)\n",
		tracker.Len(), len(tracker.RecentUser()), len(tracker.RecentBot()))
	fmt.Fprintf(out, "Topic: %s\n", tracker.DetectTopic())
	fmt.Fprintln(out, "Top words:")
	words := tracker.MostFrequentWords(excludeCommon)
	if len(words) > DefaultTopWords {
		words = words[:DefaultTopWords]
	}
	for _, wc := range words {
		fmt.Fprintf(out, "  %s (%d)\n", wc.Word, wc.Count)
	}
	return nil
}
