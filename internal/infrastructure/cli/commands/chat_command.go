package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metekarasubasi/notiva/internal/app"
	"github.com/metekarasubasi/notiva/internal/domain"
)

type outcome struct {
	exchange domain.Exchange
	err      error
}

// NewChatCommand creates the interactive chat command
func NewChatCommand(container *app.Container) *cobra.Command {
	var (
		mode    string
		resume  bool
		limit   int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation. Lines starting with a slash are commands:
  /mode <auto|weather|encyclopedia|chat>  switch routing and start over
  /clear                                  forget recent messages
  /status                                 show backend availability
  /quit                                   leave the chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyMode(container, mode); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if container.RulesWatcher != nil {
				if err := container.RulesWatcher.Start(); err != nil {
					container.Logger.Warn("rules watcher not started", map[string]interface{}{"error": err.Error()})
				}
				defer container.RulesWatcher.Close()
			}
			if resume {
				if limit <= 0 {
					limit = container.History.Capacity()
				}
				n, err := container.QueryService.Resume(cmd.Context(), limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Resumed %d messages.\n", n)
			}
			return runChat(cmd.Context(), cmd.InOrStdin(), out, container, verbose)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Routing mode: auto|weather|encyclopedia|chat (default from config)")
	cmd.Flags().BoolVar(&resume, "resume", false, "Seed the conversation with the last stored messages")
	cmd.Flags().IntVar(&limit, "resume-limit", 0, "Messages to resume (default: history size)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the routing decision before each reply")
	return cmd
}

// runChat reads lines until EOF, /quit or cancellation
func runChat(ctx context.Context, in io.Reader, out io.Writer, container *app.Container, verbose bool) error {
	svc := container.QueryService
	spinner := NewSpinner(out)
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Notiva (%s mode). /quit to leave.\n", svc.Mode())
	for {
		fmt.Fprint(out, ChatPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := runChatCommand(out, container, line)
			if err != nil {
				fmt.Fprintln(out, err)
			}
			if quit {
				return nil
			}
			continue
		}

		done := make(chan outcome, 1)
		go func() {
			exchange, err := svc.HandleUserMessage(ctx, line)
			done <- outcome{exchange: exchange, err: err}
		}()
		spinner.Start()
		result := <-done
		spinner.Stop()

		if result.err != nil {
			if errors.Is(result.err, domain.ErrQueryInFlight) {
				fmt.Fprintln(out, "Still answering the previous message.")
				continue
			}
			return result.err
		}
		renderExchange(out, result.exchange, verbose)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// runChatCommand handles a slash command; it reports whether to quit
func runChatCommand(out io.Writer, container *app.Container, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/clear":
		container.History.Clear()
		fmt.Fprintln(out, "Conversation cleared.")
	case "/mode":
		if len(fields) < 2 {
			fmt.Fprintf(out, "Mode: %s\n", container.QueryService.Mode())
			return false, nil
		}
		mode, err := domain.ParseRoutingMode(fields[1])
		if err != nil {
			return false, err
		}
		container.QueryService.SetMode(mode)
		fmt.Fprintf(out, "Mode set to %s, conversation cleared.\n", mode)
	case "/status":
		now := container.Clock.Now()
		renderStatuses(out, container.Registry.Snapshot(), container.Registry.Cooldown(), now)
		fmt.Fprintf(out, "mode %s, %d recent messages, topic %s\n",
			container.QueryService.Mode(), container.History.Len(), container.History.DetectTopic())
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}
