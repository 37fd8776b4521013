package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/metekarasubasi/notiva/internal/domain"
)

// renderExchange prints the reply, with routing details when verbose.
func renderExchange(out io.Writer, exchange domain.Exchange, verbose bool) {
	if verbose {
		status := "ok"
		if !exchange.Succeeded {
			status = "failed"
		}
		fmt.Fprintf(out, "[%s, %s]\n", exchange.Classification, status)
	}
	fmt.Fprintln(out, exchange.Reply.Text)
}

// renderMessage prints one transcript line.
func renderMessage(out io.Writer, msg domain.Message, now time.Time) {
	fmt.Fprintf(out, "%s (%s) %s: %s\n",
		msg.Timestamp.Local().Format(TimestampFormat),
		humanize.RelTime(msg.Timestamp, now, "ago", "from now"),
		speakerLabel(msg),
		oneLine(msg.Text))
}

// renderStatuses prints the availability table.
func renderStatuses(out io.Writer, statuses []domain.BackendStatus, cooldown time.Duration, now time.Time) {
	for _, st := range statuses {
		state := "available"
		switch {
		case st.Backend.RequiresCredential() && !st.HasCredential:
			state = "no credential"
		case st.InCooldown(now, cooldown):
			state = fmt.Sprintf("cooling down, errored %s", humanize.RelTime(st.LastErrorTime, now, "ago", "from now"))
		}
		fmt.Fprintf(out, "%-16s %s\n", st.Backend, state)
	}
}

func speakerLabel(msg domain.Message) string {
	if msg.IsFromUser {
		return "you"
	}
	return "notiva"
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
