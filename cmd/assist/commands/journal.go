package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ashwch/assist/internal/journal"
	"github.com/spf13/cobra"
)

func newJournalCmd(a *app) *cobra.Command {
	var (
		limit   int
		session string
	)
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent commands and routine transitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			j, err := journal.Open()
			if err != nil {
				return err
			}
			events, err := j.Recent(limit, strings.TrimSpace(session))
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no events recorded")
				return nil
			}
			for _, ev := range events {
				printEvent(cmd.OutOrStdout(), ev)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of events to show")
	cmd.Flags().StringVar(&session, "session", "", "only show events of this session id")
	return cmd
}

func printEvent(w io.Writer, ev journal.Event) {
	parts := []string{ev.Timestamp, ev.Kind}
	switch ev.Kind {
	case journal.KindTransition:
		parts = append(parts, routineLabel(ev), ev.From+"->"+ev.To)
	default:
		if ev.Command != "" {
			parts = append(parts, ev.Command)
		}
		if ev.Input != "" {
			parts = append(parts, strconv.Quote(ev.Input))
		}
		if ev.RoutineID != nil {
			parts = append(parts, routineLabel(ev))
		}
	}
	if ev.Note != "" {
		parts = append(parts, "("+ev.Note+")")
	}
	if ev.Error != "" {
		parts = append(parts, "error: "+ev.Error)
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func routineLabel(ev journal.Event) string {
	id := "?"
	if ev.RoutineID != nil {
		id = strconv.Itoa(*ev.RoutineID)
	}
	return fmt.Sprintf("#%s %s", id, ev.Routine)
}
