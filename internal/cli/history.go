package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/navigate/internal/journal"
)

var errNoJournal = errors.New("the prompt journal is disabled (set journal: true in the config)")

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit    int
		sessions bool
	)

	cmd := &cobra.Command{
		Use:   "history [query...]",
		Short: "List or search previously processed prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if rt.Journal == nil {
				return errNoJournal
			}
			out := cmd.OutOrStdout()
			if sessions {
				return printSessions(out, rt.Journal, limit)
			}
			return printEntries(out, rt.Journal, strings.Join(args, " "), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries to show")
	cmd.Flags().BoolVar(&sessions, "sessions", false, "List sessions instead of prompts")
	return cmd
}

func printEntries(w io.Writer, store *journal.Store, query string, limit int) error {
	entries, err := store.Search(query, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No prompt history found.")
		return nil
	}

	fmt.Fprintf(w, "Prompts (%d):\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  %s  %-16s  %s\n", e.CreatedAt, e.Action, journal.Truncate(e.Prompt, 60))
		fmt.Fprintf(w, "    %s\n\n", journal.Truncate(e.Response, 120))
	}
	return nil
}

func printSessions(w io.Writer, store *journal.Store, limit int) error {
	list, err := store.RecentSessions(limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}

	fmt.Fprintf(w, "Recent Sessions (%d):\n\n", len(list))
	for _, s := range list {
		ended := "open"
		if s.EndedAt != nil {
			ended = *s.EndedAt
		}
		fmt.Fprintf(w, "  %s  %s -> %s  %d prompts\n", s.ID[:8], s.StartedAt, ended, s.EntryCount)
	}
	return nil
}
