package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"syncwatch/internal/model"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyN      int
	historyFailed bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent syncs of the running daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := fmt.Sprintf("%s?n=%d&failed=%t", daemonURL("/history"), historyN, historyFailed)
		resp, err := http.Get(url)
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("daemon returned %s", resp.Status)
		}

		var entries []model.HistoryEntry
		if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
			return err
		}

		printHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

func printHistory(w io.Writer, entries []model.HistoryEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "no history yet")
		return
	}

	for _, h := range entries {
		status := "✓"
		if h.Status != model.StatusSucceeded {
			status = "✗"
		}

		_, _ = fmt.Fprintf(w, "%s [%s] %-14s %8s %s\n",
			status,
			h.StartedAt.Format("2006-01-02 15:04:05"),
			h.Status,
			h.Duration.Round(time.Millisecond),
			h.Trigger,
		)
		if h.Error != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", h.Error)
		}
		if h.Deduped != nil && !*h.Deduped {
			_, _ = fmt.Fprintln(w, "    dedupe failed")
		}
	}
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of history entries to show")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "only show failed syncs")
	rootCmd.AddCommand(historyCmd)
}
