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

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var snap model.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		printSnapshot(cmd.OutOrStdout(), snap, time.Now())
		return nil
	},
}

func printSnapshot(w io.Writer, snap model.Snapshot, now time.Time) {
	lastSync := "-"
	if snap.LastSync != nil {
		lastSync = fmt.Sprintf("%s (%s)", snap.LastSync.Format("2006-01-02 15:04:05"), snap.LastStatus)
	}

	state := "idle"
	if snap.Running {
		state = "syncing"
	}

	_, _ = fmt.Fprintf(w, "%-12s %s\n", "SRC", snap.Src)
	_, _ = fmt.Fprintf(w, "%-12s %s\n", "DST", snap.Dst)
	_, _ = fmt.Fprintf(w, "%-12s %s\n", "STATE", state)
	_, _ = fmt.Fprintf(w, "%-12s %s\n", "COOLDOWN", snap.Cooldown)
	_, _ = fmt.Fprintf(w, "%-12s %s\n", "UPTIME", now.Sub(snap.StartedAt).Round(time.Second))
	_, _ = fmt.Fprintf(w, "%-12s %d (ignored %d, suppressed %d)\n", "EVENTS", snap.Events, snap.Ignored, snap.Suppressed)
	_, _ = fmt.Fprintf(w, "%-12s %d synced, %d failed\n", "SYNCS", snap.Synced, snap.Failed)
	_, _ = fmt.Fprintf(w, "%-12s %s\n", "LAST SYNC", lastSync)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
