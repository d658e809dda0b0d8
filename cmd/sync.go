package cmd

import (
	"fmt"
	"syncwatch/internal/logger"
	"syncwatch/internal/syncer"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the source to the destination once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		if err := cfg.Validate(); err != nil {
			return err
		}

		e := syncer.NewExecutor(cfg.Target(), syncCommand(), syncer.Options{
			Log: logger.Log.Named("syncer"),
		})

		outcome := e.RunSync(cmd.Context(), "manual")
		logger.Log.Info("sync finished",
			zap.String("status", string(outcome.Status)),
			zap.Duration("duration", outcome.Duration))

		if !outcome.Success() {
			return outcome.Err
		}

		fmt.Printf("done in %s\n", outcome.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
