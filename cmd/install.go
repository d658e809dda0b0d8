package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"syncwatch/internal/autostart"
	"syncwatch/internal/runner"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Start the watch daemon at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		opts := autostart.Options{ExecPath: execPath}
		if abs, err := filepath.Abs(envFile); err == nil {
			if _, err := os.Stat(abs); err == nil {
				opts.EnvFile = abs
			}
		}

		as := autostart.New(runner.ExecRunner{})
		if err := as.Install(cmd.Context(), opts); err != nil {
			return err
		}

		fmt.Println("syncwatch daemon registered for autostart")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
