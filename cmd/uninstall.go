package cmd

import (
	"fmt"
	"syncwatch/internal/autostart"
	"syncwatch/internal/runner"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop starting the watch daemon at login",
	RunE: func(cmd *cobra.Command, args []string) error {
		as := autostart.New(runner.ExecRunner{})

		installed, err := as.IsInstalled(cmd.Context())
		if err != nil {
			return err
		}
		if !installed {
			fmt.Println("syncwatch daemon is not registered")
			return nil
		}

		if err := as.Uninstall(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("syncwatch daemon autostart removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
