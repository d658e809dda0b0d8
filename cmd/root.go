package cmd

import (
	"fmt"
	"os"
	"syncwatch/internal/config"
	"syncwatch/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg     *config.Config
	debug   bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:           "syncwatch",
	Short:         "Mirror a local directory to an rclone remote whenever it changes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}

		// Client commands only talk to a running daemon and keep no log file.
		logDir := cfg.LogDir
		if clientCmds[cmd.Name()] {
			logDir = ""
		}

		logPath, err := logger.Init(debug, logDir)
		if err != nil {
			return err
		}
		if logPath != "" {
			logger.Log.Debug("logging to file", zap.String("path", logPath))
		}

		return nil
	},
}

var clientCmds = map[string]bool{
	"status": true, "history": true, "stop": true,
	"install": true, "uninstall": true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		logger.Sync()
		os.Exit(1)
	}
}

func daemonURL(path string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", cfg.DaemonPort, path)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with SOURCE_PATH and DESTINATION_PATH")
}
