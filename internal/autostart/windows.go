package autostart

import (
	"context"
	"fmt"
	"syncwatch/internal/runner"
)

const taskName = "SyncwatchDaemon"

// WindowsAutoStarter manages a Task Scheduler logon task.
type WindowsAutoStarter struct {
	runner runner.Runner
}

func taskCommand(opts Options) string {
	tr := fmt.Sprintf(`"%s" watch`, opts.ExecPath)
	if opts.EnvFile != "" {
		tr += fmt.Sprintf(` --env-file "%s"`, opts.EnvFile)
	}
	return tr
}

func (w *WindowsAutoStarter) Install(ctx context.Context, opts Options) error {
	args := []string{"/Create",
		"/TN", taskName,
		"/TR", taskCommand(opts),
		"/SC", "ONLOGON",
		"/RL", "LIMITED",
		"/F"}

	if res := w.runner.Run(ctx, "schtasks", args...); !res.Success() {
		return commandError(append([]string{"schtasks"}, args...), res)
	}

	return nil
}

func (w *WindowsAutoStarter) Uninstall(ctx context.Context) error {
	args := []string{"/Delete", "/TN", taskName, "/F"}
	if res := w.runner.Run(ctx, "schtasks", args...); !res.Success() {
		return commandError(append([]string{"schtasks"}, args...), res)
	}

	return nil
}

func (w *WindowsAutoStarter) IsInstalled(ctx context.Context) (bool, error) {
	res := w.runner.Run(ctx, "schtasks", "/Query", "/TN", taskName)
	return res.Success(), nil
}
