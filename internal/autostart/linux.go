package autostart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syncwatch/internal/runner"
	"syncwatch/internal/util"
	"text/template"

	"github.com/mitchellh/go-homedir"
)

const serviceName = "syncwatch.service"

var serviceTemplate = template.Must(template.New("service").Parse(`[Unit]
Description=syncwatch rclone mirror daemon
After=network-online.target
Wants=network-online.target

[Service]
ExecStart={{.ExecPath}} watch{{if .EnvFile}} --env-file {{.EnvFile}}{{end}}
Restart=on-failure
RestartSec=5

[Install]
WantedBy=default.target
`))

// LinuxAutoStarter manages a systemd user unit.
type LinuxAutoStarter struct {
	runner runner.Runner
}

func writeUnit(w io.Writer, opts Options) error {
	return serviceTemplate.Execute(w, opts)
}

func (l *LinuxAutoStarter) servicePath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "systemd", "user", serviceName), nil
}

func (l *LinuxAutoStarter) Install(ctx context.Context, opts Options) error {
	path, err := l.servicePath()
	if err != nil {
		return err
	}

	var unit bytes.Buffer
	if err := writeUnit(&unit, opts); err != nil {
		return fmt.Errorf("failed to render service file: %w", err)
	}

	if err := util.AtomicWrite(path, &unit); err != nil {
		return fmt.Errorf("failed to write service file: %w", err)
	}

	for _, args := range [][]string{
		{"--user", "daemon-reload"},
		{"--user", "enable", serviceName},
		{"--user", "start", serviceName},
	} {
		if res := l.runner.Run(ctx, "systemctl", args...); !res.Success() {
			return commandError(append([]string{"systemctl"}, args...), res)
		}
	}

	return nil
}

// Uninstall stops and disables the unit on a best-effort basis, then removes
// the unit file.
func (l *LinuxAutoStarter) Uninstall(ctx context.Context) error {
	for _, args := range [][]string{
		{"--user", "stop", serviceName},
		{"--user", "disable", serviceName},
	} {
		_ = l.runner.Run(ctx, "systemctl", args...)
	}

	path, err := l.servicePath()
	if err != nil {
		return err
	}

	return util.RemoveIfExists(path)
}

func (l *LinuxAutoStarter) IsInstalled(context.Context) (bool, error) {
	path, err := l.servicePath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	return err == nil, nil
}
