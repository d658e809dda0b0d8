// Package autostart registers the watch daemon to start at login.
package autostart

import (
	"context"
	"runtime"
	"syncwatch/internal/runner"
)

// Options describes the command line the service manager launches.
type Options struct {
	ExecPath string

	// EnvFile is passed as --env-file when set. Service managers do not
	// start the daemon in the directory install was run from.
	EnvFile string
}

type AutoStarter interface {
	Install(ctx context.Context, opts Options) error
	Uninstall(ctx context.Context) error
	IsInstalled(ctx context.Context) (bool, error)
}

func New(r runner.Runner) AutoStarter {
	switch runtime.GOOS {
	case "windows":
		return &WindowsAutoStarter{runner: r}
	case "linux":
		return &LinuxAutoStarter{runner: r}
	default:
		return &UnsupportedAutoStarter{}
	}
}

type UnsupportedAutoStarter struct{}

func (u *UnsupportedAutoStarter) Install(context.Context, Options) error {
	return ErrUnsupported
}

func (u *UnsupportedAutoStarter) Uninstall(context.Context) error {
	return ErrUnsupported
}

func (u *UnsupportedAutoStarter) IsInstalled(context.Context) (bool, error) {
	return false, nil
}
