package autostart

import (
	"errors"
	"fmt"
	"syncwatch/internal/runner"
)

var ErrUnsupported = errors.New("autostart is not supported on this platform")

func commandError(args []string, res runner.Result) error {
	return fmt.Errorf("failed to run %v: %w\n%s%s", args, res.Err, res.Stdout, res.Stderr)
}
