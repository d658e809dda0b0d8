package model

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a missing or invalid setting. It is the only fatal error.
var ErrConfiguration = errors.New("configuration error")

var (
	errNoSource      = errors.New("source path is not configured")
	errNoDestination = errors.New("destination path is not configured")
)

// WatchTarget is the local tree being mirrored and the remote it mirrors to.
type WatchTarget struct {
	SourcePath      string
	DestinationPath string
}

func (t WatchTarget) Validate() error {
	var errs []error
	if t.SourcePath == "" {
		errs = append(errs, errNoSource)
	}
	if t.DestinationPath == "" {
		errs = append(errs, errNoDestination)
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrConfiguration, errors.Join(errs...))
}
