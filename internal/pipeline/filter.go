package pipeline

import (
	"strings"
	"syncwatch/internal/model"

	"go.uber.org/zap"
)

// IgnoreSet holds filename suffixes of transient files that never trigger a sync.
type IgnoreSet []string

// Match reports whether path ends with one of the suffixes. Matching is
// case-sensitive.
func (s IgnoreSet) Match(path string) bool {
	for _, suffix := range s {
		if suffix != "" && strings.HasSuffix(path, suffix) {
			return true
		}
	}

	return false
}

// Filter forwards every event from inCh whose path is not in the ignore set.
// Each event is judged on its own and order is preserved. onIgnored, if not
// nil, is called for every dropped event.
func Filter(inCh <-chan model.ChangeEvent, ignore IgnoreSet, log *zap.Logger, onIgnored func(model.ChangeEvent)) <-chan model.ChangeEvent {
	outCh := make(chan model.ChangeEvent, cap(inCh))

	go func() {
		defer close(outCh)

		for event := range inCh {
			if ignore.Match(event.Path) {
				log.Debug("ignoring transient file",
					zap.String("kind", string(event.Kind)),
					zap.String("path", event.Path))
				if onIgnored != nil {
					onIgnored(event)
				}
				continue
			}
			outCh <- event
		}
	}()

	return outCh
}
