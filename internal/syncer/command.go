package syncer

import "strconv"

// Command describes the rclone invocations used for a sync and a dedupe.
type Command struct {
	Binary     string
	MaxDepth   int
	Flags      []string
	DedupeMode string
}

func DefaultCommand() Command {
	return Command{
		Binary:     "rclone",
		MaxDepth:   1,
		Flags:      []string{"--progress", "-v"},
		DedupeMode: "newest",
	}
}

// SyncArgs mirrors src into dst, deleting destination entries missing from src.
// A MaxDepth of zero or less leaves the recursion depth to rclone.
func (c Command) SyncArgs(src, dst string) []string {
	args := []string{"sync", src, dst}
	if c.MaxDepth > 0 {
		args = append(args, "--max-depth", strconv.Itoa(c.MaxDepth))
	}

	return append(args, c.Flags...)
}

func (c Command) DedupeArgs(dst string) []string {
	return []string{"dedupe", "--dedupe-mode", c.DedupeMode, dst}
}
