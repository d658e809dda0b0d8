package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process logger. Components receive it through their constructors.
var Log = zap.NewNop()

// Init replaces Log with a logger writing to stderr and, when logDir is not
// empty, to a per-session file under logDir. It returns the session file path.
func Init(debug bool, logDir string) (string, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level),
	}

	var logPath string
	if logDir != "" {
		f, path, err := openSessionFile(logDir, time.Now())
		if err != nil {
			return "", err
		}
		logPath = path

		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(f), level))
	}

	Log = zap.New(zapcore.NewTee(cores...))
	return logPath, nil
}

func Sync() {
	_ = Log.Sync()
}

func openSessionFile(dir string, now time.Time) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create log dir: %w", err)
	}

	path := filepath.Join(dir, sessionFileName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}

	return f, path, nil
}

func sessionFileName(now time.Time) string {
	return fmt.Sprintf("syncwatch_%s.log", now.Format("20060102_150405"))
}
