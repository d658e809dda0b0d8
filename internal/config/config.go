package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syncwatch/internal/model"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	SourcePath      string        `mapstructure:"source_path"`
	DestinationPath string        `mapstructure:"destination_path"`
	Cooldown        time.Duration `mapstructure:"cooldown"`
	IgnoreSuffixes  []string      `mapstructure:"ignore_suffixes"`
	RclonePath      string        `mapstructure:"rclone_path"`
	MaxDepth        int           `mapstructure:"max_depth"`
	DedupeMode      string        `mapstructure:"dedupe_mode"`
	SyncFlags       []string      `mapstructure:"sync_flags"`
	BufferSize      int           `mapstructure:"buffer_size"`
	DaemonPort      int           `mapstructure:"daemon_port"`
	LogDir          string        `mapstructure:"log_dir"`
	HistorySize     int           `mapstructure:"history_size"`
}

var Default = Config{
	Cooldown:       5 * time.Second,
	IgnoreSuffixes: []string{".tmp", ".temp", ".swp", ".~", ".crdownload", ".part"},
	RclonePath:     "rclone",
	MaxDepth:       1,
	DedupeMode:     "newest",
	SyncFlags:      []string{"--progress", "-v"},
	BufferSize:     100,
	DaemonPort:     9011,
	LogDir:         filepath.Join("~", ".syncwatch", "logs"),
	HistorySize:    50,
}

const envPrefix = "SYNCWATCH"

// Dir returns the directory holding config.yaml, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}

	dir := filepath.Join(home, ".syncwatch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return dir, nil
}

// Load reads ~/.syncwatch/config.yaml, the optional dotenv file and the
// environment, in increasing order of precedence.
func Load(envFile string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	return load(viper.New(), dir, envFile)
}

func load(v *viper.Viper, configDir, envFile string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetDefault("source_path", "")
	v.SetDefault("destination_path", "")
	v.SetDefault("cooldown", Default.Cooldown)
	v.SetDefault("ignore_suffixes", Default.IgnoreSuffixes)
	v.SetDefault("rclone_path", Default.RclonePath)
	v.SetDefault("max_depth", Default.MaxDepth)
	v.SetDefault("dedupe_mode", Default.DedupeMode)
	v.SetDefault("sync_flags", Default.SyncFlags)
	v.SetDefault("buffer_size", Default.BufferSize)
	v.SetDefault("daemon_port", Default.DaemonPort)
	v.SetDefault("log_dir", Default.LogDir)
	v.SetDefault("history_size", Default.HistorySize)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// The unprefixed names are what existing .env setups use.
	_ = v.BindEnv("source_path", envPrefix+"_SOURCE_PATH", "SOURCE_PATH")
	_ = v.BindEnv("destination_path", envPrefix+"_DESTINATION_PATH", "DESTINATION_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := errors.AsType[viper.ConfigFileNotFoundError](err); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := mergeDotenv(v, envFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func mergeDotenv(v *viper.Viper, envFile string) error {
	if envFile == "" {
		return nil
	}

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}

	ev := viper.New()
	ev.SetConfigFile(envFile)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}

	settings := make(map[string]any)
	for _, key := range ev.AllKeys() {
		settings[strings.TrimPrefix(key, strings.ToLower(envPrefix)+"_")] = ev.Get(key)
	}

	if err := v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("failed to merge env file: %w", err)
	}

	return nil
}

func (c *Config) expandPaths() error {
	if c.SourcePath != "" {
		src, err := homedir.Expand(c.SourcePath)
		if err != nil {
			return fmt.Errorf("failed to expand source path: %w", err)
		}

		c.SourcePath, err = filepath.Abs(src)
		if err != nil {
			return fmt.Errorf("invalid source path: %w", err)
		}
	}

	if c.LogDir != "" {
		dir, err := homedir.Expand(c.LogDir)
		if err != nil {
			return fmt.Errorf("failed to expand log dir: %w", err)
		}
		c.LogDir = dir
	}

	return nil
}

func (c *Config) Target() model.WatchTarget {
	return model.WatchTarget{
		SourcePath:      c.SourcePath,
		DestinationPath: c.DestinationPath,
	}
}

// Validate reports every problem that must stop the daemon before it starts.
func (c *Config) Validate() error {
	if err := c.Target().Validate(); err != nil {
		return err
	}

	var errs []error
	if c.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("cooldown must not be negative, got %s", c.Cooldown))
	}
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize))
	}
	if c.RclonePath == "" {
		errs = append(errs, errors.New("rclone_path is empty"))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", model.ErrConfiguration, errors.Join(errs...))
}
