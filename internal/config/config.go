package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ssmythe/tactics-manager/internal/difficulty"
	"github.com/ssmythe/tactics-manager/internal/selector"
	"github.com/ssmythe/tactics-manager/internal/session"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "TACTICS_"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config controls runtime behavior of the tracker.
type Config struct {
	Backend      string `yaml:"backend" env:"BACKEND"`
	DBPath       string `yaml:"db" env:"DB"`
	FilePath     string `yaml:"file" env:"FILE"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`
	Color        string `yaml:"color" env:"COLOR"`
	SnapshotKeep int    `yaml:"snapshot_keep" env:"SNAPSHOT_KEEP"`

	Schedule ScheduleConfig `yaml:"schedule" envPrefix:"SCHEDULE_"`
	Ladder   LadderConfig   `yaml:"ladder" envPrefix:"LADDER_"`
}

// ScheduleConfig holds the selector intervals in days and the score at
// which a theme counts as mastered.
type ScheduleConfig struct {
	ShortDays    int `yaml:"short_days" env:"SHORT_DAYS"`
	MediumDays   int `yaml:"medium_days" env:"MEDIUM_DAYS"`
	LongDays     int `yaml:"long_days" env:"LONG_DAYS"`
	MasteryScore int `yaml:"mastery_score" env:"MASTERY_SCORE"`
}

// LadderConfig holds the difficulty ladder thresholds and the number of
// simulated attempts per reported session.
type LadderConfig struct {
	PuzzlesPerLevel   int     `yaml:"puzzles_per_level" env:"PUZZLES_PER_LEVEL"`
	AccuracyThreshold float64 `yaml:"accuracy_threshold" env:"ACCURACY_THRESHOLD"`
	PuzzlesPerSession int     `yaml:"puzzles_per_session" env:"PUZZLES_PER_SESSION"`
}

// Default returns the built-in configuration.
func Default() Config {
	sched := selector.DefaultConfig()
	ladder := difficulty.DefaultConfig()
	return Config{
		Backend:      BackendSQLite,
		LogLevel:     "warn",
		Color:        "auto",
		SnapshotKeep: 30,
		Schedule: ScheduleConfig{
			ShortDays:    sched.ShortDays,
			MediumDays:   sched.MediumDays,
			LongDays:     sched.LongDays,
			MasteryScore: sched.MasteryScore,
		},
		Ladder: LadderConfig{
			PuzzlesPerLevel:   ladder.PuzzlesPerLevel,
			AccuracyThreshold: ladder.AccuracyThreshold,
			PuzzlesPerSession: session.DefaultPuzzlesPerSession,
		},
	}
}

// DefaultPath returns the config file looked up when none is given:
// TACTICS_CONFIG, else $XDG_CONFIG_HOME/tactics/config.yaml
// (~/.config/tactics/config.yaml).
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tactics", "config.yaml"), nil
}

// Load builds the config from defaults, a .env file in the working
// directory, the YAML file at path and TACTICS_* variables, in that order.
// An empty path falls back to DefaultPath, which may be absent; an explicit
// path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := loadDotenv(".env"); err != nil {
		return cfg, err
	}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := readFile(path, &cfg); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadDotenv sets variables from a .env file without overriding ones
// already present in the environment.
func loadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate normalizes empty log level and color values and reports the
// first setting out of range.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("invalid backend %q", c.Backend)
	}

	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q", c.Color)
	}
	if c.Color == "" {
		c.Color = "auto"
	}

	if c.SnapshotKeep < 0 {
		return fmt.Errorf("invalid snapshot_keep %d", c.SnapshotKeep)
	}

	s := c.Schedule
	if s.ShortDays <= 0 || s.MediumDays <= s.ShortDays || s.LongDays <= s.MediumDays {
		return fmt.Errorf("invalid schedule: want 0 < short (%d) < medium (%d) < long (%d)",
			s.ShortDays, s.MediumDays, s.LongDays)
	}
	if s.MasteryScore < 0 || s.MasteryScore > session.MaxScore {
		return fmt.Errorf("invalid mastery score %d", s.MasteryScore)
	}

	l := c.Ladder
	if l.PuzzlesPerLevel <= 0 {
		return fmt.Errorf("invalid puzzles_per_level %d", l.PuzzlesPerLevel)
	}
	if l.AccuracyThreshold <= 0 || l.AccuracyThreshold > 100 {
		return fmt.Errorf("invalid accuracy_threshold %g", l.AccuracyThreshold)
	}
	if l.PuzzlesPerSession <= 0 {
		return fmt.Errorf("invalid puzzles_per_session %d", l.PuzzlesPerSession)
	}
	return nil
}

// Selector returns the review schedule for the selector.
func (c Config) Selector() selector.Config {
	return selector.Config{
		ShortDays:    c.Schedule.ShortDays,
		MediumDays:   c.Schedule.MediumDays,
		LongDays:     c.Schedule.LongDays,
		MasteryScore: c.Schedule.MasteryScore,
	}
}

// Difficulty returns the ladder thresholds for the tracker.
func (c Config) Difficulty() difficulty.Config {
	return difficulty.Config{
		PuzzlesPerLevel:   c.Ladder.PuzzlesPerLevel,
		AccuracyThreshold: c.Ladder.AccuracyThreshold,
	}
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
