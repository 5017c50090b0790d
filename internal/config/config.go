package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
	"github.com/stressgauge/stressgauge/internal/history"
)

// Environment variables that override the log section.
const (
	EnvLogLevel  = "STRESSGAUGE_LOG_LEVEL"
	EnvLogFormat = "STRESSGAUGE_LOG_FORMAT"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultWorkers         = 4
	DefaultReportFormat    = "json"
	DefaultSleep           = 7.0
	DefaultWorkload        = 5.0
	DefaultScreentime      = 6.0
	DefaultExtracurricular = 5.0
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level configuration.
type Config struct {
	Log      LogConfig     `yaml:"log"`
	Engine   EngineConfig  `yaml:"engine"`
	History  HistoryConfig `yaml:"history"`
	Defaults fuzzy.Inputs  `yaml:"defaults"`
	Batch    BatchConfig   `yaml:"batch"`
	Report   ReportConfig  `yaml:"report"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: json | text.
	Format string `yaml:"format"`
}

// EngineConfig holds inference display settings.
type EngineConfig struct {
	// ActiveThreshold marks a rule active when any of its antecedent degrees
	// exceeds it. Must be in [0,1].
	ActiveThreshold float64 `yaml:"active_threshold"`
}

// HistoryConfig sizes the rolling history.
type HistoryConfig struct {
	Window     int     `yaml:"window"`
	StableBand float64 `yaml:"stable_band"`
}

// BatchConfig bounds bulk evaluation concurrency.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// ReportConfig picks the default export format.
type ReportConfig struct {
	// Format is one of: json | xlsx | prom.
	Format string `yaml:"format"`
}

// SlogLevel maps Log.Level to a slog.Level. Unknown values map to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults; an empty path returns
// the defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config { return defaults() }

// LoadEnvFile loads KEY=VALUE pairs from path into the environment. Variables
// already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load env file: %w", err)
	}
	slog.Debug("config: env file loaded", "path", path)
	return nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Engine: EngineConfig{
			ActiveThreshold: fuzzy.DefaultActiveThreshold,
		},
		History: HistoryConfig{
			Window:     history.DefaultWindow,
			StableBand: history.DefaultStableBand,
		},
		Defaults: fuzzy.Inputs{
			Sleep:           DefaultSleep,
			Workload:        DefaultWorkload,
			Screentime:      DefaultScreentime,
			Extracurricular: DefaultExtracurricular,
		},
		Batch:  BatchConfig{Workers: DefaultWorkers},
		Report: ReportConfig{Format: DefaultReportFormat},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks enums and numeric bounds.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: unknown level %q", ErrInvalid, cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log.format: unknown format %q", ErrInvalid, cfg.Log.Format)
	}
	if t := cfg.Engine.ActiveThreshold; t < 0 || t > 1 {
		return fmt.Errorf("%w: engine.active_threshold must be in [0,1], got %v", ErrInvalid, t)
	}
	if cfg.History.Window <= 0 {
		return fmt.Errorf("%w: history.window must be positive", ErrInvalid)
	}
	if cfg.History.StableBand < 0 {
		return fmt.Errorf("%w: history.stable_band must not be negative", ErrInvalid)
	}
	if err := cfg.Defaults.Validate(); err != nil {
		return fmt.Errorf("%w: defaults: %v", ErrInvalid, err)
	}
	if cfg.Batch.Workers <= 0 {
		return fmt.Errorf("%w: batch.workers must be positive", ErrInvalid)
	}
	switch cfg.Report.Format {
	case "json", "xlsx", "prom":
	default:
		return fmt.Errorf("%w: report.format: unknown format %q", ErrInvalid, cfg.Report.Format)
	}
	return nil
}

// inputRecord mirrors fuzzy.Inputs with pointers so absent keys are detected.
type inputRecord struct {
	Sleep           *float64 `yaml:"sleep"`
	Workload        *float64 `yaml:"workload"`
	Screentime      *float64 `yaml:"screentime"`
	Extracurricular *float64 `yaml:"extracurricular"`
}

// LoadInputs reads a YAML input record from path. All four fields are
// required; failures wrap fuzzy.ErrInvalidInput.
func LoadInputs(path string) (fuzzy.Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fuzzy.Inputs{}, fmt.Errorf("config: read inputs: %w", err)
	}
	return ParseInputs(data)
}

// ParseInputs is LoadInputs over raw YAML bytes.
func ParseInputs(data []byte) (fuzzy.Inputs, error) {
	var rec inputRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fuzzy.Inputs{}, fmt.Errorf("config: parse inputs: %w", err)
	}

	fields := [...]struct {
		name string
		v    *float64
	}{
		{fuzzy.VarSleep, rec.Sleep},
		{fuzzy.VarWorkload, rec.Workload},
		{fuzzy.VarScreentime, rec.Screentime},
		{fuzzy.VarExtracurricular, rec.Extracurricular},
	}
	for _, f := range fields {
		if f.v == nil {
			return fuzzy.Inputs{}, fmt.Errorf("config: %w: %s is required", fuzzy.ErrInvalidInput, f.name)
		}
	}

	in := fuzzy.Inputs{
		Sleep:           *rec.Sleep,
		Workload:        *rec.Workload,
		Screentime:      *rec.Screentime,
		Extracurricular: *rec.Extracurricular,
	}
	if err := in.Validate(); err != nil {
		return fuzzy.Inputs{}, fmt.Errorf("config: %w", err)
	}
	return in, nil
}
