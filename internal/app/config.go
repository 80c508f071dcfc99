package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/docna/docna/internal/engine"
	"github.com/docna/docna/internal/fsutil"
	"github.com/docna/docna/internal/storage"
)

// Defaults shared by the CLI and the handlers.
const (
	DefaultConfigPath = "config.ini"
	DefaultOutputDir  = "."
	DefaultLogFormat  = "text"
	// EngineEnv names the environment variable that overrides the engine
	// executable.
	EngineEnv = "DOCNA_ENGINE"
)

// PublishConfig selects where artifacts are uploaded after a run. An empty
// Bucket disables publishing.
type PublishConfig struct {
	Bucket   string
	Prefix   string
	Endpoint string
	Region   string
}

// Enabled reports whether artifacts should be published.
func (p PublishConfig) Enabled() bool { return p.Bucket != "" }

// S3 converts the publish settings into storage configuration.
func (p PublishConfig) S3() storage.S3Config {
	return storage.S3Config{Bucket: p.Bucket, Region: p.Region, Endpoint: p.Endpoint}
}

// AnalyzeConfig holds the arguments of the analyze command.
type AnalyzeConfig struct {
	InputFile       string
	SampleName      string
	ConfigPath      string
	Processes       int
	Level           engine.Level
	ReportSolutions bool
	DiploidCoverage float64
	Models          []string

	OutputDir  string
	EnginePath string
	LogFormat  string
	Publish    PublishConfig
}

// NewAnalyzeConfig validates cfg and fills in defaults. Processes has no
// default here; the CLI supplies 1.
func NewAnalyzeConfig(cfg AnalyzeConfig) (*AnalyzeConfig, error) {
	if cfg.InputFile == "" {
		return nil, errors.New("the following arguments are required: -i/--input_file")
	}
	if cfg.Processes < 1 {
		return nil, fmt.Errorf("number of processes must be at least 1, got %d", cfg.Processes)
	}
	if cfg.Level == "" {
		cfg.Level = engine.LevelInfo
	}
	level, err := engine.ParseLevel(string(cfg.Level))
	if err != nil {
		return nil, err
	}
	cfg.Level = level
	if cfg.DiploidCoverage < 0 {
		return nil, fmt.Errorf("coverage of diploid must not be negative, got %g", cfg.DiploidCoverage)
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.EnginePath == "" {
		cfg.EnginePath = os.Getenv(EngineEnv)
	}
	if cfg.EnginePath == "" {
		cfg.EnginePath = engine.DefaultCommand
	}
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = DefaultLogFormat
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.Publish.Bucket == "" && (cfg.Publish.Prefix != "" || cfg.Publish.Endpoint != "") {
		return nil, errors.New("--s3_prefix and --s3_endpoint require --s3_bucket")
	}
	return &cfg, nil
}

// Sample is the sample name, derived from the input file when not given.
func (c *AnalyzeConfig) Sample() string {
	if c.SampleName != "" {
		return c.SampleName
	}
	return fsutil.Stem(c.InputFile)
}

// ViewerConfig holds the arguments of the viewer command.
type ViewerConfig struct {
	Remote bool
	// Port, when set, is used verbatim instead of probing for a free port.
	Port string
}

// NewViewerConfig validates cfg.
func NewViewerConfig(cfg ViewerConfig) (*ViewerConfig, error) {
	return &cfg, nil
}

// GetConfigConfig holds the arguments of the getconfig command.
type GetConfigConfig struct {
	Directory string
}

// NewGetConfigConfig validates cfg, defaulting the directory to the working
// directory.
func NewGetConfigConfig(cfg GetConfigConfig) (*GetConfigConfig, error) {
	if cfg.Directory == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		cfg.Directory = wd
	}
	return &cfg, nil
}
