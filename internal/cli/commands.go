package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/docna/docna/internal/app"
	"github.com/docna/docna/internal/engine"
	"github.com/docna/docna/internal/presets"
)

func parseAnalyze(args []string, output io.Writer) (*Command, bool, error) {
	fs := newFlagSet("analyze", `
Runs the analysis of one sample.

Usage:
  docna analyze -i INPUT_FILE [options]

Options:
`, output)

	var cfg app.AnalyzeConfig
	var level string
	var models stringList
	var version bool

	fs.StringVar(&cfg.SampleName, "s", "", "Input sample name. Default: from file name.")
	fs.StringVar(&cfg.SampleName, "sample_name", "", "Input sample name (long form).")
	fs.IntVar(&cfg.Processes, "n", 1, "Number of processes.")
	fs.IntVar(&cfg.Processes, "no_processes", 1, "Number of processes (long form).")
	fs.StringVar(&cfg.InputFile, "i", "", "Name of the input file with alleles' counts. Required.")
	fs.StringVar(&cfg.InputFile, "input_file", "", "Name of the input file (long form).")
	fs.StringVar(&cfg.ConfigPath, "c", app.DefaultConfigPath, "INI file with parameters.")
	fs.StringVar(&cfg.ConfigPath, "config", app.DefaultConfigPath, "INI file with parameters (long form).")
	fs.StringVar(&level, "l", string(engine.LevelInfo), "Level of verbosity for the stderr logger: "+levelChoices()+".")
	fs.StringVar(&level, "level", string(engine.LevelInfo), "Level of verbosity (long form).")
	fs.BoolVar(&cfg.ReportSolutions, "r", false, "Generate report with all solutions.")
	fs.BoolVar(&cfg.ReportSolutions, "report_solutions", false, "Generate report with all solutions (long form).")
	fs.Float64Var(&cfg.DiploidCoverage, "m0", 0, "Coverage of diploid. 0 lets the engine estimate it.")
	fs.Float64Var(&cfg.DiploidCoverage, "coverage_diploid", 0, "Coverage of diploid (long form).")
	fs.Var(&models, "m", "Extra models to include, repeatable or comma-separated: "+strings.Join(presets.ExtraNames(), ", ")+".")
	fs.Var(&models, "models", "Extra models to include (long form).")
	fs.BoolVar(&version, "v", false, "Print version.")
	fs.BoolVar(&version, "version", false, "Print version (long form).")
	fs.StringVar(&cfg.OutputDir, "o", app.DefaultOutputDir, "Directory the artifacts are written to.")
	fs.StringVar(&cfg.OutputDir, "output_dir", app.DefaultOutputDir, "Directory the artifacts are written to (long form).")
	fs.StringVar(&cfg.EnginePath, "engine", "", "Engine executable. Default: $"+app.EngineEnv+" or "+engine.DefaultCommand+".")
	fs.StringVar(&cfg.LogFormat, "log_format", app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&cfg.Publish.Bucket, "s3_bucket", "", "Upload the artifacts to this bucket after the run.")
	fs.StringVar(&cfg.Publish.Prefix, "s3_prefix", "", "Key prefix of uploaded artifacts.")
	fs.StringVar(&cfg.Publish.Endpoint, "s3_endpoint", "", "S3-compatible endpoint URL.")
	fs.StringVar(&cfg.Publish.Region, "s3_region", "", "Region of the bucket.")

	if exit, err := parseFlags(fs, expandModels(args)); exit || err != nil {
		return nil, exit, err
	}
	if version {
		fmt.Fprintf(output, "doCNA v. %s\n", Version)
		return nil, true, nil
	}
	if cfg.InputFile == "" {
		fs.Usage()
		return nil, false, usageError("the following arguments are required: -i/--input_file")
	}

	parsedLevel, err := engine.ParseLevel(level)
	if err != nil {
		return nil, false, usageError("argument -l/--level: invalid choice: %q (choose from %s)", level, levelChoices())
	}
	cfg.Level = parsedLevel
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	extra := presets.Extra()
	for _, name := range models {
		if _, ok := extra.Get(name); !ok {
			return nil, false, usageError("argument -m/--models: invalid choice: %q (choose from %s)",
				name, strings.Join(presets.ExtraNames(), ", "))
		}
	}
	cfg.Models = models

	config, err := app.NewAnalyzeConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Analyze arguments parsed.", "input", config.InputFile, "sample", config.Sample())
	return &Command{Name: "analyze", Analyze: config}, false, nil
}

func parseViewer(args []string, output io.Writer) (*Command, bool, error) {
	fs := newFlagSet("viewer", `
Launches the viewer.

Usage:
  docna viewer [--remote] [-p PORT]

Options:
`, output)

	var cfg app.ViewerConfig
	fs.BoolVar(&cfg.Remote, "remote", false, "Use if running from a remote machine, for example a compute cluster.")
	fs.StringVar(&cfg.Port, "p", "", "Specific port to use.")
	fs.StringVar(&cfg.Port, "port", "", "Specific port to use (long form).")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	config, err := app.NewViewerConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	return &Command{Name: "viewer", Viewer: config}, false, nil
}

func parseGetConfig(args []string, output io.Writer) (*Command, bool, error) {
	fs := newFlagSet("getconfig", `
Copies the default docna config to a directory.

Usage:
  docna getconfig [-d DIRECTORY]

Options:
`, output)

	var cfg app.GetConfigConfig
	fs.StringVar(&cfg.Directory, "d", "", "Copies config to this dir. Default is current working directory.")
	fs.StringVar(&cfg.Directory, "directory", "", "Copies config to this dir (long form).")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	config, err := app.NewGetConfigConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}
	return &Command{Name: "getconfig", GetConfig: config}, false, nil
}

func levelChoices() string {
	names := make([]string, len(engine.Levels))
	for i, l := range engine.Levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
