package app

import (
	"context"
	"embed"
	"log/slog"
	"path/filepath"

	"github.com/docna/docna/internal/fsutil"
)

// ConfigFileName is the name of the bundled configuration template.
const ConfigFileName = "doCNA.ini"

//go:embed doCNA.ini
var templateFS embed.FS

// ConfigTemplate returns the bundled configuration template.
func ConfigTemplate() []byte {
	data, err := templateFS.ReadFile(ConfigFileName)
	if err != nil {
		panic(err)
	}
	return data
}

// GetConfig copies the bundled configuration template into cfg.Directory,
// replacing any file of the same name.
func (a *App) GetConfig(ctx context.Context, cfg *GetConfigConfig) (*Result, error) {
	logger := a.logger(slog.LevelInfo, DefaultLogFormat).With("command", "getconfig")

	dst := filepath.Join(cfg.Directory, ConfigFileName)
	if err := fsutil.CopyFromFS(templateFS, ConfigFileName, dst); err != nil {
		return nil, fail(KindIO, err)
	}
	logger.Info("Configuration template written.", "path", dst)
	return &Result{Command: "getconfig", Artifacts: []string{dst}}, nil
}
