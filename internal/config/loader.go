package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/docna/docna/internal/ctxlog"
	"gopkg.in/ini.v1"
)

// Loader is the interface for reading a run configuration from a path.
type Loader interface {
	Load(ctx context.Context, path string) (*RunConfiguration, error)
}

// INILoader reads INI files with configparser-compatible options: '=' or ':'
// delimiters, '#' and ';' full-line comments, no inline comments and
// indented continuation lines.
type INILoader struct{}

// NewLoader creates a new INI configuration loader.
func NewLoader() *INILoader {
	return &INILoader{}
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse configuration %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
		KeyValueDelimiters:         "=:",
	}
}

// Load reads path into a RunConfiguration. A file that does not exist yields
// an empty configuration and no error.
func (l *INILoader) Load(ctx context.Context, path string) (*RunConfiguration, error) {
	logger := ctxlog.FromContext(ctx).With("config_path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Configuration file not found, using empty configuration.")
			return Empty(), nil
		}
		return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	logger.Debug("Configuration loaded.", "sections", cfg.Len())
	return cfg, nil
}

// Parse decodes INI text. The text itself is kept and is what WriteTo
// emits.
func Parse(data []byte) (*RunConfiguration, error) {
	file, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return nil, err
	}

	out := &RunConfiguration{source: append([]byte(nil), data...)}
	for _, sec := range file.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		s := Section{Name: sec.Name(), Entries: make([]Entry, 0, len(keys))}
		for _, k := range keys {
			s.Entries = append(s.Entries, Entry{Key: k.Name(), Value: k.Value()})
		}
		out.sections = append(out.sections, s)
	}
	return out, nil
}

// WriteTo writes the configuration as INI text. A parsed configuration is
// written byte for byte as it was read. One built with New is serialised
// with sections and keys in order.
func (c *RunConfiguration) WriteTo(w io.Writer) (int64, error) {
	if c != nil && c.source != nil {
		n, err := w.Write(c.source)
		return int64(n), err
	}
	file := ini.Empty(loadOptions())
	for _, s := range c.Sections() {
		sec := file.Section(s.Name)
		if s.Name != ini.DefaultSection {
			var err error
			sec, err = file.NewSection(s.Name)
			if err != nil {
				return 0, fmt.Errorf("section %q: %w", s.Name, err)
			}
		}
		for _, e := range s.Entries {
			if _, err := sec.NewKey(e.Key, e.Value); err != nil {
				return 0, fmt.Errorf("section %q, key %q: %w", s.Name, e.Key, err)
			}
		}
	}
	return file.WriteTo(w)
}
