package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/simp-lee/logger"
)

var (
	levelByName = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	formatByName = map[string]logger.OutputFormat{
		"text": logger.FormatText,
		"json": logger.FormatJSON,
	}
)

// SetupLogger builds the process logger and makes it the slog default, so
// packages that log through slog.*Context pick up request ids. Close it on
// shutdown to flush the file sink.
func SetupLogger(cfg *LogConfig) (*logger.Logger, error) {
	if cfg == nil {
		return nil, errors.New("log config is nil")
	}
	log, err := logger.New(BuildLoggerOpts(cfg)...)
	if err != nil {
		return nil, err
	}
	log.SetDefault()
	return log, nil
}

// BuildLoggerOpts maps cfg onto logger options. Console output is always on;
// the file sink and its rotation knobs are added only for a non-empty
// FilePath, and zero rotation values keep the library defaults.
func BuildLoggerOpts(cfg *LogConfig) []logger.Option {
	if cfg == nil {
		return nil
	}

	format := lookupOr(formatByName, cfg.Format, logger.FormatCustom)
	color := cfg.Color == nil || *cfg.Color

	opts := []logger.Option{
		logger.WithLevel(lookupOr(levelByName, cfg.Level, slog.LevelInfo)),
		logger.WithMiddleware(logger.ContextMiddleware()),
		logger.WithConsoleFormat(format),
		logger.WithConsoleColor(color),
	}
	if cfg.FilePath == "" {
		return opts
	}

	opts = append(opts, logger.WithFilePath(cfg.FilePath), logger.WithFileFormat(format))
	for _, rotation := range []struct {
		set bool
		opt func() logger.Option
	}{
		{cfg.MaxSizeMB > 0, func() logger.Option { return logger.WithMaxSizeMB(cfg.MaxSizeMB) }},
		{cfg.RetentionDays > 0, func() logger.Option { return logger.WithRetentionDays(cfg.RetentionDays) }},
		{cfg.MaxBackups > 0, func() logger.Option { return logger.WithMaxBackups(cfg.MaxBackups) }},
		{cfg.CompressRotated != nil, func() logger.Option { return logger.WithCompressRotated(*cfg.CompressRotated) }},
	} {
		if rotation.set {
			opts = append(opts, rotation.opt())
		}
	}
	return opts
}

// lookupOr finds name case-insensitively in m, falling back to def.
func lookupOr[V any](m map[string]V, name string, def V) V {
	if v, ok := m[strings.ToLower(strings.TrimSpace(name))]; ok {
		return v
	}
	return def
}
