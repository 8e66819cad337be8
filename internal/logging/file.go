package logging

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// File log verbosity, as read from LOG_LEVEL.
const (
	LevelSilent = 0
	LevelInfo   = 1
	LevelDebug  = 2
)

// ParseFileLevel converts a LOG_LEVEL value into one of the Level constants.
// Anything unparseable or out of range is treated as silent.
func ParseFileLevel(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return LevelSilent
	}
	switch n {
	case LevelInfo, LevelDebug:
		return n
	default:
		return LevelSilent
	}
}

// NewFileLogger returns a zap logger appending lines of the form
//
//	[2006-01-02 15:04:05] INFO: message
//
// to path. A silent level or an empty path yields a no-op logger.
// The returned close func is always non-nil.
func NewFileLogger(path string, level int) (*zap.Logger, func() error, error) {
	noop := func() error { return nil }
	path = strings.TrimSpace(path)
	if path == "" || level <= LevelSilent {
		return zap.NewNop(), noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop(), noop, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop(), noop, err
	}

	zapLevel := zapcore.InfoLevel
	if level >= LevelDebug {
		zapLevel = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(fileEncoderConfig()), zapcore.AddSync(f), zapLevel)
	logger := zap.New(core)
	return logger, func() error {
		_ = logger.Sync()
		return f.Close()
	}, nil
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:    "time",
		LevelKey:   "level",
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
		},
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(l.CapitalString() + ":")
		},
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}
