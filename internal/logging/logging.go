package logging

import (
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by New.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// New builds a zap logger writing to stderr. Unknown levels fall back to info.
// The CLI uses console encoding so diagnostics stay readable next to the
// report on stdout; the servers use JSON.
func New(level, encoding string) (*zap.Logger, error) {
	lvl := parseLevel(level)
	encoding = normalizeEncoding(encoding)

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig(encoding),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.UTC().Format(time.RFC3339Nano)) },
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if encoding == EncodingConsole {
		enc.TimeKey = ""
		enc.CallerKey = ""
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return enc
}

// NewTo builds a logger writing to w, for callers that own their output
// streams.
func NewTo(w io.Writer, level, encoding string) *zap.Logger {
	encoding = normalizeEncoding(encoding)
	cfg := encoderConfig(encoding)

	var enc zapcore.Encoder
	if encoding == EncodingJSON {
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), parseLevel(level)))
}

func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.Set(strings.ToLower(strings.TrimSpace(level))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func normalizeEncoding(encoding string) string {
	if encoding == EncodingJSON {
		return EncodingJSON
	}
	return EncodingConsole
}
