// Package logging builds the zap logger shared by the CLI and the session.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control logger construction. Output defaults to stderr so log
// lines never mix with translations on stdout.
type Options struct {
	Debug  bool
	JSON   bool
	Output io.Writer
}

// New returns a logger with caller info only on error entries.
func New(opts Options) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	if opts.JSON {
		enc = zap.NewProductionEncoderConfig()
	}
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder

	encNoCaller := enc
	encNoCaller.CallerKey = ""
	encWithCaller := enc
	encWithCaller.CallerKey = "caller"

	newEncoder := zapcore.NewConsoleEncoder
	if opts.JSON {
		newEncoder = zapcore.NewJSONEncoder
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ws := zapcore.Lock(zapcore.AddSync(out))

	minLevel := zapcore.InfoLevel
	if opts.Debug {
		minLevel = zapcore.DebugLevel
	}

	plain := zapcore.NewCore(newEncoder(encNoCaller), ws, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < zapcore.ErrorLevel
	}))
	withCaller := zapcore.NewCore(newEncoder(encWithCaller), ws, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.ErrorLevel
	}))

	return zap.New(zapcore.NewTee(plain, withCaller), zap.AddCaller())
}
