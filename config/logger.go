// Package config carries the small set of knobs the renderer needs
// (resource limits, concurrency, debug flags) plus the logger construction
// shared by every entry point that embeds the renderer.
package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// LoggerConfig controls a single console logging sink.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// LoggingConfig controls all logging sinks used by the renderer.
type LoggingConfig struct {
	Console LoggerConfig `yaml:"console"`
}

// EnableColorOutput reports whether stream is an interactive terminal that
// can be expected to render ANSI color escapes.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// Prepare returns a configured zap logger, split between stdout (levels
// below error) and stderr (error and above), with verbose error detail stripped
// from the stderr stream.
func (conf *LoggingConfig) Prepare() *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(os.Stdout) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	lowPriorityEncoder := zapcore.NewConsoleEncoder(ec)

	ec = zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	highPriorityEncoder := newConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	var lowCore, highCore zapcore.Core
	switch conf.Console.Level {
	case "normal":
		lowCore = zapcore.NewCore(lowPriorityEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
			}))
		highCore = zapcore.NewCore(highPriorityEncoder, zapcore.Lock(os.Stderr), highPriority)
	case "debug":
		lowCore = zapcore.NewCore(lowPriorityEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
			}))
		highCore = zapcore.NewCore(highPriorityEncoder, zapcore.Lock(os.Stderr), highPriority)
	default:
		lowCore = zapcore.NewNopCore()
		highCore = zapcore.NewNopCore()
	}

	return zap.New(zapcore.NewTee(highCore, lowCore), zap.AddCaller()).Named("boxrender")
}

// consoleEncoder strips verbose error detail before it reaches the console.
type consoleEncoder struct {
	zapcore.Encoder
}

func newConsoleEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEncoder{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEncoder) Clone() zapcore.Encoder {
	return consoleEncoder{c.Encoder.Clone()}
}

func (c consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = shortError{e}
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}

type shortError struct{ err error }

func (s shortError) Error() string { return s.err.Error() }
