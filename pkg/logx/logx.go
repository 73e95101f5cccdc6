// Package logx builds the zap logger used across the application. The
// terminal belongs to the board, so logs go to a file.
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var loggerLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// LevelByString maps a config level name to a zap level, defaulting to info.
func LevelByString(lvl string) zapcore.Level {
	level, exist := loggerLevelMap[lvl]
	if !exist {
		return zapcore.InfoLevel
	}
	return level
}

// New returns a JSON logger writing to w. In development mode DPanic logs
// panic, which turns internal consistency errors into crashes.
func New(w io.Writer, lvl zapcore.Level, dev bool) *zap.SugaredLogger {
	var encoderCfg zapcore.EncoderConfig
	if dev {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	opts := []zap.Option{zap.AddCaller()}
	if dev {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...).Sugar()
}

// InitLog opens dest for appending and returns a logger writing to it with
// every entry tagged by prefix. The returned close func flushes and closes
// the file.
func InitLog(dest, prefix string, lvl zapcore.Level, dev bool) (*zap.SugaredLogger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := New(f, lvl, dev).Named(prefix)
	return log, func() {
		_ = log.Sync()
		f.Close()
	}, nil
}
