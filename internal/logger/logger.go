// Package logger configures logrus with a rotating file sink.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Options controls where and how the application logs.
type Options struct {
	File   string
	Level  string
	Format string
	Stdout bool
}

// Setup points the standard logrus logger at a rotating file (and stdout when
// requested) and returns the writer so other loggers can share the sink.
func Setup(opts Options) (io.Writer, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	var writers []io.Writer
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		})
	}
	if opts.Stdout || len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	out := io.MultiWriter(writers...)

	logrus.SetOutput(out)
	logrus.SetLevel(level)
	if opts.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}
	return out, nil
}

// GormLogger bridges GORM's SQL logging into the standard logrus logger.
// Queries slower than slow are reported as warnings; SQL is traced at debug.
func GormLogger(slow time.Duration) gormlogger.Interface {
	level := gormlogger.Warn
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
