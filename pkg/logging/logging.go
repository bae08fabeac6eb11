// Package logging sets up diagnostic logging for drivestat.
package logging

import (
	"fmt"
	"io"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

const (
	// RotationPattern is appended to the file sink path, one file per month.
	RotationPattern = ".%Y%m"

	maxAge = 366 * 24 * time.Hour
)

// New creates a logger writing text entries to out at the named level.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger, nil
}

// AddFileHook mirrors every entry into a monthly rotated file at path.
func AddFileHook(logger *logrus.Logger, path string) error {
	writer, err := rotatelogs.New(
		path+RotationPattern,
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	logger.AddHook(lfshook.NewHook(lfshook.WriterMap{
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, &logrus.TextFormatter{
		FullTimestamp: true,
	}))
	return nil
}
