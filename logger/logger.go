package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields aliases logrus.Fields so callers need no direct logrus import.
type Fields = logrus.Fields

// New builds the process logger. LOG_LEVEL picks the level (default info),
// LOG_FORMAT=text switches off the JSON formatter, and LOG_FILE redirects
// output to a size-rotated file.
func New() *logrus.Logger {
	log := logrus.New()

	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	if level, err := logrus.ParseLevel(strings.ToLower(levelStr)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		log.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	if file := os.Getenv("LOG_FILE"); file != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return log
}
