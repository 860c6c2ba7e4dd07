package logger

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(logrus.InfoLevel)
	if os.Getenv("ENVIRONMENT") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}
}

// SetLevel accepts logrus level names ("debug", "info", "warn", ...).
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Warn("Unknown log level %q, keeping %s", level, log.GetLevel())
		return
	}
	log.SetLevel(lvl)
}

func Info(format string, v ...interface{}) {
	log.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	log.Warnf(format, v...)
}

// WithFields returns an entry for structured call sites (vendor calls, jobs).
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return log.WithFields(logrus.Fields(fields))
}

// Add a context helper for more structured logs
func WithContext(ctx interface{}, format string, v ...interface{}) string {
	_, file, line, _ := runtime.Caller(1)
	contextStr := fmt.Sprintf("%v:%d", file, line)
	if ctx != nil {
		contextStr = fmt.Sprintf("%v - %v", contextStr, ctx)
	}
	return fmt.Sprintf("[%s] %s", contextStr, fmt.Sprintf(format, v...))
}

// Helper for best-effort profile writes that must never fail the primary action
func LogProfileSaveError(userID, category string, err error) {
	Warn("Profile save failed: category=%s, userID=%s, error=%v", category, userID, err)
}
