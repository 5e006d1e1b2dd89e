package ambient

import (
	"log/slog"
	"os"
)

// logger is the diagnostic channel. Construction failures are reported here
// at Error; lifecycle transitions and debug timing at Debug.
var logger = newDefaultLogger()

func newDefaultLogger() *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h).With("component", "ambient")
}

// SetLogger replaces the diagnostic logger. A nil logger restores the
// default stderr text logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = newDefaultLogger()
		return
	}
	logger = l
}

// Logger returns the current diagnostic logger.
func Logger() *slog.Logger {
	return logger
}
