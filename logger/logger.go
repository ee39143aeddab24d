package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init configures Log. When quiet is true nothing is written to stdout, which
// keeps the terminal UI's screen intact; filePath then becomes the only sink.
func Init(levelStr string, filePath string, quiet bool) error {
	mu.Lock()
	defer mu.Unlock()

	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	var writers []io.Writer
	if !quiet {
		writers = append(writers, os.Stdout)
	}
	var file *os.File
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		file = f
		writers = append(writers, file)
	}

	if len(writers) == 0 {
		Log.SetOutput(io.Discard)
	} else {
		Log.SetOutput(io.MultiWriter(writers...))
	}
	// The previous file is only closed once nothing writes to it
	_ = closeFile()
	logFile = file
	return nil
}

// Close detaches and closes the log file opened by Init, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	Log.SetOutput(io.Discard)
	return closeFile()
}

// closeFile closes the current log file (must hold mu)
func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
