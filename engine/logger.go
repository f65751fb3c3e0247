package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LoggerService writes engine activity to a log file. Console output stays
// reserved for command results, so everything here is file-only unless
// Verbose is set.
type LoggerService struct {
	FilePath string
	Verbose  bool

	mu     sync.Mutex
	logger *log.Logger
	file   *os.File
}

// initLogger lazily opens the log file on first use
func (l *LoggerService) initLogger() error {
	if l.logger != nil {
		return nil
	}
	if l.FilePath == "" {
		return fmt.Errorf("no log file configured")
	}

	if err := os.MkdirAll(filepath.Dir(l.FilePath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(l.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = file
	l.logger = log.New(file, "", log.LstdFlags|log.Lmicroseconds)
	return nil
}

func (l *LoggerService) logToFile(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.initLogger(); err != nil {
		return
	}

	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [pid:%d] %s", level, os.Getpid(), msg)
}

// Info logs informational messages
func (l *LoggerService) Info(format string, args ...interface{}) {
	l.logToFile("INFO", format, args...)
	if l.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] INFO: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Warn logs warning messages
func (l *LoggerService) Warn(format string, args ...interface{}) {
	l.logToFile("WARN", format, args...)
	if l.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] WARN: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Error logs error messages
func (l *LoggerService) Error(format string, args ...interface{}) {
	l.logToFile("ERROR", format, args...)
	if l.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] ERROR: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Debug logs debug messages, file-only regardless of Verbose
func (l *LoggerService) Debug(format string, args ...interface{}) {
	l.logToFile("DEBUG", format, args...)
}

// Close releases the underlying log file
func (l *LoggerService) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.logger = nil
	return err
}
