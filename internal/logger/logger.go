// internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Config controls where log lines go and which clock they use.
type Config struct {
	LogsDirectory string
	LogFileFormat string // e.g. "stallpos_%s.log", %s = YYYY-MM-DD
	TimeZone      string
}

var (
	mu          sync.Mutex
	initialized bool
	std         *log.Logger
	timeZone    *time.Location
	logFilePath string
)

// Setup initializes the logger with file and console output. Until Setup
// runs, the Log* helpers fall back to the standard log package.
func Setup(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return fmt.Errorf("logger already initialized")
	}

	if cfg.TimeZone == "" {
		cfg.TimeZone = "Local"
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("failed to load time zone %q: %w", cfg.TimeZone, err)
	}
	timeZone = loc

	if err := os.MkdirAll(cfg.LogsDirectory, 0775); err != nil {
		return fmt.Errorf("failed to create logs directory %q: %w", cfg.LogsDirectory, err)
	}

	name := fmt.Sprintf(cfg.LogFileFormat, time.Now().In(loc).Format("2006-01-02"))
	if filepath.IsAbs(name) {
		logFilePath = name
	} else {
		logFilePath = filepath.Join(cfg.LogsDirectory, name)
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0664)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	std = log.New(io.MultiWriter(os.Stdout, f), "", 0)
	initialized = true

	LogInfo("Logger initialized, writing to %s", logFilePath)
	return nil
}

func LogFilePath() string {
	mu.Lock()
	defer mu.Unlock()
	return logFilePath
}

func logMessage(level, message string, v ...interface{}) {
	mu.Lock()
	ready := initialized
	out := std
	loc := timeZone
	mu.Unlock()

	msg := fmt.Sprintf(message, v...)
	if !ready {
		log.Printf("[%s] %s", level, msg)
		return
	}

	_, file, line, _ := runtime.Caller(2)
	ts := time.Now().In(loc).Format("2006-01-02 15:04:05 MST")
	out.Printf("[%s] %s %s:%d - %s", level, ts, filepath.Base(file), line, msg)
}

func LogInfo(message string, v ...interface{})  { logMessage("INFO", message, v...) }
func LogWarn(message string, v ...interface{})  { logMessage("WARN", message, v...) }
func LogError(message string, v ...interface{}) { logMessage("ERROR", message, v...) }
func LogFatal(message string, v ...interface{}) {
	logMessage("FATAL", message, v...)
	os.Exit(1)
}

func LogHTTPRequest(r *http.Request) {
	LogInfo("HTTP %s %s from %s", r.Method, r.URL.Path, GetClientIP(r))
}

func LogHTTPError(r *http.Request, status int, err error) {
	LogError("HTTP %d error for %s %s from %s: %v", status, r.Method, r.URL.Path, GetClientIP(r), err)
}

func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
