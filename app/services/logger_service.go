package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"BakeryPOS/app/security"
)

// LoggerService handles application logging
type LoggerService struct {
	mu         sync.Mutex
	logDir     string
	logFile    *os.File
	logger     *log.Logger
	currentDay string
}

// NewLoggerService creates a logger writing to <APPDATA>/BakeryPOS/logs
func NewLoggerService() *LoggerService {
	logDir := "logs"
	if dataDir, err := security.DataDir(); err != nil {
		log.Printf("Warning: Could not resolve data directory: %v", err)
	} else {
		logDir = filepath.Join(dataDir, "logs")
	}
	return NewLoggerServiceWithDir(logDir)
}

// NewLoggerServiceWithDir creates a logger writing daily files into logDir
func NewLoggerServiceWithDir(logDir string) *LoggerService {
	s := &LoggerService{logDir: logDir}
	s.initializeLogger()
	return s
}

func (s *LoggerService) initializeLogger() {
	if err := os.MkdirAll(s.logDir, 0755); err != nil {
		log.Printf("Warning: Could not create logs directory: %v", err)
	}

	if err := s.rotateLogFile(); err != nil {
		log.Printf("Warning: Could not create log file: %v. Logging to stdout only.", err)
		s.logger = log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile)
		return
	}

	s.logger = log.New(io.MultiWriter(os.Stdout, s.logFile), "", log.LstdFlags|log.Lshortfile)
	s.LogInfo("Logger initialized", fmt.Sprintf("Log directory: %s", s.logDir))
}

// rotateLogFile opens the file for the current day, closing the previous one
func (s *LoggerService) rotateLogFile() error {
	today := time.Now().Format("2006-01-02")
	if s.currentDay == today && s.logFile != nil {
		return nil
	}

	if s.logFile != nil {
		s.logFile.Close()
	}

	path := filepath.Join(s.logDir, today+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	s.logFile = file
	s.currentDay = today
	return nil
}

func (s *LoggerService) checkAndRotate() {
	if s.currentDay == time.Now().Format("2006-01-02") {
		return
	}
	if err := s.rotateLogFile(); err == nil && s.logger != nil {
		s.logger.SetOutput(io.MultiWriter(os.Stdout, s.logFile))
	}
}

func (s *LoggerService) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkAndRotate()
	s.logger.Output(3, fmt.Sprintf(format, args...))
}

func joinDetails(details []string) string {
	if len(details) == 0 || details[0] == "" {
		return ""
	}
	return " | " + details[0]
}

// LogInfo logs an informational message
func (s *LoggerService) LogInfo(message string, details ...string) {
	s.printf("[INFO] %s%s", message, joinDetails(details))
}

// LogWarning logs a warning message
func (s *LoggerService) LogWarning(message string, details ...string) {
	s.printf("[WARNING] %s%s", message, joinDetails(details))
}

// LogError logs an error message
func (s *LoggerService) LogError(message string, err error, details ...string) {
	errorStr := ""
	if err != nil {
		errorStr = fmt.Sprintf(" | Error: %v", err)
	}
	s.printf("[ERROR] %s%s%s", message, errorStr, joinDetails(details))
}

// LogPanic logs a panic with stack trace
func (s *LoggerService) LogPanic(recovered interface{}) {
	s.printf("[PANIC] Recovered from panic: %v\n%s", recovered, debug.Stack())
}

// LogFrontendError logs errors from the frontend (called via Wails binding)
func (s *LoggerService) LogFrontendError(message string, stack string, componentInfo string) {
	s.printf("[FRONTEND ERROR] %s%s", message, joinDetails([]string{componentInfo}))
	if stack != "" {
		s.printf("[FRONTEND ERROR] Stack trace:\n%s", stack)
	}
}

// LogFrontendInfo logs info from the frontend
func (s *LoggerService) LogFrontendInfo(message string, details string) {
	s.printf("[FRONTEND INFO] %s%s", message, joinDetails([]string{details}))
}

// GetLogDirectory returns the directory where logs are stored
func (s *LoggerService) GetLogDirectory() string {
	return s.logDir
}

// GetTodayLogPath returns the path to today's log file
func (s *LoggerService) GetTodayLogPath() string {
	return filepath.Join(s.logDir, time.Now().Format("2006-01-02")+".log")
}

// CleanOldLogs removes log files older than daysToKeep
func (s *LoggerService) CleanOldLogs(daysToKeep int) error {
	files, err := os.ReadDir(s.logDir)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".log" {
			continue
		}
		info, err := file.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.logDir, file.Name())
		s.LogInfo("Deleting old log file", path)
		os.Remove(path)
	}

	return nil
}

// Close closes the log file
func (s *LoggerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logFile != nil {
		s.logFile.Close()
		s.logFile = nil
		s.logger.SetOutput(os.Stdout)
	}
}

// RecoverPanic is a helper to recover from panics in goroutines
func (s *LoggerService) RecoverPanic() {
	if r := recover(); r != nil {
		s.LogPanic(r)
	}
}
