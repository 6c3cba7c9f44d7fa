package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	fileLogger  *log.Logger
	logFile     *os.File
	jsonFile    *os.File
	initialized bool
	consoleMu   sync.Mutex
)

// InitLogger opens a timestamped log file under logDir. Console output works
// without initialization; the file sink is additive.
func InitLogger(logDir string) error {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, fmt.Sprintf("validate_%s.log", timestamp))

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	fileLogger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	initialized = true
	return nil
}

// InitJSONLog opens the one-record-per-line JSON sink. Pass "-" for stdout.
func InitJSONLog(path string) error {
	if path == "-" {
		jsonFile = os.Stdout
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open JSON log file: %w", err)
	}
	jsonFile = f
	return nil
}

func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
		initialized = false
	}
	if jsonFile != nil && jsonFile != os.Stdout {
		jsonFile.Close()
	}
	jsonFile = nil
}

// JSONRecord writes v as a single JSON line to the JSON sink, if enabled.
func JSONRecord(v interface{}) {
	if jsonFile == nil {
		return
	}
	consoleMu.Lock()
	defer consoleMu.Unlock()
	enc, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintln(jsonFile, string(enc))
}

func emit(level, format string, v ...interface{}) {
	consoleMu.Lock()
	defer consoleMu.Unlock()

	msg := fmt.Sprintf(format, v...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	if initialized {
		fileLogger.Output(3, "["+level+"] "+msg)
	}
	fmt.Print("[" + level + "] " + msg)
}

func Info(format string, v ...interface{}) {
	emit("INFO", format, v...)
}

func Warn(format string, v ...interface{}) {
	emit("WARN", format, v...)
}

func Error(format string, v ...interface{}) {
	emit("ERROR", format, v...)
}

// Debug goes to the file sink only.
func Debug(format string, v ...interface{}) {
	if !initialized {
		return
	}
	consoleMu.Lock()
	defer consoleMu.Unlock()
	msg := fmt.Sprintf(format, v...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fileLogger.Output(2, "[DEBUG] "+msg)
}
