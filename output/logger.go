package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type LogLevel int

const (
	// Levels ordered by verbosity (lower value = more verbose)
	LevelDebug LogLevel = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
	LevelSilent
)

type Logger struct {
	minLevel LogLevel
	silent   bool
	out      io.Writer
	mu       sync.Mutex
	now      func() time.Time

	debugColor   func(format string, a ...interface{}) string
	infoColor    func(format string, a ...interface{}) string
	warningColor func(format string, a ...interface{}) string
	errorColor   func(format string, a ...interface{}) string
	successColor func(format string, a ...interface{}) string
	timeColor    func(format string, a ...interface{}) string
}

/*
   NewLogger picks the minimum level from the flags. Silent mode keeps only
   errors; everything else the tool prints is suppressed.
*/
func NewLogger(verbose, silent bool) *Logger {
	minLogLevel := LevelInfo
	if verbose {
		minLogLevel = LevelDebug
	}
	if silent {
		minLogLevel = LevelError
	}

	return &Logger{
		minLevel: minLogLevel,
		silent:   silent,
		out:      os.Stderr,
		now:      time.Now,

		timeColor:    color.New(color.FgHiBlack).SprintfFunc(),
		debugColor:   color.New(color.FgHiBlack).SprintfFunc(),
		infoColor:    color.New(color.FgCyan).SprintfFunc(),
		warningColor: color.New(color.FgYellow).SprintfFunc(),
		errorColor:   color.New(color.FgRed, color.Bold).SprintfFunc(),
		successColor: color.New(color.FgGreen, color.Bold).SprintfFunc(),
	}
}

// SetOutput redirects log lines; nil restores stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.out = w
}

func (l *Logger) IsSilent() bool {
	return l.silent
}

func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.minLevel
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := l.timeColor("[%s]", l.now().Format("15:04:05"))
	message := fmt.Sprintf(format, args...)

	var prefix, formatted string
	switch level {
	case LevelDebug:
		prefix = l.debugColor("[DEBUG]")
		formatted = l.debugColor("%s", message)
	case LevelInfo:
		prefix = l.infoColor("[INFO]")
		formatted = message
	case LevelWarning:
		prefix = l.warningColor("[WARNING]")
		formatted = l.warningColor("%s", message)
	case LevelError:
		prefix = l.errorColor("[ERROR]")
		formatted = l.errorColor("%s", message)
	case LevelSuccess:
		prefix = l.successColor("[SUCCESS]")
		formatted = l.successColor("%s", message)
	}

	fmt.Fprintf(l.out, "%s %s %s\n", timestamp, prefix, formatted)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(LevelWarning, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

func (l *Logger) Success(format string, args ...interface{}) {
	l.log(LevelSuccess, format, args...)
}
