package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes leveled messages to the terminal and optionally to a
// rotated log file. The zero value is not usable; create instances via New.
type Logger struct {
	writer io.Writer

	name  string
	level LogLevel

	timeFormat string
	noColor    bool
	noTerminal bool
	json       bool

	file     string
	rotation Rotation
}

// Rotation configures the lumberjack file rotation behaviour.
type Rotation struct {
	MaxSize    int // megabytes before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type Option func(*Logger)

// WithFile enables file output rotated by lumberjack.
func WithFile(file string) Option {
	return func(l *Logger) {
		l.file = file
	}
}

// WithRotation overrides the default rotation settings.
func WithRotation(rotation Rotation) Option {
	return func(l *Logger) {
		l.rotation = rotation
	}
}

// WithJSON switches entries to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.json = true
	}
}

// WithoutColor disables ANSI colors on terminal output.
func WithoutColor() Option {
	return func(l *Logger) {
		l.noColor = true
	}
}

// WithoutTerminal suppresses stdout output entirely.
// Useful when only the rotated file output is wanted.
func WithoutTerminal() Option {
	return func(l *Logger) {
		l.noTerminal = true
	}
}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// New creates a named Logger filtering below the given level.
func New(name string, level LogLevel, opts ...Option) *Logger {
	l := &Logger{
		name:       name,
		level:      level,
		timeFormat: "2006-01-02 15:04:05",
		rotation: Rotation{
			MaxSize:    128,
			MaxBackups: 5,
			MaxAge:     16,
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.setupWriter()

	return l
}

// Discard returns a Logger that drops every message.
// Library types use it as their default until a real logger is injected.
func Discard() *Logger {
	return &Logger{
		writer:     io.Discard,
		level:      Fatal + 1,
		noTerminal: true,
	}
}

func (l *Logger) setupWriter() {
	var writers []io.Writer

	if !l.noTerminal {
		writers = append(writers, os.Stdout)
	}

	if l.file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   l.file,
			MaxSize:    l.rotation.MaxSize,
			MaxBackups: l.rotation.MaxBackups,
			MaxAge:     l.rotation.MaxAge,
			Compress:   l.rotation.Compress,
		})
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}

	timestamp := time.Now().Format(l.timeFormat)
	formatted := fmt.Sprintf(msg, args...)

	if l.json {
		e := entry{
			Timestamp: timestamp,
			Level:     level.String(),
			Message:   formatted,
		}
		if l.name != "" {
			e.Service = l.name
		}

		raw, _ := json.Marshal(e)
		fmt.Fprintf(l.writer, "%s\n", raw)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.name)
		}

		if !l.noTerminal && !l.noColor {
			fmt.Fprintf(l.writer, "%s%s %s\033[0m\n", level.color(), prefix, formatted)
		} else {
			fmt.Fprintf(l.writer, "%s %s\n", prefix, formatted)
		}
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

// Named derives a child logger sharing the same writer and settings.
func (l *Logger) Named(name string) *Logger {
	child := *l
	if l.name != "" {
		child.name = fmt.Sprintf("%s/%s", l.name, name)
	} else {
		child.name = name
	}

	return &child
}
