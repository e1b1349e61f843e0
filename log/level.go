package log

import "strings"

type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
	Fatal
)

// levels maps each LogLevel to its display name and terminal color.
var levels = map[LogLevel]struct {
	name  string
	color string
}{
	Debug: {"DEBUG", "\033[34m"},
	Info:  {"INFO", "\033[32m"},
	Warn:  {"WARN", "\033[33m"},
	Error: {"ERROR", "\033[31m"},
	Fatal: {"FATAL", "\033[35m"},
}

func (l LogLevel) String() string {
	if level, ok := levels[l]; ok {
		return level.name
	}
	return "UNKNOWN"
}

// color returns the ANSI escape for terminal output of this level.
func (l LogLevel) color() string {
	if level, ok := levels[l]; ok {
		return level.color
	}
	return "\033[0m"
}

// Parse converts a level name into a LogLevel.
// Unknown names fall back to Info.
func Parse(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return Debug
	case "INFO":
		return Info
	case "WARN", "WARNING":
		return Warn
	case "ERROR":
		return Error
	case "FATAL":
		return Fatal
	default:
		return Info
	}
}
