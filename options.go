package depot

import "github.com/mwantia/depot/log"

type DepotOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	JSONLog       bool
}

type DepotOption func(*DepotOptions) error

func newDefaultDepotOptions() *DepotOptions {
	return &DepotOptions{
		LogLevel: log.Info,
	}
}

func WithLogLevel(logLevel log.LogLevel) DepotOption {
	return func(opts *DepotOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithLogFile(logFile string) DepotOption {
	return func(opts *DepotOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithoutTerminalLog() DepotOption {
	return func(opts *DepotOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithJSONLog() DepotOption {
	return func(opts *DepotOptions) error {
		opts.JSONLog = true
		return nil
	}
}
