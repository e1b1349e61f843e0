package log

import "testing"

func TestParse(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   Debug,
		"INFO":    Info,
		" warn ":  Warn,
		"Warning": Warn,
		"error":   Error,
		"FATAL":   Fatal,
		"verbose": Info, // unknown names fall back to Info
		"":        Info,
	}

	for input, expected := range cases {
		if got := Parse(input); got != expected {
			t.Errorf("Parse(%q) = %v, expected %v", input, got, expected)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	if got := Warn.String(); got != "WARN" {
		t.Errorf("Expected WARN, got %q", got)
	}
	if got := LogLevel(99).String(); got != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN for out-of-range level, got %q", got)
	}
}
