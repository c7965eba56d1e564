package models

import (
	"fmt"
	"strconv"
	"strings"
)

// LogSeverity is the level attached to a server log entry.
type LogSeverity int

const (
	SeverityInfo LogSeverity = iota
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"info", "warning", "error"}

func (s LogSeverity) String() string {
	if s.Valid() {
		return severityNames[s]
	}
	return "severity(" + strconv.Itoa(int(s)) + ")"
}

func (s LogSeverity) Valid() bool {
	return s >= SeverityInfo && s <= SeverityError
}

// ParseLogSeverity accepts either a severity name or its numeric level.
func ParseLogSeverity(v string) (LogSeverity, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range severityNames {
		if v == name {
			return LogSeverity(i), nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && LogSeverity(n).Valid() {
		return LogSeverity(n), nil
	}
	return 0, fmt.Errorf("unknown log severity %q (valid: %s)", v, strings.Join(severityNames[:], ", "))
}

// LogEntry represents a single line from the log command.
type LogEntry struct {
	Date     int64       `json:"date" mapstructure:"date"` // Unix seconds
	Severity LogSeverity `json:"level" mapstructure:"level"`
	Object   string      `json:"obj" mapstructure:"obj"`
	Message  string      `json:"msg" mapstructure:"msg"`
	Count    int         `json:"count" mapstructure:"count"`

	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}
