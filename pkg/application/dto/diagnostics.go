package dto

import "fmt"

// Severity grades a diagnostic
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "Unknown"
	}
}

// Diagnostic is a non-fatal finding surfaced in the report
type Diagnostic struct {
	Stage    string   `json:"stage"`
	Source   string   `json:"source"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Warningf builds a warning diagnostic
func Warningf(stage, source, format string, args ...any) Diagnostic {
	return Diagnostic{Stage: stage, Source: source, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// Infof builds an informational diagnostic
func Infof(stage, source, format string, args ...any) Diagnostic {
	return Diagnostic{Stage: stage, Source: source, Severity: SeverityInfo, Message: fmt.Sprintf(format, args...)}
}

// MarshalText renders the severity by name in JSON
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
