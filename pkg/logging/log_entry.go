package logging

// LogEntry represents a structured log record with fields particularly
// relevant to optimization runs.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Optimization-specific fields
	RunID      string // The optimization run emitting the record
	Generation int    // Generation counter; -1 outside the generational loop

	// General structured data
	Fields map[string]interface{}
}
