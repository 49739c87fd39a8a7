package log

// Logger is the interface applications implement to receive protocol
// events. Pass NoopLogger to disable logging.
type Logger interface {
	// Log records a protocol event. Implementations must be safe for
	// concurrent use and should return quickly; blocking slows the
	// session loop.
	Log(event Event)
}

// NoopLogger discards all events. Safe for concurrent use and usable as
// a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// MultiLogger fans events out to several sinks, typically a SlogAdapter
// for the console and a FileLogger for capture.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger over the given sinks.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log sends the event to every sink in order.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Logger = NoopLogger{}
	_ Logger = (*MultiLogger)(nil)
)
