// Package console provides the process-wide logger shared by all services.
package console

import (
	"io"
	"log"
	"os"
)

// Logger is the shared console logger. Commands may raise DebugLevel or
// redirect output before generation starts.
var Logger = &ConsoleLogger{out: log.New(os.Stderr, "", log.LstdFlags)}

// ConsoleLogger writes leveled printf-style messages to a single destination.
type ConsoleLogger struct {
	// DebugLevel enables Debug output when greater than zero.
	DebugLevel int

	out *log.Logger
}

// SetOutput redirects all logger output, e.g. to io.Discard in quiet mode.
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}

// Debug logs a message when DebugLevel is enabled.
func (l *ConsoleLogger) Debug(format string, v ...interface{}) {
	if l.DebugLevel < 1 {
		return
	}
	l.out.Printf("DEBUG: "+format, v...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(format string, v ...interface{}) {
	l.out.Printf(format, v...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(format string, v ...interface{}) {
	l.out.Printf("ERROR: "+format, v...)
}
