package main

import (
	"log"
	"os"
)

// stdLogger is the CLI's io.StatusSink, printing Log lines to stdout and
// LogError lines to stderr via the standard library's log package.
type stdLogger struct {
	out *log.Logger
	err *log.Logger
}

func newStdLogger() *stdLogger {
	return &stdLogger{
		out: log.New(os.Stdout, "", 0),
		err: log.New(os.Stderr, "", 0),
	}
}

func (l *stdLogger) Log(text string) { l.out.Println(text) }

func (l *stdLogger) LogError(text string) { l.err.Println(text) }
