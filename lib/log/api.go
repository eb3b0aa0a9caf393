/*
Package log provides logging interfaces that are easy to implement, pass
around and use. The interfaces here are compatible with the log.Logger type
from the standard library, allowing code to transition easily from using the
standard library.
*/
package log

// Logger defines the interface for a simple logging object.
type Logger interface {
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
	Fatalln(v ...interface{})
	Panic(v ...interface{})
	Panicf(format string, v ...interface{})
	Panicln(v ...interface{})
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// DebugLogger defines the Logger interface plus methods for debug logging,
// where debug logs are filtered by a verbosity level: high levels yield more
// verbose logs.
type DebugLogger interface {
	Logger
	Debug(level uint8, v ...interface{})
	Debugf(level uint8, format string, v ...interface{})
	Debugln(level uint8, v ...interface{})
}
