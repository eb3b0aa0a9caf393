package commands

import (
	"io"

	"github.com/osprey-linux/installer/lib/log"
)

type CommandFunc func([]string, log.DebugLogger) error

type Command struct {
	Command string
	Args    string
	MinArgs int
	MaxArgs int
	CmdFunc CommandFunc
}

// PrintCommands will write the list of commands in a form suitable for a
// usage message.
func PrintCommands(writer io.Writer, commands []Command) {
	printCommands(writer, commands)
}

// RunCommands will find the command specified on the command-line and run
// it, returning a suitable exit code.
func RunCommands(commands []Command, printUsage func(),
	logger log.DebugLogger) int {
	return runCommands(commands, printUsage, logger)
}
