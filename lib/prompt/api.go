/*
Package prompt provides the modal operator prompts used to collect an
installation plan: single-choice menus, free text, masked secrets and yes/no
confirmations. No prompt may be skipped: prompts re-ask until they receive a
valid answer.
*/
package prompt

import (
	"io"
)

// Prompter defines the operator interface boundary.
type Prompter interface {
	// Choose presents a numbered single-choice menu and returns the index
	// of the selected choice.
	Choose(title string, choices []string) (int, error)
	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)
	// ReadSecret reads a line without echoing it.
	ReadSecret(prompt string) (string, error)
	// ReadString reads a line of free text. If the operator enters nothing
	// and defaultValue is not empty, defaultValue is returned.
	ReadString(prompt, defaultValue string) (string, error)
}

// NewTerminalPrompter will create a Prompter reading from reader (normally
// os.Stdin). Masked secret input requires reader to be a terminal.
func NewTerminalPrompter(reader io.Reader) *TerminalPrompter {
	return newTerminalPrompter(reader)
}
