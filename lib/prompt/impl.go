package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type TerminalPrompter struct {
	reader *bufio.Reader
}

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	choiceColor = color.New(color.FgWhite)
	askColor    = color.New(color.FgGreen)
)

func newTerminalPrompter(reader io.Reader) *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(reader)}
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompter) Choose(title string,
	choices []string) (int, error) {
	titleColor.Println(title)
	for index, choice := range choices {
		choiceColor.Printf("  %d) %s\n", index+1, choice)
	}
	for {
		askColor.Printf("Enter choice [1-%d]: ", len(choices))
		line, err := p.readLine()
		if err != nil {
			return -1, err
		}
		value, err := strconv.Atoi(line)
		if err != nil || value < 1 || value > len(choices) {
			fmt.Println("invalid choice")
			continue
		}
		return value - 1, nil
	}
}

func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	for {
		askColor.Printf("%s [y/n]: ", question)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("please answer y or n")
	}
}

func (p *TerminalPrompter) ReadSecret(prompt string) (string, error) {
	for {
		askColor.Printf("%s: ", prompt)
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		if len(data) < 1 {
			fmt.Println("empty input not permitted")
			continue
		}
		return string(data), nil
	}
}

func (p *TerminalPrompter) ReadString(prompt,
	defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			askColor.Printf("%s [%s]: ", prompt, defaultValue)
		} else {
			askColor.Printf("%s: ", prompt)
		}
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			if defaultValue != "" {
				return defaultValue, nil
			}
			fmt.Println("empty input not permitted")
			continue
		}
		return line, nil
	}
}
