/*
Package testprompt provides a scripted implementation of the prompt.Prompter
interface for tests.
*/
package testprompt

import (
	"fmt"
)

type Prompter struct {
	Choices  []int
	Confirms []bool
	Secrets  []string
	Strings  []string
}

func (p *Prompter) Choose(title string, choices []string) (int, error) {
	if len(p.Choices) < 1 {
		return -1, fmt.Errorf("no scripted choice for: %s", title)
	}
	value := p.Choices[0]
	p.Choices = p.Choices[1:]
	return value, nil
}

func (p *Prompter) Confirm(question string) (bool, error) {
	if len(p.Confirms) < 1 {
		return false, fmt.Errorf("no scripted answer for: %s", question)
	}
	value := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return value, nil
}

func (p *Prompter) ReadSecret(prompt string) (string, error) {
	if len(p.Secrets) < 1 {
		return "", fmt.Errorf("no scripted secret for: %s", prompt)
	}
	value := p.Secrets[0]
	p.Secrets = p.Secrets[1:]
	return value, nil
}

func (p *Prompter) ReadString(prompt, defaultValue string) (string, error) {
	if len(p.Strings) < 1 {
		return "", fmt.Errorf("no scripted string for: %s", prompt)
	}
	value := p.Strings[0]
	p.Strings = p.Strings[1:]
	if value == "" {
		return defaultValue, nil
	}
	return value, nil
}
