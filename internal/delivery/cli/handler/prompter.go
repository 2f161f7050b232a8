package handler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads operator answers one line at a time. Every read returns
// io.EOF once the input is exhausted.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (p *Prompter) Out() io.Writer {
	return p.out
}

// Line prints prompt and returns the next input line without its newline.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(p.out)
		return "", io.EOF
	}
	return strings.TrimRight(p.scanner.Text(), "\r"), nil
}

// Int re-prompts until the answer is a base-10 integer.
func (p *Prompter) Int(prompt string) (int, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a whole number.")
	}
}

// Text re-prompts until valid accepts the answer, printing message after
// each rejection.
func (p *Prompter) Text(prompt string, valid func(string) bool, message string) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if valid(line) {
			return line, nil
		}
		fmt.Fprintln(p.out, message)
	}
}

// IntIn re-prompts until the answer is an integer accepted by valid.
func (p *Prompter) IntIn(prompt string, valid func(int) bool, message string) (int, error) {
	for {
		n, err := p.Int(prompt)
		if err != nil {
			return 0, err
		}
		if valid(n) {
			return n, nil
		}
		fmt.Fprintln(p.out, message)
	}
}

// Confirm accepts "y" or "yes" in any case; every other answer declines.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	line, err := p.Line(prompt + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
