// Package cliutil provides the thin, explicitly out-of-scope
// collaborators the cryptographic core needs to run as a CLI: secure
// password acquisition, JSON result dumps, and structured logging.
package cliutil

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ResolvePassword reads the password the way spec.md §6 requires: one
// line from stdin (trailing newline stripped) when stdin is not a
// terminal, otherwise an interactive, echo-disabled prompt.
func ResolvePassword(stdin *os.File) (string, error) {
	if !term.IsTerminal(int(stdin.Fd())) {
		return readPasswordLine(stdin)
	}
	return promptPassword(stdin)
}

func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("cliutil: failed to read password from stdin: %w", err)
	}
	return trimTrailingNewline(line), nil
}

func promptPassword(stdin *os.File) (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("cliutil: failed to read password: %w", err)
	}
	return string(raw), nil
}

func trimTrailingNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}
