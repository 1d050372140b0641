package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers line by line from the command's input.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), out: out}
}

// ask prints label and returns the next input line without its newline.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no input for %q", label)
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// askIfEmpty returns value, prompting for it when empty.
func (p *prompter) askIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return p.ask(label)
}

// confirm asks a yes/no question. Anything but y or yes is no.
func (p *prompter) confirm(question string) bool {
	answer, err := p.ask(question + " [y/N]")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
