package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// errInputClosed is returned when input ends in the middle of a prompt.
var errInputClosed = errors.New("input closed")

// ClearValue is the answer that empties a field in Default prompts.
const ClearValue = "-"

// Prompter reads answers from the user. Secrets are read without echo when
// the input is a terminal.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

// NewPrompter reads lines from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{reader: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.isTerm = true
	}
	return p
}

// Scan reads the next raw line without its line ending. It returns false at
// end of input.
func (p *Prompter) Scan() (string, bool) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Line prints label and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, ok := p.Scan()
	if !ok {
		return "", errInputClosed
	}
	return strings.TrimSpace(line), nil
}

// Secret prints label and reads an answer without echo. Input that was
// already typed ahead sits in the line buffer, so it is consumed from there
// rather than from the terminal.
func (p *Prompter) Secret(label string) (string, error) {
	if !p.isTerm || p.reader.Buffered() > 0 {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Text asks for longer content. The user may give a file path to load it
// from, or leave the path empty and type a single line.
func (p *Prompter) Text(label string) (string, error) {
	path, err := p.Line("Enter file path to load (leave empty for manual input): ")
	if err != nil {
		return "", err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file %q: %w", path, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return p.Line(label)
}

// Default asks with the current value shown. An empty answer keeps it and
// ClearValue empties it.
func (p *Prompter) Default(label, current string) (string, error) {
	answer, err := p.Line(fmt.Sprintf("%s [%s] (%s to clear): ", label, current, ClearValue))
	if err != nil {
		return "", err
	}
	switch answer {
	case "":
		return current, nil
	case ClearValue:
		return "", nil
	}
	return answer, nil
}
