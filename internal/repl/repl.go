// Package repl wraps line-oriented input for an interactive session,
// choosing between GNU-readline-backed editing and direct stream reads the
// same way engine.go's input setup once did for the game's command reader,
// adapted here for free-text sentences instead of verb/object commands.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads one line of input at a time until end of input.
type Reader interface {
	// ReadLine blocks for the next non-blank line. It returns ("", io.EOF)
	// at end of input.
	ReadLine() (string, error)

	// SetPrompt updates the prompt shown before the next read, if the
	// reader renders one.
	SetPrompt(prompt string)

	Close() error
}

// direct reads lines from an arbitrary io.Reader with no editing support.
type direct struct {
	r      *bufio.Reader
	w      io.Writer
	prompt string
}

// NewDirect wraps r (and echoes prompts to w, if non-nil) with no readline
// support. Used when stdin/stdout aren't a tty, or readline is forced off.
func NewDirect(r io.Reader, w io.Writer) Reader {
	return &direct{r: bufio.NewReader(r), w: w}
}

func (d *direct) SetPrompt(prompt string) { d.prompt = prompt }

func (d *direct) ReadLine() (string, error) {
	for {
		if d.prompt != "" && d.w != nil {
			fmt.Fprint(d.w, d.prompt)
		}
		line, err := d.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

func (d *direct) Close() error { return nil }

// interactive reads lines via chzyer/readline, giving history and line
// editing when attached to a real terminal.
type interactive struct {
	rl *readline.Instance
}

// NewInteractive starts a readline-backed Reader with the given initial
// prompt. The returned Reader must have Close called on it before disposal.
func NewInteractive(prompt string) (Reader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("repl: create readline instance: %w", err)
	}
	return &interactive{rl: rl}, nil
}

func (i *interactive) SetPrompt(prompt string) { i.rl.SetPrompt(prompt) }

func (i *interactive) ReadLine() (string, error) {
	for {
		line, err := i.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

func (i *interactive) Close() error { return i.rl.Close() }
