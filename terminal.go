package rood

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Terminal abstracts the terminal facilities OutputManager depends on.
type Terminal interface {
	// IsInteractive reports whether output goes to a live terminal.
	IsInteractive() bool
	// ReadPassword reads a line of input with echo disabled.
	ReadPassword() (string, error)
}

// FileTerminal is a Terminal backed by file descriptors.
type FileTerminal struct {
	Out *os.File
	In  *os.File
}

// IsInteractive reports whether Out is a terminal (including Cygwin/MSYS ptys).
func (t *FileTerminal) IsInteractive() bool {
	return isTerminal(t.Out)
}

// ReadPassword reads from In without echo. It fails when In is not a terminal.
func (t *FileTerminal) ReadPassword() (string, error) {
	b, err := term.ReadPassword(int(t.In.Fd()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// streamTerminal serves managers whose input is not a file.
// Password input is read as a plain line from the configured reader.
type streamTerminal struct {
	out *os.File // nil when output is not a file
	in  *bufio.Reader
}

func (t *streamTerminal) IsInteractive() bool {
	return t.out != nil && isTerminal(t.out)
}

func (t *streamTerminal) ReadPassword() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// newTerminal derives the default Terminal from the streams a manager
// actually uses. Only an *os.File writer can be interactive, and the
// echo-free read needs an *os.File reader.
func newTerminal(out io.Writer, in io.Reader, buffered *bufio.Reader) Terminal {
	outFile, _ := out.(*os.File)
	if inFile, ok := in.(*os.File); ok && outFile != nil {
		return &FileTerminal{Out: outFile, In: inFile}
	}
	return &streamTerminal{out: outFile, in: buffered}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
