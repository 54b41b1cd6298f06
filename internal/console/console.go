package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Reader prompts on out and reads single lines from in.
type Reader struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	if out == nil {
		out = io.Discard
	}
	return &Reader{in: bufio.NewReader(in), out: out}
}

// Input prints the prompt parts separated by spaces, without a trailing
// newline, and returns the next line. A final line without a newline is
// returned as is; io.EOF is only reported when nothing was read.
func (r *Reader) Input(prompt ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(prompt) > 0 {
		if _, err := fmt.Fprint(r.out, strings.Join(prompt, " ")); err != nil {
			return "", err
		}
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// TryInt parses text as a base-10 integer, falling back to def.
func TryInt(text string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return def
	}
	return n
}

var stdinIsInteractive = isStdinInteractive

func StdinIsInteractive() bool {
	return stdinIsInteractive()
}

func isStdinInteractive() bool {
	return IsTerminal(os.Stdin)
}

func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
