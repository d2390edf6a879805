package sim

import (
	"io"
	"os"
)

// TTY adapts the process terminal, or any reader/writer pair, to the
// console port interface.
type TTY struct {
	In  io.Reader
	Out io.Writer
}

// NewTTY wires the process stdin/stdout.
func NewTTY() *TTY {
	return &TTY{In: os.Stdin, Out: os.Stdout}
}

func (t *TTY) Read(p []byte) (int, error) {
	return t.In.Read(p)
}

func (t *TTY) Write(p []byte) (int, error) {
	return t.Out.Write(p)
}
