// Package console accepts angle commands as terminal lines on a
// serial port.
package console

import (
	"errors"
	"strings"

	"github.com/linkbots/servolink/pkg/servo"
)

// LineCapacity bounds one console line. Bytes past the limit before a
// terminator are silently dropped; the line is truncated, never grown.
const LineCapacity = 64

// ErrUnknownCommand reports a line that parses as no command.
var ErrUnknownCommand = errors.New("console: unknown command")

// LineBuffer accumulates bytes into CR/LF terminated lines.
type LineBuffer struct {
	buf [LineCapacity]byte
	n   int
}

// Feed consumes one byte. It returns a completed non-empty line when
// b terminates one; the buffer is reset either way.
func (l *LineBuffer) Feed(b byte) (string, bool) {
	if b == '\r' || b == '\n' {
		if l.n == 0 {
			return "", false
		}
		line := string(l.buf[:l.n])
		l.n = 0
		return line, true
	}
	if l.n < len(l.buf)-1 {
		l.buf[l.n] = b
		l.n++
	}
	return "", false
}

// commandPrefixes are tried in order after a bare number fails. Any
// matching prefix strip followed by a successful parse accepts.
var commandPrefixes = []string{"servo ", "angle ", "s ", "a ", "s", "a"}

// ParseCommand parses one console line into an angle. Accepted forms
// are a bare integer like "90" and prefixed ones like "servo 90",
// "angle 90", "s90" or "a 90", all limited to 0-180.
func ParseCommand(line string) (servo.Angle, error) {
	s := strings.TrimSpace(line)
	if a, err := servo.ParseAngle(s); err == nil {
		return a, nil
	}
	for _, prefix := range commandPrefixes {
		if strings.HasPrefix(s, prefix) {
			if a, err := servo.ParseAngle(strings.TrimSpace(s[len(prefix):])); err == nil {
				return a, nil
			}
		}
	}
	return 0, ErrUnknownCommand
}
