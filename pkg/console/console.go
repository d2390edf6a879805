package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
	"go.bug.st/serial"

	servopkg "github.com/linkbots/servolink/pkg/servo"
)

// DefaultBaud matches the device UART default.
const DefaultBaud = 115200

// Config selects the serial device behind the console.
type Config struct {
	Device string
	Baud   int
}

// Open opens the configured serial device.
func (c *Config) Open() (io.ReadWriteCloser, error) {
	baud := c.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(c.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", c.Device, err)
	}
	return port, nil
}

// Publisher receives accepted angle commands. It is satisfied by
// *command.Slot.
type Publisher interface {
	Put(servopkg.Angle)
}

// Console reads command lines from a byte stream, echoing every
// received byte back for interactive terminals.
type Console struct {
	Port      io.ReadWriter
	Publisher Publisher

	line LineBuffer
}

// New creates a Console over a port.
func New(port io.ReadWriter, pub Publisher) *Console {
	return &Console{Port: port, Publisher: pub}
}

// Name implements framework.Named.
func (c *Console) Name() string {
	return "console"
}

// Run implements Runnable. It blocks on the port when no input is
// pending and stops on context cancel or a port error.
func (c *Console) Run(ctx context.Context) error {
	if err := c.printf("Serial command interface ready\r\n  Commands: <angle> or 'servo <angle>' (0-180)\r\n  Example: 90\r\n"); err != nil {
		return err
	}
	byteCh := make(chan byte)
	errCh := make(chan error, 1)
	go c.readLoop(byteCh, errCh)
	for {
		select {
		case <-ctx.Done():
			if closer, ok := c.Port.(io.Closer); ok {
				closer.Close()
			}
			return ctx.Err()
		case err := <-errCh:
			return err
		case b := <-byteCh:
			if err := c.handleByte(b); err != nil {
				return err
			}
		}
	}
}

func (c *Console) readLoop(byteCh chan<- byte, errCh chan<- error) {
	buf := make([]byte, 1)
	for {
		n, err := c.Port.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n > 0 {
			byteCh <- buf[0]
		}
	}
}

func (c *Console) handleByte(b byte) error {
	// local echo first, interactive terminals rely on it
	if _, err := c.Port.Write([]byte{b}); err != nil {
		return err
	}
	line, done := c.line.Feed(b)
	if !done || strings.TrimSpace(line) == "" {
		return nil
	}
	a, err := ParseCommand(line)
	if err != nil {
		glog.V(2).Infof("serial: unknown command %q", line)
		return c.printf("\r\nUnknown command: '%s'. Use 0-180 for angle.\r\n", line)
	}
	glog.V(2).Infof("serial: angle %d", a)
	c.Publisher.Put(a)
	return c.printf("\r\nSetting servo to %d degrees\r\n", a)
}

func (c *Console) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(c.Port, format, args...)
	return err
}
