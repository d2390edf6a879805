package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linkbots/servolink/pkg/servo"
)

type testPort struct {
	byteCh  chan byte
	outLock sync.Mutex
	out     bytes.Buffer
}

func newTestPort() *testPort {
	return &testPort{byteCh: make(chan byte)}
}

func (p *testPort) Read(b []byte) (int, error) {
	v, ok := <-p.byteCh
	if !ok {
		return 0, io.EOF
	}
	b[0] = v
	return 1, nil
}

func (p *testPort) Write(b []byte) (int, error) {
	p.outLock.Lock()
	p.out.Write(b)
	p.outLock.Unlock()
	return len(b), nil
}

func (p *testPort) inject(s string) {
	for i := 0; i < len(s); i++ {
		p.byteCh <- s[i]
	}
}

func (p *testPort) output() string {
	p.outLock.Lock()
	defer p.outLock.Unlock()
	return p.out.String()
}

type chanPublisher struct {
	ch chan servo.Angle
}

func (p *chanPublisher) Put(a servo.Angle) {
	p.ch <- a
}

type consoleTestCtx struct {
	t      *testing.T
	port   *testPort
	pub    *chanPublisher
	cancel context.CancelFunc
	errCh  chan error
}

func startConsole(t *testing.T) *consoleTestCtx {
	tctx := &consoleTestCtx{
		t:     t,
		port:  newTestPort(),
		pub:   &chanPublisher{ch: make(chan servo.Angle, 1)},
		errCh: make(chan error, 1),
	}
	cons := &Console{Port: tctx.port, Publisher: tctx.pub}
	var ctx context.Context
	ctx, tctx.cancel = context.WithCancel(context.Background())
	go func() { tctx.errCh <- cons.Run(ctx) }()
	return tctx
}

func (c *consoleTestCtx) stop() {
	c.cancel()
	close(c.port.byteCh)
	select {
	case <-c.errCh:
	case <-time.After(500 * time.Millisecond):
		c.t.Fatal("console did not stop")
	}
}

func (c *consoleTestCtx) expectAngle(expected servo.Angle) {
	select {
	case a := <-c.pub.ch:
		require.Equal(c.t, expected, a)
	case <-time.After(500 * time.Millisecond):
		c.t.Fatal("no command published")
	}
}

func (c *consoleTestCtx) expectNone() {
	select {
	case a := <-c.pub.ch:
		c.t.Fatalf("unexpected command %d", a)
	case <-time.After(50 * time.Millisecond):
	}
}

func (c *consoleTestCtx) expectOutput(substr string) {
	require.Eventually(c.t, func() bool {
		return strings.Contains(c.port.output(), substr)
	}, 500*time.Millisecond, 10*time.Millisecond, "output missing %q", substr)
}

func TestConsolePublishesCommand(t *testing.T) {
	tctx := startConsole(t)
	defer tctx.stop()

	tctx.port.inject("servo 45\r")
	tctx.expectAngle(45)

	tctx.expectOutput("Serial command interface ready")
	tctx.expectOutput("servo 45\r") // every byte echoed
	tctx.expectOutput("Setting servo to 45 degrees")
}

func TestConsoleRejectsOutOfRange(t *testing.T) {
	tctx := startConsole(t)
	defer tctx.stop()

	tctx.port.inject("200\n")
	tctx.expectNone()
	tctx.expectOutput("Unknown command: '200'")

	tctx.port.inject("90\n")
	tctx.expectAngle(90)
}

func TestConsoleTruncatesLongLines(t *testing.T) {
	tctx := startConsole(t)
	defer tctx.stop()

	tctx.port.inject(strings.Repeat("x", 100) + "\n")
	tctx.expectNone()
	tctx.expectOutput("Unknown command: '" + strings.Repeat("x", LineCapacity-1) + "'")

	// parsing recovers on the next line
	tctx.port.inject("a 120\r")
	tctx.expectAngle(120)
}

func TestConsoleIgnoresBlankLines(t *testing.T) {
	tctx := startConsole(t)
	defer tctx.stop()

	tctx.port.inject("\r\n  \r")
	tctx.expectNone()
	require.NotContains(t, tctx.port.output(), "Unknown command")
}

func TestConsoleStopsOnPortError(t *testing.T) {
	tctx := startConsole(t)
	close(tctx.port.byteCh)
	select {
	case err := <-tctx.errCh:
		require.Equal(t, io.EOF, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("console did not stop on port error")
	}
}
