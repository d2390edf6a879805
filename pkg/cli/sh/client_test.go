package sh

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linkbots/servolink/pkg/httpd"
	servopkg "github.com/linkbots/servolink/pkg/servo"
)

type slotRecorder struct {
	lock   sync.Mutex
	angles []servopkg.Angle
}

func (r *slotRecorder) Put(a servopkg.Angle) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.angles = append(r.angles, a)
}

func (r *slotRecorder) snapshot() []servopkg.Angle {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]servopkg.Angle(nil), r.angles...)
}

type clientTestCtx struct {
	t      *testing.T
	client *Client
	rec    *slotRecorder
	cancel context.CancelFunc
	doneCh chan error
}

// startDevice serves the real device protocol on a loopback listener.
func startDevice(t *testing.T) *clientTestCtx {
	tctx := &clientTestCtx{
		t:      t,
		rec:    &slotRecorder{},
		doneCh: make(chan error, 1),
	}
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := httpd.NewServer(httpd.NewRouter(tctx.rec, httpd.Info{Device: "bench", Session: "s-1"}))
	srv.Listener = lis
	srv.AcceptPause = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	tctx.cancel = cancel
	go func() {
		tctx.doneCh <- srv.Run(ctx)
	}()
	tctx.client = NewClient(lis.Addr().String())
	return tctx
}

func (c *clientTestCtx) stop() {
	c.t.Helper()
	c.cancel()
	select {
	case <-c.doneCh:
	case <-time.After(500 * time.Millisecond):
		c.t.Fatal("server did not stop")
	}
}

func TestClientDescribe(t *testing.T) {
	tctx := startDevice(t)
	defer tctx.stop()

	desc, err := tctx.client.Describe()
	require.NoError(t, err)
	require.Equal(t, "ok", desc.Status)
	require.Equal(t, "bench", desc.Device)
	require.Equal(t, "s-1", desc.Session)
	require.NotEmpty(t, desc.Endpoints)
}

func TestClientHealth(t *testing.T) {
	tctx := startDevice(t)
	defer tctx.stop()

	healthy, err := tctx.client.Health()
	require.NoError(t, err)
	require.True(t, healthy)
}

func TestClientSetAngle(t *testing.T) {
	tctx := startDevice(t)
	defer tctx.stop()

	applied, err := tctx.client.SetAngle(45)
	require.NoError(t, err)
	require.Equal(t, servopkg.Angle(45), applied)
	require.Equal(t, []servopkg.Angle{45}, tctx.rec.snapshot())
}

func TestClientErrorStatus(t *testing.T) {
	tctx := startDevice(t)
	defer tctx.stop()

	err := tctx.client.get("/nonexistent", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
	require.Empty(t, tctx.rec.snapshot())
}

func TestNewClientAddr(t *testing.T) {
	require.Equal(t, "http://10.0.0.9", NewClient("10.0.0.9").BaseURL)
	require.Equal(t, "http://10.0.0.9:8080", NewClient("http://10.0.0.9:8080/").BaseURL)
}
