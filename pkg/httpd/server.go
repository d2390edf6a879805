package httpd

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/golang/glog"

	"github.com/linkbots/servolink/pkg/framework"
)

// Server defaults.
const (
	DefaultAddr        = ":80"
	DefaultIdleTimeout = 10 * time.Second
	DefaultAcceptPause = 100 * time.Millisecond

	// readBufferSize bounds one request; only the request line inside
	// the first read matters.
	readBufferSize = 1024
)

// Server accepts connections one at a time and answers each with a
// single routed response.
type Server struct {
	Addr     string
	Router   *Router
	Listener net.Listener

	// IdleTimeout is the deadline covering one connection's exchange.
	IdleTimeout time.Duration
	// AcceptPause is the delay after a handled connection before the
	// next accept.
	AcceptPause time.Duration
}

// NewServer creates a Server with defaults on port 80.
func NewServer(router *Router) *Server {
	return &Server{
		Addr:        DefaultAddr,
		Router:      router,
		IdleTimeout: DefaultIdleTimeout,
		AcceptPause: DefaultAcceptPause,
	}
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "httpd"
}

// Run implements Runnable. A transient accept, read or write failure
// closes the connection and resumes accepting; only a closed listener
// stops the loop.
func (s *Server) Run(ctx context.Context) error {
	ln := s.Listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", s.Addr); err != nil {
			return err
		}
	}
	glog.Infof("HTTP server listening on %s", ln.Addr())
	return framework.RunWithContextCloser(ctx, ln, func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return err
				}
				glog.Warningf("accept error: %v", err)
				continue
			}
			s.serve(conn)
			time.Sleep(s.AcceptPause)
		}
	})
}

// serve handles one connection: a single read, one routed response.
func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(s.IdleTimeout))
	glog.V(2).Infof("client connected: %s", conn.RemoteAddr())
	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		glog.V(2).Infof("client %s read: %v", conn.RemoteAddr(), err)
		return
	}
	resp := s.Router.Route(string(buf[:n]))
	if _, err := conn.Write(resp.Bytes()); err != nil {
		glog.Warningf("client %s write: %v", conn.RemoteAddr(), err)
	}
}
