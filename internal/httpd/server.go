package httpd

import (
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Options tune per-connection behavior.
type Options struct {
	// ReadTimeout and WriteTimeout bound each connection's I/O. Zero disables
	// the deadline.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxBodyBytes caps the accepted Content-Length.
	MaxBodyBytes int
}

// Server accepts TCP connections one at a time and serves exactly one
// request per connection: accept, read, dispatch, respond, close. No two
// requests are ever in flight concurrently.
type Server struct {
	ln      net.Listener
	router  *Router
	opts    Options
	clock   clockwork.Clock
	closed  atomic.Bool
	observe func(method string, status int, duration time.Duration)
}

// NewServer binds the port immediately so bind failures surface at startup.
func NewServer(port string, router *Router, opts Options, clock clockwork.Clock) (*Server, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %s: %w", port, err)
	}
	return &Server{ln: ln, router: router, opts: opts, clock: clock}, nil
}

// OnRequest registers an observation hook called after every dispatched
// request (for metrics).
func (s *Server) OnRequest(fn func(method string, status int, duration time.Duration)) {
	s.observe = fn
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve runs the accept loop until Stop is called. The connection in flight
// when Stop arrives is drained before the loop exits.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			slog.Warn("Accept failed", "error", err)
			continue
		}
		s.handleConn(conn)
	}
}

// Stop closes the listener, unblocking Serve between connections.
func (s *Server) Stop() {
	if s.closed.CompareAndSwap(false, true) {
		_ = s.ln.Close()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	start := s.clock.Now()
	if s.opts.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(start.Add(s.opts.ReadTimeout))
	}

	req, err := ReadRequest(conn, s.opts.MaxBodyBytes)
	if err != nil {
		// Framing failures are not surfaced to the client; the connection
		// simply closes.
		if err != ErrConnectionClosed {
			slog.Debug("Discarding unparseable request", "remote_ip", remoteIP(conn), "error", err)
		}
		return
	}

	if s.opts.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(s.clock.Now().Add(s.opts.WriteTimeout))
	}

	res := NewResponse(conn)
	s.router.Dispatch(req, res)

	duration := s.clock.Since(start)
	slog.Info("Request handled",
		"remote_ip", remoteIP(conn),
		"method", req.Method,
		"path", req.Path,
		"status", res.Status(),
		"duration_ms", duration.Milliseconds(),
	)
	if s.observe != nil {
		s.observe(req.Method, res.Status(), duration)
	}
}

func remoteIP(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	return host
}
