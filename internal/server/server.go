/*
Package server implements the Listener (LN): it accepts raw TCP
connections and runs a session.Session over each one.

PURPOSE:
  Bind a TCP socket, accept connections in a loop, and spawn one goroutine
  per connection that greets the client, logs it in, and then serves its
  commands until it disconnects.

FRAMING:
  Each request is a single net.Conn.Read into a fixed-size buffer - one
  syscall per message, no delimiter scanning. A zero-byte read means the
  client disconnected.

GRACEFUL SHUTDOWN:
  Closing the listener (via Shutdown) unblocks Accept with an error that
  ListenAndServe treats as a normal stop signal. In-flight sessions are
  not interrupted: each keeps serving its client until the client
  disconnects, and ListenAndServe returns only after every session has
  ended.

SEE ALSO:
  - internal/session: per-connection command dispatch
*/
package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/kinkard/sundris/internal/engine"
	"github.com/kinkard/sundris/internal/session"
)

// readBufferSize is large enough for any single command the protocol
// defines, including the longest sell-order argument lines.
const readBufferSize = 4096

// Server is the Listener: it owns the socket and spawns a Session per
// accepted connection.
type Server struct {
	engine   *engine.Engine
	logger   *log.Logger
	listener net.Listener
	wg       sync.WaitGroup
}

// New creates a Server bound to eng. Call ListenAndServe to start it.
func New(eng *engine.Engine) *Server {
	return &Server{
		engine: eng,
		logger: log.Default().With("component", "server"),
	}
}

// ListenAndServe binds addr (e.g. "localhost:1984") and serves connections
// until Shutdown is called or Accept fails for a reason other than the
// listener being closed. After Shutdown it waits for every open session to
// end before returning nil.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.logger.Info("listening", "addr", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

// Shutdown stops accepting new connections. In-flight sessions run to
// completion; Shutdown does not wait for them.
func (s *Server) Shutdown() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	sess := session.New(s.engine)
	ctx := context.Background()

	if _, err := conn.Write([]byte(session.Greeting)); err != nil {
		s.logger.Warn("failed to send greeting", "remote", remote, "err", err)
		return
	}

	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		s.logger.Info("client disconnected before login", "remote", remote)
		return
	}

	reply, err := sess.Login(ctx, string(buf[:n]))
	if err != nil {
		s.logger.Info("login failed", "remote", remote, "err", err)
		conn.Write([]byte(err.Error()))
		return
	}
	if _, err := conn.Write([]byte(reply)); err != nil {
		return
	}
	s.logger.Info("user logged in", "remote", remote)

	for {
		n, err := conn.Read(buf)
		if err != nil || n == 0 {
			s.logger.Info("connection closed by client", "remote", remote)
			return
		}
		response := sess.Handle(ctx, string(buf[:n]))
		if _, err := conn.Write([]byte(response)); err != nil {
			s.logger.Info("connection closed by client", "remote", remote)
			return
		}
	}
}
