// Package server runs the TCP front end. Connection goroutines only parse
// and serialize; every command is submitted to a single engine goroutine
// that owns the keyspace and schedule, so the core never needs a lock and
// state transitions follow one total order.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hossein1376/grape/slogger"

	"github.com/reefdb/reef/internal/config"
	"github.com/reefdb/reef/internal/engine"
	"github.com/reefdb/reef/internal/resp"
)

var ErrClosed = errors.New("server closed")

type request struct {
	verb  string
	args  []string
	reply chan engine.Reply
}

type Server struct {
	db       *engine.DB
	cfg      config.Config
	listener net.Listener
	requests chan request
	done     chan struct{}

	mu    sync.Mutex
	conns map[string]net.Conn
	wg    sync.WaitGroup
}

func New(db *engine.DB, cfg config.Config) *Server {
	return &Server{
		db:       db,
		cfg:      cfg,
		requests: make(chan request),
		done:     make(chan struct{}),
		conns:    make(map[string]net.Conn),
	}
}

// Listen binds the configured address without accepting yet, so callers can
// learn the chosen port before serving.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("binding %s: %w", s.cfg.Server.Address, err)
	}
	s.listener = ln
	return nil
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Shutdown. It blocks.
func (s *Server) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.wg.Add(1)
	go s.engineLoop()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return ErrClosed
			default:
			}
			slog.Warn("accept", slogger.Err("error", err))
			continue
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown closes the listener and every open connection, then waits for
// the engine loop to drain, up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Lock()
	for _, conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// engineLoop is the single owner of the database. It interleaves command
// execution with the expiry reconciler, which runs at the configured
// cadence even when no traffic is arriving.
func (s *Server) engineLoop() {
	defer s.wg.Done()

	interval := s.cfg.Engine.ReconcileInterval.Duration()
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case req := <-s.requests:
			req.reply <- s.db.Execute(req.verb, req.args, time.Now().UnixMilli())
		case <-ticker.C:
			if n := s.db.ReapExpired(time.Now().UnixMilli()); n > 0 {
				slog.Debug("reaped expired keys", slog.Int("count", n))
			}
		case <-s.done:
			return
		}
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()

	id := uuid.NewString()
	s.mu.Lock()
	s.conns[id] = conn
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, id)
		s.mu.Unlock()
		conn.Close()
	}()

	slog.Debug("client connected",
		slog.String("conn", id),
		slog.String("remote", conn.RemoteAddr().String()),
	)

	reader := resp.NewReader(conn)
	writer := resp.NewWriter(conn)
	reply := make(chan engine.Reply, 1)
	for {
		verb, args, err := reader.ReadCommand()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				slog.Debug("read command",
					slog.String("conn", id), slogger.Err("error", err),
				)
			}
			return
		}

		select {
		case s.requests <- request{verb: verb, args: args, reply: reply}:
		case <-s.done:
			return
		}
		if err := writer.WriteReply(<-reply); err != nil {
			slog.Debug("write reply",
				slog.String("conn", id), slogger.Err("error", err),
			)
			return
		}
	}
}
