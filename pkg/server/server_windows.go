//go:build windows

package server

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrUnsupported is returned by NewServer: sessions need a unix pty.
var ErrUnsupported = errors.New("server: SSH hosting is not supported on windows")

type Server struct{}

func NewServer(cfg Config, log *zap.SugaredLogger) (*Server, error) {
	return nil, ErrUnsupported
}

func (s *Server) Active() int64                      { return 0 }
func (s *Server) ListenAndServe() error              { return ErrUnsupported }
func (s *Server) Shutdown(ctx context.Context) error { return nil }
func (s *Server) Close() error                       { return nil }
