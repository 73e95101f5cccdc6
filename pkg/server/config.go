// Package server hosts games over SSH. Every session gets its own pty and its
// own process running the play command, so sessions share nothing.
package server

import (
	"errors"
	"time"
)

const (
	DefaultAddr        = ":2222"
	DefaultIdleTimeout = 5 * time.Minute
)

// ErrNoCommand is returned by NewServer when there is nothing to run.
var ErrNoCommand = errors.New("server: no command to run")

type Config struct {
	Addr string
	// HostKeyFile is a PEM private key. A fresh ed25519 key is generated
	// when it is empty.
	HostKeyFile string
	IdleTimeout time.Duration
	// Command is started on a new pty for every session.
	Command []string
}
