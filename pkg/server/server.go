//go:build !windows

package server

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync/atomic"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/sys/unix"
)

type Server struct {
	*ssh.Server
	cfg    Config
	log    *zap.SugaredLogger
	active int64
}

func NewServer(cfg Config, log *zap.SugaredLogger) (*Server, error) {
	if len(cfg.Command) == 0 {
		return nil, ErrNoCommand
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	srv := &Server{cfg: cfg, log: log}
	srv.Server = &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     srv.handle,
	}

	if cfg.HostKeyFile != "" {
		if err := srv.SetOption(ssh.HostKeyFile(cfg.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("load host key: %w", err)
		}
	} else {
		signer, err := hostSigner()
		if err != nil {
			return nil, err
		}
		srv.AddHostKey(signer)
	}
	return srv, nil
}

// Active returns the number of sessions being served.
func (s *Server) Active() int64 {
	return atomic.LoadInt64(&s.active)
}

// hostSigner returns a signer for a throwaway ed25519 host key.
func hostSigner() (gossh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("host key signer: %w", err)
	}
	return signer, nil
}

func setWinsize(f *os.File, w, h int) error {
	return unix.IoctlSetWinsize(int(f.Fd()), unix.TIOCSWINSZ, &unix.Winsize{
		Row: uint16(h),
		Col: uint16(w),
	})
}

func (s *Server) handle(sess ssh.Session) {
	id := uuid.NewString()
	log := s.log.With("session", id, "user", sess.User(), "remote", sess.RemoteAddr().String())

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		log.Infow("rejected session without a pty")
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	atomic.AddInt64(&s.active, 1)
	defer atomic.AddInt64(&s.active, -1)
	log.Infow("session started", "term", ptyReq.Term, "width", ptyReq.Window.Width, "height", ptyReq.Window.Height)

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.command(cmdCtx, ptyReq.Term)
	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		log.Errorw("failed to start pty", "error", err)
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := setWinsize(f, win.Width, win.Height); err != nil {
				log.Warnw("failed to resize window", "error", err)
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if code = 1; errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			code = exitErr.ExitCode()
		}
		log.Infow("command exited", "error", err)
	}
	log.Infow("session ended", "code", code)
	sess.Exit(code)
}

func (s *Server) command(ctx context.Context, term string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.cfg.Command[0], s.cfg.Command[1:]...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", term))
	return cmd
}
