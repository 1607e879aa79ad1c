package main

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/tomz197/rocket/internal/config"
	"github.com/tomz197/rocket/internal/draw"
	"github.com/tomz197/rocket/internal/hud"
	"github.com/tomz197/rocket/internal/input"
	rlog "github.com/tomz197/rocket/internal/logging"
	"github.com/tomz197/rocket/internal/loop"
	loopconfig "github.com/tomz197/rocket/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := rlog.New(os.Stderr, "rocket-ssh")
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	hudInterval := config.GetEnvDuration("HUD_INTERVAL", hud.DefaultInterval)
	idleTimeout := config.GetEnvDuration("SSH_IDLE_TIMEOUT", loopconfig.InactivityDisconnectUser)
	keyHold := input.Hold{
		Initial: config.GetEnvDuration("KEY_INITIAL_HOLD", input.DefaultHold.Initial),
		Repeat:  config.GetEnvDuration("KEY_REPEAT_HOLD", input.DefaultHold.Repeat),
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"hudInterval", hudInterval, "idleTimeout", idleTimeout,
		"keyInitialHold", keyHold.Initial, "keyRepeatHold", keyHold.Repeat)

	// Cancelled on shutdown so every running flight ends.
	flightCtx, cancelFlights := context.WithCancel(context.Background())
	defer cancelFlights()

	var sessions sync.WaitGroup
	fm := &flightMiddleware{
		ctx:         flightCtx,
		logger:      logger,
		sessions:    &sessions,
		hudInterval: hudInterval,
		idleTimeout: idleTimeout,
		keyHold:     keyHold,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			fm.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for flight input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	cancelFlights()
	waitTimeout(&sessions, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// flightMiddleware runs one independent flight per SSH session.
type flightMiddleware struct {
	ctx         context.Context
	logger      *log.Logger
	sessions    *sync.WaitGroup
	hudInterval time.Duration
	idleTimeout time.Duration
	keyHold     input.Hold
}

func (fm *flightMiddleware) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		fm.sessions.Add(1)
		defer fm.sessions.Done()

		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Fatalln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := fm.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new flight", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// End the flight when either the server shuts down or the client goes away.
		ctx, cancel := context.WithCancel(fm.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			HUDInterval:  fm.hudInterval,
			IdleTimeout:  fm.idleTimeout,
			KeyHold:      fm.keyHold,
			Logger:       logger,
		})
		if err != nil {
			logger.Error("flight error", "err", err)
		}

		logger.Info("flight ended")
		next(sess)
	}
}

// waitTimeout waits for wg, giving up after d.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
