package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultShutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	audit           AuditLogger
	logger          *zap.Logger
	onShutdown      []func()
}

// NewServer menyiapkan http.Server. onShutdown dipanggil berurutan setelah
// server berhenti menerima request (menutup DB, Redis).
func NewServer(handler http.Handler, cfg ServerConfig, audit AuditLogger, logger *zap.Logger, onShutdown ...func()) *Server {
	if logger == nil {
		logger = zap.L()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	readHeader := cfg.ReadHeaderTimeout
	if readHeader <= 0 {
		readHeader = cfg.ReadTimeout
	}

	return &Server{
		srv: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: readHeader,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		shutdownTimeout: timeout,
		audit:           audit,
		logger:          logger.Named("http.server"),
		onShutdown:      onShutdown,
	}
}

// Run melayani request sampai ctx selesai lalu shutdown dengan batas waktu.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve sama dengan Run dengan listener yang sudah dibuka.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.runShutdownHooks()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server running", zap.String("addr", ln.Addr().String()))
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	reason := context.Cause(ctx).Error()
	s.logger.Info("shutdown requested", zap.String("reason", reason))
	if s.audit != nil {
		s.audit.Log(context.WithoutCancel(ctx), AuditLog{
			Action:  "SERVER_SHUTDOWN",
			Message: "Server is shutting down",
			Meta:    map[string]any{"reason": reason},
		})
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("forced shutdown", zap.Error(err))
		return err
	}
	s.logger.Info("server exited gracefully")
	return nil
}

func (s *Server) runShutdownHooks() {
	for _, fn := range s.onShutdown {
		fn()
	}
}
