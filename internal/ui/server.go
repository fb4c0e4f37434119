// Package ui provides the scrawl live preview server.
package ui

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/scrawl-labs/scrawl/internal/store"
	"github.com/scrawl-labs/scrawl/internal/ui/notifier"
)

// watchExts are the file extensions the watcher re-renders on save.
var watchExts = map[string]bool{
	".mmd":    true,
	".scrawl": true,
	".txt":    true,
}

// Server is the live preview server.
type Server struct {
	store    store.Store
	addr     string
	watchDir string
	logger   *slog.Logger
	notifier *notifier.Notifier

	mu          sync.Mutex
	lastChanged string
}

// Config holds configuration for the preview server.
type Config struct {
	Addr     string
	Store    store.Store // nil disables the snippet endpoints
	WatchDir string      // empty disables the file watcher
	Logger   *slog.Logger
}

// NewServer creates a new preview server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		store:    cfg.Store,
		addr:     cfg.Addr,
		watchDir: cfg.WatchDir,
		logger:   logger,
		notifier: notifier.New(),
	}
}

// Handler returns the complete route tree without starting a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	s.routes(r)
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting preview server", "addr", "http://"+s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watchDir != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down preview server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles watches for diagram changes under the watch directory.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.watchDir); err != nil {
		s.logger.Error("failed to watch diagram directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if !watchExts[filepath.Ext(event.Name)] {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("file changed, notifying clients", "file", event.Name)
				s.setChanged(event.Name)
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// setChanged records the most recently saved diagram file. Connected
// editors re-render it on the next broadcast.
func (s *Server) setChanged(name string) {
	s.mu.Lock()
	s.lastChanged = name
	s.mu.Unlock()
}

func (s *Server) changed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChanged
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
