// Package web provides an HTTP playground for the list format.
//
// The server exposes a small JSON API for decoding list-format text and for
// encoding JSON documents into list-format text. When started with a source
// file it also serves that file, validates it on every change, and pushes a
// reload event to the bundled page through server-sent events.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/loader"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

// maxBodySize caps request bodies of the API.
const maxBodySize = 10 << 20

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	ReadOnly     bool
	WatchEnabled bool

	// Mode and Escape are the decoding defaults for requests that do not
	// choose their own, and for the source file.
	Mode   loader.Mode
	Escape escape.Mode

	Logger *log.Logger

	mu         sync.RWMutex
	result     *loader.Result // Decoded source file, nil when it has errors
	loadErr    error          // Decode error of the source file, if any
	source     []byte         // Raw content of the source file
	sourceFile string         // Absolute path of the source file, empty when none

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// New creates a server listening on port. sourceFile may be empty.
func New(port int, sourceFile string) *Server {
	return NewWithVersion(port, sourceFile, "", "")
}

func NewWithVersion(port int, sourceFile, version, commitSHA string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Version:    version,
		CommitSHA:  commitSHA,
		Mode:       loader.ModeList,
		Escape:     escape.Mnemonic,
		Logger:     log.Default(),
		sourceFile: sourceFile,
		sseClients: make(map[chan string]struct{}),
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if s.sourceFile != "" {
		absPath, err := filepath.Abs(s.sourceFile)
		if err != nil {
			timer.End()
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		s.sourceFile = absPath

		loadTimer := timer.Child(fmt.Sprintf("web.load_source %s", filepath.Base(absPath)))
		err = s.reloadSource(ctx)
		loadTimer.End()
		if err != nil {
			timer.End()
			return fmt.Errorf("failed to load source: %w", err)
		}

		if s.WatchEnabled {
			if err := s.startWatcher(ctx); err != nil {
				timer.End()
				return fmt.Errorf("failed to start file watcher: %w", err)
			}
		}
	}

	setupTimer := timer.Child("web.setup_router")
	handler := s.Handler()
	setupTimer.End()
	timer.End()

	ln, err := net.Listen("tcp", net.JoinHostPort(s.Host, strconv.Itoa(s.Port)))
	if err != nil {
		return err
	}
	return s.serve(ctx, ln, handler)
}

// serve runs handler on ln until ctx is cancelled. Request contexts derive
// from ctx, so streaming handlers such as /api/events end with it and do not
// hold up the shutdown.
func (s *Server) serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/parse", s.handleParse)
		r.Post("/dump", s.handleDump)

		r.Get("/source", s.handleGetSource)
		r.With(s.requireWritable).Put("/source", s.handlePutSource)
		r.Get("/events", s.handleSSE)
	})

	s.mountAssets(r)

	return r
}

// requestID tags every response with an X-Request-ID header, reusing the
// caller's ID when it is a valid UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", w.Header().Get("X-Request-ID"),
		)
	})
}

// requireWritable is middleware that rejects write requests in read-only mode.
func (s *Server) requireWritable(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ReadOnly {
			http.Error(w, "Server is in read-only mode", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// reloadSource loads or reloads the source file from disk. Decode errors
// are kept for reporting; only I/O errors are returned.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadSource(ctx context.Context) error {
	data, err := os.ReadFile(s.sourceFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.sourceFile, err)
	}

	ldr := loader.New(loader.WithMode(s.Mode), loader.WithEscapeMode(s.Escape))
	result, loadErr := ldr.LoadBytes(ctx, s.sourceFile, data)

	s.mu.Lock()
	s.result = result
	s.loadErr = loadErr
	s.source = data
	s.mu.Unlock()

	return nil
}

// startWatcher starts a file watcher for the source file.
// It reloads the source and broadcasts SSE events when the file changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(s.sourceFile); err != nil {
		s.Logger.Warn("failed to watch source", "file", s.sourceFile, "err", err)
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove/Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.Logger.Error("file watcher error", "err", err)
		}
	}
}

// handleFileChange reloads the source and re-arms the watch, which is lost
// when an editor replaces the file.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if err := s.reloadSource(ctx); err != nil {
		s.Logger.Error("failed to reload source", "file", s.sourceFile, "err", err)
		return
	}

	if err := watcher.Add(s.sourceFile); err != nil {
		s.Logger.Warn("failed to watch source", "file", s.sourceFile, "err", err)
	}

	s.Logger.Info("source reloaded", "file", filepath.Base(s.sourceFile))
	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
