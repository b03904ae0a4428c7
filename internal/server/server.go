package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neox5/jetdqm/internal/jetdqm"
)

// RegistrySource provides the analyzer registry currently served.
type RegistrySource interface {
	Registry() *jetdqm.Registry
}

// Server provides the HTTP endpoints for metrics and the analyzer registry.
type Server struct {
	addr   string
	path   string
	server *http.Server
	mux    *http.ServeMux
}

// New creates a new HTTP server. metrics is mounted at path; the registry
// snapshot is served under /registry.
func New(port int, path string, metrics http.Handler, source RegistrySource) *Server {
	mux := http.NewServeMux()

	mux.Handle(path, metrics)
	mux.HandleFunc("GET /registry", registryHandler(source))
	mux.HandleFunc("GET /registry/{name}", analyzerHandler(source))

	addr := fmt.Sprintf(":%d", port)

	return &Server{
		addr: addr,
		path: path,
		mux:  mux,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving HTTP requests.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", s.addr, "path", s.path)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return s.shutdown()
	}
}

// shutdown gracefully stops the server.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down server")
	return s.server.Shutdown(ctx)
}

func registryHandler(source RegistrySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := jetdqm.MarshalSnapshot(source.Registry().Snapshot())
		if err != nil {
			slog.Error("failed to encode registry", "error", err)
			http.Error(w, "failed to encode registry", http.StatusInternalServerError)
			return
		}
		writeYAML(w, data)
	}
}

func analyzerHandler(source RegistrySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")

		reg := source.Registry()
		if _, ok := reg.Analyzer(name); !ok {
			http.Error(w, fmt.Sprintf("analyzer %q not found", name), http.StatusNotFound)
			return
		}
		snapshot := reg.Snapshot().Select(name)

		data, err := jetdqm.MarshalSnapshot(snapshot)
		if err != nil {
			slog.Error("failed to encode analyzer", "name", name, "error", err)
			http.Error(w, "failed to encode analyzer", http.StatusInternalServerError)
			return
		}
		writeYAML(w, data)
	}
}

func writeYAML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(data); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}
