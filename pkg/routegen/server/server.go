package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/config"
	"github.com/shrishtravels/routegen/pkg/routegen/source"
)

// NewHTTPServer returns a preview server for the generated site
func NewHTTPServer(cfg *config.Config, log *zap.Logger) *http.Server {
	server := newHTTPServer(cfg, log)
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     zap.NewStdLog(log),
	}
}

type httpServer struct {
	log     *zap.Logger
	siteDir string
	cache   source.Source
}

func newHTTPServer(cfg *config.Config, log *zap.Logger) *httpServer {
	return &httpServer{
		log:     log,
		siteDir: cfg.SiteDir,
		cache:   &source.FileSource{Path: cfg.Path(cfg.CacheFile)},
	}
}

func (h *httpServer) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/routes", h.GetRoutes).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(h.siteDir))).Methods(http.MethodGet, http.MethodHead)
	r.Use(h.logRequests)
	return r
}

func (h *httpServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
