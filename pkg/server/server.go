package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Ed1123/bank-statements/pkg/config"
	"github.com/Ed1123/bank-statements/pkg/export"
	"github.com/Ed1123/bank-statements/pkg/extract"
	"github.com/Ed1123/bank-statements/pkg/parser"
)

const maxUploadBytes = 32 << 20

// Server converts uploaded statement PDFs over HTTP.
type Server struct {
	config *config.Config
	logger *log.Logger
	mux    *http.ServeMux
	parser *parser.Parser
	routes sync.Once
}

// New creates a new HTTP server.
func New(cfg *config.Config, logger *log.Logger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		mux:    http.NewServeMux(),
		parser: parser.New(logger, cfg.ParserOptions()...),
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

// Handler returns the configured mux, for tests and embedding.
func (s *Server) Handler() http.Handler {
	s.setupRoutes()
	return s.mux
}

func (s *Server) setupRoutes() {
	s.routes.Do(func() {
		s.mux.HandleFunc("/healthz", s.withLogging(s.handleHealth))
		s.mux.HandleFunc("/api/process", s.withLogging(s.handleProcess))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// handleProcess takes a multipart upload ("file", optional "password")
// and answers with the statement rendered as CSV.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "missing file field", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to read upload", err)
		return
	}

	password := r.FormValue("password")
	if password == "" {
		password = s.config.Password
	}

	doc, err := extract.ReadBytes(data, password)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, "failed to extract pdf text", err)
		return
	}

	st, err := s.parser.Parse(doc.Pages, doc.CreatedAt)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, "failed to parse statement", err)
		return
	}

	name := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)) + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := export.Write(w, export.Rows(st, nil)); err != nil {
		s.logger.Error("failed to write csv response", "error", err)
	}
}

func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path)
		next(w, r)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	s.logger.Error(msg, "method", r.Method, "path", r.URL.Path, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
