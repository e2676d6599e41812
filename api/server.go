// Package api provides the HTTP upload endpoint for the statement parser.
// It is a thin wrapper: all extraction semantics live in the extractor
// package.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor"
	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor/common"
	"github.com/rs/cors"
)

// Config holds the API server configuration
type Config struct {
	Port          string
	AllowedOrigin string
	LogPrefix     string
}

// DefaultConfig returns the default API configuration. The allowed origin is
// the local frontend dev server.
func DefaultConfig() Config {
	return Config{
		Port:          ":5001",
		AllowedOrigin: "http://localhost:3000",
		LogPrefix:     "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config   Config
	registry *extractor.Registry
	mux      *http.ServeMux
}

// New creates a new API server with the given configuration and issuer
// registry.
func New(cfg Config, registry *extractor.Registry) *Server {
	s := &Server{
		config:   cfg,
		registry: registry,
		mux:      http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/parse", s.handleParse)
	s.mux.HandleFunc("/banks", s.handleBanks)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server with the CORS policy
// applied.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{s.config.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(s.mux)
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleBanks lists the supported issuer keys.
func (s *Server) handleBanks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"banks": s.registry.Issuers()})
}

// handleParse accepts a multipart upload with a "file" part and a "bank"
// field and returns the extracted StatementRecord.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		writeError(w, http.StatusBadRequest, "Could not parse multipart form: "+err.Error())
		return
	}

	bank := coalesce(r.FormValue("bank"), r.URL.Query().Get("bank"))
	if bank == "" {
		writeError(w, http.StatusBadRequest, "No bank name provided")
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Printf("%sError getting file from form: %v", s.config.LogPrefix, err)
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if textOnly := coalesce(r.FormValue("text_only"), r.URL.Query().Get("text_only")); textOnly == "true" {
		s.handleTextOnly(w, file, handler.Filename)
		return
	}

	record, err := s.registry.ParseReader(file, bank)
	if err != nil {
		log.Printf("%sError parsing statement: %v", s.config.LogPrefix, err)
		if errors.Is(err, extractor.ErrUnknownIssuer) {
			writeError(w, http.StatusBadRequest, "Invalid bank name provided: "+bank)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// handleTextOnly returns the linearized statement text without running any
// issuer profile, useful when tuning patterns against a new layout.
func (s *Server) handleTextOnly(w http.ResponseWriter, file io.Reader, filename string) {
	text, err := common.ExtractTextFromReader(file)
	if err != nil {
		log.Printf("%sError extracting text: %v", s.config.LogPrefix, err)
		writeError(w, http.StatusBadRequest, "Could not extract text from file: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"filename": filename,
		"text":     text,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
