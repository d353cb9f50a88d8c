package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/yuin/goldmark"
)

// server holds the request-scoped collaborators: the guarded config, the
// markdown renderer, the slug strategy shared with the TOC builder, and the
// external PDF renderer boundary.
type server struct {
	store      *configStore
	configPath string
	md         goldmark.Markdown
	slugger    SlugStrategy
	pdf        htmlToPDF
}

func newServer(store *configStore, configPath string, pdf htmlToPDF) *server {
	return &server{
		store:      store,
		configPath: configPath,
		md:         newMarkdownRenderer(),
		slugger:    defaultSlugger{},
		pdf:        pdf,
	}
}

// routes registers all HTTP routes.
func (s *server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/", withRecovery(s.handleIndex))
	mux.HandleFunc("/api/projects", withRecovery(s.handleProjects))
	mux.HandleFunc("/api/files/", withRecovery(s.handleFiles))
	mux.HandleFunc("/api/file", withRecovery(s.handleFile))
	mux.HandleFunc("/api/search", withRecovery(s.handleSearch))
	mux.HandleFunc("/api/recent", withRecovery(s.handleRecent))
	mux.HandleFunc("/api/config", withRecovery(s.handleConfig))
	mux.HandleFunc("/api/pdf", withRecovery(s.handlePDF))
}

// withRecovery wraps an HTTP handler with panic recovery.
func withRecovery(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v\n%s", err, debug.Stack())
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		log.Printf("Failed to write index page: %v", err)
	}
}

func (s *server) handleProjects(w http.ResponseWriter, r *http.Request) {
	cfg := s.store.Get()
	projects := cfg.Projects
	if projects == nil {
		projects = []ProjectConfig{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// handleFiles lists markdown files under /api/files/<projectPath>. The path
// after the prefix is taken as an absolute path with its leading slash
// restored, mirroring how browsers strip it from the URL.
func (s *server) handleFiles(w http.ResponseWriter, r *http.Request) {
	projectPath := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if !strings.HasPrefix(projectPath, "/") {
		projectPath = "/" + projectPath
	}
	recursive := strings.EqualFold(r.URL.Query().Get("recursive"), "true")

	files := listMarkdownFiles(projectPath, recursive, s.store.Get())
	writeJSON(w, http.StatusOK, files)
}

func (s *server) handleFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	view, err := renderDocument(path, s.store.Get(), s.md, s.slugger)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	projectPath := r.URL.Query().Get("project")

	results := searchFiles(query, projectPath, s.store.Get())
	writeJSON(w, http.StatusOK, results)
}

func (s *server) handleRecent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recentFiles(s.store.Get()))
}

// handleConfig returns the live config on GET and replaces it wholesale on
// POST: the new value is persisted first, then swapped in.
func (s *server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.Get())
	case http.MethodPost:
		var cfg Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid config body: %v", err))
			return
		}
		if err := saveConfig(s.configPath, cfg); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("persist config: %v", err))
			return
		}
		s.store.Set(cfg)
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) handlePDF(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	view, err := renderDocument(path, s.store.Get(), s.md, s.slugger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("pdf generation failed: %v", err))
		return
	}

	pdfBytes, err := s.pdf.Render(pdfPageHTML(view))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("pdf generation failed: %v", err))
		return
	}

	filename := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	if _, err := w.Write(pdfBytes); err != nil {
		log.Printf("Failed to write PDF response: %v", err)
	}
}
