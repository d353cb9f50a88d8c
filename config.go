package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ProjectConfig describes one root directory tree scanned for markdown files.
type ProjectConfig struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// FilePatterns holds the filename patterns used by the priority classifier.
type FilePatterns struct {
	Important     []string `json:"important"`
	Documentation []string `json:"documentation"`
}

// Config is the process-wide configuration. It is loaded once at startup and
// only ever replaced wholesale; individual fields are never mutated in place.
type Config struct {
	Projects         []ProjectConfig `json:"projects"`
	FilePatterns     FilePatterns    `json:"file_patterns"`
	ExcludedDirs     []string        `json:"excluded_dirs"`
	MaxFileSizeKB    int             `json:"max_file_size_kb"`
	RecentFilesCount int             `json:"recent_files_count"`

	// StrictPatternGlobs switches the "important" patterns from the legacy
	// substring test to real glob matching. Off by default for compatibility.
	StrictPatternGlobs bool `json:"strict_pattern_globs,omitempty"`
}

func defaultConfig() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		Projects: []ProjectConfig{
			{
				Name:        filepath.Base(cwd),
				Path:        cwd,
				Description: "Current directory",
				Color:       "#2196f3",
			},
		},
		FilePatterns: FilePatterns{
			Important:     []string{"README.md", "CLAUDE.md", "*_REPORT.md", "*_PLAN.md"},
			Documentation: []string{"*_SUMMARY.md", "*.md"},
		},
		ExcludedDirs:     []string{"node_modules", "venv", ".git", "__pycache__"},
		MaxFileSizeKB:    5000,
		RecentFilesCount: 10,
	}
}

// configStore guards the wholesale Config replacement so a concurrent request
// can never observe a torn value.
type configStore struct {
	mu  sync.RWMutex
	cfg Config
}

func newConfigStore(cfg Config) *configStore {
	return &configStore{cfg: cfg}
}

func (s *configStore) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *configStore) Set(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// loadConfig reads the config file. A missing file bootstraps the default
// config on disk; an existing but unreadable or corrupt file is an error and
// is treated as fatal by the caller.
func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := saveConfig(path, cfg); err != nil {
			return Config{}, fmt.Errorf("write default config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// saveConfig writes the config as human-readable JSON via temp file + rename
// so a crash mid-write never leaves a truncated config behind.
func saveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".mdbrowse-config-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// watchConfig reloads the config wholesale whenever the file is rewritten
// outside the process (editor, another tool). Reload failures keep the
// previous config and log a warning.
func watchConfig(ctx context.Context, path string, store *configStore) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors and saveConfig both replace
	// the file by rename, which drops a direct file watch.
	absPath, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				cfg, err := loadConfig(path)
				if err != nil {
					log.Printf("Warning: config reload failed, keeping previous: %v", err)
					continue
				}
				store.Set(cfg)
				log.Printf("Config reloaded from %s", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()
	return nil
}
