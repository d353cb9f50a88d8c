package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

//go:embed static/index.html
var staticFS embed.FS

// indexHTML is the embedded single-page UI, loaded once at startup.
var indexHTML []byte

var (
	// Build info (set via ldflags)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	port        = flag.Int("port", 5555, "Port to serve on")
	configPath  = flag.String("config", "md_browser_config.json", "Path to the config file")
	openBrowser = flag.Bool("browser", true, "Open browser automatically")
	showVersion = flag.Bool("version", false, "Show version information")
)

func init() {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		log.Fatalf("Failed to load index page: %v", err)
	}
	indexHTML = data
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mdbrowse %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}
	store := newConfigStore(cfg)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if err := watchConfig(watchCtx, *configPath, store); err != nil {
		log.Printf("Warning: config file watching unavailable: %v", err)
	}

	srv := newServer(store, *configPath, wkhtmlRenderer{})
	mux := http.NewServeMux()
	srv.routes(mux)

	addr := fmt.Sprintf("localhost:%d", *port)
	url := fmt.Sprintf("http://%s", addr)
	fmt.Printf("mdbrowse at %s\n", url)
	fmt.Printf("Serving %d project(s), config %s\n", len(cfg.Projects), *configPath)
	fmt.Println("Press Ctrl+C to quit")

	if *openBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openURL(url)
		}()
	}

	httpServer := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout intentionally omitted: a walk over a large project
		// tree or a big PDF export can legitimately take a while.
		IdleTimeout: 60 * time.Second,
	}

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigint

		log.Println("\nShutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		stopWatch()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func openURL(url string) {
	var cmd string
	var args []string

	switch {
	case fileExists("/usr/bin/open"): // macOS
		cmd = "open"
		args = []string{url}
	case fileExists("/usr/bin/xdg-open"): // Linux
		cmd = "xdg-open"
		args = []string{url}
	default: // Windows
		cmd = "cmd"
		args = []string{"/c", "start", url}
	}

	launch := exec.Command(cmd, args...)
	if err := launch.Start(); err != nil {
		log.Printf("Failed to open URL %s: %v", url, err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
