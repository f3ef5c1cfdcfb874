package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-annotator/internal/config"
	"github.com/ironsheep/image-annotator/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-annotator %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-annotator - MCP server for bounding-box image annotation")
			fmt.Println()
			fmt.Println("Usage: image-annotator [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_ANNOTATOR_LOG_LEVEL=debug          Enable debug logging")
			fmt.Println("  IMAGE_ANNOTATOR_MAX_REQUEST_BYTES=<n>    Largest accepted request line (default 32MiB)")
			fmt.Println("  IMAGE_ANNOTATOR_SHOW_LABELS=<bool>       Draw label tabs by default (default true)")
			fmt.Println("  IMAGE_ANNOTATOR_RENDER_SCALE=<float>     Default render scale (default 1)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if cfg.Debug() {
		log.Printf("Image Annotator v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
