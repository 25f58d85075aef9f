package main

import (
	"log"
	"os"

	"github.com/ironsheep/cover-palette-mcp/internal/app"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	app.SetVersion(Version, BuildTime, GitCommit)
	app.Execute()
}
