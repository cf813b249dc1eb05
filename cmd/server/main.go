// Command server runs the NoteMarket gRPC marketplace.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/notemarket/internal/server"
	"github.com/dmitrijs2005/notemarket/internal/server/config"
)

func main() {
	app, err := server.NewApp(config.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemarket server: %v\n", err)
		os.Exit(1)
	}

	// Run installs its own SIGINT/SIGTERM handling.
	app.Run(context.Background())
}
