// Command cli is the interactive NoteMarket client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notemarket/internal/client/cli"
	"github.com/dmitrijs2005/notemarket/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(config.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemarket: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
