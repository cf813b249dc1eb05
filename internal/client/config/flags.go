package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-i", "-r"}

// parseFlags applies -a (server address), -t (request timeout, seconds),
// -i (online check interval, seconds) and -r (sales report directory).
// Other arguments, -c included, are filtered out before parsing.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("notemarket", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "marketplace server host:port")
	fs.StringVar(&cfg.ReportsDir, "r", cfg.ReportsDir, "directory for downloaded sales reports")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout, seconds")
	intervalSec := fs.Int("i", int(cfg.OnlineCheckInterval/time.Second), "online check interval, seconds (0 disables)")

	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], knownFlags)); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*intervalSec) * time.Second
}
