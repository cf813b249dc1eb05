package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notemarket/internal/flagx"
	"github.com/dmitrijs2005/notemarket/internal/timex"
)

// fileConfig mirrors Config for the JSON file. Pointers tell an absent key
// from a zero value; durations accept "3s" or integer nanoseconds.
type fileConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	ReportsDir          *string         `json:"reports_dir"`
}

func (f *fileConfig) apply(cfg *Config) {
	if f.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *f.ServerEndpointAddr
	}
	if f.RequestTimeout != nil {
		cfg.RequestTimeout = f.RequestTimeout.Duration
	}
	if f.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = f.OnlineCheckInterval.Duration
	}
	if f.ReportsDir != nil {
		cfg.ReportsDir = *f.ReportsDir
	}
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config) {
	name := flagx.JsonConfigFlags()
	if name == "" {
		return
	}

	data, err := os.ReadFile(name)
	if err != nil {
		panic(err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		panic(err)
	}
	fc.apply(cfg)
}
