package config

import "time"

const (
	DefaultServerEndpointAddr  = "127.0.0.1:50051"
	DefaultRequestTimeout      = 12 * time.Second
	DefaultOnlineCheckInterval = 3 * time.Second
	DefaultReportsDir          = "reports"
)

// Config is what the CLI needs to reach the marketplace. A zero
// OnlineCheckInterval disables the background reachability probe.
type Config struct {
	ServerEndpointAddr  string        `env:"NOTEMARKET_SERVER_ADDR"`
	RequestTimeout      time.Duration `env:"NOTEMARKET_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"NOTEMARKET_ONLINE_CHECK_INTERVAL"`
	ReportsDir          string        `env:"NOTEMARKET_REPORTS_DIR"`
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = DefaultServerEndpointAddr
	c.RequestTimeout = DefaultRequestTimeout
	c.OnlineCheckInterval = DefaultOnlineCheckInterval
	c.ReportsDir = DefaultReportsDir
}

// LoadConfig layers, lowest precedence first: defaults, the -c/-config
// JSON file, NOTEMARKET_* environment variables, command-line flags.
// Malformed input in any layer panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
