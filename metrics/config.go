// Package metrics holds the metrics collection settings of the UNO tools. The
// meters and timers themselves are registered with the go-ethereum metrics
// registry by the packages that update them.
package metrics

import (
	"github.com/ethereum/go-ethereum/log"
	gethmetrics "github.com/ethereum/go-ethereum/metrics"
)

// Config contains the configuration for the metric collection.
type Config struct {
	Enabled bool `toml:",omitempty"`
}

// DefaultConfig is the default config for metrics used by the UNO tools.
var DefaultConfig = Config{
	Enabled: false,
}

// Setup turns metrics collection on when cfg asks for it.
func Setup(cfg Config) {
	if !cfg.Enabled {
		return
	}
	log.Info("Enabling metrics collection")
	gethmetrics.Enable()
}

// Enabled reports whether metrics collection is on.
func Enabled() bool {
	return gethmetrics.Enabled()
}
