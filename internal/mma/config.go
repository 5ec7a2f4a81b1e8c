package mma

import (
	"fmt"
	"os"

	"vmma/internal/mma/evict"

	"github.com/spf13/viper"
)

// Config parameterizes a MemoryManager.
type Config struct {
	// PoolSize is the number of physical page frames backing the pool.
	PoolSize int `mapstructure:"pool_size"`
	// Policy selects the replacement policy used once the pool is full.
	// Accepted values are "fifo" and "clock".
	Policy string `mapstructure:"policy"`
	// SwapDir is the directory evicted pages are written to. It must
	// already exist. Empty selects os.TempDir().
	SwapDir string `mapstructure:"swap_dir"`
}

// evictAlgEnv, when set, overrides Config.Policy: the literal value "FIFO"
// selects FIFO, anything else selects Clock.
const evictAlgEnv = "EVICT_ALG"

// policyKind resolves the configured policy name to an evict.Kind. Clock is
// the default, both when Policy is unset and when evictAlgEnv is set to
// anything other than "FIFO".
func (c Config) policyKind() (evict.Kind, error) {
	if v, ok := os.LookupEnv(evictAlgEnv); ok {
		if v == "FIFO" {
			return evict.KindFIFO, nil
		}
		return evict.KindClock, nil
	}

	switch c.Policy {
	case "", "clock":
		return evict.KindClock, nil
	case "fifo":
		return evict.KindFIFO, nil
	default:
		return 0, fmt.Errorf("mma: unknown eviction policy %q", c.Policy)
	}
}

// LoadConfig reads a YAML config file at path into a Config.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("mma: read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("mma: unmarshal config: %w", err)
	}
	return &cfg, nil
}
