package config

import "time"

// StatsCacheConfig controls caching of the admin dashboard counters in Redis.
// When Enabled is false or no Redis client is configured, counters are always
// computed from the database.
type StatsCacheConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	TTL     time.Duration `env:"TTL" envDefault:"30s"`
	Key     string        `env:"KEY" envDefault:"docutrack:stats"`
}
