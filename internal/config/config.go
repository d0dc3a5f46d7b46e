package config // package config loads application configuration from environment variables

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field maps to an
// environment variable; nested sections share a prefix.
type Config struct {
	Env        string        `env:"APP_ENV" envDefault:"development"` // application environment (development/test/production)
	Port       string        `env:"APP_PORT" envDefault:"3001"`       // HTTP port to listen on
	LogLevel   int           `env:"LOG_LEVEL" envDefault:"0"`         // slog level (-4 debug, 0 info, 4 warn, 8 error)
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`      // bcrypt cost for password hashing
	DBTimeout  time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`       // upper bound for a single handler's database work

	DB        DBConfig         `envPrefix:"DB_"`
	JWT       JWTConfig        `envPrefix:"JWT_"`
	Admin     AdminConfig      `envPrefix:"ADMIN_"`
	CORS      CORSConfig       `envPrefix:"CORS_"`
	RateLimit RateLimitConfig  `envPrefix:"RATE_LIMIT_"`
	Redis     RedisConfig      `envPrefix:"REDIS_"`
	Stats     StatsCacheConfig `envPrefix:"STATS_CACHE_"`
	Queue     QueueConfig      `envPrefix:"RABBITMQ_"`
}

// DBConfig describes the MySQL connection and pool.
type DBConfig struct {
	User            string        `env:"USER" envDefault:"root"`
	Pass            string        `env:"PASS"`
	Host            string        `env:"HOST" envDefault:"127.0.0.1"`
	Port            string        `env:"PORT" envDefault:"3306"`
	Name            string        `env:"NAME" envDefault:"docutrack"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

// JWTConfig holds token signing parameters.
type JWTConfig struct {
	Secret string        `env:"SECRET,required,notEmpty"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// AdminConfig describes the administrator account seeded at boot.
type AdminConfig struct {
	Seed      bool   `env:"SEED" envDefault:"true"`
	Email     string `env:"EMAIL" envDefault:"admin@docutrack.com"`
	Password  string `env:"PASSWORD" envDefault:"admin123"`
	FirstName string `env:"FIRST_NAME" envDefault:"Admin"`
	LastName  string `env:"LAST_NAME" envDefault:"System"`
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowOrigins []string `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load reads an optional .env file and then parses the environment into a
// Config. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.RateLimit.normalize()
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
