package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Mongo struct {
	URI      string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database string        `envconfig:"DATABASE" default:"storefront"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL       string `envconfig:"URL"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"storefront:"`
	PoolSize  int    `envconfig:"POOL_SIZE" default:"10"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Retry bounds the executor shared by the event listeners.
type Retry struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	Delay       time.Duration `envconfig:"DELAY" default:"2s"`
}

type Inventory struct {
	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`
}

// Idempotency configures how long a handled event key is remembered.
type Idempotency struct {
	TTL time.Duration `envconfig:"TTL" default:"24h"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[storefront]"`
}

type Server struct {
	Scheme          string        `envconfig:"SCHEME" default:"http"`
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type App struct {
	Env         string       `envconfig:"APP_ENV" default:"development"`
	Server      *Server      `envconfig:"SERVER"`
	Log         *Log         `envconfig:"LOG"`
	DB          *DB          `envconfig:"DATABASE"`
	Mongo       *Mongo       `envconfig:"MONGO"`
	Redis       *Redis       `envconfig:"REDIS"`
	Auth        *Auth        `envconfig:"AUTH"`
	RateLimit   *RateLimit   `envconfig:"RATE_LIMIT"`
	Retry       *Retry       `envconfig:"RETRY"`
	Inventory   *Inventory   `envconfig:"INVENTORY"`
	Idempotency *Idempotency `envconfig:"IDEMPOTENCY"`
}
