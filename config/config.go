package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/gin-contrib/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/store"
)

// Backends accepted by STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendSupabase = "supabase"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	CORSAllowWrites bool     `env:"CORS_ALLOW_WRITES" envDefault:"false"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	DataDir      string `env:"DATA_DIR" envDefault:"./data"`
	CacheSize    int    `env:"CACHE_SIZE" envDefault:"32"`

	DatabaseURL    string `env:"DATABASE_URL"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`

	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"elearning"`

	SupabaseURL    string `env:"SUPABASE_URL"`
	SupabaseKey    string `env:"SUPABASE_KEY"`
	SupabaseBucket string `env:"SUPABASE_BUCKET"`
	SupabasePrefix string `env:"SUPABASE_PREFIX" envDefault:"collections"`
}

// LoadConfig reads the environment. Call godotenv first to pick up .env.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	switch c.StoreBackend {
	case BackendFile:
		require("DATA_DIR", c.DataDir)
	case BackendMemory:
	case BackendPostgres:
		require("DATABASE_URL", c.DatabaseURL)
	case BackendMongo:
		require("MONGO_URI", c.MongoURI)
		require("MONGO_DATABASE", c.MongoDatabase)
	case BackendSupabase:
		require("SUPABASE_URL", c.SupabaseURL)
		require("SUPABASE_KEY", c.SupabaseKey)
		require("SUPABASE_BUCKET", c.SupabaseBucket)
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if len(missing) > 0 {
		return fmt.Errorf("store backend %s requires %s", c.StoreBackend, strings.Join(missing, ", "))
	}
	if c.CacheSize < 0 {
		return errors.New("CACHE_SIZE must not be negative")
	}
	return nil
}

// CORSMethods is GET only unless writes are allowed cross-origin.
func (c *Config) CORSMethods() []string {
	if c.CORSAllowWrites {
		return []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	return []string{"GET"}
}

// CORSConfig turns the CORS settings into middleware config. A "*" origin
// allows every origin.
func (c *Config) CORSConfig() cors.Config {
	cc := cors.Config{
		AllowMethods:  c.CORSMethods(),
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	for _, o := range c.CORSOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = c.CORSOrigins
	return cc
}

func NewLogger(c *Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// OpenBackend connects the configured backend without decorators.
func OpenBackend(ctx context.Context, c *Config) (store.Store, error) {
	switch c.StoreBackend {
	case BackendFile:
		return store.NewFileStore(c.DataDir)
	case BackendMemory:
		return store.NewMemory(), nil
	case BackendPostgres:
		return store.NewGormStore(c.DatabaseURL, store.PoolConfig{
			MaxIdleConns: c.DBMaxIdleConns,
			MaxOpenConns: c.DBMaxOpenConns,
		})
	case BackendMongo:
		return store.NewMongoStore(ctx, c.MongoURI, c.MongoDatabase)
	case BackendSupabase:
		return store.NewSupabaseStore(c.SupabaseURL, c.SupabaseKey, c.SupabaseBucket, c.SupabasePrefix), nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
}

// OpenStore builds the document store the API runs on: the backend, timed
// by a histogram on reg, behind the read cache when CacheSize > 0. The
// returned closer releases backend connections.
func OpenStore(ctx context.Context, c *Config, reg prometheus.Registerer, log logrus.FieldLogger) (store.Store, io.Closer, error) {
	backend, err := OpenBackend(ctx, c)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", c.StoreBackend, err)
	}
	closer := io.Closer(nopCloser{})
	if cl, ok := backend.(io.Closer); ok {
		closer = cl
	}

	var s store.Store
	s, err = store.NewInstrumented(backend, reg)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	if c.CacheSize > 0 {
		s, err = store.NewCached(s, c.CacheSize)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"backend": c.StoreBackend,
		"cache":   c.CacheSize,
	}).Info("document store ready")
	return s, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
