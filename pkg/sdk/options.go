package contactdex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

const (
	driverRedis  = "redis"
	driverMemory = "memory"
)

type clientConfig struct {
	driver   string // "redis" or "memory"
	addrs    []string
	username string
	password string
	db       int

	keyPrefix        string
	readinessTimeout time.Duration

	parallelThreshold int
	workers           int
	maxArgsLength     int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithRedis stores contacts in the Redis instance at addr.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisCluster stores contacts in a Redis cluster reachable through addrs.
func WithRedisCluster(addrs []string, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = addrs
		c.username = username
		c.password = password
	})
}

// WithRedisDB selects the logical Redis database. Ignored by clusters.
func WithRedisDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithMemory keeps contacts in process memory. Data is lost on Close.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMemory
		c.addrs = nil
	})
}

// WithKeyPrefix namespaces every key the client writes.
// Must end with ':'. Default: "contactdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithReadinessTimeout bounds the initial wait for the store. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithParallelism splits filtering across workers once a contact book holds
// at least threshold contacts. Zero values keep the defaults.
func WithParallelism(threshold, workers int) Option {
	return optionFunc(func(c *clientConfig) {
		c.parallelThreshold = threshold
		c.workers = workers
	})
}

// WithMaxArgsLength rejects find arguments longer than n bytes. Zero keeps the default.
func WithMaxArgsLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxArgsLength = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
