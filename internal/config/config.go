package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
	// LockMaxOpenConns sizes the separate pool holding workspace advisory locks
	LockMaxOpenConns int `mapstructure:"lock_max_open_conns"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
	// SubjectPrefix prefixes change notification subjects: <prefix>.<workspaceId>.<kind>
	SubjectPrefix string `mapstructure:"subject_prefix"`
	// IngestSubject is the subject prefix of event ingestion notices: <prefix>.<workspaceId>
	IngestSubject string `mapstructure:"ingest_subject"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	TaskQueue                          string  `mapstructure:"task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// ComputeConfig holds the computation pass and polling loop knobs
type ComputeConfig struct {
	Interval           time.Duration `mapstructure:"interval"`
	PollingJitter      time.Duration `mapstructure:"polling_jitter"`
	MaxPollingAttempts int           `mapstructure:"max_polling_attempts"`
	PassConcurrency    int           `mapstructure:"pass_concurrency"`
	SubWindow          time.Duration `mapstructure:"sub_window"`
	MaxPassDuration    time.Duration `mapstructure:"max_pass_duration"`
	EventBatchSize     int           `mapstructure:"event_batch_size"`
	ActivityTimeout    time.Duration `mapstructure:"activity_timeout"`
	// PendingLimit bounds the unprocessed assignments re-emitted per pass
	PendingLimit int `mapstructure:"pending_limit"`
}

// GlobalConfig holds the shared global process knobs
type GlobalConfig struct {
	Capacity               int           `mapstructure:"capacity"`
	Concurrency            int           `mapstructure:"concurrency"`
	SchedulerInterval      time.Duration `mapstructure:"scheduler_interval"`
	QueueRestartDelay      time.Duration `mapstructure:"queue_restart_delay"`
	MaxSchedulerIterations int           `mapstructure:"max_scheduler_iterations"`
	MaxQueueIterations     int           `mapstructure:"max_queue_iterations"`
}

// LifecycleReconcilerConfig holds configuration for the lifecycle reconciler sweeper
type LifecycleReconcilerConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	// MaxRetries bounds the retries of a failed store or lifecycle call
	MaxRetries uint64       `mapstructure:"max_retries"`
	Worker     WorkerConfig `mapstructure:"worker"`
}

// WorkerComputeConfig holds configuration for worker-compute
type WorkerComputeConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Database      DatabaseConfig `mapstructure:"database"`
	Temporal      TemporalConfig `mapstructure:"temporal"`
	NATS          NATSConfig     `mapstructure:"nats"`
	Compute       ComputeConfig  `mapstructure:"compute"`
	Global        GlobalConfig   `mapstructure:"global"`
	BlocklistPath string         `mapstructure:"blocklist_path"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig          `mapstructure:",squash"`
	Database            DatabaseConfig            `mapstructure:"database"`
	Temporal            TemporalConfig            `mapstructure:"temporal"`
	LifecycleReconciler LifecycleReconcilerConfig `mapstructure:"lifecycle_reconciler"`
	BlocklistPath       string                    `mapstructure:"blocklist_path"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Server        ServerConfig   `mapstructure:"server"`
	Database      DatabaseConfig `mapstructure:"database"`
	Temporal      TemporalConfig `mapstructure:"temporal"`
	NATS          NATSConfig     `mapstructure:"nats"`
	Auth          AuthConfig     `mapstructure:"auth"`
	Compute       ComputeConfig  `mapstructure:"compute"`
	BlocklistPath string         `mapstructure:"blocklist_path"`
}

// EventBridgeConfig holds configuration for event-bridge
type EventBridgeConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Database      DatabaseConfig `mapstructure:"database"`
	NATS          NATSConfig     `mapstructure:"nats"`
	Temporal      TemporalConfig `mapstructure:"temporal"`
	BlocklistPath string         `mapstructure:"blocklist_path"`
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.lock_max_open_conns", 32)
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "compute-properties")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "COMPUTED_PROPERTIES")
	v.SetDefault("nats.subject_prefix", "computed_properties")
}

func setComputeDefaults(v *viper.Viper) {
	v.SetDefault("compute.interval", "2m")
	v.SetDefault("compute.polling_jitter", "1s")
	v.SetDefault("compute.max_polling_attempts", 1500)
	v.SetDefault("compute.pass_concurrency", 8)
	v.SetDefault("compute.sub_window", "24h")
	v.SetDefault("compute.max_pass_duration", "10m")
	v.SetDefault("compute.event_batch_size", 5000)
	v.SetDefault("compute.activity_timeout", "15m")
	v.SetDefault("compute.pending_limit", 1000)
}

func setGlobalDefaults(v *viper.Viper) {
	v.SetDefault("global.capacity", 100)
	v.SetDefault("global.concurrency", 10)
	v.SetDefault("global.scheduler_interval", "10s")
	v.SetDefault("global.queue_restart_delay", "5s")
	v.SetDefault("global.max_scheduler_iterations", 1000)
	v.SetDefault("global.max_queue_iterations", 1000)
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		// An explicitly named file that does not exist surfaces as a path error
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// LoadWorkerComputeConfig loads configuration for worker-compute
func LoadWorkerComputeConfig(configFile string, envPath string) (*WorkerComputeConfig, error) {
	v := configureViper("worker-compute", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setNATSDefaults(v)
	setComputeDefaults(v)
	setGlobalDefaults(v)
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 50)
	v.SetDefault("temporal.worker_activities_per_second", 50)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 10)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config WorkerComputeConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("lifecycle_reconciler.interval", "1m")
	v.SetDefault("lifecycle_reconciler.batch_size", 100)
	v.SetDefault("lifecycle_reconciler.max_retries", 3)
	v.SetDefault("lifecycle_reconciler.worker.pool_size", 10)
	v.SetDefault("lifecycle_reconciler.worker.queue_size", 100)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setNATSDefaults(v)
	setComputeDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadEventBridgeConfig loads configuration for event-bridge
func LoadEventBridgeConfig(configFile string, envPath string) (*EventBridgeConfig, error) {
	v := configureViper("event-bridge", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.stream_name", "USER_EVENTS")
	v.SetDefault("nats.consumer_name", "computed-properties-bridge")
	v.SetDefault("nats.ingest_subject", "events.ingested")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config EventBridgeConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_CP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		"blocklist_path",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.lock_max_open_conns",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.subject_prefix",
		"nats.ingest_subject",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Compute
		"compute.interval",
		"compute.polling_jitter",
		"compute.max_polling_attempts",
		"compute.pass_concurrency",
		"compute.sub_window",
		"compute.max_pass_duration",
		"compute.event_batch_size",
		"compute.activity_timeout",
		"compute.pending_limit",
		// Global
		"global.capacity",
		"global.concurrency",
		"global.scheduler_interval",
		"global.queue_restart_delay",
		"global.max_scheduler_iterations",
		"global.max_queue_iterations",
		// Lifecycle reconciler
		"lifecycle_reconciler.interval",
		"lifecycle_reconciler.batch_size",
		"lifecycle_reconciler.max_retries",
		"lifecycle_reconciler.worker.pool_size",
		"lifecycle_reconciler.worker.queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
