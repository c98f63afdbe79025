package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	Tasks struct {
		BatchAssignmentCooldown time.Duration
		CodeExpiryInterval      time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		// 0 - размер пула по умолчанию
		MaxConns int32
	}

	// Redis пустой URL отключает блокировку прогонов между репликами.
	Redis struct {
		URL     string
		LockKey string
		LockTTL time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		ConsumerGroup   string
		Topics          KafkaTopics
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	KafkaTopics struct {
		Notifications  string
		DriverProgress string
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DriverProgress DriverProgress
	}

	DriverProgress struct {
		ProcessTimeout time.Duration
	}

	Codes struct {
		SenderTTL    time.Duration
		RecipientTTL time.Duration
	}

	Assignment struct {
		BatchSize      int
		DriverCapacity int
	}

	Injection struct {
		Cities           []string
		Attempts         int
		BaseDelay        time.Duration
		CustomersPerPage int
		Schedule         string // cron, пусто для однократного запуска
	}

	Provisioning struct {
		Lockers           int
		CabinetsPerLocker int
		RadiusMeters      float64
		DriversPerCity    int
	}

	Config struct {
		Tasks        Tasks
		Server       HTTPServer
		Database     Database
		Redis        Redis
		Kafka        Kafka
		Codes        Codes
		Assignment   Assignment
		Injection    Injection
		Provisioning Provisioning
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadDatabase для утилит, которым нужна только база (migrate, seed).
func LoadDatabase() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// BrokerList адреса брокеров из KAFKA_BROKERS через запятую.
func (k Kafka) BrokerList() []string {
	return osSplitList(k.Brokers)
}

func loadFromEnv() (*Config, error) {
	batchCooldown, err := osGetEnvDuration("BACKGROUND_BATCH_ASSIGNMENT_COOLDOWN")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	expiryInterval, err := osGetEnvDuration("BACKGROUND_CODE_EXPIRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	driverProgressTimeout, err := osGetEnvDuration("KAFKA_HANDLER_DRIVER_PROGRESS_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	lockTTL, err := osGetEnvDuration("REDIS_ASSIGNMENT_LOCK_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	senderTTL, err := osGetEnvDuration("CODES_SENDER_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	recipientTTL, err := osGetEnvDuration("CODES_RECIPIENT_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	batchSize, err := osGetInt("ASSIGNMENT_BATCH_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	driverCapacity, err := osGetInt("ASSIGNMENT_DRIVER_CAPACITY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	injectionAttempts, err := osGetInt("INJECTION_RETRY_ATTEMPTS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	injectionDelay, err := osGetEnvDuration("INJECTION_RETRY_BASE_DELAY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	customersPerPage, err := osGetInt("INJECTION_CUSTOMERS_PER_PAGE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	lockers, err := osGetInt("PROVISIONING_LOCKERS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cabinetsPerLocker, err := osGetInt("PROVISIONING_CABINETS_PER_LOCKER")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	radiusMeters, err := osGetFloat("PROVISIONING_RADIUS_METERS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	driversPerCity, err := osGetInt("PROVISIONING_DRIVERS_PER_CITY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMaxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			BatchAssignmentCooldown: batchCooldown,
			CodeExpiryInterval:      expiryInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: int32(dbMaxConns),
		},
		Redis: Redis{
			URL:     os.Getenv("REDIS_URL"),
			LockKey: osGetString("REDIS_ASSIGNMENT_LOCK_KEY", "parcel-locker:assignment:run"),
			LockTTL: lockTTL,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Topics: KafkaTopics{
				Notifications:  os.Getenv("KAFKA_TOPIC_NOTIFICATIONS"),
				DriverProgress: os.Getenv("KAFKA_TOPIC_DRIVER_PROGRESS"),
			},
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				DriverProgress: DriverProgress{
					ProcessTimeout: driverProgressTimeout,
				},
			},
		},
		Codes: Codes{
			SenderTTL:    senderTTL,
			RecipientTTL: recipientTTL,
		},
		Assignment: Assignment{
			BatchSize:      batchSize,
			DriverCapacity: driverCapacity,
		},
		Injection: Injection{
			Cities:           osGetList("INJECTION_CITIES", "Helsinki,Oulu"),
			Attempts:         injectionAttempts,
			BaseDelay:        injectionDelay,
			CustomersPerPage: customersPerPage,
			Schedule:         os.Getenv("INJECTION_SCHEDULE"),
		},
		Provisioning: Provisioning{
			Lockers:           lockers,
			CabinetsPerLocker: cabinetsPerLocker,
			RadiusMeters:      radiusMeters,
			DriversPerCity:    driversPerCity,
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}

	if cfg.Tasks.BatchAssignmentCooldown == time.Duration(0) {
		return errors.New("BACKGROUND_BATCH_ASSIGNMENT_COOLDOWN is required")
	}
	if cfg.Tasks.CodeExpiryInterval == time.Duration(0) {
		return errors.New("BACKGROUND_CODE_EXPIRY_INTERVAL is required")
	}

	if cfg.Redis.URL != "" && cfg.Redis.LockTTL == time.Duration(0) {
		return errors.New("REDIS_ASSIGNMENT_LOCK_TTL is required when REDIS_URL is set")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topics.Notifications == "" {
		return errors.New("KAFKA_TOPIC_NOTIFICATIONS is required")
	}
	if cfg.Kafka.Topics.DriverProgress == "" {
		return errors.New("KAFKA_TOPIC_DRIVER_PROGRESS is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.DriverProgress.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_DRIVER_PROGRESS_PROCESS_TIMEOUT is required")
	}

	if cfg.Assignment.BatchSize < 0 || cfg.Assignment.DriverCapacity < 0 {
		return errors.New("ASSIGNMENT_BATCH_SIZE and ASSIGNMENT_DRIVER_CAPACITY must not be negative")
	}

	if len(cfg.Injection.Cities) == 0 {
		return errors.New("INJECTION_CITIES must list at least one city")
	}
	if cfg.Injection.Attempts < 0 {
		return errors.New("INJECTION_RETRY_ATTEMPTS must not be negative")
	}

	if cfg.Provisioning.Lockers < 0 || cfg.Provisioning.CabinetsPerLocker < 0 || cfg.Provisioning.DriversPerCity < 0 {
		return errors.New("PROVISIONING_* counts must not be negative")
	}
	if cfg.Provisioning.RadiusMeters < 0 {
		return errors.New("PROVISIONING_RADIUS_METERS must not be negative")
	}

	return nil
}

func validateDatabase(db *Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func osGetString(s, fallback string) string {
	val := os.Getenv(s)
	if val == "" {
		return fallback
	}
	return val
}

func osGetList(s, fallback string) []string {
	return osSplitList(osGetString(s, fallback))
}

func osSplitList(val string) []string {
	raw := strings.Split(val, ",")
	res := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
