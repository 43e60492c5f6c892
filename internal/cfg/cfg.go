package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

type Config struct {
	Http  *HTTPConfig
	Redis *RedisCfg
	Kafka *KafkaCfg
	Auth  *AuthCfg
	Store *StoreCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

// KafkaCfg отсутствует (nil), если KAFKA_BROKERS не задан — диспетчер событий выключен.
type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	MaxPublishRetries int
}

type AuthCfg struct {
	JWTSecret       string
	TokenTTL        time.Duration
	CookieName      string
	AdminUser       string
	AdminPassword   string // sha256 hex digest
	CashierUser     string
	CashierPassword string // sha256 hex digest
}

type StoreCfg struct {
	StorageKey       string        // ключ единственного JSON-документа в Redis
	LookupRetries    int           // повторов поиска продажи после первого промаха
	LookupRetryDelay time.Duration // фиксированная пауза между повторами
	PrintDelay       time.Duration // отложенный запуск печати на странице счета
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	auth, err := loadAuthCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	store, err := loadStoreCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:  http,
		Redis: redis,
		Kafka: kafka,
		Auth:  auth,
		Store: store,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
	}, nil
}

func loadKafkaCfg(log logger.Logger) (*KafkaCfg, error) {
	const (
		defaultTopic             = "pos.sales"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultPublishRetries    = 5
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		log.Infof("KAFKA_BROKERS not set, sale event dispatch disabled")
		return nil, nil
	}
	brokers := strings.Split(brokerStr, ",")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	maxPublishRetries, err := parseIntEnv("KAFKA_PUBLISH_RETRIES", defaultPublishRetries)
	if err != nil {
		return nil, e.Wrap("KAFKA_PUBLISH_RETRIES", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		MaxPublishRetries: maxPublishRetries,
	}, nil
}

func loadAuthCfg(log logger.Logger) (*AuthCfg, error) {
	const (
		defaultTokenTTL   = 12 * time.Hour
		defaultCookieName = "pos_session"

		// sha256("admin123") и sha256("cashier123") — значения для локальной разработки
		defaultAdminDigest   = "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9"
		defaultCashierDigest = "b4c94003c562bb0d89535eca77f07284fe560fd48a7cc1ed99f0a56263d616ba"
	)

	secret := getEnv("JWT_SECRET")
	if secret == "" {
		err := fmt.Errorf("JWT_SECRET is required")
		log.Errorf(err, "missing JWT_SECRET")
		return nil, err
	}

	tokenTTL, err := parseDurationEnv("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		log.Errorf(err, "invalid TOKEN_TTL")
		return nil, err
	}

	return &AuthCfg{
		JWTSecret:       secret,
		TokenTTL:        tokenTTL,
		CookieName:      getEnvOrDefault("SESSION_COOKIE", defaultCookieName),
		AdminUser:       getEnvOrDefault("ADMIN_USER", "admin"),
		AdminPassword:   getEnvOrDefault("ADMIN_PASSWORD_SHA256", defaultAdminDigest),
		CashierUser:     getEnvOrDefault("CASHIER_USER", "cashier"),
		CashierPassword: getEnvOrDefault("CASHIER_PASSWORD_SHA256", defaultCashierDigest),
	}, nil
}

func loadStoreCfg(log logger.Logger) (*StoreCfg, error) {
	const (
		defaultStorageKey = "pos-data-v1"
		defaultRetries    = 3
		defaultRetryDelay = 200 * time.Millisecond
		defaultPrintDelay = 500 * time.Millisecond
	)

	retries, err := parseIntEnv("INVOICE_LOOKUP_RETRIES", defaultRetries)
	if err != nil {
		log.Errorf(err, "invalid INVOICE_LOOKUP_RETRIES")
		return nil, err
	}

	retryDelay, err := parseDurationEnv("INVOICE_RETRY_DELAY", defaultRetryDelay)
	if err != nil {
		log.Errorf(err, "invalid INVOICE_RETRY_DELAY")
		return nil, err
	}

	printDelay, err := parseDurationEnv("INVOICE_PRINT_DELAY", defaultPrintDelay)
	if err != nil {
		log.Errorf(err, "invalid INVOICE_PRINT_DELAY")
		return nil, err
	}

	return &StoreCfg{
		StorageKey:       getEnvOrDefault("STORAGE_KEY", defaultStorageKey),
		LookupRetries:    retries,
		LookupRetryDelay: retryDelay,
		PrintDelay:       printDelay,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
