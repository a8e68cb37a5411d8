package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Input policies for readings outside their documented ranges.
const (
	InputPolicyReject = "reject"
	InputPolicyClamp  = "clamp"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Report export configuration. An empty ReportDir disables export; an
	// empty ReportSchedule disables scheduled report refreshes.
	ReportDir      string
	ReportSchedule string

	// InputPolicy is "reject" or "clamp".
	InputPolicy string

	// HistorySeed seeds history synthesis; 0 seeds from the current time.
	HistorySeed uint64

	// ZoneCacheSize bounds the number of zones kept in the latest-state cache.
	ZoneCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
// Variables in a .env file in the working directory are loaded first and never
// override variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	historySeed, err := parseHistorySeed()
	if err != nil {
		return nil, err
	}

	zoneCacheSize, err := parseZoneCacheSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "air-quality-readings"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "air-quality-assessments"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "air-quality-forecast"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		ReportDir:      os.Getenv("REPORT_DIR"),
		ReportSchedule: os.Getenv("REPORT_SCHEDULE"),
		InputPolicy:    sharedcfg.EnvOrDefault("INPUT_POLICY", InputPolicyReject),
		HistorySeed:    historySeed,
		ZoneCacheSize:  zoneCacheSize,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.InputPolicy != InputPolicyReject && cfg.InputPolicy != InputPolicyClamp {
		return nil, errors.New("invalid INPUT_POLICY: must be reject or clamp")
	}
	if cfg.ReportSchedule != "" {
		if _, err := cron.ParseStandard(cfg.ReportSchedule); err != nil {
			return nil, fmt.Errorf("invalid REPORT_SCHEDULE: %w", err)
		}
	}

	return cfg, nil
}

func parseHistorySeed() (uint64, error) {
	s := os.Getenv("HISTORY_SEED")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid HISTORY_SEED")
	}
	return n, nil
}

func parseZoneCacheSize() (int, error) {
	s := os.Getenv("ZONE_CACHE_SIZE")
	if s == "" {
		return 1000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid ZONE_CACHE_SIZE")
	}
	return n, nil
}
