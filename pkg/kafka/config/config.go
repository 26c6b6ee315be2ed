package kafkaconfig

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Brokers []string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int
	ProducerCompression  string
	ProducerAsync        bool

	ConsumerStartOffset    int64
	ConsumerMinBytes       int
	ConsumerMaxBytes       int
	ConsumerMaxWait        time.Duration
	ConsumerCommitInterval time.Duration
	ConsumerSessionTimeout time.Duration
	ConsumerMaxRetries     int
}

func Load() *Config {
	return &Config{
		Brokers: strings.Split(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers), ","),

		ProducerMaxAttempts:  getEnvNum(EnvProducerMaxAttempts, DefaultProducerMaxAttempts),
		ProducerBatchTimeout: getEnvDuration(EnvProducerBatchTimeout, DefaultProducerBatchTimeout),
		ProducerRequireAcks:  getEnvNum(EnvProducerRequireAcks, DefaultProducerRequireAcks),
		ProducerCompression:  getEnvStr(EnvProducerCompression, DefaultProducerCompression),
		ProducerAsync:        getEnvBool(EnvProducerAsync, DefaultProducerAsync),

		ConsumerStartOffset:    int64(getEnvNum(EnvConsumerStartOffset, DefaultConsumerStartOffset)),
		ConsumerMinBytes:       getEnvNum(EnvConsumerMinBytes, DefaultConsumerMinBytes),
		ConsumerMaxBytes:       getEnvNum(EnvConsumerMaxBytes, DefaultConsumerMaxBytes),
		ConsumerMaxWait:        getEnvDuration(EnvConsumerMaxWait, DefaultConsumerMaxWait),
		ConsumerCommitInterval: getEnvDuration(EnvConsumerCommitInterval, DefaultConsumerCommitInterval),
		ConsumerSessionTimeout: getEnvDuration(EnvConsumerSessionTimeout, DefaultConsumerSessionTimeout),
		ConsumerMaxRetries:     getEnvNum(EnvConsumerMaxRetries, DefaultConsumerMaxRetries),
	}
}

func getEnvStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
