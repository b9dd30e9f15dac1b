package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sink names.
const (
	SinkStdout = "stdout"
	SinkKafka  = "kafka"
	SinkS3     = "s3"
)

// Config holds all service settings, populated from environment variables
// and, for the CLI, command-line flags bound to the same keys.
type Config struct {
	SourceProtocol string
	SourceBucket   string
	SourceRegion   string
	S3Endpoint     string // optional override for S3-compatible stores
	Collections    []string
	ListRPS        float64

	Sink         string
	KafkaBrokers []string
	KafkaTopic   string
	OutputBucket string
	OutputPrefix string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	PollInterval  time.Duration
	LookbackRuns  int
	SeenCacheSize int
}

// Keys are the viper keys, which double as environment variable names.
const (
	KeySourceProtocol  = "SOURCE_PROTOCOL"
	KeySourceBucket    = "SOURCE_BUCKET"
	KeySourceRegion    = "SOURCE_REGION"
	KeyS3Endpoint      = "S3_ENDPOINT"
	KeyCollections     = "COLLECTIONS"
	KeyListRPS         = "LIST_RPS"
	KeySink            = "SINK"
	KeyKafkaBrokers    = "KAFKA_BROKERS"
	KeyKafkaTopic      = "KAFKA_TOPIC"
	KeyOutputBucket    = "OUTPUT_BUCKET"
	KeyOutputPrefix    = "OUTPUT_PREFIX"
	KeyHTTPAddr        = "HTTP_ADDR"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
	KeyShutdownTimeout = "SHUTDOWN_TIMEOUT"
	KeyPollInterval    = "POLL_INTERVAL"
	KeyLookbackRuns    = "LOOKBACK_RUNS"
	KeySeenCacheSize   = "SEEN_CACHE_SIZE"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceProtocol, "s3")
	v.SetDefault(KeySourceBucket, "met-office-atmospheric-model-data")
	v.SetDefault(KeySourceRegion, "eu-west-2")
	v.SetDefault(KeyS3Endpoint, "")
	v.SetDefault(KeyCollections, "global-deterministic-10km,uk-deterministic-2km")
	v.SetDefault(KeyListRPS, 10.0)
	v.SetDefault(KeySink, SinkStdout)
	v.SetDefault(KeyKafkaBrokers, "localhost:9092")
	v.SetDefault(KeyKafkaTopic, "stac-items")
	v.SetDefault(KeyOutputBucket, "")
	v.SetDefault(KeyOutputPrefix, "")
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyShutdownTimeout, "10s")
	v.SetDefault(KeyPollInterval, "5m")
	v.SetDefault(KeyLookbackRuns, 2)
	v.SetDefault(KeySeenCacheSize, 4096)
}

// New returns a viper instance with defaults set and environment variables
// bound.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return v
}

// LoadFrom builds a Config from v and validates it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	shutdownTimeout, err := positiveDuration(v, KeyShutdownTimeout)
	if err != nil {
		return nil, err
	}
	pollInterval, err := positiveDuration(v, KeyPollInterval)
	if err != nil {
		return nil, err
	}
	lookback, err := positiveInt(v, KeyLookbackRuns)
	if err != nil {
		return nil, err
	}
	seenSize, err := positiveInt(v, KeySeenCacheSize)
	if err != nil {
		return nil, err
	}
	listRPS, err := positiveFloat(v, KeyListRPS)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SourceProtocol: v.GetString(KeySourceProtocol),
		SourceBucket:   v.GetString(KeySourceBucket),
		SourceRegion:   v.GetString(KeySourceRegion),
		S3Endpoint:     v.GetString(KeyS3Endpoint),
		Collections:    splitList(v.GetString(KeyCollections)),
		ListRPS:        listRPS,

		Sink:         strings.ToLower(v.GetString(KeySink)),
		KafkaBrokers: splitList(v.GetString(KeyKafkaBrokers)),
		KafkaTopic:   v.GetString(KeyKafkaTopic),
		OutputBucket: v.GetString(KeyOutputBucket),
		OutputPrefix: v.GetString(KeyOutputPrefix),

		HTTPAddr:        v.GetString(KeyHTTPAddr),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		ShutdownTimeout: shutdownTimeout,

		PollInterval:  pollInterval,
		LookbackRuns:  lookback,
		SeenCacheSize: seenSize,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SourceProtocol != "s3" {
		return fmt.Errorf("unsupported SOURCE_PROTOCOL %q", c.SourceProtocol)
	}
	if c.SourceBucket == "" {
		return errors.New("SOURCE_BUCKET is required")
	}
	if c.SourceRegion == "" {
		return errors.New("SOURCE_REGION is required")
	}
	if len(c.Collections) == 0 {
		return errors.New("COLLECTIONS is required")
	}

	switch c.Sink {
	case SinkStdout:
	case SinkKafka:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when SINK is kafka")
		}
		if c.KafkaTopic == "" {
			return errors.New("KAFKA_TOPIC is required when SINK is kafka")
		}
	case SinkS3:
		if c.OutputBucket == "" {
			return errors.New("OUTPUT_BUCKET is required when SINK is s3")
		}
	default:
		return fmt.Errorf("invalid SINK %q: must be stdout, kafka or s3", c.Sink)
	}
	return nil
}

// SourceURL is the scheme and bucket prefix of listed object hrefs.
func (c *Config) SourceURL() string {
	return c.SourceProtocol + "://" + c.SourceBucket + "/"
}

func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func positiveInt(v *viper.Viper, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func positiveFloat(v *viper.Viper, key string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
