// Package config provides configuration management for the bedrockgate server.
// Settings come from built-in defaults, an optional YAML file and the process
// environment, in that order of precedence (environment wins).
package config

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read on top of the YAML file.
const (
	EnvRegion          = "AWS_REGION"
	EnvModelID         = "MODEL_ID"
	EnvKnowledgeBaseID = "KNOWLEDGE_BASE_ID"
	EnvModelARN        = "MODEL_ARN"
)

// DefaultRegion is used when neither the file nor the environment names a region.
const DefaultRegion = "us-east-2"

// Config represents the complete server configuration. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	AWS     AWSConfig     `yaml:"aws"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server-specific configuration for the HTTP server.
type ServerConfig struct {
	// Host is the interface to bind (default: 127.0.0.1)
	Host string `yaml:"host"`

	// Port specifies the HTTP server port (default: 8000)
	Port int `yaml:"port" validate:"gte=0,lte=65535"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 30s)
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"gte=0"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// It must leave room for aws.request_timeout (default: 45s)
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values (default: 1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes" validate:"gte=0"`

	// ShutdownTimeout specifies how long to wait for in-flight requests
	// on shutdown (default: 30s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AWSConfig holds the Bedrock settings. Only Region is required at startup;
// the remaining identifiers are checked per operation.
type AWSConfig struct {
	// Region is the AWS region hosting the model and knowledge base
	Region string `yaml:"region" validate:"required"`

	// ModelID is the Bedrock model used by /bedrock/invoke
	// (e.g. "meta.llama3-3-70b-instruct-v1:0")
	ModelID string `yaml:"model_id"`

	// KnowledgeBaseID and ModelARN are both needed by /bedrock/query
	KnowledgeBaseID string `yaml:"knowledge_base_id"`
	ModelARN        string `yaml:"model_arn"`

	// Static credentials (optional). When empty the SDK default chain is used.
	// Use environment variables (e.g., ${AWS_SECRET_ACCESS_KEY}) rather than literals.
	AccessKeyID     string `yaml:"access_key_id" validate:"required_with=SecretAccessKey"`
	SecretAccessKey string `yaml:"secret_access_key" validate:"required_with=AccessKeyID"`
	SessionToken    string `yaml:"session_token"`

	// RequestTimeout bounds each remote call (default: 30s)
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
}

// HasModel reports whether generate-text can run.
func (a AWSConfig) HasModel() bool {
	return a.ModelID != ""
}

// HasKnowledgeBase reports whether generate-with-retrieval can run.
func (a AWSConfig) HasKnowledgeBase() bool {
	return a.KnowledgeBaseID != "" && a.ModelARN != ""
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	// Level sets logging verbosity: debug, info, warn, error
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format specifies log output format: json or text
	Format string `yaml:"format" validate:"oneof=json text"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    45 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		AWS: AWSConfig{
			Region:         DefaultRegion,
			RequestTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadFile loads configuration from a YAML file. A missing file is not an
// error: defaults and the environment are enough to run.
func LoadFile(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Load(strings.NewReader(""))
		}
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// envRef matches ${VAR} and ${VAR:-default}. Bare $VAR is left alone so
// literal dollar signs in values survive.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// expandEnvVars resolves ${VAR} and ${VAR:-default} references in a single
// pass. Substituted values are not expanded again.
//
// Example Transformations:
//   - "${AWS_REGION}" → "eu-west-1"
//   - "${AWS_REGION:-us-east-2}" → "us-east-2" (if AWS_REGION is unset or empty)
//   - "my$model" → "my$model"
func expandEnvVars(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		if val := os.Getenv(m[1]); val != "" {
			return val
		}
		return m[2]
	})
}

// applyEnv overlays the environment variables on cfg. A variable that is set
// but empty still overrides: AWS_REGION="" must fail validation rather than
// silently fall back to the default.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvRegion); ok {
		cfg.AWS.Region = v
	}
	if v, ok := os.LookupEnv(EnvModelID); ok {
		cfg.AWS.ModelID = v
	}
	if v, ok := os.LookupEnv(EnvKnowledgeBaseID); ok {
		cfg.AWS.KnowledgeBaseID = v
	}
	if v, ok := os.LookupEnv(EnvModelARN); ok {
		cfg.AWS.ModelARN = v
	}
}

// Load loads configuration from an io.Reader holding YAML (possibly empty),
// then applies the environment and validates the result.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig()

	expanded := expandEnvVars(string(data))
	if strings.TrimSpace(expanded) != "" {
		if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}
