package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App      `yaml:"app"`
		Log      `yaml:"log"`
		Input    `yaml:"input"`
		Reports  `yaml:"reports"`
		Detector `yaml:"detector"`
		Metrics  `yaml:"metrics"`
		HTTP     `yaml:"http"`
		Kafka    `yaml:"kafka"`
		PG       `yaml:"postgres"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"logiscan"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level     string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		AuditFile string `yaml:"audit_file" env:"LOG_AUDIT_FILE" env-default:"analysis_audit.log"`
	}

	Input struct {
		Path string `yaml:"path" env:"INPUT_PATH" env-default:"server.log"`
	}

	Reports struct {
		Dir      string `yaml:"dir" env:"REPORTS_DIR" env-default:"."`
		Summary  string `yaml:"summary" env:"REPORTS_SUMMARY" env-default:"summary_report.txt"`
		Security string `yaml:"security" env:"REPORTS_SECURITY" env-default:"security_report.txt"`
		Errors   string `yaml:"errors" env:"REPORTS_ERRORS" env-default:"error_log.txt"`
	}

	Detector struct {
		BruteForceThreshold int    `yaml:"brute_force_threshold" env:"DETECTOR_BRUTE_FORCE_THRESHOLD" env-default:"3"`
		LoginPath           string `yaml:"login_path" env:"DETECTOR_LOGIN_PATH" env-default:"/login"`
	}

	Metrics struct {
		Textfile string `yaml:"textfile" env:"METRICS_TEXTFILE"`
	}

	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	}

	Kafka struct {
		Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"security-incidents"`
	}

	PG struct {
		Enabled     bool   `yaml:"enabled" env:"PG_ENABLED" env-default:"false"`
		URL         string `yaml:"url" env:"PG_URL"`
		MaxPoolSize int    `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"2"`
		Migrations  string `yaml:"migrations" env:"PG_MIGRATIONS" env-default:"migrations"`
	}
)

const (
	ENV_PATH            = "infra/.env"
	DEFAULT_CONFIG_PATH = "infra/config.yaml"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrKafkaBrokers   = errors.New("kafka is enabled but no brokers are configured")
	ErrPGURL          = errors.New("postgres is enabled but PG_URL is empty")
)

// New loads the config file (APP_CONFIG_PATH or explicit path) and applies
// env overrides. Only a missing default config file falls back to env and
// defaults; a path the user named must exist.
func New(path string) (*Config, error) {
	if err := godotenv.Load(ENV_PATH); err != nil {
		log.WithField("env_file", ENV_PATH).Debug("Env file is not loaded")
	}

	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		if p, ok := os.LookupEnv("APP_CONFIG_PATH"); ok && p != "" {
			path, explicit = p, true
		} else {
			log.WithField("env_var", "APP_CONFIG_PATH").
				Debug("Config path is not set, using default")
			path = DEFAULT_CONFIG_PATH
		}
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		log.WithField("config", path).Debug("Config file not found, using defaults")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	default:
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return ErrKafkaBrokers
	}
	if c.PG.Enabled && c.PG.URL == "" {
		return ErrPGURL
	}
	return nil
}
