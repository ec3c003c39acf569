package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
	"go.uber.org/zap"
)

type DB struct {
	Host               string `validate:"required"`
	Port               int    `default:"5432"`
	User               string `default:"postgres"`
	Password           string `validate:"required"`
	Database           string `default:"taproom"`
	SSLMode            string `default:"disable"`
	MaxIdleConnections int    `default:"10"`
	MaxOpenConnections int    `default:"10"`
}

type Server struct {
	Port              int           `default:"8080"`
	ReadHeaderTimeout time.Duration `default:"5s"`
	ShutdownTimeout   time.Duration `default:"10s"`
	AllowedOrigins    []string      `default:"[*]"`
}

type Integrations struct {
	Beer       []string `default:"[untappd_web]"`
	UntappdURL string   `default:"https://untappd.com"`
}

type Auth struct {
	SecretKey string        `validate:"required"`
	Issuer    string        `default:"taproom"`
	TokenTTL  time.Duration `default:"2h"`
	HashCost  int           `default:"10"`
}

type Config struct {
	DB           DB
	Server       Server
	Integrations Integrations
	Auth         Auth
}

const envPrefix = "TAPROOM" // env prefix for env vars

var ErrConfiguration = errors.New("configuration error")

// GetConfig loads the configuration from the named file (searched in the working and home
// directories) and TAPROOM_ environment variables, which take precedence. Variables from a
// .env file in the working directory are loaded first when one exists.
func GetConfig(configFileName string, logger *zap.Logger) (*Config, error) {
	config := Config{}
	homeDir, _ := os.UserHomeDir()

	loadDotEnv(logger)

	logger.Info("Loading config", zap.String("file", configFileName))

	err := fig.Load(&config, fig.File(configFileName), fig.Dirs(".", homeDir), fig.UseEnv(envPrefix))
	if err != nil {
		if strings.Contains(err.Error(), "file not found") {
			logger.Warn("Could not find config file", zap.String("file", configFileName))

			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if config.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("%w: Auth.TokenTTL must be positive", ErrConfiguration)
	}

	return &config, nil
}

func loadDotEnv(logger *zap.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Could not load .env file", zap.Error(err))
	}
}
