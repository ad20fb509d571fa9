package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configFileName = "palette-api"
	configFileType = "yaml"

	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite3"
	DBTypeMemory   = "memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	HTTPPort          string
	DatabaseType      string
	DatabaseUser      string
	DatabasePassword  string
	DatabaseName      string
	DatabaseHost      string
	DatabasePath      string
	SSLMode           string
	JwtSecret         string
	JwtAccessDuration int // seconds
	JwtDomain         string
	AllowedOrigins    []string
	DevMode           bool
	DailyPalette      bool
}

// Load reads .env, then resolves every key from the environment, the optional
// config file and the defaults, in that order of precedence. An empty
// configFile searches for palette-api.yaml in the working directory and
// /etc/palette-api.
func Load(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/palette-api")
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config := &Config{
		HTTPPort:          v.GetString("http_port"),
		DatabaseType:      v.GetString("db_type"),
		DatabaseUser:      v.GetString("db_user"),
		DatabasePassword:  v.GetString("db_password"),
		DatabaseName:      v.GetString("db_name"),
		DatabaseHost:      v.GetString("db_host"),
		DatabasePath:      v.GetString("db_path"),
		SSLMode:           v.GetString("ssl_mode"),
		JwtSecret:         v.GetString("jwt_secret"),
		JwtAccessDuration: v.GetInt("jwt_access_duration"),
		JwtDomain:         v.GetString("jwt_domain"),
		AllowedOrigins:    splitList(v.GetString("allowed_origins")),
		DevMode:           v.GetBool("dev_mode"),
		DailyPalette:      v.GetBool("daily_palette"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", ":8080")

	v.SetDefault("db_type", DBTypePostgres)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "palettes")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_path", "palettes.db")
	v.SetDefault("ssl_mode", "disable")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_access_duration", 86400) // 1 day
	v.SetDefault("jwt_domain", "")

	v.SetDefault("allowed_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("dev_mode", true)
	v.SetDefault("daily_palette", true)
}

// Validate checks the values Load cannot default sensibly.
func (c *Config) Validate() error {
	switch c.DatabaseType {
	case DBTypePostgres, DBTypeSQLite, DBTypeMemory:
	default:
		return fmt.Errorf("%w: DB_TYPE must be one of %s, %s, %s; got %q",
			ErrInvalidConfig, DBTypePostgres, DBTypeSQLite, DBTypeMemory, c.DatabaseType)
	}

	if c.JwtAccessDuration <= 0 {
		return fmt.Errorf("%w: JWT_ACCESS_DURATION must be positive", ErrInvalidConfig)
	}

	if c.JwtSecret == "" {
		if !c.DevMode {
			return fmt.Errorf("%w: JWT_SECRET is required outside dev mode", ErrInvalidConfig)
		}
		c.JwtSecret = "dev-secret-change-this"
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
