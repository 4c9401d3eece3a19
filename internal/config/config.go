package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults for every recognised key.
const (
	DefaultBaseURL      = "http://127.0.0.1:8000/api"
	DefaultAuthScheme   = "Token"
	DefaultTimeout      = 30 * time.Second
	DefaultDBPath       = "chemviz.db"
	DefaultHistoryLimit = 5
	DefaultPollInterval = 30 * time.Second
	DefaultDownloadsDir = "downloads"
	DefaultHost         = "127.0.0.1"
	DefaultPort         = "8090"
	DefaultLogLevel     = "info"

	envPrefix = "CHEMVIZ"
)

type Config struct {
	API       APIConfig
	DB        DBConfig
	Session   SessionConfig
	History   HistoryConfig
	Downloads DownloadsConfig
	Server    ServerConfig
	Log       LogConfig
}

type APIConfig struct {
	BaseURL    string
	AuthScheme string // Authorization scheme, "Token" for the DRF backend
	Timeout    time.Duration
}

type DBConfig struct {
	Path string
}

type SessionConfig struct {
	Secret               string // seals the stored credential when set
	LogoutOnUnauthorized bool
}

type HistoryConfig struct {
	Limit        int
	PollInterval time.Duration // dashboard refresh; 0 disables
}

type DownloadsConfig struct {
	Dir string
}

type ServerConfig struct {
	Host string
	Port string
}

type LogConfig struct {
	Level string
}

var errEmptyBaseURL = errors.New("api.base_url must not be empty")

// New returns a viper instance with defaults and CHEMVIZ_* env overrides.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.auth_scheme", DefaultAuthScheme)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("db.path", DefaultDBPath)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.logout_on_unauthorized", false)
	v.SetDefault("history.limit", DefaultHistoryLimit)
	v.SetDefault("history.poll_interval", DefaultPollInterval)
	v.SetDefault("downloads.dir", DefaultDownloadsDir)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, or configs/config.yml when path is
// empty. A missing default file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates a populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:    strings.TrimSpace(v.GetString("api.base_url")),
			AuthScheme: strings.TrimSpace(v.GetString("api.auth_scheme")),
			Timeout:    v.GetDuration("api.timeout"),
		},
		DB:      DBConfig{Path: v.GetString("db.path")},
		Session: SessionConfig{Secret: v.GetString("session.secret"), LogoutOnUnauthorized: v.GetBool("session.logout_on_unauthorized")},
		History: HistoryConfig{Limit: v.GetInt("history.limit"), PollInterval: v.GetDuration("history.poll_interval")},
		Downloads: DownloadsConfig{
			Dir: v.GetString("downloads.dir"),
		},
		Server: ServerConfig{Host: v.GetString("server.host"), Port: v.GetString("server.port")},
		Log:    LogConfig{Level: v.GetString("log.level")},
	}

	if cfg.API.BaseURL == "" {
		return nil, errEmptyBaseURL
	}
	if cfg.API.AuthScheme == "" {
		cfg.API.AuthScheme = DefaultAuthScheme
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.History.Limit <= 0 {
		cfg.History.Limit = DefaultHistoryLimit
	}
	if cfg.History.PollInterval < 0 {
		cfg.History.PollInterval = 0
	}
	if cfg.DB.Path == "" {
		cfg.DB.Path = DefaultDBPath
	}
	if cfg.Downloads.Dir == "" {
		cfg.Downloads.Dir = DefaultDownloadsDir
	}
	return cfg, nil
}
