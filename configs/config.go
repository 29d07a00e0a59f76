package configs

import (
	"errors"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Llama    `mapstructure:"llama"`
	Tools    `mapstructure:"tools"`
	Session  `mapstructure:"session"`
	Postgres `mapstructure:"postgres"`
	Redis    `mapstructure:"redis"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Llama struct - completion server and session defaults
type Llama struct {
	APIURL         string  `mapstructure:"api_url"`
	Model          string  `mapstructure:"model"`
	APIKey         string  `mapstructure:"api_key"`
	SystemPrompt   string  `mapstructure:"system_prompt"`
	Temperature    float64 `mapstructure:"temperature"`
	Timeout        int     `mapstructure:"timeout"`
	SaveMessages   bool    `mapstructure:"save_messages"`
	RecentMessages int     `mapstructure:"recent_messages"`
}

// Tools struct - tool routing and built-in tools
type Tools struct {
	Prompt       string   `mapstructure:"prompt"`
	BiasWeight   int      `mapstructure:"bias_weight"`
	TokenOffset  int      `mapstructure:"token_offset"`
	Timezone     string   `mapstructure:"timezone"`
	MaxChars     int      `mapstructure:"max_chars"`
	AllowedHosts []string `mapstructure:"allowed_hosts"`
}

// Session struct
type Session struct {
	Store       string `mapstructure:"store"`
	Timeout     int    `mapstructure:"timeout"`
	MaxSessions int    `mapstructure:"max_sessions"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Redis struct
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
	TTL      int    `mapstructure:"ttl"`
}

// Session store kinds
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", "local")
	viper.SetDefault("app.port", "3000")

	viper.SetDefault("llama.api_url", "http://localhost:8080/v1/chat/completions")
	viper.SetDefault("llama.model", "")
	viper.SetDefault("llama.api_key", "")
	viper.SetDefault("llama.system_prompt", "You are a helpful assistant.")
	viper.SetDefault("llama.temperature", 0.3)
	viper.SetDefault("llama.timeout", 0)
	viper.SetDefault("llama.save_messages", true)
	viper.SetDefault("llama.recent_messages", 0)

	viper.SetDefault("tools.prompt", "")
	viper.SetDefault("tools.bias_weight", 100)
	viper.SetDefault("tools.token_offset", 15)
	viper.SetDefault("tools.timezone", "UTC")
	viper.SetDefault("tools.max_chars", 4000)
	viper.SetDefault("tools.allowed_hosts", []string{})

	viper.SetDefault("session.store", StoreMemory)
	viper.SetDefault("session.timeout", 30)
	viper.SetDefault("session.max_sessions", 1000)

	viper.SetDefault("postgres.host", "")
	viper.SetDefault("postgres.port", "")
	viper.SetDefault("postgres.username", "")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "")
	viper.SetDefault("postgres.sslmode", false)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "localaichat:session:")
	viper.SetDefault("redis.ttl", 1440)
}

func getConfig(path, env string) {
	viper.Reset()
	setDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	found := true
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
		found = false
		logrus.Warnf("No config file in %s, using defaults and environment", path)
	}

	if env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err == nil {
			logrus.Infof("Merged config for env: %s", env)
		}
	}

	if found {
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			logrus.Infoln("Config file has changed: ", e.Name)
		})
	}

	if err := viper.Unmarshal(&config); err != nil {
		logrus.Fatalln(err)
	}
}
