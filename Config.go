package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "FORMCELLS"

const (
	configListen         = "listen"
	configDatabasePath   = "database.filepath"
	configWebhookWorkers = "webhook.workers"
	configWebhookQueue   = "webhook.queue"
	configWebhookTimeout = "webhook.timeout"
	configLogJson        = "log.json"
)

// variable read by earlier deployments
const legacyDatabasePathEnv = "DATABASE_FILEPATH"

type Config struct {
	Listen       string
	DatabasePath string
	Webhook      WebhookConfig
	LogJson      bool
}

type WebhookConfig struct {
	Workers        int
	QueueSize      int
	TimeoutSeconds int
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(configListen, ":8080")
	v.SetDefault(configDatabasePath, "formcells.db")
	v.SetDefault(configWebhookWorkers, 5)
	v.SetDefault(configWebhookQueue, 20)
	v.SetDefault(configWebhookTimeout, 5)
	v.SetDefault(configLogJson, true)
}

// NewViper reads FORMCELLS_* variables; DATABASE_FILEPATH is honoured as well
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(configDatabasePath, EnvPrefix+"_DATABASE_FILEPATH", legacyDatabasePathEnv)

	SetDefaults(v)
	return v
}

// LoadConfig merges the optional config file over defaults and environment
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config `%s`", configFile)
		}
	}

	config := &Config{
		Listen:       v.GetString(configListen),
		DatabasePath: v.GetString(configDatabasePath),
		Webhook: WebhookConfig{
			Workers:        v.GetInt(configWebhookWorkers),
			QueueSize:      v.GetInt(configWebhookQueue),
			TimeoutSeconds: v.GetInt(configWebhookTimeout),
		},
		LogJson: v.GetBool(configLogJson),
	}

	if config.DatabasePath == "" {
		return nil, errors.New("database.filepath should not be empty")
	}
	if config.Webhook.Workers < 1 {
		config.Webhook.Workers = 1
	}
	return config, nil
}
