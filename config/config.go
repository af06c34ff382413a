package config

import (
	"os"
	"strings"
	"time"

	"github.com/fxpgr/stonk/logger"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix    = "STONK"
	EnvAPIKey    = "BINANCE_API_KEY"
	EnvSecretKey = "BINANCE_SECRET_KEY"
)

type AppConfig struct {
	Exchange           string        `mapstructure:"exchange"`
	BaseURL            string        `mapstructure:"base_url"`
	RecvWindow         int64         `mapstructure:"recv_window"`
	TestOrder          bool          `mapstructure:"test_order"`
	Timeout            time.Duration `mapstructure:"timeout"`
	LogLevel           string        `mapstructure:"log_level"`
	DefaultTimeInForce string        `mapstructure:"default_time_in_force"`

	APIKey    string `mapstructure:"api_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// New returns a viper instance with defaults and environment bindings.
// Credentials come from BINANCE_API_KEY and BINANCE_SECRET_KEY, everything
// else from STONK_<KEY>.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("exchange", "binance")
	v.SetDefault("base_url", "")
	v.SetDefault("recv_window", 0)
	v.SetDefault("test_order", true)
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("default_time_in_force", "GTC")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", EnvAPIKey)
	_ = v.BindEnv("secret_key", EnvPrefix+"_SECRET_KEY", EnvSecretKey)
	return v
}

// Load reads filePath (or stonk.{yaml,toml,json} from the working
// directory and ~/.config/stonk when empty) on top of v.
func Load(v *viper.Viper, filePath string) (*AppConfig, error) {
	sugar := logger.Get().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("Load config...")

	if len(filePath) != 0 {
		v.SetConfigFile(filePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", filePath)
		}
	} else {
		v.SetConfigName("stonk")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/stonk")
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sugar.Debugw("config loaded",
		"exchange", cfg.Exchange,
		"base_url", cfg.BaseURL,
		"test_order", cfg.TestOrder,
		"timeout", cfg.Timeout,
		"config_file", v.ConfigFileUsed())
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Exchange) == "" {
		return errors.New("exchange must be set")
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RecvWindow < 0 || c.RecvWindow > 60000 {
		return errors.Errorf("recv_window must be within [0, 60000], got %d", c.RecvWindow)
	}
	return nil
}

// APIKeyFunc defers the missing-credential error to the first signed
// request, so commands that never reach the exchange run without keys.
func (c *AppConfig) APIKeyFunc() func() (string, error) {
	return requiredFunc(c.APIKey, EnvAPIKey)
}

func (c *AppConfig) SecretKeyFunc() func() (string, error) {
	return requiredFunc(c.SecretKey, EnvSecretKey)
}

func requiredFunc(value, env string) func() (string, error) {
	return func() (string, error) {
		if value == "" {
			return "", errors.Errorf("%s is not set", env)
		}
		return value, nil
	}
}
