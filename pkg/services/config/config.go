package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL = "http://localhost:8000/api/v1"
	EnvPrefix     = "REPORTS"
	reportsPath   = "/reports"
)

// Settings is resolved once at startup and handed to the client.
type Settings struct {
	APIURL   string        `mapstructure:"api_url" validate:"required,url"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	LogLevel string        `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

// ReportsURL is the base every reports endpoint hangs off.
func (s Settings) ReportsURL() string {
	return strings.TrimRight(s.APIURL, "/") + reportsPath
}

// Merge overrides s with the non-empty fields of other.
func (s Settings) Merge(other Settings) Settings {
	if other.APIURL != "" {
		s.APIURL = other.APIURL
	}
	if other.Token != "" {
		s.Token = other.Token
	}
	if other.Timeout != 0 {
		s.Timeout = other.Timeout
	}
	if other.LogLevel != "" {
		s.LogLevel = other.LogLevel
	}
	return s
}

func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid setting %s: failed %s check", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

var validate = validator.New()

// Load reads settings from defaults, an optional config file and
// REPORTS_* environment variables, in increasing priority.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"api_url", "token", "timeout", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse reports config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
