package devops

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the process configuration shared by the server, the CLI and the lambdas.
type Settings struct {
	DSN              string `mapstructure:"DSN"`
	DBDriver         string `mapstructure:"DB_DRIVER"`
	DBMaxConnections int    `mapstructure:"DB_MAX_CONNECTIONS"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`

	SigningSecret string `mapstructure:"SIGNING_SECRET"`

	LateThreshold string `mapstructure:"LATE_THRESHOLD"`
	Timezone      string `mapstructure:"TIMEZONE"`

	Port string `mapstructure:"PORT"`

	SlackBotToken     string `mapstructure:"SLACK_BOT_TOKEN"`
	SlackInfoChannel  string `mapstructure:"SLACK_INFO_CHANNEL"`
	SlackErrorChannel string `mapstructure:"SLACK_ERROR_CHANNEL"`

	ReportBucket string `mapstructure:"REPORT_BUCKET"`
	ImportBucket string `mapstructure:"IMPORT_BUCKET"`
	ReportSender string `mapstructure:"REPORT_SENDER"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	APIBaseURL string `mapstructure:"API_BASE_URL"`
	APIToken   string `mapstructure:"API_TOKEN"`
}

var settingKeys = []string{
	"DSN", "DB_DRIVER", "DB_MAX_CONNECTIONS", "LOG_LEVEL",
	"SIGNING_SECRET", "LATE_THRESHOLD", "TIMEZONE", "PORT",
	"SLACK_BOT_TOKEN", "SLACK_INFO_CHANNEL", "SLACK_ERROR_CHANNEL",
	"REPORT_BUCKET", "IMPORT_BUCKET", "REPORT_SENDER", "GEMINI_API_KEY",
	"API_BASE_URL", "API_TOKEN",
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("LOG_LEVEL", "error")
	v.SetDefault("LATE_THRESHOLD", "09:15")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("PORT", "8090")
}

// NewViper returns a viper instance bound to the environment with defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range settingKeys {
		// AutomaticEnv alone does not make Unmarshal see unset keys
		_ = v.BindEnv(key)
	}
	return v
}

// LoadSettings reads an optional .env file and then the environment.
func LoadSettings() (*Settings, error) {
	_ = godotenv.Load()
	return SettingsFrom(NewViper())
}

// SettingsFrom decodes settings out of an already configured viper instance.
func SettingsFrom(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

// SigningKey decodes the base64 HMAC secret.
func (s *Settings) SigningKey() ([]byte, error) {
	if s.SigningSecret == "" {
		return nil, fmt.Errorf("SIGNING_SECRET is not set")
	}
	key, err := base64.StdEncoding.DecodeString(s.SigningSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode SIGNING_SECRET: %w", err)
	}
	return key, nil
}
