package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ianbedrick007/aichatbot/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API          `mapstructure:"api"`
	Database mysql.Config `mapstructure:"database"`
	WhatsApp WhatsApp     `mapstructure:"whatsapp"`
	AI       AI           `mapstructure:"ai"`
	Paystack Paystack     `mapstructure:"paystack"`
	Vaulta   Vaulta       `mapstructure:"vaulta"`
	Chat     Chat         `mapstructure:"chat"`
}

type API struct {
	Port        string `mapstructure:"port"`
	MetricsPort string `mapstructure:"metrics_port"`
}

type WhatsApp struct {
	AccessToken   string        `mapstructure:"access_token"`
	AppSecret     string        `mapstructure:"app_secret"`
	VerifyToken   string        `mapstructure:"verify_token"`
	Version       string        `mapstructure:"version"`
	PhoneNumberID string        `mapstructure:"phone_number_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type AI struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Paystack struct {
	SecretKey   string `mapstructure:"secret_key"`
	CallbackURL string `mapstructure:"callback_url"`
}

type Vaulta struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// Chat configures the web chat endpoint, which has no webhook payload to
// resolve a business from and therefore needs one picked up front.
type Chat struct {
	PhoneNumberID string `mapstructure:"phone_number_id"`
	Sender        string `mapstructure:"sender"`
	HistoryLimit  int    `mapstructure:"history_limit"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	// Secrets come from the environment, e.g. CHATBOT_WHATSAPP_APP_SECRET.
	viper.SetEnvPrefix("chatbot")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.API.MetricsPort == "" {
		cfg.API.MetricsPort = ":9090"
	}

	if cfg.WhatsApp.Version == "" {
		cfg.WhatsApp.Version = "v18.0"
	}

	if cfg.Chat.Sender == "" {
		cfg.Chat.Sender = "user"
	}

	if cfg.Chat.HistoryLimit <= 0 {
		cfg.Chat.HistoryLimit = 20
	}

	return cfg, nil
}
