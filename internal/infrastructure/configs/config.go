package configs

import (
	"fmt"
	"time"

	"github.com/chessmate-app/chessmate/internal/infrastructure/env"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTP   HTTPConfig   `koanf:"http"`
	Auth   AuthConfig   `koanf:"auth"`
	Wallet WalletConfig `koanf:"wallet"`
	Client ClientConfig `koanf:"client"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type WalletConfig struct {
	ReferralBonus int `koanf:"referral_bonus"`
}

type ClientConfig struct {
	BaseURL string `koanf:"base_url"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load from YAML file if one was provided
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 8080)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.allowed_origins", []string{"*"})

	setDefault(k, "auth.jwt_secret", "dev-secret-change-me")
	setDefault(k, "auth.token_ttl", 72*time.Hour)

	setDefault(k, "wallet.referral_bonus", 20)

	setDefault(k, "client.base_url", "http://localhost:8080")
}

func applyEnvOverrides(k *koanf.Koanf) {
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}

	if secret := env.GetString("AUTH_JWT_SECRET", ""); secret != "" {
		k.Set("auth.jwt_secret", secret)
	}
	if ttl := env.GetInt("AUTH_TOKEN_TTL_HOURS", 0); ttl > 0 {
		k.Set("auth.token_ttl", time.Duration(ttl)*time.Hour)
	}

	if bonus := env.GetInt("WALLET_REFERRAL_BONUS", 0); bonus > 0 {
		k.Set("wallet.referral_bonus", bonus)
	}

	if base := env.GetString("CHESSMATE_BASE_URL", ""); base != "" {
		k.Set("client.base_url", base)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
