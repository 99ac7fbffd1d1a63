// Package config provides configuration management for the pay24
// gateway integration service. Configuration is loaded from a YAML file
// and can be overridden by environment variables.
package config

import (
	"fmt"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the service. Environment variables
// take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Merchant struct {
		// Mid is the 8-character merchant identifier assigned by the
		// gateway operator.
		Mid string `yaml:"mid" env:"MERCHANT_MID" env-default:""`
		// Key is the 64-hex-character secret signing key.
		Key string `yaml:"key" env:"MERCHANT_KEY" env-default:""`
		// EshopID scopes the merchant's store within the gateway.
		EshopID string `yaml:"eshop_id" env:"MERCHANT_ESHOP_ID" env-default:""`
		// Staging points the client at the staging gateway, which runs
		// with a self-signed certificate.
		Staging bool `yaml:"staging" env:"MERCHANT_STAGING" env-default:"false"`
	} `yaml:"merchant"`
	Shop struct {
		Currency         string `yaml:"currency" env:"SHOP_CURRENCY" env-default:"EUR"`
		Locale           string `yaml:"locale" env:"SHOP_LOCALE" env-default:"sk"`
		PricesIncludeTax bool   `yaml:"prices_include_tax" env:"SHOP_PRICES_INCLUDE_TAX" env-default:"false"`
		// BaseURL is the public URL of this service, used to compose
		// the gateway callback URLs.
		BaseURL string `yaml:"base_url" env:"SHOP_BASE_URL" env-default:""`
		// ResultPageURL is the shop page the customer lands on after
		// the unauthenticated result redirect.
		ResultPageURL string `yaml:"result_page_url" env:"SHOP_RESULT_PAGE_URL" env-default:""`
	} `yaml:"shop"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path. It
// uses a singleton pattern and only loads the config once.
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
		}
	})
	return instance, err
}
