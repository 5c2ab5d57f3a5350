// Package config reads the application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"quotegen/services"
)

// Config holds the settings not covered by pocketbase's own flags.
type Config struct {
	// Brand appears in export file names: "DEVIS <CLIENT> X <BRAND>.xlsx".
	Brand string `env:"QUOTE_BRAND" env-default:"DEVSOURCE"`

	CompanyName    string `env:"QUOTE_COMPANY_NAME" env-default:"Devsource"`
	CompanyAddress string `env:"QUOTE_COMPANY_ADDRESS" env-default:"196 Avenue du Général de Gaulle"`
	CompanyCity    string `env:"QUOTE_COMPANY_CITY" env-default:"94500 CHAMPIGNY-SUR-MARNE"`
	CompanyEmail   string `env:"QUOTE_COMPANY_EMAIL" env-default:"hello@devsource.fr"`
	LogoURL        string `env:"QUOTE_LOGO_URL" env-default:"https://devsource.fr/wp-content/uploads/2025/07/DS_logo_petit_cercle_noeffect.png"`

	ChromePath   string        `env:"QUOTE_CHROME_PATH"`
	JPEGQuality  int           `env:"QUOTE_JPEG_QUALITY" env-default:"90"`
	ImageTimeout time.Duration `env:"QUOTE_IMAGE_TIMEOUT" env-default:"30s"`

	StaticDir     string `env:"QUOTE_STATIC_DIR" env-default:"./static"`
	LegacyHistory string `env:"QUOTE_LEGACY_HISTORY"`
}

// Load reads the configuration from the environment, after loading envFiles
// (default ".env") when they exist.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("QUOTE_JPEG_QUALITY must be between 1 and 100, got %d", cfg.JPEGQuality)
	}
	return &cfg, nil
}

// Company returns the issuer details printed on quotes.
func (c *Config) Company() services.Company {
	return services.Company{
		Name:    c.CompanyName,
		Address: c.CompanyAddress,
		City:    c.CompanyCity,
		Email:   c.CompanyEmail,
	}
}

// ImageOptions returns the JPEG settings for image exports.
func (c *Config) ImageOptions() services.ImageOptions {
	return services.ImageOptions{Quality: c.JPEGQuality}
}
