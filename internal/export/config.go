package export

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the PDF export settings, read from GIAITOAN_* variables.
type Config struct {
	// FontPath is a TTF used for exported PDFs. Empty folds diacritics.
	FontPath string `env:"PDF_FONT"`
	// Dir receives PDFs exported from the terminal UI.
	Dir string `env:"EXPORT_DIR" envDefault:"."`
}

// LoadConfig reads the export configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GIAITOAN_"}); err != nil {
		return Config{}, fmt.Errorf("export config: %w", err)
	}
	return cfg, nil
}

// Options returns DefaultOptions with the configured font.
func (c Config) Options() Options {
	opts := DefaultOptions()
	opts.FontPath = c.FontPath
	return opts
}
