package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.FontPath)
	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, DefaultOptions(), cfg.Options())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("GIAITOAN_PDF_FONT", "/usr/share/fonts/DejaVuSans.ttf")
	t.Setenv("GIAITOAN_EXPORT_DIR", "/tmp/loigiai")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/fonts/DejaVuSans.ttf", cfg.FontPath)
	assert.Equal(t, "/tmp/loigiai", cfg.Dir)

	opts := cfg.Options()
	assert.Equal(t, "/usr/share/fonts/DejaVuSans.ttf", opts.FontPath)
	assert.Equal(t, "A4", opts.PageSize)
}
