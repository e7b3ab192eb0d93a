package configparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenYaml(t *testing.T) {
	t.Setenv("CABSHARE_TEST_PG_HOST", "db.internal")

	src := `
# comment
database:
  host: ${CABSHARE_TEST_PG_HOST:-localhost}
  port: "5432"
  pool:
    max_conns: 10 # inline comment
  user: 'cab'
redis:
  addr: ${CABSHARE_TEST_UNSET:-localhost:6379}
log_level: INFO
`
	vars, err := flattenYaml(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"DATABASE_HOST":           "db.internal",
		"DATABASE_PORT":           "5432",
		"DATABASE_POOL_MAX_CONNS": "10",
		"DATABASE_USER":           "cab",
		"REDIS_ADDR":              "localhost:6379",
		"LOG_LEVEL":               "INFO",
	}, vars)
}

type testConfig struct {
	Name    string        `env:"CPT_NAME" default:"cabshare"`
	Port    int           `env:"CPT_PORT" default:"3000"`
	Ratio   float64       `env:"CPT_RATIO" default:"0.3"`
	Enabled bool          `env:"CPT_ENABLED" default:"false"`
	TTL     time.Duration `env:"CPT_TTL" default:"24h"`
	Nested  struct {
		Conns int32 `env:"CPT_NESTED_CONNS" default:"4"`
	}
	NoTag string
}

func TestParseEnv_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("CPT_PORT", "3005")
	t.Setenv("CPT_ENABLED", "true")

	var cfg testConfig
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "cabshare", cfg.Name)
	assert.Equal(t, 3005, cfg.Port)
	assert.InDelta(t, 0.3, cfg.Ratio, 1e-9)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.TTL)
	assert.EqualValues(t, 4, cfg.Nested.Conns)
	assert.Empty(t, cfg.NoTag)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("CPT_PORT", "not-a-number")

	var cfg testConfig
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CPT_PORT")
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	assert.ErrorIs(t, ParseEnv(testConfig{}), ErrNotStructPointer)
}

func TestLoadAndParseYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cpt:\n  name: from-yaml\n"), 0o600))

	// LoadYamlFile exports through os.Setenv; register cleanup through t.Setenv first.
	t.Setenv("CPT_NAME", "")
	os.Unsetenv("CPT_NAME")

	var cfg testConfig
	require.NoError(t, LoadAndParseYaml(path, &cfg))
	assert.Equal(t, "from-yaml", cfg.Name)
}

func TestLoadAndParseYaml_MissingFile(t *testing.T) {
	var cfg testConfig
	require.NoError(t, LoadAndParseYaml(filepath.Join(t.TempDir(), "absent.yaml"), &cfg))
	assert.Equal(t, 3000, cfg.Port)
}
