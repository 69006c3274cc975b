package nexus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Host string `env:"NEXUS_TEST_HOST" env-default:"localhost"`
	Port int    `env:"NEXUS_TEST_PORT" env-default:"8080" validate:"min=1,max=65535"`
}

func TestLoadDefaults(t *testing.T) {
	cfg := &sampleConfig{}
	err := NewLoader().Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEXUS_TEST_HOST", "0.0.0.0")
	t.Setenv("NEXUS_TEST_PORT", "9090")

	cfg := &sampleConfig{}
	err := NewLoader().Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadRejectsNonPointer(t *testing.T) {
	err := NewLoader().Load(sampleConfig{})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeInvalidType, cfgErr.Code)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("NEXUS_TEST_PORT", "0")

	cfg := &sampleConfig{}
	err := NewLoader().Load(cfg)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeValidation, cfgErr.Code)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := &sampleConfig{}
	err := NewLoader(WithFileName("does-not-exist.env")).Load(cfg)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeFileNotFound, cfgErr.Code)
}
