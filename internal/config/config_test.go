package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, setup func(v *viper.Viper)) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	if setup != nil {
		setup(viper.GetViper())
	}
	return Load()
}

func TestDefaults(t *testing.T) {
	cfg, err := loadFrom(t, nil)
	require.NoError(t, err)

	assert.Equal(t, ".modelgraph", cfg.Storage.Dir)
	assert.Equal(t, "mermaid", cfg.Render.Format)
	assert.Equal(t, "TB", cfg.Render.Direction)
	assert.True(t, cfg.Render.ShowAttributes)
	assert.False(t, cfg.Render.ShowMethods)
	assert.True(t, cfg.Render.ShowRelationships)
	assert.True(t, cfg.Render.IncludeHeader)
	assert.Equal(t, 8620, cfg.Server.Port)
	assert.Equal(t, 300, cfg.Watch.DebounceMillis)
	assert.Equal(t, "https://kroki.io", cfg.Imaging.Endpoint)
}

func TestOverrides(t *testing.T) {
	cfg, err := loadFrom(t, func(v *viper.Viper) {
		v.Set("render.format", "plantuml")
		v.Set("render.direction", "LR")
		v.Set("server.port", 9000)
	})
	require.NoError(t, err)

	assert.Equal(t, "plantuml", cfg.Render.Format)
	assert.Equal(t, "LR", cfg.Render.Direction)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestInvalidFormatRejected(t *testing.T) {
	_, err := loadFrom(t, func(v *viper.Viper) {
		v.Set("render.format", "visio")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.format")
}

func TestInvalidDirectionRejected(t *testing.T) {
	_, err := loadFrom(t, func(v *viper.Viper) {
		v.Set("render.direction", "diagonal")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.direction")
}

func TestInvalidPortRejected(t *testing.T) {
	_, err := loadFrom(t, func(v *viper.Viper) {
		v.Set("server.port", 0)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
