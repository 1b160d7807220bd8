package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macontroller/internal/catalog"
	"macontroller/internal/database"
	"macontroller/internal/repositories"
)

func newTestModelService(t *testing.T, defaultKey string) ModelConfigService {
	t.Helper()
	db, err := database.Init(database.Config{Path: filepath.Join(t.TempDir(), "models.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	svc := NewModelConfigService(repositories.NewModelSettingRepository(db), defaultKey)
	require.NoError(t, svc.Startup(context.Background()))
	return svc
}

func TestModelConfigService_ListModelGroups(t *testing.T) {
	svc := newTestModelService(t, "")

	groups, err := svc.ListModelGroups()
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "openai", groups[0].ProviderID)
	assert.Equal(t, "OpenAI", groups[0].ProviderName)
	for _, g := range groups {
		for _, m := range g.Models {
			assert.True(t, m.Enabled, m.Key)
		}
	}
}

func TestModelConfigService_ResolveAutoSelect(t *testing.T) {
	svc := newTestModelService(t, "")
	settings := catalog.DefaultSettings()

	m, err := svc.ResolveModel(settings)
	require.NoError(t, err)
	assert.Equal(t, DefaultModelKey, m.Key)
}

func TestModelConfigService_ResolveSelectedByAPIName(t *testing.T) {
	svc := newTestModelService(t, "")
	settings := catalog.DefaultSettings()
	settings.AutoSelectModel = false

	m, err := svc.ResolveModel(settings)
	require.NoError(t, err)
	assert.Equal(t, "openai|gpt-4", m.Key)

	settings.SelectedModel = "gemini|gemini-2.5-pro"
	m, err = svc.ResolveModel(settings)
	require.NoError(t, err)
	assert.Equal(t, "gemini", m.ProviderID)
}

func TestModelConfigService_ResolveSkipsDisabled(t *testing.T) {
	svc := newTestModelService(t, "")
	settings := catalog.DefaultSettings()
	settings.AutoSelectModel = false
	settings.SelectedModel = "claude-3-5-haiku-latest"

	_, err := svc.SetProviderEnabled("anthropic", false)
	require.NoError(t, err)

	m, err := svc.ResolveModel(settings)
	require.NoError(t, err)
	assert.Equal(t, DefaultModelKey, m.Key)
}

func TestModelConfigService_NoEnabledModel(t *testing.T) {
	svc := newTestModelService(t, "")
	for _, p := range []string{"openai", "anthropic", "gemini"} {
		_, err := svc.SetProviderEnabled(p, false)
		require.NoError(t, err)
	}

	_, err := svc.ResolveModel(catalog.DefaultSettings())
	assert.ErrorIs(t, err, ErrNoEnabledModel)
}

func TestModelConfigService_SetModelEnabledPersists(t *testing.T) {
	svc := newTestModelService(t, "")

	m, err := svc.SetModelEnabled("openai|gpt-4o", false)
	require.NoError(t, err)
	assert.False(t, m.Enabled)

	got, err := svc.GetModel("openai|gpt-4o")
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	_, err = svc.SetModelEnabled("openai|nope", true)
	assert.Error(t, err)
}
