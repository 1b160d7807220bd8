package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"macontroller/internal/catalog"
	"macontroller/internal/database"
	"macontroller/internal/events"
	"macontroller/internal/models"
	"macontroller/internal/repositories"
	"macontroller/internal/tests/mocks"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func openStore(t *testing.T, p Persister) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{Persister: p, Now: clock})
	require.NoError(t, err)
	return s
}

func sampleProject(id string) models.Project {
	return models.Project{
		ID:          id,
		Name:        "Album",
		Type:        models.ProjectAudio,
		Status:      models.ProjectPlanning,
		Description: "Ten tracks",
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
		UserID:      catalog.DefaultProfileID,
	}
}

func TestOpen_SynthesizesDefaultProfile(t *testing.T) {
	repo := &mocks.StateRepositoryMock{}
	s := openStore(t, repo)

	st := s.Read()
	require.Len(t, st.Profiles, 1)
	assert.Equal(t, "Default User", st.Profiles[0].Name)
	assert.Equal(t, "user@macoscontroller.com", st.Profiles[0].Email)
	require.NotNil(t, st.CurrentProfile)
	assert.Equal(t, st.Profiles[0], *st.CurrentProfile)
	assert.Equal(t, 1, repo.SaveCount(), "repaired state is written back once")
}

func TestOpen_FirstProfileBecomesCurrent(t *testing.T) {
	repo := &mocks.StateRepositoryMock{}
	seed, err := New(Options{Persister: repo, Now: clock})
	require.NoError(t, err)
	seed.AddProfile(models.Profile{ID: "p1", Name: "Ada", CreatedAt: fixedNow, Settings: catalog.DefaultSettings()})
	seed.AddProfile(models.Profile{ID: "p2", Name: "Grace", CreatedAt: fixedNow, Settings: catalog.DefaultSettings()})
	saves := repo.SaveCount()

	s := openStore(t, repo)

	st := s.Read()
	require.Len(t, st.Profiles, 2)
	require.NotNil(t, st.CurrentProfile)
	assert.Equal(t, "p1", st.CurrentProfile.ID)
	assert.Equal(t, saves, repo.SaveCount(), "no write back when nothing was repaired")
}

func TestAddProfile_OnEmptyListBecomesCurrent(t *testing.T) {
	s, err := New(Options{Now: clock})
	require.NoError(t, err)
	require.Empty(t, s.Read().Profiles)

	p := models.Profile{ID: "p1", Name: "Ada", Email: "ada@example.com", CreatedAt: fixedNow}
	s.AddProfile(p)

	st := s.Read()
	assert.Equal(t, []models.Profile{p}, st.Profiles)
	require.NotNil(t, st.CurrentProfile)
	assert.Equal(t, p, *st.CurrentProfile)
}

func TestToggleFeature_TwiceRestoresFlag(t *testing.T) {
	s := openStore(t, nil)
	feature := s.Read().Features[0]

	s.ToggleFeature(feature.ID)
	assert.Equal(t, !feature.Enabled, s.Read().Features[0].Enabled)

	s.ToggleFeature(feature.ID)
	assert.Equal(t, feature.Enabled, s.Read().Features[0].Enabled)
}

func TestUnknownIDMutations_LeaveStateUnchanged(t *testing.T) {
	s := openStore(t, nil)
	s.AddProject(sampleProject("proj-1"))
	s.AddTask(models.ProgressTask{ID: "task-1", Name: "Render", Status: models.TaskPending})

	before := s.Read()
	name := "renamed"
	progress := 80

	s.UpdateProject("missing", models.ProjectPatch{Name: &name})
	s.UpdateTask("missing", models.TaskPatch{Progress: &progress})
	s.ToggleFeature("missing")
	s.RemoveTask("missing")

	assert.Equal(t, before, s.Read())
}

func TestAddMessage_PreservesOrder(t *testing.T) {
	s := openStore(t, nil)
	msgs := []models.ChatMessage{
		{ID: "m1", Content: "one", Role: models.RoleUser, Timestamp: fixedNow},
		{ID: "m2", Content: "two", Role: models.RoleAssistant, Timestamp: fixedNow},
		{ID: "m3", Content: "three", Role: models.RoleUser, Timestamp: fixedNow},
	}
	for _, m := range msgs {
		s.AddMessage(m)
	}

	assert.Equal(t, msgs, s.Read().Messages)

	s.ClearMessages()
	assert.Empty(t, s.Read().Messages)
}

func TestUpdateProject_RefreshesCurrentProject(t *testing.T) {
	s := openStore(t, nil)
	s.AddProject(sampleProject("proj-1"))

	status := models.ProjectInProgress
	s.UpdateProject("proj-1", models.ProjectPatch{Status: &status})

	st := s.Read()
	assert.Equal(t, models.ProjectInProgress, st.Projects[0].Status)
	require.NotNil(t, st.CurrentProject)
	assert.Equal(t, st.Projects[0], *st.CurrentProject)
}

func TestUpdateProject_LeavesOtherCurrentProjectAlone(t *testing.T) {
	s := openStore(t, nil)
	s.AddProject(sampleProject("proj-1"))
	s.AddProject(sampleProject("proj-2"))

	name := "Renamed"
	s.UpdateProject("proj-1", models.ProjectPatch{Name: &name})

	st := s.Read()
	assert.Equal(t, "Renamed", st.Projects[0].Name)
	assert.Equal(t, "proj-2", st.CurrentProject.ID)
	assert.Equal(t, "Album", st.CurrentProject.Name)
}

func TestTasks_AddUpdateRemove(t *testing.T) {
	s := openStore(t, nil)
	s.AddTask(models.ProgressTask{ID: "t1", Name: "Mix", Status: models.TaskPending})
	s.AddTask(models.ProgressTask{ID: "t2", Name: "Master", Status: models.TaskPending})

	progress := 40
	status := models.TaskRunning
	s.UpdateTask("t1", models.TaskPatch{Progress: &progress, Status: &status})

	st := s.Read()
	assert.Equal(t, 40, st.CurrentTasks[0].Progress)
	assert.Equal(t, models.TaskRunning, st.CurrentTasks[0].Status)
	assert.Equal(t, "Mix", st.CurrentTasks[0].Name)

	s.RemoveTask("t1")
	st = s.Read()
	require.Len(t, st.CurrentTasks, 1)
	assert.Equal(t, "t2", st.CurrentTasks[0].ID)
}

func TestUpdateSettings_AcceptsNegativeBudget(t *testing.T) {
	s := openStore(t, nil)
	budget := -25.0

	s.UpdateSettings(models.SettingsPatch{DailyBudgetLimit: &budget})

	settings := s.Read().Settings
	assert.Equal(t, -25.0, settings.DailyBudgetLimit)
	assert.Equal(t, catalog.DefaultAssistant, settings.AssistantName)
}

func TestRead_ReturnsIsolatedSnapshot(t *testing.T) {
	s := openStore(t, nil)
	s.AddMessage(models.ChatMessage{ID: "m1", Content: "hi", Role: models.RoleUser})

	snap := s.Read()
	snap.Messages[0].Content = "changed"
	snap.Profiles[0].Name = "changed"
	snap.Settings.APIKeys["openai"] = "sk-test"
	snap.CurrentProfile.Name = "changed"

	fresh := s.Read()
	assert.Equal(t, "hi", fresh.Messages[0].Content)
	assert.Equal(t, "Default User", fresh.Profiles[0].Name)
	assert.Empty(t, fresh.Settings.APIKeys)
	assert.Equal(t, "Default User", fresh.CurrentProfile.Name)
}

func TestRoundTrip_ThroughSQLite(t *testing.T) {
	db, err := database.Init(database.Config{Path: filepath.Join(t.TempDir(), "store.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repo := repositories.NewStateRepository(db, Namespace)

	first := openStore(t, repo)
	first.AddProject(sampleProject("proj-1"))
	first.ToggleFeature(first.Read().Features[2].ID)
	model := "claude-3-5-sonnet"
	first.UpdateSettings(models.SettingsPatch{SelectedModel: &model})
	first.SetCurrentTab(models.TabSettings)
	first.SetSidebarCollapsed(true)
	first.AddMessage(models.ChatMessage{ID: "m1", Content: "hello", Role: models.RoleUser})
	first.AddTask(models.ProgressTask{ID: "t1", Name: "Render", Status: models.TaskRunning})
	first.UpdateCostAnalysis(models.CostAnalysis{TotalCost: 3.5})
	want := first.Read()

	second := openStore(t, repo)
	got := second.Read()

	assert.Equal(t, want.Durable, got.Durable)

	assert.Equal(t, models.TabChat, got.CurrentTab)
	assert.False(t, got.SidebarCollapsed)
	assert.Empty(t, got.Messages)
	assert.Empty(t, got.CurrentTasks)
	assert.Nil(t, got.CurrentProject)
	assert.Nil(t, got.CostAnalysis)
	assert.False(t, got.IsProcessing)
	require.NotNil(t, got.CurrentProfile)
	assert.Equal(t, got.Profiles[0], *got.CurrentProfile)
}

func TestOpen_CorruptPayloadFallsBackToDefaults(t *testing.T) {
	repo := &mocks.StateRepositoryMock{
		LoadFunc: func(context.Context) ([]byte, error) {
			return []byte(`{"profiles": [{"id": "p1"`), nil
		},
	}
	s := openStore(t, repo)

	st := s.Read()
	require.Len(t, st.Profiles, 1)
	assert.Equal(t, catalog.DefaultProfileID, st.Profiles[0].ID)
	defaults, err := catalog.DefaultFeatures()
	require.NoError(t, err)
	assert.Equal(t, defaults, st.Features)
}

func TestOpen_LoadErrorFallsBackToDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &mocks.StateRepositoryMock{
		LoadFunc: func(context.Context) ([]byte, error) {
			return nil, errors.New("disk gone")
		},
	}
	s, err := Open(context.Background(), Options{Persister: repo, Logger: zap.New(core), Now: clock})
	require.NoError(t, err)

	assert.Equal(t, catalog.DefaultProfileID, s.Read().Profiles[0].ID)
	assert.Equal(t, 1, logs.FilterMessage("failed to load persisted state, starting fresh").Len())
}

func TestOpen_PartialDocumentKeepsDefaults(t *testing.T) {
	repo := &mocks.StateRepositoryMock{
		LoadFunc: func(context.Context) ([]byte, error) {
			return []byte(`{"profiles":[{"id":"p9","name":"Lin","email":"lin@example.com"}]}`), nil
		},
	}
	s := openStore(t, repo)

	st := s.Read()
	require.Len(t, st.Profiles, 1)
	assert.Equal(t, "p9", st.CurrentProfile.ID)
	assert.Equal(t, catalog.DefaultSettings(), st.Settings)
	assert.NotEmpty(t, st.Features)
}

func TestPersistFailure_DoesNotFailMutation(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &mocks.StateRepositoryMock{
		SaveFunc: func(context.Context, []byte) error { return errors.New("read-only") },
	}
	s, err := Open(context.Background(), Options{Persister: repo, Logger: zap.New(core), Now: clock})
	require.NoError(t, err)

	s.AddProject(sampleProject("proj-1"))

	assert.Len(t, s.Read().Projects, 1)
	assert.GreaterOrEqual(t, logs.FilterMessage("failed to persist state").Len(), 1)
}

func TestVolatileMutations_DoNotPersist(t *testing.T) {
	repo := &mocks.StateRepositoryMock{}
	s := openStore(t, repo)
	saves := repo.SaveCount()

	s.AddMessage(models.ChatMessage{ID: "m1"})
	s.SetCurrentTab(models.TabAbout)
	s.AddTask(models.ProgressTask{ID: "t1"})

	assert.Equal(t, saves, repo.SaveCount())
}

func TestMutations_EmitChangeEvents(t *testing.T) {
	var actions []string
	events.SetCustomEmitter(func(_ context.Context, name string, payload any) {
		if name != events.StoreChanged {
			return
		}
		actions = append(actions, payload.(events.StoreEvent).Action)
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })

	s := openStore(t, nil)
	s.AddMessage(models.ChatMessage{ID: "m1"})
	s.ToggleFeature("missing")
	s.ClearMessages()

	assert.Equal(t, []string{"addMessage", "clearMessages"}, actions)
}

func TestTryStartProcessing_RejectsSecondCaller(t *testing.T) {
	s := openStore(t, nil)

	assert.True(t, s.TryStartProcessing())
	assert.False(t, s.TryStartProcessing())
	assert.True(t, s.Read().IsProcessing)

	s.SetProcessing(false)
	assert.True(t, s.TryStartProcessing())
}
